// Package builder turns a resolved request into the ordered instruction
// plan of the creation transaction. Ordering rules live here and nowhere
// else: extension initializations before the mint initialization,
// allocation before anything that touches the mint, revocations last.
package builder

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"solana-token-forge/internal/domain"
	"solana-token-forge/internal/extensions"
	"solana-token-forge/internal/instructions"
	"solana-token-forge/internal/metadata"
	sol "solana-token-forge/internal/solana"
)

// Params carries every decision already made upstream: resolved features,
// exact distribution amounts, priced fees and sized rent. The builder only
// sequences instructions.
type Params struct {
	Payer           solana.PublicKey
	Mint            solana.PublicKey
	MintAuthority   solana.PublicKey
	UpdateAuthority solana.PublicKey

	Decimals uint8

	Features     domain.FeatureConfig
	Distribution domain.Distribution

	Metadata           metadata.Fields
	RoyaltyBasisPoints uint16
	Creators           []instructions.Creator

	PlatformWallet solana.PublicKey
	PlatformFee    uint64

	// MintRent funds the mint account at allocation; MintSpace is the
	// allocated byte size. For Token-2022 the rent covers the
	// post-allocation metadata growth while the space does not.
	MintRent  uint64
	MintSpace uint64
}

// Build produces the instruction plan. It consults the RPC only to skip
// creating token accounts that already exist, which keeps rebuilds of the
// same request idempotent.
func Build(ctx context.Context, rpc sol.RPCClient, p Params) (*domain.InstructionPlan, error) {
	if len(p.Distribution.Entries) == 0 {
		return nil, domain.ErrEmptyDistribution
	}

	plan := &domain.InstructionPlan{Mint: p.Mint}
	token2022 := p.Features.TokenProgram == domain.TokenProgram2022
	tokenProgram := instructions.TokenProgramID
	if token2022 {
		tokenProgram = instructions.Token2022ProgramID
	}

	if micro := p.Features.Priority.MicroLamports(); micro > 0 {
		plan.Append(domain.RolePriorityFee, instructions.SetComputeUnitPrice(micro))
	}

	if p.PlatformFee > 0 && !p.PlatformWallet.IsZero() {
		plan.Append(domain.RoleFeeTransfer, instructions.Transfer(p.Payer, p.PlatformWallet, p.PlatformFee))
	}

	plan.Append(domain.RoleCreateAccount, instructions.CreateAccount(p.Payer, p.Mint, p.MintRent, p.MintSpace, tokenProgram))

	if token2022 {
		// Pointer first, then the selected extensions in catalog order.
		// All of these must land before InitializeMint2.
		plan.Append(domain.RoleInitMetadataPointer, instructions.InitializeMetadataPointer(p.Mint, p.UpdateAuthority, p.Mint))
		for _, id := range extensions.Resolve(p.Features.Extensions) {
			ix, err := extensionInit(id, p)
			if err != nil {
				return nil, err
			}
			plan.Append(domain.RoleInitExtension, ix)
		}
	}

	// Freeze revocation is expressed at initialization: a mint created
	// without a freeze authority never needs a SetAuthority for it.
	// Token-2022 mints never get one in the first place.
	var freezeAuthority *solana.PublicKey
	if !token2022 && !p.Features.RevokeFreeze {
		fa := p.MintAuthority
		freezeAuthority = &fa
	}
	plan.Append(domain.RoleInitMint, instructions.InitializeMint2(tokenProgram, p.Mint, p.Decimals, p.MintAuthority, freezeAuthority))

	if token2022 {
		a := metadata.AttachToken2022(p.Mint, p.UpdateAuthority, p.MintAuthority, p.Metadata)
		plan.Append(domain.RoleInitMetadata, a.Instruction)
		plan.MetadataAccount = a.Account
	} else {
		a, err := metadata.AttachMetaplex(p.Payer, p.Mint, p.MintAuthority, p.UpdateAuthority, p.Metadata, p.RoyaltyBasisPoints, p.Creators)
		if err != nil {
			return nil, err
		}
		plan.Append(domain.RoleInitMetadata, a.Instruction)
		plan.MetadataAccount = a.Account
	}

	for _, entry := range p.Distribution.Entries {
		ata, err := instructions.FindAssociatedTokenAddress(entry.Recipient, p.Mint, tokenProgram)
		if err != nil {
			return nil, fmt.Errorf("derive token account for %s: %w", entry.Recipient, err)
		}
		plan.TokenAccounts = append(plan.TokenAccounts, ata)

		exists, err := rpc.AccountExists(ctx, ata.String())
		if err != nil {
			return nil, fmt.Errorf("check token account %s: %w", ata, err)
		}
		if !exists {
			plan.Append(domain.RoleCreateTokenAccount, instructions.CreateAssociatedTokenAccount(p.Payer, ata, entry.Recipient, p.Mint, tokenProgram))
		}
		plan.Append(domain.RoleMintTo, instructions.MintTo(tokenProgram, p.Mint, ata, p.MintAuthority, entry.Amount))
	}

	if p.Features.RevokeMint {
		plan.Append(domain.RoleRevokeAuthority, instructions.SetAuthority(tokenProgram, p.Mint, instructions.AuthorityMintTokens, p.MintAuthority, nil))
	}

	if p.Features.RevokeUpdate {
		// Metadata update authority is not a mint-level authority, so the
		// nullification differs per variant.
		if token2022 {
			plan.Append(domain.RoleNullifyUpdateAuth, metadata.NullifyToken2022(p.Mint, p.UpdateAuthority))
		} else {
			plan.Append(domain.RoleNullifyUpdateAuth, metadata.NullifyMetaplex(plan.MetadataAccount, p.UpdateAuthority))
		}
	}

	return plan, nil
}

// extensionInit maps a catalog identifier to its initialization
// instruction. The close authority and permanent delegate default to the
// mint authority.
func extensionInit(id string, p Params) (solana.Instruction, error) {
	switch id {
	case extensions.MintCloseAuthority:
		auth := p.MintAuthority
		return instructions.InitializeMintCloseAuthority(p.Mint, &auth), nil
	case extensions.PermanentDelegate:
		return instructions.InitializePermanentDelegate(p.Mint, p.MintAuthority), nil
	case extensions.NonTransferable:
		return instructions.InitializeNonTransferableMint(p.Mint), nil
	}
	return nil, fmt.Errorf("%w: unknown extension %q", domain.ErrValidation, id)
}
