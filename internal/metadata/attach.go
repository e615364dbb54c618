package metadata

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"solana-token-forge/internal/domain"
	"solana-token-forge/internal/instructions"
)

// Attachment is the result of binding metadata to a mint: the instruction
// to append to the plan and the account the metadata lives in.
type Attachment struct {
	Instruction solana.Instruction
	Account     solana.PublicKey
}

// AttachToken2022 builds the self-contained metadata initialization for a
// Token-2022 mint. The metadata account is the mint itself; the metadata
// pointer initialized earlier in the plan points there.
func AttachToken2022(mint, updateAuthority, mintAuthority solana.PublicKey, f Fields) Attachment {
	return Attachment{
		Instruction: instructions.TokenMetadataInitialize(mint, updateAuthority, mintAuthority, f.Name, f.Symbol, f.URI),
		Account:     mint,
	}
}

// AttachMetaplex builds the side-registry metadata creation for a classic
// SPL mint. The account is the canonical PDA derived from the mint.
func AttachMetaplex(payer, mint, mintAuthority, updateAuthority solana.PublicKey, f Fields, royaltyBasisPoints uint16, creators []instructions.Creator) (Attachment, error) {
	pda, err := instructions.MetadataPDA(mint)
	if err != nil {
		return Attachment{}, fmt.Errorf("%w: derive metadata account: %v", domain.ErrMetadataAttachment, err)
	}
	ix := instructions.CreateMetadataAccountV3(instructions.CreateMetadataAccountV3Params{
		Metadata:                pda,
		Mint:                    mint,
		MintAuthority:           mintAuthority,
		Payer:                   payer,
		UpdateAuthority:         updateAuthority,
		UpdateAuthorityIsSigner: updateAuthority.Equals(payer),
		Name:                    f.Name,
		Symbol:                  f.Symbol,
		URI:                     f.URI,
		SellerFeeBasisPoints:    royaltyBasisPoints,
		Creators:                creators,
		IsMutable:               true,
	})
	return Attachment{Instruction: ix, Account: pda}, nil
}

// NullifyToken2022 removes the update authority of a Token-2022 metadata
// account, freezing the metadata permanently.
func NullifyToken2022(mint, currentAuthority solana.PublicKey) solana.Instruction {
	return instructions.TokenMetadataUpdateAuthority(mint, currentAuthority, solana.PublicKey{})
}

// NullifyMetaplex points the Metaplex update authority at the null address
// and flips the account immutable. Update authority is not a mint-level
// authority, so SetAuthority cannot reach it.
func NullifyMetaplex(metadataAccount, currentAuthority solana.PublicKey) solana.Instruction {
	return instructions.UpdateMetadataAccountV2(metadataAccount, currentAuthority, solana.SystemProgramID, false)
}
