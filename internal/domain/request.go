// Package domain defines the core types shared by the mint-transaction
// pipeline: the incoming request, the resolved feature configuration, the
// supply distribution, the ordered instruction plan and the final envelope.
package domain

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// TokenProgram selects which on-chain token program the mint targets.
type TokenProgram string

const (
	// TokenProgramClassic is the original SPL Token program (Tokenkeg...).
	TokenProgramClassic TokenProgram = "spl-token"
	// TokenProgram2022 is the Token-2022 program with extension support.
	TokenProgram2022 TokenProgram = "token-2022"
)

// PriorityLevel is the compute-unit price hint requested by the caller.
type PriorityLevel string

const (
	PriorityNone     PriorityLevel = "none"
	PriorityLow      PriorityLevel = "low"
	PriorityHigh     PriorityLevel = "high"
	PriorityVeryHigh PriorityLevel = "veryHigh"
)

// MicroLamports returns the compute-unit price for the level.
func (p PriorityLevel) MicroLamports() uint64 {
	switch p {
	case PriorityLow:
		return 50_000
	case PriorityHigh:
		return 150_000
	case PriorityVeryHigh:
		return 300_000
	default:
		return 0
	}
}

// DistributionInput is one (recipient, percentage) pair as submitted by the
// caller, before validation and amount resolution.
type DistributionInput struct {
	Recipient  string
	Percentage decimal.Decimal
}

// MintRequest is the fully structured input for one mint-transaction build.
// The HTTP layer decodes the wire format into this; everything past that
// boundary works with parsed types.
type MintRequest struct {
	Payer         string // base58 wallet, fee payer and default authority
	Recipient     string // single recipient; ignored when Distributions set
	Distributions []DistributionInput

	Amount   decimal.Decimal // supply in human units
	Decimals uint8           // 0..18

	Name        string
	Symbol      string
	Description string
	MetadataURI string // locator produced by the content-storage collaborator

	RoyaltyBasisPoints uint16 // 0..10000, classic metadata variant only
	MintAuthority      string // optional override, defaults to payer

	TokenProgram TokenProgram
	Extensions   []string // extension identifiers, Token-2022 only

	Priority PriorityLevel

	// Vanity address constraint; combined length <= 4.
	AddressPrefix string
	AddressSuffix string

	RevokeFreezeAuthority bool
	RevokeMintAuthority   bool
	RevokeUpdateAuthority bool
}

// MultiWallet reports whether the request distributes supply across more
// than one recipient entry.
func (r *MintRequest) MultiWallet() bool {
	return len(r.Distributions) > 0
}

// UseCustomAddress reports whether a vanity constraint was supplied.
func (r *MintRequest) UseCustomAddress() bool {
	return r.AddressPrefix != "" || r.AddressSuffix != ""
}

// CustomCreator reports whether the mint authority is overridden away from
// the payer.
func (r *MintRequest) CustomCreator() bool {
	return r.MintAuthority != "" && r.MintAuthority != r.Payer
}

// MintKeypair is the freshly generated (or vanity-matched) keypair for the
// new mint account. It is owned by the assembler until its partial
// signature lands in the serialized transaction.
type MintKeypair struct {
	PrivateKey solana.PrivateKey
	Attempts   uint64 // search attempts spent finding it
}

// PublicKey returns the mint account address.
func (k MintKeypair) PublicKey() solana.PublicKey {
	return k.PrivateKey.PublicKey()
}
