// Package instructions builds the raw on-chain instructions this service
// emits. Data layouts are encoded by hand per program: the SPL family uses
// a one-byte discriminator, the system program a little-endian uint32, the
// Token-2022 metadata interface an 8-byte discriminator.
package instructions

import "github.com/gagliardetto/solana-go"

// Program IDs. The compute-budget and Metaplex metadata programs are pinned
// here by address.
var (
	SystemProgramID          = solana.SystemProgramID
	TokenProgramID           = solana.TokenProgramID
	Token2022ProgramID       = solana.Token2022ProgramID
	AssociatedTokenProgramID = solana.SPLAssociatedTokenAccountProgramID

	ComputeBudgetProgramID    = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")
	MetaplexMetadataProgramID = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")
	SysvarRentID              = solana.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")
)

func meta(pk solana.PublicKey, isSigner, isWritable bool) *solana.AccountMeta {
	return &solana.AccountMeta{PublicKey: pk, IsSigner: isSigner, IsWritable: isWritable}
}
