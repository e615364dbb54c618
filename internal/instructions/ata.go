package instructions

import "github.com/gagliardetto/solana-go"

// FindAssociatedTokenAddress derives the associated token account for an
// owner and mint under the given token program. The token program is part
// of the seed, so the same wallet gets distinct ATAs for classic and
// Token-2022 mints.
func FindAssociatedTokenAddress(owner, mint, tokenProgram solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{owner.Bytes(), tokenProgram.Bytes(), mint.Bytes()},
		AssociatedTokenProgramID,
	)
	return addr, err
}

// CreateAssociatedTokenAccount creates the ATA for owner/mint, funded by
// payer. The address must match FindAssociatedTokenAddress for the same
// token program.
func CreateAssociatedTokenAccount(payer, ata, owner, mint, tokenProgram solana.PublicKey) solana.Instruction {
	return solana.NewInstruction(AssociatedTokenProgramID, []*solana.AccountMeta{
		meta(payer, true, true),
		meta(ata, false, true),
		meta(owner, false, false),
		meta(mint, false, false),
		meta(SystemProgramID, false, false),
		meta(tokenProgram, false, false),
	}, []byte{})
}
