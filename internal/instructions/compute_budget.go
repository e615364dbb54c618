package instructions

import "github.com/gagliardetto/solana-go"

const computeBudgetSetUnitPrice byte = 3

// SetComputeUnitPrice sets the priority fee in micro-lamports per compute
// unit. When present it must be the first instruction of the transaction.
func SetComputeUnitPrice(microLamports uint64) solana.Instruction {
	data := appendU64([]byte{computeBudgetSetUnitPrice}, microLamports)
	return solana.NewInstruction(ComputeBudgetProgramID, []*solana.AccountMeta{}, data)
}
