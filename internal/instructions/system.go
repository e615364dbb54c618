package instructions

import "github.com/gagliardetto/solana-go"

// System program instruction discriminators (little-endian uint32).
const (
	sysCreateAccount uint32 = 0
	sysTransfer      uint32 = 2
)

// CreateAccount allocates a new account with the given byte size, funds it
// with lamports and assigns it to owner. Both the funder and the new
// account must sign.
func CreateAccount(from, newAccount solana.PublicKey, lamports, space uint64, owner solana.PublicKey) solana.Instruction {
	data := appendU32(nil, sysCreateAccount)
	data = appendU64(data, lamports)
	data = appendU64(data, space)
	data = append(data, owner.Bytes()...)

	return solana.NewInstruction(SystemProgramID, []*solana.AccountMeta{
		meta(from, true, true),
		meta(newAccount, true, true),
	}, data)
}

// Transfer moves lamports between system accounts.
func Transfer(from, to solana.PublicKey, lamports uint64) solana.Instruction {
	data := appendU32(nil, sysTransfer)
	data = appendU64(data, lamports)

	return solana.NewInstruction(SystemProgramID, []*solana.AccountMeta{
		meta(from, true, true),
		meta(to, false, true),
	}, data)
}
