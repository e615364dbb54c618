package instructions

import "github.com/gagliardetto/solana-go"

// Token program instruction discriminators shared by the classic token
// program and Token-2022.
const (
	tokenSetAuthority    byte = 6
	tokenMintTo          byte = 7
	tokenInitializeMint2 byte = 20
)

// Authority types for SetAuthority.
const (
	AuthorityMintTokens    byte = 0
	AuthorityFreezeAccount byte = 1
)

// InitializeMint2 initializes a mint account with the given decimals and
// authorities. A nil freeze authority means the mint is born without one —
// freezing is permanently impossible, not revoked later.
func InitializeMint2(tokenProgram, mint solana.PublicKey, decimals uint8, mintAuthority solana.PublicKey, freezeAuthority *solana.PublicKey) solana.Instruction {
	data := []byte{tokenInitializeMint2, decimals}
	data = append(data, mintAuthority.Bytes()...)
	data = appendOptionKey(data, freezeAuthority)

	return solana.NewInstruction(tokenProgram, []*solana.AccountMeta{
		meta(mint, false, true),
	}, data)
}

// MintTo mints amount base units into a token account. The mint authority
// must sign.
func MintTo(tokenProgram, mint, destination, authority solana.PublicKey, amount uint64) solana.Instruction {
	data := appendU64([]byte{tokenMintTo}, amount)

	return solana.NewInstruction(tokenProgram, []*solana.AccountMeta{
		meta(mint, false, true),
		meta(destination, false, true),
		meta(authority, true, false),
	}, data)
}

// SetAuthority changes or revokes a mint-level authority. A nil new
// authority revokes it permanently.
func SetAuthority(tokenProgram, account solana.PublicKey, authorityType byte, currentAuthority solana.PublicKey, newAuthority *solana.PublicKey) solana.Instruction {
	data := []byte{tokenSetAuthority, authorityType}
	data = appendOptionKey(data, newAuthority)

	return solana.NewInstruction(tokenProgram, []*solana.AccountMeta{
		meta(account, false, true),
		meta(currentAuthority, true, false),
	}, data)
}
