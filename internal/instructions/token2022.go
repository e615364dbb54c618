package instructions

import "github.com/gagliardetto/solana-go"

// Token-2022 extension instruction discriminators.
const (
	t22InitializeMintCloseAuthority  byte = 25
	t22InitializeNonTransferableMint byte = 32
	t22InitializePermanentDelegate   byte = 35
	t22MetadataPointerExtension      byte = 39
	t22MetadataPointerInitialize     byte = 0
)

// Token-2022 metadata interface discriminators (first 8 bytes of the
// hashed spl_token_metadata_interface instruction names).
var (
	metadataInitializeDisc      = []byte{210, 225, 30, 162, 88, 184, 77, 141}
	metadataUpdateAuthorityDisc = []byte{215, 228, 166, 228, 84, 100, 86, 123}
)

// InitializeMetadataPointer points a mint at its metadata account. For
// self-contained metadata the pointer targets the mint itself. Must run
// before InitializeMint2.
func InitializeMetadataPointer(mint, authority, metadataAddress solana.PublicKey) solana.Instruction {
	data := []byte{t22MetadataPointerExtension, t22MetadataPointerInitialize}
	data = append(data, authority.Bytes()...)
	data = append(data, metadataAddress.Bytes()...)

	return solana.NewInstruction(Token2022ProgramID, []*solana.AccountMeta{
		meta(mint, false, true),
	}, data)
}

// InitializeMintCloseAuthority sets the authority allowed to close the
// mint account. Must run before InitializeMint2.
func InitializeMintCloseAuthority(mint solana.PublicKey, closeAuthority *solana.PublicKey) solana.Instruction {
	data := appendOptionKey([]byte{t22InitializeMintCloseAuthority}, closeAuthority)

	return solana.NewInstruction(Token2022ProgramID, []*solana.AccountMeta{
		meta(mint, false, true),
	}, data)
}

// InitializePermanentDelegate grants an unrevokable delegate over every
// token account of the mint. Must run before InitializeMint2.
func InitializePermanentDelegate(mint, delegate solana.PublicKey) solana.Instruction {
	data := append([]byte{t22InitializePermanentDelegate}, delegate.Bytes()...)

	return solana.NewInstruction(Token2022ProgramID, []*solana.AccountMeta{
		meta(mint, false, true),
	}, data)
}

// InitializeNonTransferableMint makes every token of the mint soul-bound.
// Must run before InitializeMint2.
func InitializeNonTransferableMint(mint solana.PublicKey) solana.Instruction {
	return solana.NewInstruction(Token2022ProgramID, []*solana.AccountMeta{
		meta(mint, false, true),
	}, []byte{t22InitializeNonTransferableMint})
}

// TokenMetadataInitialize writes name/symbol/uri into the mint's metadata
// extension space, growing the account past its allocated size. Runs after
// InitializeMint2; rent for the grown size must already be funded.
func TokenMetadataInitialize(mint, updateAuthority, mintAuthority solana.PublicKey, name, symbol, uri string) solana.Instruction {
	data := append([]byte{}, metadataInitializeDisc...)
	data = AppendString(data, name)
	data = AppendString(data, symbol)
	data = AppendString(data, uri)

	return solana.NewInstruction(Token2022ProgramID, []*solana.AccountMeta{
		meta(mint, false, true),       // metadata account (self-contained)
		meta(updateAuthority, false, false),
		meta(mint, false, false),
		meta(mintAuthority, true, false),
	}, data)
}

// TokenMetadataUpdateAuthority transfers the metadata update authority.
// An all-zero new authority removes it permanently, freezing the metadata.
func TokenMetadataUpdateAuthority(metadata, currentAuthority, newAuthority solana.PublicKey) solana.Instruction {
	data := append([]byte{}, metadataUpdateAuthorityDisc...)
	data = append(data, newAuthority.Bytes()...)

	return solana.NewInstruction(Token2022ProgramID, []*solana.AccountMeta{
		meta(metadata, false, true),
		meta(currentAuthority, true, false),
	}, data)
}
