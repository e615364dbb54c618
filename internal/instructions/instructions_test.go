package instructions

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
)

var (
	testPayer = solana.MustPublicKeyFromBase58("A1YrqK6SUgr1mKDLx88sy992BCx4EAGSkbAsre34tgPz")
	testMint  = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	testOwner = solana.MustPublicKeyFromBase58("Vote111111111111111111111111111111111111111")
)

func ixData(t *testing.T, ix solana.Instruction) []byte {
	t.Helper()
	data, err := ix.Data()
	if err != nil {
		t.Fatalf("instruction data: %v", err)
	}
	return data
}

func TestCreateAccount_DataLayout(t *testing.T) {
	ix := CreateAccount(testPayer, testMint, 2_000_000, 82, TokenProgramID)

	data := ixData(t, ix)
	if len(data) != 4+8+8+32 {
		t.Fatalf("expected 52 data bytes, got %d", len(data))
	}
	if disc := binary.LittleEndian.Uint32(data[0:4]); disc != 0 {
		t.Errorf("expected CreateAccount discriminator 0, got %d", disc)
	}
	if lamports := binary.LittleEndian.Uint64(data[4:12]); lamports != 2_000_000 {
		t.Errorf("expected 2000000 lamports, got %d", lamports)
	}
	if space := binary.LittleEndian.Uint64(data[12:20]); space != 82 {
		t.Errorf("expected space 82, got %d", space)
	}
	if !bytes.Equal(data[20:52], TokenProgramID.Bytes()) {
		t.Errorf("owner bytes mismatch")
	}

	accounts := ix.Accounts()
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	// Both funder and the new account sign account creation.
	if !accounts[0].IsSigner || !accounts[1].IsSigner {
		t.Errorf("funder and new account must both be signers")
	}
}

func TestTransfer_DataLayout(t *testing.T) {
	ix := Transfer(testPayer, testOwner, 100_000_000)

	data := ixData(t, ix)
	if disc := binary.LittleEndian.Uint32(data[0:4]); disc != 2 {
		t.Errorf("expected Transfer discriminator 2, got %d", disc)
	}
	if lamports := binary.LittleEndian.Uint64(data[4:12]); lamports != 100_000_000 {
		t.Errorf("expected 100000000 lamports, got %d", lamports)
	}
}

func TestInitializeMint2_WithFreezeAuthority(t *testing.T) {
	ix := InitializeMint2(Token2022ProgramID, testMint, 6, testPayer, &testOwner)

	data := ixData(t, ix)
	if data[0] != 20 {
		t.Errorf("expected InitializeMint2 discriminator 20, got %d", data[0])
	}
	if data[1] != 6 {
		t.Errorf("expected decimals 6, got %d", data[1])
	}
	if !bytes.Equal(data[2:34], testPayer.Bytes()) {
		t.Errorf("mint authority mismatch")
	}
	if data[34] != 1 {
		t.Errorf("expected freeze authority tag Some, got %d", data[34])
	}
	if !bytes.Equal(data[35:67], testOwner.Bytes()) {
		t.Errorf("freeze authority mismatch")
	}
}

func TestInitializeMint2_NilFreezeAuthority(t *testing.T) {
	// Freeze revocation at creation: the COption tag is None and no key
	// bytes follow.
	ix := InitializeMint2(TokenProgramID, testMint, 9, testPayer, nil)

	data := ixData(t, ix)
	if data[34] != 0 {
		t.Errorf("expected freeze authority tag None, got %d", data[34])
	}
	if len(data) != 35 {
		t.Errorf("expected 35 data bytes without freeze authority, got %d", len(data))
	}
}

func TestMintTo_Amount(t *testing.T) {
	ix := MintTo(TokenProgramID, testMint, testOwner, testPayer, 1_000_000_000_000)

	data := ixData(t, ix)
	if data[0] != 7 {
		t.Errorf("expected MintTo discriminator 7, got %d", data[0])
	}
	if amount := binary.LittleEndian.Uint64(data[1:9]); amount != 1_000_000_000_000 {
		t.Errorf("expected amount 1000000000000, got %d", amount)
	}

	accounts := ix.Accounts()
	if !accounts[2].IsSigner {
		t.Errorf("mint authority must sign MintTo")
	}
}

func TestSetAuthority_Revoke(t *testing.T) {
	ix := SetAuthority(TokenProgramID, testMint, AuthorityMintTokens, testPayer, nil)

	data := ixData(t, ix)
	if data[0] != 6 {
		t.Errorf("expected SetAuthority discriminator 6, got %d", data[0])
	}
	if data[1] != AuthorityMintTokens {
		t.Errorf("expected authority type 0, got %d", data[1])
	}
	if data[2] != 0 {
		t.Errorf("revocation must encode new authority as None")
	}
	if len(data) != 3 {
		t.Errorf("expected 3 data bytes for revocation, got %d", len(data))
	}
}

func TestFindAssociatedTokenAddress_ProgramSeed(t *testing.T) {
	classic, err := FindAssociatedTokenAddress(testOwner, testMint, TokenProgramID)
	if err != nil {
		t.Fatalf("derive classic ATA: %v", err)
	}
	t22, err := FindAssociatedTokenAddress(testOwner, testMint, Token2022ProgramID)
	if err != nil {
		t.Fatalf("derive token-2022 ATA: %v", err)
	}

	if classic.Equals(t22) {
		t.Errorf("ATAs for different token programs must differ")
	}

	// Derivation is deterministic.
	again, err := FindAssociatedTokenAddress(testOwner, testMint, TokenProgramID)
	if err != nil {
		t.Fatalf("re-derive: %v", err)
	}
	if !classic.Equals(again) {
		t.Errorf("ATA derivation must be deterministic")
	}
}

func TestInitializeMetadataPointer_SelfPointer(t *testing.T) {
	ix := InitializeMetadataPointer(testMint, testPayer, testMint)

	data := ixData(t, ix)
	if data[0] != 39 || data[1] != 0 {
		t.Errorf("expected [39, 0] prefix, got [%d, %d]", data[0], data[1])
	}
	if !bytes.Equal(data[2:34], testPayer.Bytes()) {
		t.Errorf("pointer authority mismatch")
	}
	if !bytes.Equal(data[34:66], testMint.Bytes()) {
		t.Errorf("metadata address must point at the mint itself")
	}
}

func TestTokenMetadataInitialize_Strings(t *testing.T) {
	ix := TokenMetadataInitialize(testMint, testPayer, testPayer, "Forge", "FRG", "https://example.com/meta.json")

	data := ixData(t, ix)
	rest := data[8:] // skip interface discriminator

	name, rest, err := ReadString(rest)
	if err != nil {
		t.Fatalf("read name: %v", err)
	}
	symbol, rest, err := ReadString(rest)
	if err != nil {
		t.Fatalf("read symbol: %v", err)
	}
	uri, rest, err := ReadString(rest)
	if err != nil {
		t.Fatalf("read uri: %v", err)
	}
	if name != "Forge" || symbol != "FRG" || uri != "https://example.com/meta.json" {
		t.Errorf("string round-trip mismatch: %q %q %q", name, symbol, uri)
	}
	if len(rest) != 0 {
		t.Errorf("expected no trailing bytes, got %d", len(rest))
	}

	accounts := ix.Accounts()
	if len(accounts) != 4 {
		t.Fatalf("expected 4 accounts, got %d", len(accounts))
	}
	if !accounts[3].IsSigner {
		t.Errorf("mint authority must sign metadata initialization")
	}
}

func TestCreateMetadataAccountV3_Encoding(t *testing.T) {
	pda, err := MetadataPDA(testMint)
	if err != nil {
		t.Fatalf("derive metadata PDA: %v", err)
	}

	ix := CreateMetadataAccountV3(CreateMetadataAccountV3Params{
		Metadata:                pda,
		Mint:                    testMint,
		MintAuthority:           testPayer,
		Payer:                   testPayer,
		UpdateAuthority:         testPayer,
		UpdateAuthorityIsSigner: true,
		Name:                    "Forge",
		Symbol:                  "FRG",
		URI:                     "ipfs://meta",
		SellerFeeBasisPoints:    500,
		Creators:                []Creator{{Address: testPayer, Verified: true, Share: 100}},
		IsMutable:               true,
	})

	data := ixData(t, ix)
	if data[0] != 33 {
		t.Errorf("expected CreateMetadataAccountV3 discriminator 33, got %d", data[0])
	}

	rest := data[1:]
	name, rest, _ := ReadString(rest)
	symbol, rest, _ := ReadString(rest)
	uri, rest, _ := ReadString(rest)
	if name != "Forge" || symbol != "FRG" || uri != "ipfs://meta" {
		t.Errorf("DataV2 strings mismatch: %q %q %q", name, symbol, uri)
	}
	if bps := binary.LittleEndian.Uint16(rest[0:2]); bps != 500 {
		t.Errorf("expected 500 basis points, got %d", bps)
	}
	rest = rest[2:]
	if rest[0] != 1 {
		t.Fatalf("expected creators Some")
	}
	if n := binary.LittleEndian.Uint32(rest[1:5]); n != 1 {
		t.Errorf("expected 1 creator, got %d", n)
	}
	creator := rest[5:]
	if !bytes.Equal(creator[0:32], testPayer.Bytes()) {
		t.Errorf("creator address mismatch")
	}
	if creator[32] != 1 || creator[33] != 100 {
		t.Errorf("expected verified creator with share 100")
	}
	// collection None, uses None, is_mutable true, collection_details None
	tail := creator[34:]
	want := []byte{0, 0, 1, 0}
	if !bytes.Equal(tail, want) {
		t.Errorf("expected tail %v, got %v", want, tail)
	}
}

func TestUpdateMetadataAccountV2_NullAuthority(t *testing.T) {
	pda, _ := MetadataPDA(testMint)
	ix := UpdateMetadataAccountV2(pda, testPayer, solana.SystemProgramID, false)

	data := ixData(t, ix)
	if data[0] != 15 {
		t.Errorf("expected UpdateMetadataAccountV2 discriminator 15, got %d", data[0])
	}
	if data[1] != 0 {
		t.Errorf("data option must be None")
	}
	if data[2] != 1 {
		t.Errorf("new update authority must be Some")
	}
	if !bytes.Equal(data[3:35], solana.SystemProgramID.Bytes()) {
		t.Errorf("new update authority must be the null address")
	}
	// primary_sale None, is_mutable Some(false)
	if !bytes.Equal(data[35:], []byte{0, 1, 0}) {
		t.Errorf("unexpected tail %v", data[35:])
	}
}

func TestSetComputeUnitPrice(t *testing.T) {
	ix := SetComputeUnitPrice(150_000)

	data := ixData(t, ix)
	if data[0] != 3 {
		t.Errorf("expected SetComputeUnitPrice discriminator 3, got %d", data[0])
	}
	if price := binary.LittleEndian.Uint64(data[1:9]); price != 150_000 {
		t.Errorf("expected 150000 micro-lamports, got %d", price)
	}
	if len(ix.Accounts()) != 0 {
		t.Errorf("compute budget instructions reference no accounts")
	}
}
