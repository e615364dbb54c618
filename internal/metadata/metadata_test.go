package metadata

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"

	"solana-token-forge/internal/instructions"
)

var (
	testPayer = solana.MustPublicKeyFromBase58("A1YrqK6SUgr1mKDLx88sy992BCx4EAGSkbAsre34tgPz")
	testMint  = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
)

func TestPackUnpack_RoundTrip(t *testing.T) {
	in := Fields{Name: "Forge", Symbol: "FRG", URI: "ipfs://QmForgeMeta"}

	packed := Pack(testPayer, testMint, in)
	auth, mint, out, err := Unpack(packed)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if !auth.Equals(testPayer) {
		t.Errorf("update authority mismatch: %s", auth)
	}
	if !mint.Equals(testMint) {
		t.Errorf("mint mismatch: %s", mint)
	}
	if out.Name != in.Name || out.Symbol != in.Symbol || out.URI != in.URI {
		t.Errorf("fields mismatch: %+v", out)
	}
	if len(out.Additional) != 0 {
		t.Errorf("expected no additional fields, got %v", out.Additional)
	}
}

func TestPackUnpack_AdditionalFields(t *testing.T) {
	in := Fields{
		Name:       "Forge",
		Symbol:     "FRG",
		URI:        "https://example.com/meta.json",
		Additional: [][2]string{{"description", "a test token"}, {"website", "example.com"}},
	}

	auth, _, out, err := Unpack(Pack(solana.PublicKey{}, testMint, in))
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	// A zero update authority packs and unpacks as the none marker.
	if !auth.IsZero() {
		t.Errorf("expected zero update authority, got %s", auth)
	}
	if len(out.Additional) != 2 || out.Additional[0] != in.Additional[0] || out.Additional[1] != in.Additional[1] {
		t.Errorf("additional fields mismatch: %v", out.Additional)
	}
}

func TestPack_Length(t *testing.T) {
	f := Fields{Name: "Forge", Symbol: "FRG", URI: "ipfs://meta"}
	packed := Pack(testPayer, testMint, f)

	want := 32 + 32 + (4 + 5) + (4 + 3) + (4 + 11) + 4
	if len(packed) != want {
		t.Errorf("expected packed length %d, got %d", want, len(packed))
	}
}

func TestUnpack_Truncated(t *testing.T) {
	packed := Pack(testPayer, testMint, Fields{Name: "Forge", Symbol: "FRG", URI: "u"})
	for _, cut := range []int{0, 63, len(packed) - 1} {
		if _, _, _, err := Unpack(packed[:cut]); err == nil {
			t.Errorf("expected error unpacking %d of %d bytes", cut, len(packed))
		}
	}
}

func TestAttachToken2022_MintIsMetadataAccount(t *testing.T) {
	a := AttachToken2022(testMint, testPayer, testPayer, Fields{Name: "Forge", Symbol: "FRG", URI: "u"})

	if !a.Account.Equals(testMint) {
		t.Errorf("Token-2022 metadata must live in the mint account, got %s", a.Account)
	}
	if !a.Instruction.ProgramID().Equals(instructions.Token2022ProgramID) {
		t.Errorf("expected Token-2022 program, got %s", a.Instruction.ProgramID())
	}
}

func TestAttachMetaplex_DerivesPDA(t *testing.T) {
	a, err := AttachMetaplex(testPayer, testMint, testPayer, testPayer, Fields{Name: "Forge", Symbol: "FRG", URI: "u"}, 250, nil)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}

	pda, err := instructions.MetadataPDA(testMint)
	if err != nil {
		t.Fatalf("derive pda: %v", err)
	}
	if !a.Account.Equals(pda) {
		t.Errorf("expected canonical PDA %s, got %s", pda, a.Account)
	}
	// Update authority equals payer, so it signs.
	accounts := a.Instruction.Accounts()
	if !accounts[4].IsSigner {
		t.Errorf("update authority equal to payer must sign")
	}
}

func TestAttachMetaplex_ExternalUpdateAuthorityDoesNotSign(t *testing.T) {
	other := solana.MustPublicKeyFromBase58("Vote111111111111111111111111111111111111111")
	a, err := AttachMetaplex(testPayer, testMint, testPayer, other, Fields{Name: "Forge", Symbol: "FRG", URI: "u"}, 0, nil)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if a.Instruction.Accounts()[4].IsSigner {
		t.Errorf("an external update authority cannot sign an unsigned transaction")
	}
}

func TestNullifyToken2022_ZeroKey(t *testing.T) {
	ix := NullifyToken2022(testMint, testPayer)

	data, err := ix.Data()
	if err != nil {
		t.Fatalf("instruction data: %v", err)
	}
	// Interface discriminator then the all-zero new authority.
	var zero [32]byte
	if !bytes.Equal(data[8:40], zero[:]) {
		t.Errorf("expected zero new authority, got %v", data[8:40])
	}
}

func TestNullifyMetaplex_NullAddress(t *testing.T) {
	pda, _ := instructions.MetadataPDA(testMint)
	ix := NullifyMetaplex(pda, testPayer)

	data, err := ix.Data()
	if err != nil {
		t.Fatalf("instruction data: %v", err)
	}
	if !bytes.Equal(data[3:35], solana.SystemProgramID.Bytes()) {
		t.Errorf("new update authority must be the null address")
	}
}
