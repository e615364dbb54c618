package instructions

import (
	"github.com/gagliardetto/solana-go"
)

// Metaplex token-metadata instruction discriminators (borsh enum variants).
const (
	metaplexUpdateMetadataAccountV2 byte = 15
	metaplexCreateMetadataAccountV3 byte = 33
)

// Creator is one entry of the Metaplex creators list.
type Creator struct {
	Address  solana.PublicKey
	Verified bool
	Share    uint8
}

// MetadataPDA derives the canonical metadata account for a mint:
// ["metadata", program, mint] under the Metaplex metadata program.
func MetadataPDA(mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{
			[]byte("metadata"),
			MetaplexMetadataProgramID.Bytes(),
			mint.Bytes(),
		},
		MetaplexMetadataProgramID,
	)
	return addr, err
}

// CreateMetadataAccountV3Params collects the inputs for the side-registry
// metadata variant used with classic SPL mints.
type CreateMetadataAccountV3Params struct {
	Metadata        solana.PublicKey
	Mint            solana.PublicKey
	MintAuthority   solana.PublicKey
	Payer           solana.PublicKey
	UpdateAuthority solana.PublicKey
	// UpdateAuthorityIsSigner must be true when the update authority will
	// sign the transaction (it does when it equals the payer).
	UpdateAuthorityIsSigner bool

	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             []Creator
	IsMutable            bool
}

// CreateMetadataAccountV3 creates the Metaplex metadata account bound to a
// classic SPL mint.
func CreateMetadataAccountV3(p CreateMetadataAccountV3Params) solana.Instruction {
	data := []byte{metaplexCreateMetadataAccountV3}

	// DataV2
	data = AppendString(data, p.Name)
	data = AppendString(data, p.Symbol)
	data = AppendString(data, p.URI)
	data = appendU16(data, p.SellerFeeBasisPoints)
	if len(p.Creators) == 0 {
		data = append(data, 0) // creators: None
	} else {
		data = append(data, 1)
		data = appendU32(data, uint32(len(p.Creators)))
		for _, c := range p.Creators {
			data = append(data, c.Address.Bytes()...)
			if c.Verified {
				data = append(data, 1)
			} else {
				data = append(data, 0)
			}
			data = append(data, c.Share)
		}
	}
	data = append(data, 0) // collection: None
	data = append(data, 0) // uses: None

	if p.IsMutable {
		data = append(data, 1)
	} else {
		data = append(data, 0)
	}
	data = append(data, 0) // collection_details: None

	return solana.NewInstruction(MetaplexMetadataProgramID, []*solana.AccountMeta{
		meta(p.Metadata, false, true),
		meta(p.Mint, false, false),
		meta(p.MintAuthority, true, false),
		meta(p.Payer, true, true),
		meta(p.UpdateAuthority, p.UpdateAuthorityIsSigner, false),
		meta(SystemProgramID, false, false),
		meta(SysvarRentID, false, false),
	}, data)
}

// UpdateMetadataAccountV2 reassigns the metadata update authority without
// touching the data. Pointing it at the system-program null address is the
// permanent-immutability revocation for the side-registry variant, where
// update authority is not a mint-level authority SetAuthority could reach.
func UpdateMetadataAccountV2(metadata, updateAuthority, newUpdateAuthority solana.PublicKey, isMutable bool) solana.Instruction {
	data := []byte{metaplexUpdateMetadataAccountV2}
	data = append(data, 0) // data: None
	data = append(data, 1) // new_update_authority: Some
	data = append(data, newUpdateAuthority.Bytes()...)
	data = append(data, 0) // primary_sale_happened: None
	data = append(data, 1) // is_mutable: Some
	if isMutable {
		data = append(data, 1)
	} else {
		data = append(data, 0)
	}

	return solana.NewInstruction(MetaplexMetadataProgramID, []*solana.AccountMeta{
		meta(metadata, false, true),
		meta(updateAuthority, true, false),
	}, data)
}
