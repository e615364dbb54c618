// Package extensions holds the static Token-2022 extension catalog and the
// mint account size arithmetic that depends on it.
package extensions

// Extension identifiers. The metadata pointer is implicit for every
// Token-2022 mint this service creates and is not caller-selectable.
const (
	MetadataPointer    = "metadata-pointer"
	MintCloseAuthority = "mint-close-authority"
	PermanentDelegate  = "permanent-delegate"
	NonTransferable    = "non-transferable"
)

// Account size constants of the Token-2022 TLV layout. A mint with any
// extension is padded to the token-account size plus one account-type
// byte; each extension then adds a 2-byte type, 2-byte length header and
// its fixed data size.
const (
	BaseMintSize    = 82
	accountSize     = 165
	accountTypeSize = 1
	tlvHeaderSize   = 4 // 2-byte type + 2-byte length
)

// Extension describes one catalog entry.
type Extension struct {
	ID          string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Warning     string `json:"warning,omitempty"`

	// DataSize is the fixed TLV payload size of the extension.
	DataSize uint16 `json:"-"`
}

// catalog is the registry. Order is load-bearing: the builder emits
// initialization instructions in this order regardless of request order.
var catalog = []Extension{
	{
		ID:          MintCloseAuthority,
		Label:       "Mint Close Authority",
		Description: "Allows the authority to close the mint account and reclaim its rent once supply is zero.",
		DataSize:    32,
	},
	{
		ID:          PermanentDelegate,
		Label:       "Permanent Delegate",
		Description: "Grants a delegate permanent control over every token account of this mint.",
		Warning:     "The delegate can transfer or burn any holder's tokens at any time. This cannot be undone.",
		DataSize:    32,
	},
	{
		ID:          NonTransferable,
		Label:       "Non-Transferable",
		Description: "Tokens are bound to the account they are minted into and can never be transferred.",
		Warning:     "Holders can only burn or close; transfers are permanently impossible.",
		DataSize:    0,
	},
}

const metadataPointerDataSize = 64 // authority + metadata address

// Catalog returns the caller-selectable extensions in registry order.
func Catalog() []Extension {
	out := make([]Extension, len(catalog))
	copy(out, catalog)
	return out
}

// Resolve filters the requested identifiers down to recognized ones,
// deduplicated, in registry order. Unknown identifiers are dropped
// silently; the resolved set is echoed back to the caller so the drop is
// observable.
func Resolve(requested []string) []string {
	want := make(map[string]bool, len(requested))
	for _, id := range requested {
		want[id] = true
	}
	var out []string
	for _, ext := range catalog {
		if want[ext.ID] {
			out = append(out, ext.ID)
		}
	}
	return out
}

// lookup returns the catalog entry for an identifier.
func lookup(id string) (Extension, bool) {
	for _, ext := range catalog {
		if ext.ID == id {
			return ext, true
		}
	}
	return Extension{}, false
}

// MintAccountSize returns the allocated byte size of a Token-2022 mint
// carrying the implicit metadata pointer plus the selected extensions.
// The variable-length token-metadata extension is intentionally excluded:
// it is written after allocation through account growth, so it counts
// toward rent but never toward the allocated size.
func MintAccountSize(selected []string) uint64 {
	size := uint64(accountSize + accountTypeSize)
	size += tlvHeaderSize + metadataPointerDataSize
	for _, id := range selected {
		if ext, ok := lookup(id); ok {
			size += tlvHeaderSize + uint64(ext.DataSize)
		}
	}
	return size
}

// MetadataRentSize returns the account size rent must cover once the
// packed metadata of the given byte length has been written.
func MetadataRentSize(allocated uint64, packedMetadataLen int) uint64 {
	return allocated + tlvHeaderSize + uint64(packedMetadataLen)
}
