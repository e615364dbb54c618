package domain

// FeeBreakdown itemizes the platform fee and the estimated on-chain costs,
// all in lamports unless noted.
type FeeBreakdown struct {
	BaseFee     uint64            `json:"baseFee"`
	FeatureFees map[string]uint64 `json:"featureFees,omitempty"`
	PlatformFee uint64            `json:"platformFee"` // base + features

	MintRent         uint64 `json:"mintRent"`
	TokenAccountRent uint64 `json:"tokenAccountRent"` // for ATAs this tx creates
	NetworkFee       uint64 `json:"networkFee"`

	TotalEstimated uint64 `json:"totalEstimated"`
}

// AuthorityState reports an authority in the envelope: a base58 address,
// "revoked", or "none".
type AuthorityState string

const (
	AuthorityRevoked AuthorityState = "revoked"
	AuthorityNone    AuthorityState = "none"
)

// TransactionEnvelope is the immutable result of one build. The service
// keeps no state past returning it; the caller signs and broadcasts.
type TransactionEnvelope struct {
	SerializedTransaction string `json:"transaction"` // base64
	Blockhash             string `json:"blockhash"`
	LastValidBlockHeight  uint64 `json:"lastValidBlockHeight"`

	MintAddress     string   `json:"mintAddress"`
	TokenAccounts   []string `json:"tokenAccounts"` // per recipient, in order
	MetadataAddress string   `json:"metadataAddress,omitempty"`

	Supply   string `json:"supply"` // base units, decimal string
	Decimals uint8  `json:"decimals"`

	MintAuthority   AuthorityState `json:"mintAuthority"`
	UpdateAuthority AuthorityState `json:"updateAuthority"`
	FreezeAuthority AuthorityState `json:"freezeAuthority"`

	Fees     FeeBreakdown `json:"fees"`
	Features []string     `json:"features"`

	TokenProgram string `json:"tokenProgram"`
}
