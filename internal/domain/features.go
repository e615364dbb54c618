package domain

// FeatureConfig is the resolved, validated feature set derived from a
// MintRequest. The builder and fee calculator consume this instead of
// re-deriving flags from the raw request.
type FeatureConfig struct {
	TokenProgram TokenProgram

	UseCustomAddress bool
	MultiWallet      bool
	CustomCreator    bool

	RevokeFreeze bool
	RevokeMint   bool
	RevokeUpdate bool

	// Extensions holds recognized extension identifiers in catalog order.
	// Unknown identifiers from the request are dropped during resolution;
	// the metadata pointer is implicit and never listed here.
	Extensions []string

	Priority PriorityLevel
}

// RevocationCount returns how many authority revocations are enabled.
func (f FeatureConfig) RevocationCount() int {
	n := 0
	if f.RevokeFreeze {
		n++
	}
	if f.RevokeMint {
		n++
	}
	if f.RevokeUpdate {
		n++
	}
	return n
}

// Summary lists the enabled features as stable identifiers for the
// response envelope.
func (f FeatureConfig) Summary() []string {
	var s []string
	if f.UseCustomAddress {
		s = append(s, "customAddress")
	}
	if f.MultiWallet {
		s = append(s, "multiWallet")
	}
	if f.CustomCreator {
		s = append(s, "customCreator")
	}
	if f.RevokeFreeze {
		s = append(s, "revokeFreezeAuthority")
	}
	if f.RevokeMint {
		s = append(s, "revokeMintAuthority")
	}
	if f.RevokeUpdate {
		s = append(s, "revokeUpdateAuthority")
	}
	if f.Priority != "" && f.Priority != PriorityNone {
		s = append(s, "priorityFee:"+string(f.Priority))
	}
	for _, ext := range f.Extensions {
		s = append(s, "extension:"+ext)
	}
	return s
}
