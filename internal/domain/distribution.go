package domain

import "github.com/gagliardetto/solana-go"

// MaxDistributionEntries caps how many recipients one mint can split
// supply across.
const MaxDistributionEntries = 10

// DistributionEntry is one resolved (recipient, absolute amount) pair.
type DistributionEntry struct {
	Recipient solana.PublicKey
	Amount    uint64 // base units
}

// Distribution is the ordered, resolved supply split. Invariant: the entry
// amounts sum exactly to the requested total supply in base units.
type Distribution struct {
	Entries []DistributionEntry
	Total   uint64 // base units, == sum of entry amounts
}

// Single builds the trivial distribution sending the full supply to one
// recipient.
func Single(recipient solana.PublicKey, total uint64) Distribution {
	return Distribution{
		Entries: []DistributionEntry{{Recipient: recipient, Amount: total}},
		Total:   total,
	}
}
