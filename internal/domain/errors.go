package domain

import "errors"

// Error taxonomy for the request boundary. Everything the pipeline returns
// wraps one of these sentinels so the HTTP layer can map to a status code
// with errors.Is while keeping the original cause chain.
var (
	// ErrValidation is a malformed or missing request field.
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientFunds is the advisory balance pre-check failure. The
	// ledger re-enforces at submission time; this exists for fast feedback.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAddressGenerationTimeout is the vanity search exhausting its
	// attempt budget without a match.
	ErrAddressGenerationTimeout = errors.New("address generation exceeded attempt budget")

	// ErrEmptyDistribution means no valid recipients remained after
	// filtering malformed entries.
	ErrEmptyDistribution = errors.New("distribution has no valid entries")

	// ErrDistributionPercentage is a malformed percentage set.
	ErrDistributionPercentage = errors.New("invalid distribution percentages")

	// ErrNetworkUnavailable is the blockhash fetch exhausting its retries.
	ErrNetworkUnavailable = errors.New("ledger RPC unavailable")

	// ErrMetadataAttachment wraps metadata packing or instruction
	// construction failures.
	ErrMetadataAttachment = errors.New("metadata attachment failed")

	// ErrSerialization is a final transaction that cannot be serialized or
	// exceeds the packet size ceiling.
	ErrSerialization = errors.New("transaction serialization failed")
)
