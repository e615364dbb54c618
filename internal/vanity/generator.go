// Package vanity grinds ed25519 keypairs until the base58 address matches
// the requested prefix and suffix.
package vanity

import (
	"context"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"solana-token-forge/internal/domain"
)

// MaxAffixLength bounds the combined prefix+suffix length. Each base58
// character multiplies the expected attempt count by ~58, so anything past
// four characters is not realistic to grind synchronously.
const MaxAffixLength = 4

// DefaultMaxAttempts bounds a single generation run.
const DefaultMaxAttempts = 5_000_000

// ValidateAffixes rejects constraints that are too long combined or use
// characters outside the base58 alphabet. Validation happens before any
// grinding so an impossible pattern fails fast instead of timing out.
func ValidateAffixes(prefix, suffix string) error {
	if len(prefix)+len(suffix) > MaxAffixLength {
		return fmt.Errorf("%w: combined prefix %q and suffix %q exceed %d characters",
			domain.ErrValidation, prefix, suffix, MaxAffixLength)
	}
	for _, affix := range []struct {
		name, value string
	}{{"prefix", prefix}, {"suffix", suffix}} {
		for _, c := range affix.value {
			if !isBase58Insensitive(c) {
				return fmt.Errorf("%w: %s contains non-base58 character %q",
					domain.ErrValidation, affix.name, c)
			}
		}
	}
	return nil
}

// isBase58Insensitive reports whether c matches at least one base58
// character under case folding. The alphabet excludes 0, O, I and l, but
// matching is case-insensitive, so a requested "l" can still match "L"
// on-chain while "0" never matches anything.
func isBase58Insensitive(c rune) bool {
	for _, variant := range []string{strings.ToLower(string(c)), strings.ToUpper(string(c))} {
		if _, err := base58.Decode(variant); err == nil {
			return true
		}
	}
	return false
}

// Generate grinds keypairs until the address matches both affixes,
// case-insensitively. It returns the winning keypair with the attempt
// count, or ErrAddressGenerationTimeout when maxAttempts runs out first.
// Cancellation of ctx aborts between attempts.
func Generate(ctx context.Context, prefix, suffix string, maxAttempts uint64) (domain.MintKeypair, error) {
	if err := ValidateAffixes(prefix, suffix); err != nil {
		return domain.MintKeypair{}, err
	}
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxAttempts
	}

	wantPrefix := strings.ToLower(prefix)
	wantSuffix := strings.ToLower(suffix)

	for attempts := uint64(1); attempts <= maxAttempts; attempts++ {
		if attempts%4096 == 0 {
			select {
			case <-ctx.Done():
				return domain.MintKeypair{}, ctx.Err()
			default:
			}
		}

		key, err := solana.NewRandomPrivateKey()
		if err != nil {
			return domain.MintKeypair{}, fmt.Errorf("generate keypair: %w", err)
		}
		addr := strings.ToLower(key.PublicKey().String())
		if strings.HasPrefix(addr, wantPrefix) && strings.HasSuffix(addr, wantSuffix) {
			return domain.MintKeypair{PrivateKey: key, Attempts: attempts}, nil
		}
	}

	return domain.MintKeypair{}, fmt.Errorf("%w: no match for prefix %q suffix %q within %d attempts",
		domain.ErrAddressGenerationTimeout, prefix, suffix, maxAttempts)
}
