// Package fees prices the platform service fee and estimates the full
// lamport cost of a creation transaction before it is assembled.
package fees

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"solana-token-forge/internal/domain"
	sol "solana-token-forge/internal/solana"
)

const (
	// LamportsPerSOL is the native conversion factor.
	LamportsPerSOL = 1_000_000_000

	// DefaultBaseFee and DefaultFeatureFee are 0.1 SOL each; every paid
	// feature adds one feature fee on top of the base.
	DefaultBaseFee    = LamportsPerSOL / 10
	DefaultFeatureFee = LamportsPerSOL / 10

	// TokenAccountRent is the fixed rent-exempt balance of an associated
	// token account. It is stable across clusters, so it is not fetched.
	TokenAccountRent = 2_039_280

	// NetworkFee covers the base signature fees of the transaction.
	NetworkFee = 10_000
)

// Calculator prices requests against a configured platform wallet.
type Calculator struct {
	platformWallet solana.PublicKey
	baseFee        uint64
	featureFee     uint64
}

// NewCalculator builds a Calculator; zero fee values fall back to the
// defaults.
func NewCalculator(platformWallet solana.PublicKey, baseFee, featureFee uint64) *Calculator {
	if baseFee == 0 {
		baseFee = DefaultBaseFee
	}
	if featureFee == 0 {
		featureFee = DefaultFeatureFee
	}
	return &Calculator{platformWallet: platformWallet, baseFee: baseFee, featureFee: featureFee}
}

// PlatformWallet returns the fee destination.
func (c *Calculator) PlatformWallet() solana.PublicKey { return c.platformWallet }

// billable lists the feature identifiers that carry a feature fee, in the
// order they appear in breakdowns. Priority fees and Token-2022
// extensions are not billed; the former is paid to validators and the
// latter only changes rent.
func billable(f domain.FeatureConfig) []string {
	var ids []string
	if f.UseCustomAddress {
		ids = append(ids, "customAddress")
	}
	if f.MultiWallet {
		ids = append(ids, "multiWallet")
	}
	if f.CustomCreator {
		ids = append(ids, "customCreator")
	}
	if f.RevokeFreeze {
		ids = append(ids, "revokeFreezeAuthority")
	}
	if f.RevokeMint {
		ids = append(ids, "revokeMintAuthority")
	}
	if f.RevokeUpdate {
		ids = append(ids, "revokeUpdateAuthority")
	}
	return ids
}

// PlatformFee returns the total service fee in lamports plus the
// per-feature breakdown. The base fee applies to every request.
func (c *Calculator) PlatformFee(f domain.FeatureConfig) (uint64, map[string]uint64) {
	features := make(map[string]uint64)
	total := c.baseFee
	for _, id := range billable(f) {
		features[id] = c.featureFee
		total += c.featureFee
	}
	return total, features
}

// Estimate prices the whole transaction: platform fee, rent for the mint
// account sized to its final state, rent for each token account that must
// be created, and the network fee. mintRentSize is the byte size rent must
// cover (allocation plus any post-allocation metadata growth).
func (c *Calculator) Estimate(ctx context.Context, rpc sol.RPCClient, f domain.FeatureConfig, mintRentSize uint64, newTokenAccounts int) (domain.FeeBreakdown, error) {
	platformFee, features := c.PlatformFee(f)

	mintRent, err := rpc.GetMinimumBalanceForRentExemption(ctx, mintRentSize)
	if err != nil {
		return domain.FeeBreakdown{}, fmt.Errorf("mint rent for %d bytes: %w", mintRentSize, err)
	}

	tokenAccountRent := uint64(newTokenAccounts) * TokenAccountRent

	return domain.FeeBreakdown{
		BaseFee:          c.baseFee,
		FeatureFees:      features,
		PlatformFee:      platformFee,
		MintRent:         mintRent,
		TokenAccountRent: tokenAccountRent,
		NetworkFee:       NetworkFee,
		TotalEstimated:   platformFee + mintRent + tokenAccountRent + NetworkFee,
	}, nil
}

// CheckFunds verifies the payer balance covers the estimated total.
func (c *Calculator) CheckFunds(ctx context.Context, rpc sol.RPCClient, payer solana.PublicKey, required uint64) error {
	balance, err := rpc.GetBalance(ctx, payer.String())
	if err != nil {
		return fmt.Errorf("payer balance: %w", err)
	}
	if balance < required {
		return fmt.Errorf("%w: balance %d lamports, need %d", domain.ErrInsufficientFunds, balance, required)
	}
	return nil
}
