// Package distribution turns percentage-based recipient lists into exact
// base-unit allocations that always sum to the total supply.
package distribution

import (
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"solana-token-forge/internal/domain"
)

// PercentageEpsilon is the tolerated deviation of the percentage sum from
// 100 before entries are rescaled proportionally.
var PercentageEpsilon = decimal.RequireFromString("0.01")

var hundred = decimal.NewFromInt(100)

// Resolve converts percentage entries into base-unit amounts summing to
// exactly totalSupply. Entries with an unparseable recipient or a
// non-positive percentage are dropped before any arithmetic. Amounts are
// floored; the rounding remainder goes to the first entry.
func Resolve(totalSupply uint64, inputs []domain.DistributionInput) (domain.Distribution, error) {
	valid := make([]resolvedInput, 0, len(inputs))
	for _, in := range inputs {
		if !in.Percentage.IsPositive() {
			continue
		}
		recipient, err := domain.ParseWalletAddress(in.Recipient)
		if err != nil {
			continue
		}
		valid = append(valid, resolvedInput{recipient: recipient, percentage: in.Percentage})
	}

	if len(valid) == 0 {
		return domain.Distribution{}, domain.ErrEmptyDistribution
	}
	if len(valid) > domain.MaxDistributionEntries {
		return domain.Distribution{}, fmt.Errorf("%w: %d entries exceed the maximum of %d",
			domain.ErrValidation, len(valid), domain.MaxDistributionEntries)
	}

	sum := decimal.Zero
	for _, in := range valid {
		sum = sum.Add(in.percentage)
	}
	if sum.IsZero() {
		return domain.Distribution{}, domain.ErrDistributionPercentage
	}

	// Rescale when the sum drifts beyond the epsilon, so [60, 60] behaves
	// as [50, 50] instead of over-minting.
	if sum.Sub(hundred).Abs().GreaterThan(PercentageEpsilon) {
		scale := hundred.Div(sum)
		for i := range valid {
			valid[i].percentage = valid[i].percentage.Mul(scale)
		}
	}

	entries := make([]domain.DistributionEntry, len(valid))
	var allocated uint64
	for i, in := range valid {
		amount := floorShare(totalSupply, in.percentage)
		entries[i] = domain.DistributionEntry{Recipient: in.recipient, Amount: amount}
		allocated += amount
	}

	// Flooring can only under-allocate; the remainder is at most one base
	// unit per entry and goes to the first recipient.
	if allocated < totalSupply {
		entries[0].Amount += totalSupply - allocated
	}

	return domain.Distribution{Entries: entries, Total: totalSupply}, nil
}

type resolvedInput struct {
	recipient  solana.PublicKey
	percentage decimal.Decimal
}

// floorShare computes floor(total * pct / 100) exactly using rational
// arithmetic, avoiding any float rounding on large supplies.
func floorShare(total uint64, pct decimal.Decimal) uint64 {
	r := pct.Rat() // exact: decimals are scaled integers
	num := new(big.Int).Mul(new(big.Int).SetUint64(total), r.Num())
	den := new(big.Int).Mul(r.Denom(), big.NewInt(100))
	num.Quo(num, den)
	return num.Uint64()
}
