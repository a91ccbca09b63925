package billing

import (
	"github.com/shopspring/decimal"
)

// AllocateProportionally splits total across weights in proportion to each
// weight's share, rounded to the given precision, distributing leftover cents
// to the largest truncated remainders so the allocations always sum to total
// exactly. Zero or negative total weight attributes everything to no line
// (all-zero allocations plus the full total on the first line, when any).
func AllocateProportionally(total decimal.Decimal, weights []decimal.Decimal, precision int32) []decimal.Decimal {
	allocations := make([]decimal.Decimal, len(weights))
	if len(weights) == 0 {
		return allocations
	}

	weightSum := decimal.Zero
	for _, w := range weights {
		if w.IsPositive() {
			weightSum = weightSum.Add(w)
		}
	}
	if !weightSum.IsPositive() {
		for i := range allocations {
			allocations[i] = decimal.Zero
		}
		allocations[0] = total
		return allocations
	}

	// Work in integer minor units to make the conservation exact.
	step := decimal.New(1, -precision)
	remainders := make([]decimal.Decimal, len(weights))
	allocated := decimal.Zero

	for i, w := range weights {
		if !w.IsPositive() {
			allocations[i] = decimal.Zero
			remainders[i] = decimal.Zero
			continue
		}
		exact := total.Mul(w).Div(weightSum)
		floored := exact.RoundDown(precision)
		allocations[i] = floored
		remainders[i] = exact.Sub(floored)
		allocated = allocated.Add(floored)
	}

	// Hand out the residual one minor unit at a time, largest remainder
	// first; ties go to the earlier line for determinism.
	residual := total.Sub(allocated)
	for residual.GreaterThanOrEqual(step) {
		best := -1
		for i := range remainders {
			if !weights[i].IsPositive() {
				continue
			}
			if best == -1 || remainders[i].GreaterThan(remainders[best]) {
				best = i
			}
		}
		if best == -1 {
			break
		}
		allocations[best] = allocations[best].Add(step)
		remainders[best] = decimal.Zero
		residual = residual.Sub(step)
	}

	return allocations
}
