package session

import "fmt"

// PenaltyPolicy decides how much an incorrect judgement costs.
type PenaltyPolicy string

const (
	// PenaltyFromOriginal deducts 20% of the problem's full value on every
	// wrong attempt: 20, 16, 12, 8, 4, 0.
	PenaltyFromOriginal PenaltyPolicy = "from-original"

	// PenaltyCompounding deducts 20% of the current value: 20, 16, 13, 11.
	PenaltyCompounding PenaltyPolicy = "compounding"
)

// ParsePenaltyPolicy validates a policy name. Empty means from-original.
func ParsePenaltyPolicy(s string) (PenaltyPolicy, error) {
	switch PenaltyPolicy(s) {
	case "", PenaltyFromOriginal:
		return PenaltyFromOriginal, nil
	case PenaltyCompounding:
		return PenaltyCompounding, nil
	}
	return "", fmt.Errorf("unknown penalty policy %q", s)
}

// Penalty returns the deduction for one wrong attempt.
func (p PenaltyPolicy) Penalty(original, current int) int {
	base := original
	if p == PenaltyCompounding {
		base = current
	}
	return base * 20 / 100
}

// Apply returns the points left after one wrong attempt, never below zero.
func (p PenaltyPolicy) Apply(original, current int) (next, penalty int) {
	penalty = p.Penalty(original, current)
	return max(0, current-penalty), penalty
}

// HintCost is what a hint costs at score: 10% of it, at least 5.
func HintCost(score int) int {
	return max(5, score/10)
}
