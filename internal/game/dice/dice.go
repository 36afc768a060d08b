// Package dice evaluates dice formulas such as "d20", "2d6+3" and "4d6kh3"
// for the combat tracker. It owns the grammar and the randomness; callers only
// see an Evaluator that turns a formula into a total.
package dice

import "fmt"

// RollResult holds the audit trail for a single evaluation of an Expression.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // formula as written, e.g. "2d6+3"
	Dice       []int  // kept die results, before the modifier
	Dropped    []int  // dice discarded by kh/kl
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of the kept dice plus the modifier.
//
// Postcondition: return value == sum(r.Dice) + r.Modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders the roll as "2d6+3 → [4 5] +3 = 12".
func (r RollResult) String() string {
	expr := r.Expression
	if expr == "" {
		expr = "?"
	}
	return fmt.Sprintf("%s → %v %+d = %d", expr, r.Dice, r.Modifier, r.Total())
}

// Source is the randomness provider for dice rolls.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
