package dice

import "sort"

// Roll evaluates an Expression using src. Every call draws fresh dice.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: expr.Min() <= result.Total() <= expr.Max().
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}

	result := RollResult{Expression: expr.Raw, Dice: rolled, Modifier: expr.Modifier}
	if keep := expr.kept(); keep < expr.Count {
		sorted := make([]int, len(rolled))
		copy(sorted, rolled)
		if expr.KeepHighest > 0 {
			sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
		} else {
			sort.Ints(sorted)
		}
		result.Dice = sorted[:keep]
		result.Dropped = sorted[keep:]
	}
	return result
}

// RollExpr parses expr and rolls it using src in a single call.
//
// Postcondition: Returns a RollResult or a parse error.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}
