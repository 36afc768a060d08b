// Package combat holds the tracker's rules: dice rolls with advantage and
// disadvantage, the hit point state machine, characters and the roster.
// Nothing in this package prints; callers format the results.
package combat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/combat/internal/game/dice"
)

// Kind is the modifier state of a Roll.
type Kind int

const (
	KindNormal Kind = iota
	KindAdvantage
	KindDisadvantage
	// KindCancelled means advantage and disadvantage were both requested.
	// It resolves like KindNormal.
	KindCancelled
)

// String returns the persisted name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "Normal"
	case KindAdvantage:
		return "Advantage"
	case KindDisadvantage:
		return "Disadvantage"
	case KindCancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < KindNormal || k > KindCancelled {
		return nil, fmt.Errorf("combat: unknown roll kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text is KindNormal.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "Normal":
		*k = KindNormal
	case "Advantage":
		*k = KindAdvantage
	case "Disadvantage":
		*k = KindDisadvantage
	case "Cancelled":
		*k = KindCancelled
	default:
		return fmt.Errorf("combat: unknown roll kind %q", text)
	}
	return nil
}

// Combine returns the state reached by applying modifier next to k.
//
// Postcondition: the result does not depend on the order advantage and
// disadvantage were applied in.
func (k Kind) Combine(next Kind) Kind {
	switch {
	case next == KindNormal, next == k, k == KindCancelled:
		return k
	case k == KindNormal:
		return next
	default:
		return KindCancelled
	}
}

// Roll is a formula plus its advantage state. The formula is either a dice
// expression or a plain integer.
type Roll struct {
	Formula string `json:"formula" yaml:"formula"`
	Kind    Kind   `json:"kind" yaml:"kind"`
}

// NewRoll returns a normal roll of formula. The formula is not validated until Resolve.
func NewRoll(formula string) *Roll {
	return &Roll{Formula: formula, Kind: KindNormal}
}

// With applies a modifier and returns r for chaining.
func (r *Roll) With(k Kind) *Roll {
	r.Kind = r.Kind.Combine(k)
	return r
}

// IsConstant reports whether the formula has no dice marker and resolves
// without the evaluator.
func (r *Roll) IsConstant() bool {
	return !strings.ContainsAny(r.Formula, "dD")
}

// Resolve evaluates the roll. Constant formulas are parsed directly; dice
// formulas are evaluated once, or twice independently for advantage (max) and
// disadvantage (min).
//
// Precondition: ev must be non-nil when the formula contains dice.
// Postcondition: returns a *FormatError when the formula is invalid.
func (r *Roll) Resolve(ev dice.Evaluator) (int, error) {
	if r.IsConstant() {
		n, err := strconv.Atoi(strings.TrimSpace(r.Formula))
		if err != nil {
			return 0, &FormatError{Formula: r.Formula, Err: err}
		}
		return n, nil
	}

	first, err := r.evaluate(ev)
	if err != nil {
		return 0, err
	}
	switch r.Kind {
	case KindAdvantage, KindDisadvantage:
		second, err := r.evaluate(ev)
		if err != nil {
			return 0, err
		}
		if r.Kind == KindAdvantage {
			return max(first, second), nil
		}
		return min(first, second), nil
	default:
		return first, nil
	}
}

func (r *Roll) evaluate(ev dice.Evaluator) (int, error) {
	total, err := ev.Evaluate(r.Formula)
	if err != nil {
		return 0, &FormatError{Formula: r.Formula, Err: err}
	}
	return total, nil
}

// Check resolves the roll and reports whether it meets threshold.
func (r *Roll) Check(ev dice.Evaluator, threshold int) (bool, error) {
	total, err := r.Resolve(ev)
	if err != nil {
		return false, err
	}
	return total >= threshold, nil
}

// String renders the roll for logs, e.g. "d20+2 (Advantage)".
func (r *Roll) String() string {
	if r.Kind == KindNormal {
		return r.Formula
	}
	return fmt.Sprintf("%s (%s)", r.Formula, r.Kind)
}
