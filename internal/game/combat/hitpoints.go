package combat

import (
	"fmt"

	"github.com/cory-johannsen/combat/internal/game/dice"
)

// HitPoints tracks maximum, current and temporary hit points.
// The zero value means max HP has not been set.
//
// Invariant: Temp >= 0. After Deal or Heal, 0 <= Current <= Max when Max > 0.
type HitPoints struct {
	Max     int `json:"max" yaml:"max"`
	Current int `json:"current" yaml:"current"`
	Temp    int `json:"temp" yaml:"temp"`
}

// NewHitPoints resolves formula once and starts at full health with no temp HP.
//
// Postcondition: Max == Current == total, Temp == 0; or a *FormatError.
func NewHitPoints(formula string, ev dice.Evaluator) (HitPoints, error) {
	total, err := NewRoll(formula).Resolve(ev)
	if err != nil {
		return HitPoints{}, err
	}
	return HitPoints{Max: total, Current: total}, nil
}

// SetMax resolves formula as the new maximum and shifts Current by the change,
// so damage already taken is kept. Current is not clamped here; the next Deal
// or Heal brings it back into range.
func (hp *HitPoints) SetMax(formula string, ev dice.Evaluator) error {
	total, err := NewRoll(formula).Resolve(ev)
	if err != nil {
		return err
	}
	hp.Current += total - hp.Max
	hp.Max = total
	return nil
}

// IsSet reports whether a maximum has been assigned.
func (hp *HitPoints) IsSet() bool {
	return hp.Max > 0
}

// AddTemp grants temporary HP. Temp pools do not stack; the larger one is kept.
func (hp *HitPoints) AddTemp(amount int) {
	hp.Temp = max(hp.Temp, amount)
}

// Deal applies damage, consuming temporary HP before current HP.
// Negative amounts deal no damage.
//
// Postcondition: Temp >= 0 and Current >= 0.
func (hp *HitPoints) Deal(amount int) {
	amount = max(amount, 0)
	absorbed := min(hp.Temp, amount)
	hp.Temp -= absorbed
	hp.Current = max(hp.Current-(amount-absorbed), 0)
}

// Heal restores current HP up to Max. Temporary HP is not restored.
// Negative amounts heal nothing.
//
// Postcondition: 0 <= Current <= Max, or Current == 0 when Max is unset.
func (hp *HitPoints) Heal(amount int) {
	hp.Current = max(min(hp.Current+max(amount, 0), hp.Max), 0)
}

// String renders "current/max (+temp)" for logs.
func (hp HitPoints) String() string {
	if hp.Temp > 0 {
		return fmt.Sprintf("%d/%d (+%d)", hp.Current, hp.Max, hp.Temp)
	}
	return fmt.Sprintf("%d/%d", hp.Current, hp.Max)
}
