// Package tracker implements the commands the CLI offers on top of the
// roster: rolling, initiative order, joining, removing, damage and healing.
// Every method returns structured results; formatting is left to the caller.
package tracker

import (
	"cmp"
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/combat/internal/game/combat"
	"github.com/cory-johannsen/combat/internal/game/dice"
)

// LairActions is the name of the placeholder initiative entry for lair actions.
const LairActions = "LAIR ACTIONS"

// Options holds tracker defaults.
type Options struct {
	// DefaultInit is the initiative formula for Join when none is given.
	DefaultInit string
	// LairInitiative is the value the lair actions entry is listed at.
	LairInitiative int
}

// Tracker runs commands against one roster.
//
// Precondition: All fields must be non-nil after construction.
type Tracker struct {
	roster *combat.Roster
	dice   dice.Evaluator
	opts   Options
	logger *zap.Logger
}

// New creates a Tracker operating on roster.
//
// Precondition: roster, ev and logger must be non-nil.
// Postcondition: Returns a non-nil Tracker.
func New(roster *combat.Roster, ev dice.Evaluator, opts Options, logger *zap.Logger) *Tracker {
	if opts.DefaultInit == "" {
		opts.DefaultInit = "d20"
	}
	return &Tracker{roster: roster, dice: ev, opts: opts, logger: logger}
}

// Roster returns the roster the tracker mutates.
func (t *Tracker) Roster() *combat.Roster { return t.roster }

// RollResult is the outcome of an ad-hoc roll.
type RollResult struct {
	Formula string
	Kind    combat.Kind
	Total   int
	// Checked is true when a difficulty was supplied; Success is then total >= DC.
	Checked bool
	DC      int
	Success bool
}

// Roll resolves formula with the given modifiers.
func (t *Tracker) Roll(formula string, adv, dis bool) (RollResult, error) {
	r := withModifiers(combat.NewRoll(formula), adv, dis)
	total, err := r.Resolve(t.dice)
	if err != nil {
		return RollResult{}, err
	}
	return RollResult{Formula: formula, Kind: r.Kind, Total: total}, nil
}

// Check resolves formula and compares the total against dc.
func (t *Tracker) Check(formula string, adv, dis bool, dc int) (RollResult, error) {
	res, err := t.Roll(formula, adv, dis)
	if err != nil {
		return RollResult{}, err
	}
	res.Checked = true
	res.DC = dc
	res.Success = res.Total >= dc
	return res, nil
}

// InitiativeEntry is one line of the initiative order.
type InitiativeEntry struct {
	Value  int
	Name   string
	Status string
	// Lair marks the lair actions placeholder, which is not a character.
	Lair bool
}

// Initiative rolls every character's initiative and returns the order,
// highest first, ties broken by name. With lair set, a lair actions entry is
// added at the configured value. An empty roster yields no entries.
func (t *Tracker) Initiative(lair bool) ([]InitiativeEntry, error) {
	inits, err := t.roster.RollInits(t.dice)
	if err != nil {
		return nil, err
	}
	if len(inits) == 0 {
		return nil, nil
	}

	entries := make([]InitiativeEntry, 0, len(inits)+1)
	for _, in := range inits {
		c, err := t.roster.Get(in.Name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, InitiativeEntry{Value: in.Value, Name: in.Name, Status: c.Status()})
	}
	if lair {
		entries = append(entries, InitiativeEntry{Value: t.opts.LairInitiative, Name: LairActions, Lair: true})
	}
	slices.SortFunc(entries, func(a, b InitiativeEntry) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	t.logger.Debug("rolled initiative", zap.Int("entries", len(entries)), zap.Bool("lair", lair))
	return entries, nil
}

// JoinRequest describes a character to add or update.
type JoinRequest struct {
	Name string
	// Init is the initiative formula; empty uses Options.DefaultInit.
	Init string
	Adv  bool
	Dis  bool
	// HP is the max HP formula; empty leaves HP unset.
	HP  string
	NPC bool
}

// JoinResult reports what Join did.
type JoinResult struct {
	Character *combat.Character
	// Updated is true when an existing character was replaced.
	Updated bool
}

// Join adds or replaces a character. Max HP is resolved before the roster is
// touched, so an invalid HP formula leaves the roster unchanged.
func (t *Tracker) Join(req JoinRequest) (JoinResult, error) {
	formula := req.Init
	if formula == "" {
		formula = t.opts.DefaultInit
	}
	init := withModifiers(combat.NewRoll(formula), req.Adv, req.Dis)

	var hp combat.HitPoints
	if req.HP != "" {
		if err := hp.SetMax(req.HP, t.dice); err != nil {
			return JoinResult{}, err
		}
	}

	kind := combat.KindPC
	if req.NPC {
		kind = combat.KindNPC
	}
	updated := t.roster.Exists(req.Name)
	c := t.roster.JoinAs(req.Name, kind, init)
	c.HP = hp

	t.logger.Debug("joined roster",
		zap.String("name", req.Name),
		zap.Stringer("init", init),
		zap.Stringer("hp", hp),
		zap.Bool("updated", updated),
	)
	return JoinResult{Character: c, Updated: updated}, nil
}

// Kill removes a character and reports whether it was present.
func (t *Tracker) Kill(name string) bool {
	removed := t.roster.Kill(name)
	t.logger.Debug("kill", zap.String("name", name), zap.Bool("removed", removed))
	return removed
}

// HPResult reports a character's hit points after a change.
type HPResult struct {
	Name    string
	Amount  int
	Current int
	Temp    int
	Dead    bool
	Status  string
}

// Deal rolls formula and applies it as damage to name.
func (t *Tracker) Deal(name, formula string) (HPResult, error) {
	return t.applyHP(name, formula, "deal", (*combat.HitPoints).Deal)
}

// Heal rolls formula and heals name by the result.
func (t *Tracker) Heal(name, formula string) (HPResult, error) {
	return t.applyHP(name, formula, "heal", (*combat.HitPoints).Heal)
}

// Temp rolls formula and grants name that many temporary hit points.
func (t *Tracker) Temp(name, formula string) (HPResult, error) {
	return t.applyHP(name, formula, "temp", (*combat.HitPoints).AddTemp)
}

func (t *Tracker) applyHP(name, formula, op string, apply func(*combat.HitPoints, int)) (HPResult, error) {
	c, err := t.roster.Get(name)
	if err != nil {
		return HPResult{}, err
	}
	amount, err := combat.NewRoll(formula).Resolve(t.dice)
	if err != nil {
		return HPResult{}, err
	}
	apply(&c.HP, amount)

	t.logger.Debug("hit points changed",
		zap.String("op", op),
		zap.String("name", name),
		zap.Int("amount", amount),
		zap.Stringer("hp", c.HP),
	)
	return HPResult{
		Name:    name,
		Amount:  amount,
		Current: c.HP.Current,
		Temp:    c.HP.Temp,
		Dead:    c.Dead(),
		Status:  c.Status(),
	}, nil
}

// Wipe removes every dead character and returns their names, sorted.
func (t *Tracker) Wipe() []string {
	removed := t.roster.Wipe()
	t.logger.Debug("wiped dead characters", zap.Strings("removed", removed))
	return removed
}

// List returns every character ordered by name.
func (t *Tracker) List() []*combat.Character {
	names := t.roster.Names()
	out := make([]*combat.Character, 0, len(names))
	for _, name := range names {
		c, err := t.roster.Get(name)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

func withModifiers(r *combat.Roll, adv, dis bool) *combat.Roll {
	if adv {
		r.With(combat.KindAdvantage)
	}
	if dis {
		r.With(combat.KindDisadvantage)
	}
	return r
}
