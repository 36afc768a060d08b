package combat

import (
	"maps"
	"slices"

	"github.com/cory-johannsen/combat/internal/game/dice"
)

// InitiativeRoll pairs a rolled initiative value with the character's name.
type InitiativeRoll struct {
	Value int
	Name  string
}

// Roster is the name-keyed set of characters tracked for one session.
// It is not safe for concurrent use.
//
// Invariant: every key equals the Name of the character stored under it.
type Roster struct {
	chars map[string]*Character
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{chars: make(map[string]*Character)}
}

// NewRosterFrom builds a roster from decoded characters. The map key is
// authoritative: a character whose Name disagrees with its key is renamed, and
// nil entries are dropped.
func NewRosterFrom(chars map[string]*Character) *Roster {
	r := NewRoster()
	for name, c := range chars {
		if c == nil {
			continue
		}
		c.Name = name
		r.chars[name] = c
	}
	return r
}

// Join adds a character, or replaces an existing one with the same name.
// Replacing discards the previous hit points.
//
// Postcondition: Get(name) returns a character with init and unset HP.
func (r *Roster) Join(name string, init *Roll) *Character {
	return r.JoinAs(name, KindPC, init)
}

// JoinAs is Join with an explicit classification.
func (r *Roster) JoinAs(name string, kind CharacterKind, init *Roll) *Character {
	c := &Character{Name: name, Kind: kind, Init: *init}
	r.chars[name] = c
	return c
}

// Exists reports whether name is in the roster.
func (r *Roster) Exists(name string) bool {
	_, ok := r.chars[name]
	return ok
}

// Kill removes name from the roster and reports whether it was present.
// Removing an absent name is not an error.
func (r *Roster) Kill(name string) bool {
	if !r.Exists(name) {
		return false
	}
	delete(r.chars, name)
	return true
}

// Get returns the character stored under name. The returned pointer is live:
// mutating it mutates the roster.
//
// Postcondition: returns an error wrapping ErrCharacterNotFound when absent.
func (r *Roster) Get(name string) (*Character, error) {
	c, ok := r.chars[name]
	if !ok {
		return nil, notFound(name)
	}
	return c, nil
}

// RollInits resolves every character's initiative exactly once. The order of
// the result is unspecified; callers sort it.
func (r *Roster) RollInits(ev dice.Evaluator) ([]InitiativeRoll, error) {
	inits := make([]InitiativeRoll, 0, len(r.chars))
	for name, c := range r.chars {
		v, err := c.RollInit(ev)
		if err != nil {
			return nil, err
		}
		inits = append(inits, InitiativeRoll{Value: v, Name: name})
	}
	return inits, nil
}

// Wipe removes every dead character and returns the removed names, sorted.
//
// Postcondition: no remaining character is Dead(); living characters are untouched.
func (r *Roster) Wipe() []string {
	var removed []string
	for _, name := range r.Names() {
		if r.chars[name].Dead() {
			delete(r.chars, name)
			removed = append(removed, name)
		}
	}
	return removed
}

// Names returns every character name in ascending order.
func (r *Roster) Names() []string {
	return slices.Sorted(maps.Keys(r.chars))
}

// Len returns the number of characters.
func (r *Roster) Len() int {
	return len(r.chars)
}

// Characters returns a shallow copy of the name to character mapping.
func (r *Roster) Characters() map[string]*Character {
	return maps.Clone(r.chars)
}
