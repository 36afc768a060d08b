package combat

import (
	"fmt"
	"strconv"

	"github.com/cory-johannsen/combat/internal/game/dice"
)

// CharacterKind classifies a character. It does not change any rule.
type CharacterKind int

const (
	KindPC CharacterKind = iota
	KindNPC
)

// String returns "PC" or "NPC".
func (k CharacterKind) String() string {
	switch k {
	case KindPC:
		return "PC"
	case KindNPC:
		return "NPC"
	default:
		return fmt.Sprintf("CharacterKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k CharacterKind) MarshalText() ([]byte, error) {
	if k != KindPC && k != KindNPC {
		return nil, fmt.Errorf("combat: unknown character kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text is KindPC.
func (k *CharacterKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "PC":
		*k = KindPC
	case "NPC":
		*k = KindNPC
	default:
		return fmt.Errorf("combat: unknown character kind %q", text)
	}
	return nil
}

// Character is one combatant: an initiative roll and hit points.
type Character struct {
	Name string        `json:"name" yaml:"name"`
	Kind CharacterKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Init Roll          `json:"init" yaml:"init"`
	HP   HitPoints     `json:"hp" yaml:"hp"`
}

// Dead reports whether the character has a max HP and is below 1 current HP.
// A character whose max HP was never set is never dead.
func (c *Character) Dead() bool {
	return c.HP.IsSet() && c.HP.Current < 1
}

// Status returns "DEAD", "<current> HP", or "" when max HP is unset.
func (c *Character) Status() string {
	switch {
	case c.Dead():
		return "DEAD"
	case c.HP.IsSet():
		return strconv.Itoa(c.HP.Current) + " HP"
	default:
		return ""
	}
}

// RollInit resolves the character's initiative roll.
func (c *Character) RollInit(ev dice.Evaluator) (int, error) {
	return c.Init.Resolve(ev)
}
