package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/combat/internal/game/combat"
)

func TestCharacter_UnsetMaxIsNeverDead_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := combat.Character{
			Name: "Grog",
			HP:   combat.HitPoints{Current: rapid.IntRange(-100, 100).Draw(rt, "current")},
		}
		assert.False(rt, c.Dead())
		assert.Equal(rt, "", c.Status())
	})
}

func TestCharacter_DeadAtZero(t *testing.T) {
	c := combat.Character{Name: "Grog", HP: combat.HitPoints{Max: 30, Current: 0}}
	assert.True(t, c.Dead())
	assert.Equal(t, "DEAD", c.Status())
}

func TestCharacter_StatusShowsCurrent(t *testing.T) {
	c := combat.Character{Name: "Pike", HP: combat.HitPoints{Max: 30, Current: 12, Temp: 4}}
	assert.False(t, c.Dead())
	assert.Equal(t, "12 HP", c.Status())
}

func TestCharacter_RollInit(t *testing.T) {
	c := combat.Character{Name: "Vex", Init: *combat.NewRoll("17")}
	got, err := c.RollInit(nil)
	require.NoError(t, err)
	assert.Equal(t, 17, got)
}

func TestCharacterKind_Text(t *testing.T) {
	text, err := combat.KindNPC.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "NPC", string(text))

	var k combat.CharacterKind
	require.NoError(t, k.UnmarshalText([]byte("NPC")))
	assert.Equal(t, combat.KindNPC, k)
	require.NoError(t, k.UnmarshalText(nil))
	assert.Equal(t, combat.KindPC, k)
	assert.Error(t, k.UnmarshalText([]byte("Monster")))
}
