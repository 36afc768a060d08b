package combat_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/combat/internal/game/combat"
	"github.com/cory-johannsen/combat/internal/game/dice"
	dicemock "github.com/cory-johannsen/combat/internal/game/dice/mock"
)

func seededRoller(seed uint64) *dice.Roller {
	return dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop())
}

func TestRoll_ConstantBypassesEvaluator_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(-10000, 10000).Draw(rt, "n")
		ctrl := gomock.NewController(rt)
		ev := dicemock.NewMockEvaluator(ctrl)

		kind := rapid.SampledFrom([]combat.Kind{
			combat.KindNormal, combat.KindAdvantage, combat.KindDisadvantage, combat.KindCancelled,
		}).Draw(rt, "kind")
		got, err := combat.NewRoll(strconv.Itoa(n)).With(kind).Resolve(ev)
		require.NoError(rt, err)
		assert.Equal(rt, n, got)
	})
}

func TestRoll_ConstantWithSpaces(t *testing.T) {
	got, err := combat.NewRoll(" 20 ").Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, 20, got)
}

func TestRoll_InvalidConstantIsFormatError(t *testing.T) {
	_, err := combat.NewRoll("twelve").Resolve(nil)
	var fe *combat.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "twelve", fe.Formula)
}

func TestRoll_InvalidDiceIsFormatError(t *testing.T) {
	_, err := combat.NewRoll("2d").Resolve(seededRoller(1))
	var fe *combat.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "2d", fe.Formula)
}

func TestRoll_EvaluatorErrorIsWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	ev := dicemock.NewMockEvaluator(ctrl)
	cause := errors.New("boom")
	ev.EXPECT().Evaluate("d20").Return(0, cause)

	_, err := combat.NewRoll("d20").Resolve(ev)
	assert.ErrorIs(t, err, cause)
}

func TestRoll_DrawCounts(t *testing.T) {
	cases := []struct {
		name  string
		kinds []combat.Kind
		draws []int
		want  int
	}{
		{"normal", nil, []int{7}, 7},
		{"advantage takes max", []combat.Kind{combat.KindAdvantage}, []int{4, 15}, 15},
		{"disadvantage takes min", []combat.Kind{combat.KindDisadvantage}, []int{4, 15}, 4},
		{"cancelled is single draw", []combat.Kind{combat.KindAdvantage, combat.KindDisadvantage}, []int{9}, 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ev := dicemock.NewMockEvaluator(ctrl)
			for _, d := range tc.draws {
				ev.EXPECT().Evaluate("d20").Return(d, nil)
			}

			r := combat.NewRoll("d20")
			for _, k := range tc.kinds {
				r.With(k)
			}
			got, err := r.Resolve(ev)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestKind_Transitions(t *testing.T) {
	adv := combat.NewRoll("d20").With(combat.KindAdvantage)
	assert.Equal(t, combat.KindAdvantage, adv.Kind)
	assert.Equal(t, combat.KindAdvantage, adv.With(combat.KindAdvantage).Kind, "same modifier twice is a no-op")
	assert.Equal(t, combat.KindCancelled, adv.With(combat.KindDisadvantage).Kind)
	assert.Equal(t, combat.KindCancelled, adv.With(combat.KindAdvantage).Kind, "cancelled is terminal")

	dis := combat.NewRoll("d20").With(combat.KindDisadvantage).With(combat.KindAdvantage)
	assert.Equal(t, combat.KindCancelled, dis.Kind)

	assert.Equal(t, combat.KindNormal, combat.NewRoll("d20").With(combat.KindNormal).Kind)
}

func TestKind_CombineOrderIndependent_Property(t *testing.T) {
	kinds := []combat.Kind{combat.KindNormal, combat.KindAdvantage, combat.KindDisadvantage}
	rapid.Check(t, func(rt *rapid.T) {
		seq := rapid.SliceOf(rapid.SampledFrom(kinds)).Draw(rt, "seq")
		forward, backward := combat.KindNormal, combat.KindNormal
		var sawAdv, sawDis bool
		for i := range seq {
			forward = forward.Combine(seq[i])
			backward = backward.Combine(seq[len(seq)-1-i])
			sawAdv = sawAdv || seq[i] == combat.KindAdvantage
			sawDis = sawDis || seq[i] == combat.KindDisadvantage
		}
		assert.Equal(rt, forward, backward)

		switch {
		case sawAdv && sawDis:
			assert.Equal(rt, combat.KindCancelled, forward)
		case sawAdv:
			assert.Equal(rt, combat.KindAdvantage, forward)
		case sawDis:
			assert.Equal(rt, combat.KindDisadvantage, forward)
		default:
			assert.Equal(rt, combat.KindNormal, forward)
		}
	})
}

func TestKind_TextRoundTrip(t *testing.T) {
	for _, k := range []combat.Kind{combat.KindNormal, combat.KindAdvantage, combat.KindDisadvantage, combat.KindCancelled} {
		text, err := k.MarshalText()
		require.NoError(t, err)
		var back combat.Kind
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, k, back)
	}

	var k combat.Kind
	assert.Error(t, k.UnmarshalText([]byte("Inspired")))
	_, err := combat.Kind(42).MarshalText()
	assert.Error(t, err)
}

func TestRoll_AdvantageWithinBounds_Property(t *testing.T) {
	expr := dice.MustParse("2d6+1")
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		kind := rapid.SampledFrom([]combat.Kind{combat.KindAdvantage, combat.KindDisadvantage}).Draw(rt, "kind")
		got, err := combat.NewRoll("2d6+1").With(kind).Resolve(seededRoller(seed))
		require.NoError(rt, err)
		assert.GreaterOrEqual(rt, got, expr.Min())
		assert.LessOrEqual(rt, got, expr.Max())
	})
}

func TestRoll_AdvantageShiftsMean(t *testing.T) {
	const samples = 4000
	ev := seededRoller(20261019)
	mean := func(k combat.Kind) float64 {
		sum := 0
		for i := 0; i < samples; i++ {
			v, err := combat.NewRoll("d20").With(k).Resolve(ev)
			require.NoError(t, err)
			sum += v
		}
		return float64(sum) / samples
	}

	normal := mean(combat.KindNormal)
	adv := mean(combat.KindAdvantage)
	dis := mean(combat.KindDisadvantage)

	// Expected means: 10.5 normal, ~13.8 advantage, ~7.2 disadvantage.
	assert.Greater(t, adv, normal+2)
	assert.Less(t, dis, normal-2)
}

func TestRoll_Check(t *testing.T) {
	ok, err := combat.NewRoll("15").Check(nil, 15)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = combat.NewRoll("14").Check(nil, 15)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = combat.NewRoll("x").Check(nil, 1)
	assert.Error(t, err)
}

func TestRoll_String(t *testing.T) {
	assert.Equal(t, "d20", combat.NewRoll("d20").String())
	assert.Equal(t, "d20 (Advantage)", combat.NewRoll("d20").With(combat.KindAdvantage).String())
}
