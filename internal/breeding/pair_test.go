package breeding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixedRoll(v float64) Roller {
	return func() float64 { return v }
}

func TestRule_MatchesEitherOrder(t *testing.T) {
	r := NewRule("NPS_SPINDLE", "NPS_BEADED", "NPS_SPIRAL", 0.1, 0.2)

	assert.True(t, r.Matches("NPS_SPINDLE", "NPS_BEADED"))
	assert.True(t, r.Matches("NPS_BEADED", "NPS_SPINDLE"))
	assert.False(t, r.Matches("NPS_SPINDLE", "NPS_SPINDLE"))
	assert.Equal(t, NotPair, r.Classify("NPS_SPINDLE", "NPS_GRAINY"))
}

func TestRule_Wildcard(t *testing.T) {
	r := NewRule("NPS_SPINDLE", Wildcard, "NPS_SPIRAL", 1, 0)

	assert.True(t, r.Matches("NPS_SPINDLE", "anything"))
	assert.True(t, r.Matches("anything", "NPS_SPINDLE"))
	assert.False(t, r.Matches("foo", "bar"))
}

func TestRule_ClassifyBands(t *testing.T) {
	cases := []struct {
		name string
		roll float64
		want ResultType
	}{
		{"breed band", 0.05, Breed},
		{"spread band lower edge", 0.1, Spread},
		{"spread band", 0.25, Spread},
		{"fail band", 0.35, Fail},
		{"fail high", 0.99, Fail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRule("a", "b", "c", 0.1, 0.2)
			r = r.WithRoller(fixedRoll(tc.roll))
			assert.Equal(t, tc.want, r.Classify("a", "b"))
		})
	}
}

func TestRule_ZeroChancesAlwaysFail(t *testing.T) {
	r := NewRule("a", "b", "c", 0, 0)
	r = r.WithRoller(fixedRoll(0))
	assert.Equal(t, Fail, r.Classify("b", "a"))
}

func TestResultType_IsSuccess(t *testing.T) {
	assert.False(t, NotPair.IsSuccess())
	assert.False(t, Fail.IsSuccess())
	assert.False(t, NoPairs.IsSuccess())
	assert.False(t, ResultType("").IsSuccess())
	assert.True(t, Breed.IsSuccess())
	assert.True(t, Spread.IsSuccess())
	assert.True(t, ResultType("spark").IsSuccess())
}

func TestPairFunc(t *testing.T) {
	var p Pair = PairFunc(func(first, second string) ResultType {
		if first == "x" {
			return Breed
		}
		return NotPair
	})

	assert.Equal(t, Breed, p.Classify("x", "y"))
	assert.Equal(t, NotPair, p.Classify("y", "x"))
	assert.Equal(t, "a + b -> c", NewRule("a", "b", "c", 0, 0).String())
}

func TestRule_NilReceiverIsNotPair(t *testing.T) {
	var r *Rule
	assert.False(t, r.Matches("a", "b"))
	assert.Equal(t, NotPair, r.Classify("a", "b"))
	assert.Nil(t, r.WithRoller(fixedRoll(0)))

	// nil правило в общем списке пропускается как нераспознавшее
	res := Resolve([]Pair{r}, "a", "b")
	assert.Equal(t, NoPairs, res.Type)
}

func TestRule_WithRollerCopies(t *testing.T) {
	base := NewRule("a", "b", "c", 0.5, 0).WithRoller(fixedRoll(0.9))
	rigged := base.WithRoller(fixedRoll(0))

	assert.Equal(t, Breed, rigged.Classify("a", "b"))
	assert.Equal(t, Fail, base.Classify("a", "b"))
	assert.Equal(t, "a", rigged.Mother())
	assert.Equal(t, "b", rigged.Father())
	assert.Equal(t, "c", rigged.Child())
	assert.Equal(t, 0.5, rigged.BreedChance())
	assert.Zero(t, rigged.SpreadChance())
}

func TestIsNil(t *testing.T) {
	var typedRule *Rule
	var fn PairFunc

	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(typedRule))
	assert.True(t, IsNil(fn))
	assert.False(t, IsNil(NewRule("a", "b", "c", 0, 0)))
	assert.False(t, IsNil(PairFunc(func(string, string) ResultType { return NotPair })))
}
