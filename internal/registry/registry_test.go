package registry

import (
	"fmt"
	"testing"

	"github.com/LordIdra/Netheopoiesis/internal/breeding"
	"github.com/LordIdra/Netheopoiesis/internal/plant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const spark breeding.ResultType = "spark"

// fixedPair распознаёт одну упорядоченную комбинацию и всегда отвечает outcome.
type fixedPair struct {
	first, second string
	outcome       breeding.ResultType
}

func (p *fixedPair) Classify(first, second string) breeding.ResultType {
	if first == p.first && second == p.second {
		return p.outcome
	}
	return breeding.NotPair
}

func newPlant(id string, pairs ...breeding.Pair) *plant.Definition {
	return &plant.Definition{
		ID:     id,
		Name:   id + " Seed",
		Stages: []string{"0", "1", "2", "3", "4", "5"},
		Pairs:  pairs,
	}
}

func mustBuild(t *testing.T, defs ...*plant.Definition) *Registry {
	t.Helper()
	b := NewBuilder()
	for _, d := range defs {
		require.NoError(t, b.AddPlant(d))
	}
	r, err := b.Build()
	require.NoError(t, err)
	return r
}

func TestBreedResult_Scenario(t *testing.T) {
	firePair := &fixedPair{first: "fire", second: "ash", outcome: spark}
	waterPair := &fixedPair{first: "water", second: "ash", outcome: breeding.Fail}
	r := mustBuild(t, newPlant("A", firePair), newPlant("B", waterPair))

	res := r.BreedResult("fire", "ash")
	assert.Equal(t, spark, res.Type)
	assert.Same(t, firePair, res.Pair)

	assert.Equal(t, breeding.Fail, r.BreedResult("water", "ash").Type)
	assert.Equal(t, breeding.NoPairs, r.BreedResult("dirt", "dirt").Type)
}

func TestBreedResult_FirstRegisteredPlantWins(t *testing.T) {
	first := &fixedPair{first: "a", second: "b", outcome: breeding.Breed}
	second := &fixedPair{first: "a", second: "b", outcome: spark}
	r := mustBuild(t, newPlant("P1", first), newPlant("P2", second))

	res := r.BreedResult("a", "b")
	assert.Same(t, first, res.Pair)
	assert.Equal(t, breeding.Breed, res.Type)
}

func TestBreedResult_EmptyRegistry(t *testing.T) {
	r := mustBuild(t, newPlant("lonely"))

	res := r.BreedResult("a", "b")
	assert.Equal(t, breeding.NoPairs, res.Type)
	assert.Nil(t, res.Pair)
}

func TestAddPlant_AppendsPairsInDeclaredOrder(t *testing.T) {
	p1 := &fixedPair{first: "1"}
	p2 := &fixedPair{first: "2"}
	p3 := &fixedPair{first: "3"}
	a := newPlant("A", p1, p2)
	b := newPlant("B", p3)

	r := mustBuild(t, a, b)

	require.Equal(t, []*plant.Definition{a, b}, r.Plants())
	pairs := r.Pairs()
	require.Len(t, pairs, 3)
	assert.Same(t, p1, pairs[0])
	assert.Same(t, p2, pairs[1])
	assert.Same(t, p3, pairs[2])
}

func TestAddPlant_NoDeduplication(t *testing.T) {
	p := &fixedPair{first: "x"}
	a := newPlant("A", p)

	r := mustBuild(t, a, a)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 2, r.PairCount())

	got, ok := r.Plant("A")
	require.True(t, ok)
	assert.Equal(t, a, got)
}

func TestAddPlant_Nil(t *testing.T) {
	assert.ErrorIs(t, NewBuilder().AddPlant(nil), ErrNilDefinition)
}

func TestBuilder_SealedAfterBuild(t *testing.T) {
	b := NewBuilder()
	_, err := b.Build()
	require.NoError(t, err)

	assert.ErrorIs(t, b.AddPlant(newPlant("late")), ErrBuilderSealed)
	_, err = b.Build()
	assert.ErrorIs(t, err, ErrBuilderSealed)
}

func TestReadAccessors_ReturnCopies(t *testing.T) {
	a := newPlant("A", &fixedPair{first: "x"})
	r := mustBuild(t, a)

	plants := r.Plants()
	plants[0] = nil
	pairs := r.Pairs()
	pairs[0] = nil

	assert.Equal(t, a, r.Plants()[0])
	assert.NotNil(t, r.Pairs()[0])
}

func TestReadAccessors_DoNotExposeInternals(t *testing.T) {
	rule := breeding.NewRule("a", "b", "c", 0, 0).WithRoller(func() float64 { return 0.5 })
	def := newPlant("A", rule)
	def.Placements = []string{"SOUL_SAND"}
	def.Capabilities = []plant.Capability{{Kind: plant.KindDropping, Drops: []string{"STRING"}}}
	r := mustBuild(t, def)
	require.Equal(t, breeding.Fail, r.BreedResult("a", "b").Type)

	// исходное описание после регистрации
	def.Name = "changed"
	def.Pairs[0] = breeding.PairFunc(func(string, string) breeding.ResultType { return breeding.Breed })

	// копии, полученные из реестра
	got := r.Plants()[0]
	got.Name = "hacked"
	got.Placements[0] = "DIRT"
	got.Capabilities[0].Drops[0] = "DIAMOND"
	got.Pairs = nil
	one, ok := r.Plant("A")
	require.True(t, ok)
	one.Stages[0] = "x"

	// правило нельзя изменить, только получить копию
	leaked := r.Pairs()[0].(*breeding.Rule)
	_ = leaked.WithRoller(func() float64 { return 0 })

	assert.Equal(t, breeding.Fail, r.BreedResult("a", "b").Type)
	fresh, ok := r.Plant("A")
	require.True(t, ok)
	assert.Equal(t, "A Seed", fresh.Name)
	assert.Equal(t, []string{"SOUL_SAND"}, fresh.Placements)
	assert.Equal(t, []string{"STRING"}, fresh.Capabilities[0].Drops)
	assert.Equal(t, "0", fresh.Stages[0])
	assert.Len(t, fresh.Pairs, 1)
}

func TestAddPlant_RejectsNilPairs(t *testing.T) {
	var typedNil *breeding.Rule

	b := NewBuilder()
	assert.ErrorIs(t, b.AddPlant(newPlant("A", typedNil)), ErrNilPair)
	assert.ErrorIs(t, b.AddPlant(newPlant("B", nil)), ErrNilPair)

	r, err := b.Build()
	require.NoError(t, err)
	assert.Zero(t, r.Len())
	assert.Equal(t, breeding.NoPairs, r.BreedResult("a", "b").Type)
}

func TestPlant_Lookup(t *testing.T) {
	r := mustBuild(t, newPlant("A"))

	_, ok := r.Plant("missing")
	assert.False(t, ok)
}

func TestAddPlant_OrderPreservingAppendProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := NewBuilder()
		var wantPlants []*plant.Definition
		var wantPairs []breeding.Pair

		n := rapid.IntRange(0, 8).Draw(t, "plants")
		for i := 0; i < n; i++ {
			k := rapid.IntRange(0, 4).Draw(t, "pairs")
			pairs := make([]breeding.Pair, 0, k)
			for j := 0; j < k; j++ {
				pairs = append(pairs, &fixedPair{first: fmt.Sprintf("%d-%d", i, j)})
			}
			def := newPlant(fmt.Sprintf("P%d", i), pairs...)

			if err := b.AddPlant(def); err != nil {
				t.Fatalf("add plant: %v", err)
			}
			wantPlants = append(wantPlants, def)
			wantPairs = append(wantPairs, pairs...)
		}

		r, err := b.Build()
		if err != nil {
			t.Fatalf("build: %v", err)
		}

		gotPlants := r.Plants()
		if len(gotPlants) != len(wantPlants) {
			t.Fatalf("plants: got %d want %d", len(gotPlants), len(wantPlants))
		}
		for i := range wantPlants {
			if gotPlants[i].ID != wantPlants[i].ID {
				t.Fatalf("plant %d out of order", i)
			}
		}

		gotPairs := r.Pairs()
		if len(gotPairs) != len(wantPairs) {
			t.Fatalf("pairs: got %d want %d", len(gotPairs), len(wantPairs))
		}
		for i := range wantPairs {
			if gotPairs[i] != wantPairs[i] {
				t.Fatalf("pair %d out of order", i)
			}
		}

		// Повторное чтение без регистрации даёт то же содержимое
		if !equalPlants(gotPlants, r.Plants()) || !equalPairs(gotPairs, r.Pairs()) {
			t.Fatalf("read accessors are not idempotent")
		}
	})
}

func equalPlants(a, b []*plant.Definition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || len(a[i].Pairs) != len(b[i].Pairs) {
			return false
		}
	}
	return true
}

func equalPairs(a, b []breeding.Pair) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
