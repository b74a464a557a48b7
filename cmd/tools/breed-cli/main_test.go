package main

import (
	"bytes"
	"testing"

	"github.com/LordIdra/Netheopoiesis/internal/breeding"
	"github.com/LordIdra/Netheopoiesis/internal/catalog"
	"github.com/LordIdra/Netheopoiesis/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRegistry(t *testing.T, roll float64) *registry.Registry {
	t.Helper()
	cf, err := catalog.Default()
	require.NoError(t, err)
	reg, err := cf.Registry(func() float64 { return roll })
	require.NoError(t, err)
	return reg
}

func TestListPlantsAndPairs(t *testing.T) {
	reg := defaultRegistry(t, 0)

	var buf bytes.Buffer
	listPlants(&buf, reg)
	assert.Contains(t, buf.String(), "NPS_GRAINY")
	assert.Contains(t, buf.String(), "Grainy Seed")
	assert.Contains(t, buf.String(), "primary=harvestable")

	buf.Reset()
	listPairs(&buf, reg)
	assert.Contains(t, buf.String(), "  0. NPS_SPINDLE + NPS_BEADED -> NPS_GRAINY (breed 30%, spread 10%)")
}

func TestSimulate(t *testing.T) {
	reg := defaultRegistry(t, 0.99)

	var buf bytes.Buffer
	simulate(&buf, reg, "NPS_SPINDLE", "NPS_BEADED", 10)
	assert.Contains(t, buf.String(), "10 attempts")
	assert.Contains(t, buf.String(), "fail")
	assert.NotContains(t, buf.String(), "breed ")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "no pairs registered", describe(nil))
	assert.Equal(t, "breeding.PairFunc", describe(breeding.PairFunc(func(string, string) breeding.ResultType {
		return breeding.NotPair
	})))
}

func TestPrintBreed_PairOnlyOnSuccess(t *testing.T) {
	reg := defaultRegistry(t, 0)

	var buf bytes.Buffer
	printBreed(&buf, "NPS_SPINDLE", "NPS_BEADED", reg.BreedResult("NPS_SPINDLE", "NPS_BEADED"))
	assert.Equal(t, "NPS_SPINDLE + NPS_BEADED → breed (NPS_SPINDLE + NPS_BEADED -> NPS_GRAINY)\n", buf.String())

	buf.Reset()
	printBreed(&buf, "DIRT", "DIRT", reg.BreedResult("DIRT", "DIRT"))
	assert.Equal(t, "DIRT + DIRT → no_pairs\n", buf.String())

	buf.Reset()
	failing := defaultRegistry(t, 0.99)
	printBreed(&buf, "NPS_SPINDLE", "NPS_BEADED", failing.BreedResult("NPS_SPINDLE", "NPS_BEADED"))
	assert.Equal(t, "NPS_SPINDLE + NPS_BEADED → fail\n", buf.String())
}
