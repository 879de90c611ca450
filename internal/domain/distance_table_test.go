package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceTableLookup(t *testing.T) {
	table, err := NewDistanceTable(map[Leg]float64{
		{"A", "B"}: 2,
		{"B", "A"}: 7,
	})
	require.NoError(t, err)

	ab, err := table.Lookup("A", "B")
	require.NoError(t, err)
	ba, err := table.Lookup("B", "A")
	require.NoError(t, err)

	// Asymmetric entries are read as entered.
	assert.Equal(t, 2.0, ab)
	assert.Equal(t, 7.0, ba)

	_, err = table.Lookup("A", "C")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingDistance))
	assert.Equal(t, 2, table.Len())
}

func TestDistanceTableRejectsInvalidCosts(t *testing.T) {
	_, err := NewDistanceTable(map[Leg]float64{{"A", "B"}: -1})
	assert.ErrorContains(t, err, "negative cost")

	_, err = NewDistanceTable(map[Leg]float64{{"A", "B"}: math.NaN()})
	assert.ErrorContains(t, err, "non-finite")

	_, err = NewDistanceTable(map[Leg]float64{{"", "B"}: 1})
	assert.ErrorContains(t, err, "empty endpoint")
}

func TestDistanceTableEntriesIsACopy(t *testing.T) {
	src := map[Leg]float64{{"A", "B"}: 2}
	table, err := NewDistanceTable(src)
	require.NoError(t, err)

	src[Leg{"A", "B"}] = 100
	entries := table.Entries()
	entries[Leg{"A", "B"}] = 200

	d, err := table.Lookup("A", "B")
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)
}

func TestParseLegKey(t *testing.T) {
	leg, err := ParseLegKey("*:A")
	require.NoError(t, err)
	assert.Equal(t, Leg{From: "*", To: "A"}, leg)
	assert.Equal(t, "*:A", leg.Key())

	_, err = ParseLegKey("AB")
	assert.Error(t, err)

	_, err = ParseLegKey("A:")
	assert.Error(t, err)
}
