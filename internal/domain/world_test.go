package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abcDistances(t *testing.T) *DistanceTable {
	t.Helper()

	table, err := NewDistanceTable(map[Leg]float64{
		{"*", "A"}: 1, {"A", "*"}: 1,
		{"*", "B"}: 5, {"B", "*"}: 5,
		{"*", "C"}: 9, {"C", "*"}: 9,
		{"A", "B"}: 2, {"B", "A"}: 2,
		{"A", "C"}: 3, {"C", "A"}: 3,
		{"B", "C"}: 4, {"C", "B"}: 4,
	})
	require.NoError(t, err)
	return table
}

func TestNewWorld(t *testing.T) {
	locs := []Location{
		{Name: "A", Coords: Coordinates{Lat: 55.95, Lon: -3.19}},
		{Name: "B"},
		{Name: "C"},
	}

	w, err := NewWorld(locs, abcDistances(t))
	require.NoError(t, err)
	require.NoError(t, w.CheckComplete())

	assert.Equal(t, 3, w.Len())
	assert.Equal(t, []string{"A", "B", "C"}, w.Names())
	assert.True(t, w.Contains("B"))
	assert.False(t, w.Contains("*"))
	assert.False(t, w.Contains("Z"))

	a, ok := w.Location("A")
	require.True(t, ok)
	assert.Equal(t, 55.95, a.Coords.Lat)

	// Callers get copies.
	got := w.Locations()
	got[0].Name = "mutated"
	assert.Equal(t, "A", w.Names()[0])
}

func TestCheckCompleteRejectsIncompleteTable(t *testing.T) {
	table, err := NewDistanceTable(map[Leg]float64{
		{"*", "A"}: 1, {"A", "*"}: 1,
		{"*", "B"}: 5, {"B", "*"}: 5,
		{"A", "B"}: 2,
	})
	require.NoError(t, err)

	w, err := NewWorld([]Location{{Name: "A"}, {Name: "B"}}, table)
	require.NoError(t, err)

	err = w.CheckComplete()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingDistance))
	assert.Contains(t, err.Error(), `"B:A"`)
}

func TestNewWorldRejectsBadNames(t *testing.T) {
	table := abcDistances(t)

	_, err := NewWorld(nil, table)
	assert.Error(t, err)

	_, err = NewWorld([]Location{{Name: "A"}, {Name: "A"}}, table)
	assert.ErrorContains(t, err, "duplicate location")

	_, err = NewWorld([]Location{{Name: "*"}}, table)
	assert.ErrorContains(t, err, "reserved name")

	_, err = NewWorld([]Location{{Name: " "}}, table)
	assert.ErrorContains(t, err, "empty name")

	// Separators would make tour and leg keys ambiguous: "A,B" then "C"
	// and "A" then "B,C" both join to "A,B,C".
	for _, name := range []string{"A,B", "B:C"} {
		_, err = NewWorld([]Location{{Name: "A"}, {Name: name}}, table)
		assert.ErrorContains(t, err, "reserved characters", "name %q", name)
	}

	_, err = NewWorld([]Location{{Name: "A", Coords: Coordinates{Lat: 95, Lon: -3.2}}}, table)
	assert.ErrorContains(t, err, "out of range")
}

func TestWorldParseTour(t *testing.T) {
	w, err := NewWorld([]Location{{Name: "Castle"}, {Name: "Zoo"}, {Name: "A"}}, abcDistances(t))
	require.NoError(t, err)

	assert.Equal(t, Tour{"Castle"}, w.ParseTour(" Castle "))
	assert.Equal(t, Tour{"Castle", "Zoo"}, w.ParseTour("Castle,Zoo"))
	assert.Equal(t, Tour{"A"}, w.ParseTour("A"))
	assert.Equal(t, Tour{"Z", "o"}, w.ParseTour("Zo"))
}

func TestWorldFingerprint(t *testing.T) {
	locs := []Location{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	w1, err := NewWorld(locs, abcDistances(t))
	require.NoError(t, err)
	w2, err := NewWorld(locs, abcDistances(t))
	require.NoError(t, err)
	assert.Equal(t, w1.Fingerprint(), w2.Fingerprint())

	entries := abcDistances(t).Entries()
	entries[Leg{From: "A", To: "B"}] = 7
	changed, err := NewDistanceTable(entries)
	require.NoError(t, err)
	w3, err := NewWorld(locs, changed)
	require.NoError(t, err)
	assert.NotEqual(t, w1.Fingerprint(), w3.Fingerprint())

	moved := []Location{{Name: "A", Coords: Coordinates{Lat: 1}}, {Name: "B"}, {Name: "C"}}
	w4, err := NewWorld(moved, abcDistances(t))
	require.NoError(t, err)
	assert.NotEqual(t, w1.Fingerprint(), w4.Fingerprint())
}
