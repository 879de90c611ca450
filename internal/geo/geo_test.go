package geo

import (
	"testing"
	"tour-lab/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromLatLonKnownPoint(t *testing.T) {
	u := FromLatLon(51.2, 7.5)

	assert.Equal(t, 32, u.Zone)
	assert.InDelta(t, 395201.31, u.Easting, 0.01)
	assert.InDelta(t, 5673135.24, u.Northing, 0.01)
}

func TestZoneNumber(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     int
	}{
		{"edinburgh", 55.95, -3.19, 30},
		{"greenwich", 51.48, 0.0, 31},
		{"norway exception", 60.0, 5.0, 32},
		{"svalbard exception", 78.0, 15.0, 33},
		{"antimeridian", 0, 180, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ZoneNumber(tc.lat, tc.lon))
		})
	}
}

func TestFrameCorners(t *testing.T) {
	f := EdinburghFrame()
	require.NoError(t, f.Validate())

	ll := f.Project(f.LowerLeft)
	assert.InDelta(t, 0, ll.X, 1e-9)
	assert.InDelta(t, 0, ll.Y, 1e-9)

	ur := f.Project(f.UpperRight)
	assert.InDelta(t, DefaultSize, ur.X, 1e-9)
	assert.InDelta(t, DefaultSize, ur.Y, 1e-9)
}

func TestFrameDistance(t *testing.T) {
	f := EdinburghFrame()
	a := domain.Coordinates{Lat: 55.948526, Lon: -3.198427}
	b := domain.Coordinates{Lat: 55.952996, Lon: -3.189636}

	d := f.Distance(a, b)
	assert.Greater(t, d, 0.0)
	assert.InDelta(t, d, f.Distance(b, a), 1e-9)
	assert.Zero(t, f.Distance(a, a))

	// The diagonal of the frame.
	assert.InDelta(t, 300*1.4142135623730951, f.Distance(f.LowerLeft, f.UpperRight), 1e-6)
}

func TestFrameValidate(t *testing.T) {
	f := EdinburghFrame()
	f.Size = 0
	assert.Error(t, f.Validate())

	f = EdinburghFrame()
	f.LowerLeft, f.UpperRight = f.UpperRight, f.LowerLeft
	assert.Error(t, f.Validate())
}

func TestTourLength(t *testing.T) {
	f := EdinburghFrame()
	a := domain.Coordinates{Lat: 55.9486, Lon: -3.1999}
	b := domain.Coordinates{Lat: 55.9527, Lon: -3.1900}

	table, err := domain.NewDistanceTable(map[domain.Leg]float64{})
	require.NoError(t, err)
	w, err := domain.NewWorld([]domain.Location{{Name: "A", Coords: a}, {Name: "B", Coords: b}}, table)
	require.NoError(t, err)

	got, err := f.TourLength(EdinburghStart, w, domain.Tour{"A", "B"})
	require.NoError(t, err)
	want := f.Distance(EdinburghStart, a) + f.Distance(a, b) + f.Distance(b, EdinburghStart)
	assert.InDelta(t, want, got, 1e-9)

	// Direction does not matter for straight lines.
	rev, err := f.TourLength(EdinburghStart, w, domain.Tour{"B", "A"})
	require.NoError(t, err)
	assert.InDelta(t, got, rev, 1e-9)

	_, err = f.TourLength(EdinburghStart, w, domain.Tour{"Z"})
	assert.Error(t, err)
}
