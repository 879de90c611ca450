package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"tour-lab/internal/domain"
	"tour-lab/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapWorld(t *testing.T) *domain.World {
	t.Helper()

	locs := []domain.Location{
		{Name: "A", Coords: domain.Coordinates{Lat: 55.9486, Lon: -3.1999}},
		{Name: "B", Coords: domain.Coordinates{Lat: 55.9527, Lon: -3.1900}},
	}
	table, err := domain.NewDistanceTable(map[domain.Leg]float64{})
	require.NoError(t, err)
	w, err := domain.NewWorld(locs, table)
	require.NoError(t, err)
	return w
}

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestDrawMarksEachStop(t *testing.T) {
	world := mapWorld(t)
	r := &Renderer{Frame: geo.EdinburghFrame(), Scale: 1}

	var buf bytes.Buffer
	require.NoError(t, r.Draw(&buf, world, domain.Tour{"A", "Z", "B"}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 300, 300), img.Bounds())

	for _, name := range []string{"A", "B"} {
		loc, _ := world.Location(name)
		p := r.Pixel(loc.Coords)
		assert.Equal(t, MarkerFill, rgba(img.At(p.X, p.Y)), "marker fill at %s", name)
	}

	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgba(img.At(1, 1)))
}

func TestDrawScalesBackground(t *testing.T) {
	bg := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			bg.Set(x, y, color.RGBA{B: 200, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "map.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, bg))
	require.NoError(t, f.Close())

	loaded, err := LoadBackground(path)
	require.NoError(t, err)

	r := NewRenderer(geo.EdinburghFrame(), loaded)
	var buf bytes.Buffer
	require.NoError(t, r.Draw(&buf, mapWorld(t), domain.Tour{}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	got := rgba(img.At(300, 300))
	assert.InDelta(t, 200, int(got.B), 2)
	assert.InDelta(t, 0, int(got.R), 2)
}

func TestLoadBackgroundMissingFile(t *testing.T) {
	_, err := LoadBackground(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestDrawRejectsBadFrame(t *testing.T) {
	r := &Renderer{Frame: geo.Frame{Size: 300}}
	assert.Error(t, r.Draw(&bytes.Buffer{}, mapWorld(t), nil))
}
