package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"strconv"
	"tour-lab/internal/domain"
	"tour-lab/internal/geo"

	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	MarkerFill  = color.RGBA{R: 0, G: 160, B: 0, A: 255}
	MarkerEdge  = color.RGBA{R: 220, G: 0, B: 0, A: 255}
	LabelColour = color.RGBA{A: 255}
)

const markerRadius = 5

// Renderer draws a tour's stops onto a map of its Frame. The output image
// is Frame.Size*Scale pixels square.
type Renderer struct {
	Frame      geo.Frame
	Scale      int
	Background image.Image
}

func NewRenderer(frame geo.Frame, background image.Image) *Renderer {
	return &Renderer{Frame: frame, Scale: 2, Background: background}
}

// LoadBackground decodes a PNG or JPEG map image.
func LoadBackground(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load background: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load background %q: %w", path, err)
	}

	return img, nil
}

// Draw writes a PNG with one numbered marker per stop, labelled "Name:i"
// in visiting order. Stops the world does not know are skipped and do not
// consume a number.
func (r *Renderer) Draw(w io.Writer, world *domain.World, tour domain.Tour) error {
	if err := r.Frame.Validate(); err != nil {
		return fmt.Errorf("draw map: %w", err)
	}
	if world == nil {
		return errors.New("draw map: world is nil")
	}

	scale := r.scale()
	side := int(math.Round(r.Frame.Size)) * scale

	canvas := image.NewRGBA(image.Rect(0, 0, side, side))
	if r.Background != nil {
		bg := resize.Resize(uint(side), uint(side), r.Background, resize.Lanczos3)
		draw.Draw(canvas, canvas.Bounds(), bg, bg.Bounds().Min, draw.Src)
	} else {
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	}

	count := 1
	for _, name := range tour {
		loc, ok := world.Location(name)
		if !ok {
			continue
		}

		p := r.Pixel(loc.Coords)
		drawMarker(canvas, p.X, p.Y, markerRadius*scale)
		drawLabel(canvas, p.X+markerRadius*scale+2, p.Y+markerRadius*scale, loc.Name+":"+strconv.Itoa(count))
		count++
	}

	if err := png.Encode(w, canvas); err != nil {
		return fmt.Errorf("draw map: encode png: %w", err)
	}

	return nil
}

// Pixel returns the image position of c, with the origin at the top left.
func (r *Renderer) Pixel(c domain.Coordinates) image.Point {
	scale := float64(r.scale())
	p := r.Frame.Project(c)
	side := math.Round(r.Frame.Size) * scale
	return image.Pt(int(math.Round(p.X*scale)), int(math.Round(side-p.Y*scale)))
}

func (r *Renderer) scale() int {
	if r.Scale <= 0 {
		return 1
	}
	return r.Scale
}

func drawMarker(img *image.RGBA, cx, cy, radius int) {
	edge := radius / 3
	if edge < 1 {
		edge = 1
	}
	outer := radius * radius
	inner := (radius - edge) * (radius - edge)

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d := dx*dx + dy*dy
			switch {
			case d <= inner:
				img.SetRGBA(cx+dx, cy+dy, MarkerFill)
			case d <= outer:
				img.SetRGBA(cx+dx, cy+dy, MarkerEdge)
			}
		}
	}
}

func drawLabel(img *image.RGBA, x, y int, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(LabelColour),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
