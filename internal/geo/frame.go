package geo

import (
	"errors"
	"fmt"
	"math"
	"tour-lab/internal/domain"
)

// DefaultSize is the side of the square plotting area.
const DefaultSize = 300

// Point is a position inside a Frame, with Y growing northwards.
type Point struct {
	X float64
	Y float64
}

// Frame maps a lat/lon bounding box onto a Size x Size square using the
// UTM coordinates of its two corners. Every point is projected in the lower
// left corner's zone.
type Frame struct {
	LowerLeft  domain.Coordinates
	UpperRight domain.Coordinates
	Size       float64
}

// EdinburghFrame covers the central Edinburgh map used by the sample data.
func EdinburghFrame() Frame {
	return Frame{
		LowerLeft:  domain.Coordinates{Lat: 55.944933, Lon: -3.211108},
		UpperRight: domain.Coordinates{Lat: 55.958019, Lon: -3.183407},
		Size:       DefaultSize,
	}
}

func (f Frame) Validate() error {
	if f.Size <= 0 {
		return errors.New("frame: size must be positive")
	}
	if f.LowerLeft.Lat >= f.UpperRight.Lat || f.LowerLeft.Lon >= f.UpperRight.Lon {
		return errors.New("frame: lower left corner must be south-west of upper right")
	}
	return nil
}

// Project maps c into frame units. Points outside the box fall outside
// [0, Size].
func (f Frame) Project(c domain.Coordinates) Point {
	zone := ZoneNumber(f.LowerLeft.Lat, f.LowerLeft.Lon)
	ll := FromLatLonZone(f.LowerLeft.Lat, f.LowerLeft.Lon, zone)
	ur := FromLatLonZone(f.UpperRight.Lat, f.UpperRight.Lon, zone)
	p := FromLatLonZone(c.Lat, c.Lon, zone)

	dx := ur.Easting - ll.Easting
	dy := ur.Northing - ll.Northing

	return Point{
		X: (p.Easting - ll.Easting) / dx * f.Size,
		Y: (p.Northing - ll.Northing) / dy * f.Size,
	}
}

// Distance is the straight-line distance between a and b in frame units.
func (f Frame) Distance(a, b domain.Coordinates) float64 {
	pa, pb := f.Project(a), f.Project(b)
	return math.Hypot(pb.X-pa.X, pb.Y-pa.Y)
}

// EdinburghStart is the depot position of the Edinburgh data set.
var EdinburghStart = domain.Coordinates{Lat: 55.948526, Lon: -3.198427}

// TourLength is the straight-line length, in frame units, of the closed
// route start -> tour... -> start.
func (f Frame) TourLength(start domain.Coordinates, world *domain.World, tour domain.Tour) (float64, error) {
	if world == nil {
		return 0, errors.New("tour length: world is nil")
	}

	total := 0.0
	prev := start
	for _, name := range tour {
		loc, ok := world.Location(name)
		if !ok {
			return 0, fmt.Errorf("tour length: unknown location %q", name)
		}
		total += f.Distance(prev, loc.Coords)
		prev = loc.Coords
	}
	total += f.Distance(prev, start)

	return total, nil
}
