package domain

import (
	"fmt"
	"math"
)

// Coordinates is a WGS84 position in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Validate rejects positions that cannot be projected.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("coordinates (%v, %v) out of range", c.Lat, c.Lon)
	}
	return nil
}
