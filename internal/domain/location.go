package domain

// Depot is the sentinel identifier for the fixed start/end point of every tour.
// It is never a member of the LocationSet.
const Depot = "*"

// Represents a single visitable location.
// Coordinates are only consumed by projection and rendering; cost logic
// reads the DistanceTable exclusively.
type Location struct {
	Name   string
	Coords Coordinates
}
