package dto

// LocationResponse carries the stored coordinates and their UTM projection.
type LocationResponse struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Easting  float64 `json:"utm_easting"`
	Northing float64 `json:"utm_northing"`
	Zone     int     `json:"utm_zone"`
}

type ListLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
}
