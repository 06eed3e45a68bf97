package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// NewCoordinates rejects NaN and infinite components.
func NewCoordinates(lon, lat float64) (Coordinates, error) {
	if math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return Coordinates{}, fmt.Errorf("new coordinates: non-finite value lon=%v lat=%v", lon, lat)
	}
	return Coordinates{Lon: lon, Lat: lat}, nil
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }
