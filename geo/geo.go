// Package geo holds the coordinate value types carried by navigation sentences.
package geo

// Latitude in decimal degrees, north positive.
type Latitude float64

// Longitude in decimal degrees, east positive.
type Longitude float64

func (l Latitude) Valid() bool {
	return l >= -90 && l <= 90
}

func (l Latitude) IsSouth() bool {
	return l < 0
}

func (l Longitude) Valid() bool {
	return l >= -180 && l <= 180
}

func (l Longitude) IsWest() bool {
	return l < 0
}
