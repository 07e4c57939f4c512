package field

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/luma/marbus/geo"
)

// ParseLatitude parses the unsigned DDMM.MMMM form. The sign comes from the
// separate hemisphere field, see CorrectLatitude.
func ParseLatitude(tok string) (Optional[geo.Latitude], error) {
	if tok == "" {
		return None[geo.Latitude](), nil
	}

	deg, err := parseDegMin(tok, 2)
	if err != nil {
		return None[geo.Latitude](), err
	}

	lat := geo.Latitude(deg)
	if !lat.Valid() {
		return None[geo.Latitude](), fmt.Errorf("latitude %q: %w", tok, ErrOutOfRange)
	}

	return Some(lat), nil
}

func FormatLatitude(v Optional[geo.Latitude]) string {
	lat, ok := v.Get()
	if !ok {
		return ""
	}

	return formatDegMin(float64(lat), 2)
}

// ParseLongitude parses the unsigned DDDMM.MMMM form.
func ParseLongitude(tok string) (Optional[geo.Longitude], error) {
	if tok == "" {
		return None[geo.Longitude](), nil
	}

	deg, err := parseDegMin(tok, 3)
	if err != nil {
		return None[geo.Longitude](), err
	}

	lon := geo.Longitude(deg)
	if !lon.Valid() {
		return None[geo.Longitude](), fmt.Errorf("longitude %q: %w", tok, ErrOutOfRange)
	}

	return Some(lon), nil
}

func FormatLongitude(v Optional[geo.Longitude]) string {
	lon, ok := v.Get()
	if !ok {
		return ""
	}

	return formatDegMin(float64(lon), 3)
}

// CorrectLatitude applies the sign of a N/S hemisphere to an unsigned latitude.
func CorrectLatitude(v Optional[geo.Latitude], h Optional[Hemisphere]) Optional[geo.Latitude] {
	lat, ok := v.Get()
	if !ok {
		return v
	}

	if h.Value() == South {
		return Some(-geo.Latitude(math.Abs(float64(lat))))
	}

	return v
}

// CorrectLongitude applies the sign of an E/W hemisphere to an unsigned longitude.
func CorrectLongitude(v Optional[geo.Longitude], h Optional[Hemisphere]) Optional[geo.Longitude] {
	lon, ok := v.Get()
	if !ok {
		return v
	}

	if h.Value() == West {
		return Some(-geo.Longitude(math.Abs(float64(lon))))
	}

	return v
}

func LatitudeHemisphere(v Optional[geo.Latitude]) Optional[Hemisphere] {
	lat, ok := v.Get()
	if !ok {
		return None[Hemisphere]()
	}

	if lat.IsSouth() {
		return Some(South)
	}

	return Some(North)
}

func LongitudeHemisphere(v Optional[geo.Longitude]) Optional[Hemisphere] {
	lon, ok := v.Get()
	if !ok {
		return None[Hemisphere]()
	}

	if lon.IsWest() {
		return Some(West)
	}

	return Some(East)
}

func parseDegMin(tok string, degDigits int) (float64, error) {
	whole, _, _ := strings.Cut(tok, ".")
	if len(whole) != degDigits+2 || !isDecimal(tok) || !isDigits(whole) {
		return 0, fmt.Errorf("%q is not a coordinate: %w", tok, ErrMalformed)
	}

	deg, _ := strconv.Atoi(tok[:degDigits])
	mins, err := strconv.ParseFloat(tok[degDigits:], 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a coordinate: %w", tok, ErrMalformed)
	}

	if mins >= 60 {
		return 0, fmt.Errorf("minutes of %q: %w", tok, ErrOutOfRange)
	}

	return float64(deg) + mins/60, nil
}

func formatDegMin(v float64, degDigits int) string {
	v = math.Abs(v)
	deg := math.Floor(v)
	mins := math.Round((v-deg)*60*10000) / 10000
	if mins >= 60 {
		deg++
		mins = 0
	}

	return fmt.Sprintf("%0*d%07.4f", degDigits, int(deg), mins)
}
