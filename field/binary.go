package field

import "encoding/binary"

// Uint16 reads the little-endian pair SeaTalk uses for most 16 bit payload values.
func Uint16(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

func PutUint16(b []byte, v uint16) {
	binary.LittleEndian.PutUint16(b, v)
}

// Nibbles splits a byte into its high and low four bits.
func Nibbles(b byte) (hi, lo byte) {
	return b >> 4, b & 0x0f
}

func JoinNibbles(hi, lo byte) byte {
	return hi<<4 | lo&0x0f
}

// Scaled converts an integer count of 1/div units, e.g. tenths of a knot.
func Scaled(raw uint32, div float64) float64 {
	return float64(raw) / div
}

// Unscaled is the inverse of Scaled, rounding to the nearest count.
func Unscaled(v float64, div float64) uint32 {
	if v <= 0 {
		return 0
	}

	return uint32(v*div + 0.5)
}
