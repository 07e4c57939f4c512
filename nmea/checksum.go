package nmea

import "fmt"

// Checksum is the XOR of every byte of body, which is everything between the
// sentinel and the '*'.
func Checksum(body string) byte {
	var cs byte
	for i := 0; i < len(body); i++ {
		cs ^= body[i]
	}

	return cs
}

// FormatChecksum renders a checksum as two uppercase hex digits.
func FormatChecksum(cs byte) string {
	return fmt.Sprintf("%02X", cs)
}
