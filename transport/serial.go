package transport

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

const (
	// BaudNMEA is the NMEA 0183 talker rate, also used by SeaTalk.
	BaudNMEA = 4800

	// BaudNMEAHighSpeed is used by AIS receivers.
	BaudNMEAHighSpeed = 38400
)

type SerialOptions struct {
	Device string

	// Baud defaults to BaudNMEA
	Baud int

	// ReadTimeout of zero blocks until data arrives
	ReadTimeout time.Duration
}

// OpenSerial opens an NMEA 0183 serial port, 8N1.
//
// SeaTalk needs the ninth bit of every byte, which termios reports in the
// parity-marked stream the seatalk package reads. tarm/serial resets termios on
// open, so SeaTalk ports are configured outside of marbus (stty parenb cmspar
// parmrk -ignpar inpck) and read as plain files.
func OpenSerial(options SerialOptions) (*serial.Port, error) {
	baud := options.Baud
	if baud == 0 {
		baud = BaudNMEA
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        options.Device,
		Baud:        baud,
		ReadTimeout: options.ReadTimeout,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", options.Device, err)
	}

	return port, nil
}
