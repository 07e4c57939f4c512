package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/luma/marbus/internal/env"
	"github.com/luma/marbus/internal/gateway"
	"github.com/luma/marbus/nmea"
	"github.com/luma/marbus/seatalk"
	"github.com/luma/marbus/transport"
)

// openBus opens the configured device. NMEA ttys go through the serial
// driver; SeaTalk ttys (prepared with stty) and capture files are read as
// plain files. An empty device or - reads stdin.
func openBus(conf *env.Config) (io.ReadCloser, error) {
	switch {
	case conf.Device == "" || conf.Device == "-":
		return io.NopCloser(os.Stdin), nil

	case conf.Protocol == gateway.ProtocolNMEA && isCharDevice(conf.Device):
		return transport.OpenSerial(transport.SerialOptions{
			Device: conf.Device,
			Baud:   conf.Baud,
		})

	default:
		return os.Open(conf.Device)
	}
}

func isCharDevice(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// isEndOfInput reports errors that end a bus loop normally.
func isEndOfInput(err error) bool {
	return errors.Is(err, nmea.ErrStreamEnded) ||
		errors.Is(err, seatalk.ErrStreamEnded) ||
		errors.Is(err, context.Canceled)
}
