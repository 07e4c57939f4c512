package transport

import (
	"go.uber.org/zap"

	"github.com/luma/marbus/nmea"
)

type Options struct {
	// Host to listen on
	Host string

	// Port to listen on, 0 picks a free port
	Port int

	// Reuseport controls setting SO_REUSEPORT. Without it only one listener
	// can bind the port and NumListeners is ignored.
	Reuseport bool

	NumListeners int

	// Registry decodes client sentences and formats broadcasts,
	// nmea.DefaultRegistry when nil
	Registry *nmea.Registry

	// Handler receives every valid sentence sent by a client. It is called
	// from one goroutine per client and must be safe for concurrent use.
	Handler nmea.Handler

	Log *zap.Logger
}
