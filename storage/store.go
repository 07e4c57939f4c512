package storage

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("storage: store is closed")

// Update is sent to listeners whenever a key is written. Value is the raw
// JSON now stored under Key.
type Update struct {
	Key   []byte
	Value []byte
}

// Store keeps the latest decoded value of every message kind seen on the bus
// as one JSON document. Keys are gjson paths, so "nmea.GP.VTG" nests under
// "nmea".
type Store interface {
	Set(ctx context.Context, key []byte, value interface{}) error
	Get(ctx context.Context, key []byte) ([]byte, error)

	Restore(values []byte) error
	Backup() ([]byte, error)

	ListenToUpdates() <-chan *Update
	StopListening(<-chan *Update)

	Close() error
}
