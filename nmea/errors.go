package nmea

import "errors"

var (
	ErrMalformedSentence = errors.New("nmea: malformed sentence")
	ErrChecksum          = errors.New("nmea: checksum mismatch")
	ErrUnknownSentence   = errors.New("nmea: unknown sentence")
	ErrFieldCount        = errors.New("nmea: wrong number of fields")
	ErrMalformedField    = errors.New("nmea: malformed field")
	ErrDuplicateSentence = errors.New("nmea: sentence already registered")

	// ErrStreamEnded is returned by Reader when the transport is exhausted.
	ErrStreamEnded = errors.New("nmea: stream ended")
)
