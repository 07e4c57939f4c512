package nmea

// This package implements reading and writing of NMEA 0183 sentences.
//
// A sentence is a single line of 7-bit ASCII
//
//   ```
//     $GPXTR,0.15,L,N*3A\r\n
//   ```
//
// - `$` (or `!` for encapsulated AIS data) starts the sentence
// - two characters of talker id, e.g. `GP` for a GPS receiver
// - the sentence tag, e.g. `XTR`
// - comma separated fields, any of which may be empty
// - `*` and two hex digits of checksum: the XOR of every character between
//   the sentinel and the `*`
// - `\r\n`
//
// Tokenize validates the frame and the checksum and splits it up. A Registry
// maps the tag to a constructor that checks the field count and parses every
// field with package field. Talker ids are kept verbatim, NMEA allows vendor
// talkers so they are not checked against a list.
//
// Proprietary sentences start with `$P` followed by a manufacturer code; for
// those the talker is `P` and the tag is everything after it.
//
// === Errors
//
// - ErrMalformedSentence, ErrChecksum: the line is not a valid sentence
// - ErrUnknownSentence: valid sentence, but no constructor for its tag
// - ErrFieldCount, ErrMalformedField: the fields do not fit the tag
//
// All of these reject a single line only, reading can continue with the next.
