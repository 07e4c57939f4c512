// Package field converts between wire tokens and typed values.
//
// NMEA sentences carry their payload as comma separated ASCII tokens, SeaTalk
// messages as short little-endian byte spans packed with nibbles. Both protocols
// go through this package so that every typed value has exactly one canonical
// wire form:
//
//   - an empty token parses to an absent Optional and an absent Optional
//     renders as an empty token
//   - floats render with a fixed number of decimals chosen by the sentence
//   - integers render zero padded to a fixed width where the protocol wants it
//   - times render as HHMMSS with an optional .ss or .sss fraction
//   - coordinates render as DDMM.MMMM / DDDMM.MMMM
//
// Tokens that do not parse as their declared type return ErrMalformed, values
// that parse but cannot be valid return ErrOutOfRange.
package field
