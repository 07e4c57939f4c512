package seatalk

// This package implements framing, decoding and encoding of SeaTalk, the
// serial instrument bus used by Raymarine/Autohelm devices.
//
// SeaTalk runs at 4800 baud with 8 data bits and the parity bit misused as a
// ninth data bit: a set ninth bit marks the first byte of a message, the
// command byte. Every message on the wire looks like
//
//   ```
//     [command][attribute][payload...]
//   ```
//
// where the low nibble of the attribute byte is the payload length minus three,
// so a message is 3 to 18 bytes long. The high nibble of the attribute byte is
// free for use by the message kind.
//
// === Parity marking
//
// Most serial drivers cannot hand the ninth bit to user space directly. With
// parity checking and parity marking enabled, a byte received with a parity
// error is delivered as `0xff 0x00 <byte>` and a literal 0xff as `0xff 0xff`.
// The Framer undoes this quoting:
//
//   - `0xff 0xff`         literal data byte 0xff
//   - `0xff 0x00 <byte>`  <byte> with its command/data meaning inverted
//   - `0xff <other>`      bus read error
//
// Outside of quoting a byte whose eight data bits have an even number of ones
// is a command byte, see Parity.
//
// === Collisions
//
// SeaTalk has no arbitration. When a command byte arrives while a frame is
// still incomplete, two talkers were sending at once. The Framer drops the
// partial frame, starts the new one and counts a collision. Collisions are a
// diagnostic, not an error.
//
// === Messages
//
// Complete frames are turned into typed messages by a Registry, keyed on the
// command byte. Every kind knows its exact frame length and rejects anything
// else with ErrInvalidFrame.
