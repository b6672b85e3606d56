package smf

import (
	"fmt"
)

// This file contains the small constrained-integer types used throughout the
// codec. Each one is constructed either by a validating constructor or by a
// decode from bytes, so an in-range value can't be produced any other way
// short of casting past the type system.

// A 7-bit value, 0 through 127: the native range of most MIDI data bytes.
type U7 uint8

// Validates that b fits in 7 bits and returns it as a U7.
func NewU7(b uint8) (U7, error) {
	if b > 0x7f {
		return 0, fmt.Errorf("7-bit value %d: %w", b, ErrValueOutOfRange)
	}
	return U7(b), nil
}

// A MIDI channel number, 0 through 15.
type Channel uint8

// Validates that c is a legal channel number, 0 through 15.
func NewChannel(c uint8) (Channel, error) {
	if c > 0xf {
		return 0, fmt.Errorf("channel %d: %w", c, ErrValueOutOfRange)
	}
	return Channel(c), nil
}

// The number of tracks declared by a header chunk. Always greater than zero.
type NTracks uint16

// Validates that n is nonzero and returns it as an NTracks.
func NewNTracks(n uint16) (NTracks, error) {
	if n == 0 {
		return 0, ErrZeroTracks
	}
	return NTracks(n), nil
}

// The number of ticks in a single SMPTE frame. Always greater than zero.
type TicksPerFrame uint8

// Validates that n is nonzero and returns it as a TicksPerFrame.
func NewTicksPerFrame(n uint8) (TicksPerFrame, error) {
	if n == 0 {
		return 0, ErrZeroTicksPerFrame
	}
	return TicksPerFrame(n), nil
}

// A tempo in microseconds per quarter note. At most 24 bits.
type Tempo uint32

// Validates that microsecondsPerQuarterNote fits in 24 bits and returns it as
// a Tempo.
func NewTempo(microsecondsPerQuarterNote uint32) (Tempo, error) {
	if microsecondsPerQuarterNote > 0xffffff {
		return 0, fmt.Errorf("tempo %d: %w", microsecondsPerQuarterNote,
			ErrValueOutOfRange)
	}
	return Tempo(microsecondsPerQuarterNote), nil
}

// Returns the tempo in beats per minute.
func (t Tempo) BPM() float64 {
	return 60000000.0 / float64(t)
}
