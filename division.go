package smf

import (
	"fmt"
)

// This file contains the Division field of the header chunk: the 16-bit value
// specifying what a track's delta-time ticks mean. The top bit of the field
// discriminates between its two layouts, and is never stored in the decoded
// representation; encoding derives it from the variant, so the marker and the
// payload can't disagree.

// One of the two time-division conventions an SMF header may declare. The
// two implementations are TicksPerQuarterNote and SMPTEDivision.
type Division interface {
	String() string
	// Re-checks the value's range. Encode paths call this so a
	// cast-constructed value (e.g. TicksPerQuarterNote(0)) is rejected
	// rather than producing bytes that won't decode.
	validate() error
	// Returns the two bytes of the 16-bit division field, marker bit
	// included. Unexported: the set of layouts is closed by the format.
	divisionBytes() [2]byte
}

// The metrical layout: delta-times count ticks per quarter note. Always in
// the range 1 through 0x7fff; the top bit of the field is the layout marker.
type TicksPerQuarterNote uint16

// Validates that n is nonzero and fits in 15 bits, returning it as a
// TicksPerQuarterNote.
func NewTicksPerQuarterNote(n uint16) (TicksPerQuarterNote, error) {
	if n == 0 {
		return 0, ErrZeroTicksPerQuarterNote
	}
	if n > 0x7fff {
		return 0, fmt.Errorf("ticks per quarter note %d: %w", n,
			ErrValueOutOfRange)
	}
	return TicksPerQuarterNote(n), nil
}

func (n TicksPerQuarterNote) String() string {
	return fmt.Sprintf("%d ticks per quarter note", uint16(n))
}

func (n TicksPerQuarterNote) validate() error {
	_, e := NewTicksPerQuarterNote(uint16(n))
	return e
}

func (n TicksPerQuarterNote) divisionBytes() [2]byte {
	v := uint16(n) & 0x7fff
	return [2]byte{byte(v >> 8), byte(v)}
}

// An SMPTE frame rate, stored in the division field as a negative two's
// complement byte. Only the four rates named below are legal.
type SMPTETimecodeFormat int8

const (
	SMPTE24 SMPTETimecodeFormat = -24
	SMPTE25 SMPTETimecodeFormat = -25
	// The 29.97 frames-per-second drop-frame rate.
	SMPTE30DropFrame SMPTETimecodeFormat = -29
	SMPTE30          SMPTETimecodeFormat = -30
)

// Validates that v is one of the four legal SMPTE rates (-24, -25, -29, or
// -30) and returns it as an SMPTETimecodeFormat.
func NewSMPTETimecodeFormat(v int8) (SMPTETimecodeFormat, error) {
	switch SMPTETimecodeFormat(v) {
	case SMPTE24, SMPTE25, SMPTE30DropFrame, SMPTE30:
		return SMPTETimecodeFormat(v), nil
	}
	return 0, fmt.Errorf("SMPTE timecode format %d: %w", v, ErrInvalidValue)
}

// Returns the frame rate as a positive frames-per-second count.
func (f SMPTETimecodeFormat) FramesPerSecond() uint8 {
	return uint8(-int8(f))
}

func (f SMPTETimecodeFormat) String() string {
	if f == SMPTE30DropFrame {
		return "29.97 (drop-frame) frames per second"
	}
	return fmt.Sprintf("%d frames per second", f.FramesPerSecond())
}

// The timecode layout: delta-times count subdivisions of a second, given as
// an SMPTE frame rate and a number of ticks per frame.
type SMPTEDivision struct {
	TimecodeFormat SMPTETimecodeFormat
	TicksPerFrame  TicksPerFrame
}

func (d SMPTEDivision) validate() error {
	if _, e := NewSMPTETimecodeFormat(int8(d.TimecodeFormat)); e != nil {
		return e
	}
	_, e := NewTicksPerFrame(uint8(d.TicksPerFrame))
	return e
}

func (d SMPTEDivision) String() string {
	return fmt.Sprintf("%s, %d ticks per frame", d.TimecodeFormat,
		uint8(d.TicksPerFrame))
}

func (d SMPTEDivision) divisionBytes() [2]byte {
	// The timecode format is negative, so its byte carries the marker bit on
	// its own.
	return [2]byte{uint8(d.TimecodeFormat), uint8(d.TicksPerFrame)}
}

// Decodes the 16-bit division field of a header chunk. The top bit selects
// the layout: clear means the low 15 bits are a nonzero ticks-per-quarter-
// note count, set means the high byte is a signed SMPTE rate and the low byte
// a nonzero ticks-per-frame count.
func DecodeDivision(value uint16) (Division, error) {
	if (value & 0x8000) == 0 {
		n, e := NewTicksPerQuarterNote(value)
		if e != nil {
			return nil, e
		}
		return n, nil
	}
	format, e := NewSMPTETimecodeFormat(int8(value >> 8))
	if e != nil {
		return nil, e
	}
	ticks, e := NewTicksPerFrame(uint8(value))
	if e != nil {
		return nil, e
	}
	return SMPTEDivision{
		TimecodeFormat: format,
		TicksPerFrame:  ticks,
	}, nil
}

// Encodes d into the 16-bit division field, deriving the marker bit from
// which layout d is.
func EncodeDivision(d Division) uint16 {
	b := d.divisionBytes()
	return (uint16(b[0]) << 8) | uint16(b[1])
}
