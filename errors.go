package smf

import (
	"errors"
)

// The sentinel errors returned by the codec. Higher layers wrap these with
// fmt.Errorf and %w, adding the chunk, event index, or field where the fault
// was found, so errors.Is works at every level.
var (
	// ErrNotEnoughBytes is returned when a buffer ends before the structure
	// being decoded does.
	ErrNotEnoughBytes = errors.New("not enough bytes")

	// ErrUnknownChunkType is returned when a chunk's 4-byte tag is neither
	// "MThd" nor "MTrk".
	ErrUnknownChunkType = errors.New("unknown chunk type")

	// ErrBadChunkLength is returned when a chunk's declared length disagrees
	// with the bytes actually present, or when a fixed-size payload has the
	// wrong size.
	ErrBadChunkLength = errors.New("bad chunk length")

	// ErrVLQRange is returned when encoding an integer larger than
	// MaxVLQ.
	ErrVLQRange = errors.New("value too large for a variable-length quantity")

	// ErrInvalidValue is returned when an integer doesn't map to any member
	// of the closed set being decoded (format code, SMPTE rate, mode-message
	// code, key type, and so on).
	ErrInvalidValue = errors.New("invalid value")

	// ErrValueOutOfRange is returned when a data byte or constructor argument
	// falls outside its legal range, e.g. a 7-bit value of 0x80 or higher, or
	// a channel above 15.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrZeroTracks is returned for a header chunk declaring zero tracks.
	ErrZeroTracks = errors.New("number of tracks must be greater than zero")

	// ErrZeroTicksPerQuarterNote is returned for a metrical division with a
	// tick count of zero.
	ErrZeroTicksPerQuarterNote = errors.New("ticks per quarter note must be " +
		"greater than zero")

	// ErrZeroTicksPerFrame is returned for an SMPTE division with zero ticks
	// per frame.
	ErrZeroTicksPerFrame = errors.New("ticks per frame must be greater than " +
		"zero")

	// ErrUnrecognizedStatus is returned when an event starts with a status
	// byte the codec doesn't support, or with a data byte while no running
	// status is in effect.
	ErrUnrecognizedStatus = errors.New("unrecognized status byte")

	// ErrUnrecognizedMetaType is returned for a meta-event type byte outside
	// the known catalog.
	ErrUnrecognizedMetaType = errors.New("unrecognized meta-event type")

	// ErrInvalidText is returned when a text meta-event's payload isn't valid
	// UTF-8.
	ErrInvalidText = errors.New("text is not valid UTF-8")

	// ErrUnterminatedSysex is returned when an 0xF0 system-exclusive message
	// doesn't end with the required 0xF7 byte.
	ErrUnterminatedSysex = errors.New("sysex message didn't end with 0xf7")

	// ErrTrailingBytes is returned when input remains after the structure
	// being decoded has been fully consumed.
	ErrTrailingBytes = errors.New("trailing bytes after decoded content")
)
