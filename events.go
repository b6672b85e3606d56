package smf

import (
	"fmt"
)

// An event in a track chunk's stream: a channel voice message, a channel
// mode message, a system-exclusive message, or a meta-event. The set of
// implementations is closed; every one lives in this package.
type Event interface {
	// A string representation of the event.
	String() string
	// Appends the event's encoded bytes to dst, validating the event's
	// fields. Unexported so the variant set stays closed.
	appendTo(dst []byte) ([]byte, error)
}

// Encodes the event as it would appear in a track chunk, status byte
// included. The encoding is canonical: a status byte is always emitted, even
// where running status would allow omitting it.
func EncodeEvent(event Event) ([]byte, error) {
	return event.appendTo(nil)
}

// Decodes the event at the start of data, returning the event and the
// unconsumed remainder. Requires a running status byte, which will be updated
// by this call: channel events set it, and sysex and meta events clear it. If
// no running status is in effect, runningStatus must point to zero.
func DecodeEvent(data []byte, runningStatus *byte) (Event, []byte, error) {
	if len(data) == 0 {
		return nil, data, fmt.Errorf("reading event status: %w",
			ErrNotEnoughBytes)
	}
	first := data[0]
	if first == 0xff {
		// Meta-events reset running status.
		*runningStatus = 0
		event, remainder, e := decodeMetaEvent(data[1:])
		if e != nil {
			return nil, data, e
		}
		return event, remainder, nil
	}
	if (first == 0xf0) || (first == 0xf7) {
		// Sysex messages also reset running status.
		*runningStatus = 0
		event, remainder, e := decodeSysexEvent(data[1:], first)
		if e != nil {
			return nil, data, e
		}
		return event, remainder, nil
	}
	if (first & 0xf0) == 0xf0 {
		// System common and real-time status bytes don't occur in SMF track
		// data.
		return nil, data, fmt.Errorf("status byte 0x%02x: %w", first,
			ErrUnrecognizedStatus)
	}
	event, remainder, e := decodeChannelEvent(data, runningStatus)
	if e != nil {
		return nil, data, e
	}
	return event, remainder, nil
}

// Reads a single data byte, validating that it fits in 7 bits. The "what"
// argument names the field for error messages.
func readU7(data []byte, what string) (U7, []byte, error) {
	if len(data) == 0 {
		return 0, data, fmt.Errorf("reading %s: %w", what, ErrNotEnoughBytes)
	}
	v, e := NewU7(data[0])
	if e != nil {
		return 0, data, fmt.Errorf("%s: %w", what, e)
	}
	return v, data[1:], nil
}
