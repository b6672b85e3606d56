package smf

import (
	"fmt"
)

// Holds a system-exclusive message. An ordinary sysex message starts with an
// 0xF0 status byte and must end with 0xF7; the terminator is stripped on
// decode and re-added on encode, so Data never includes it. A continuation
// packet (0xF7 status) carries raw bytes with no terminator requirement.
type SystemExclusiveEvent struct {
	// Marks an 0xF7-status continuation packet rather than an 0xF0-framed
	// message.
	Continuation bool
	Data         []byte
}

func (m *SystemExclusiveEvent) String() string {
	kind := "System exclusive message"
	if m.Continuation {
		kind = "System exclusive continuation"
	}
	return fmt.Sprintf("%s. %d bytes: % x.", kind, len(m.Data), m.Data)
}

func (m *SystemExclusiveEvent) appendTo(dst []byte) ([]byte, error) {
	if m.Continuation {
		dst = append(dst, 0xf7)
		dst, e := AppendVLQ(dst, uint32(len(m.Data)))
		if e != nil {
			return nil, fmt.Errorf("sysex continuation length: %w", e)
		}
		return append(dst, m.Data...), nil
	}
	// The length counts the data plus the trailing 0xF7, so make sure the sum
	// still fits a variable-length quantity.
	if len(m.Data)+1 > MaxVLQ {
		return nil, fmt.Errorf("sysex message of %d bytes: %w", len(m.Data),
			ErrVLQRange)
	}
	dst = append(dst, 0xf0)
	dst, e := AppendVLQ(dst, uint32(len(m.Data)+1))
	if e != nil {
		return nil, fmt.Errorf("sysex length: %w", e)
	}
	dst = append(dst, m.Data...)
	return append(dst, 0xf7), nil
}

// Decodes a system-exclusive message. The status byte (0xF0 or 0xF7) has
// already been consumed and is passed as firstByte.
func decodeSysexEvent(data []byte, firstByte byte) (Event, []byte, error) {
	length, rest, e := DecodeVLQ(data)
	if e != nil {
		return nil, data, fmt.Errorf("sysex length: %w", e)
	}
	if uint64(len(rest)) < uint64(length) {
		return nil, data, fmt.Errorf("sysex declares %d bytes but only %d "+
			"remain: %w", length, len(rest), ErrNotEnoughBytes)
	}
	payload := rest[:length]
	remainder := rest[length:]
	if firstByte == 0xf7 {
		return &SystemExclusiveEvent{
			Continuation: true,
			Data:         append([]byte{}, payload...),
		}, remainder, nil
	}
	// An 0xF0-framed message must carry at least the 0xF7 terminator.
	if (len(payload) == 0) || (payload[len(payload)-1] != 0xf7) {
		return nil, data, fmt.Errorf("sysex payload of %d bytes: %w",
			len(payload), ErrUnterminatedSysex)
	}
	return &SystemExclusiveEvent{
		Data: append([]byte{}, payload[:len(payload)-1]...),
	}, remainder, nil
}
