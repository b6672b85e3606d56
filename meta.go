package smf

import (
	"fmt"
	"unicode/utf8"
)

// This file contains the meta-event catalog. Every meta-event is framed as
// 0xFF, a type byte, a variable-length payload length, and the payload; the
// fixed-size variants additionally pin the length to a single legal value.

// Appends a meta-event's framing and payload to dst: the 0xFF status byte,
// the event type, the payload length as a variable-length quantity, and the
// payload itself.
func appendMetaBytes(dst []byte, eventType uint8, payload []byte) ([]byte,
	error) {
	dst = append(dst, 0xff, eventType)
	dst, e := AppendVLQ(dst, uint32(len(payload)))
	if e != nil {
		return nil, fmt.Errorf("meta-event length: %w", e)
	}
	return append(dst, payload...), nil
}

// A meta-event holding a sequence number.
type SequenceNumberMetaEvent uint16

func (n SequenceNumberMetaEvent) String() string {
	return fmt.Sprintf("Sequence number: %d", uint16(n))
}

func (n SequenceNumberMetaEvent) appendTo(dst []byte) ([]byte, error) {
	return appendMetaBytes(dst, 0x00, []byte{byte(n >> 8), byte(n)})
}

func decodeSequenceNumberMetaEvent(payload []byte) (Event, error) {
	if len(payload) != 2 {
		return nil, fmt.Errorf("sequence number meta-event has %d payload "+
			"bytes, must be 2: %w", len(payload), ErrBadChunkLength)
	}
	n := (uint16(payload[0]) << 8) | uint16(payload[1])
	return SequenceNumberMetaEvent(n), nil
}

// The type byte of a free-text meta-event, 0x01 through 0x07.
type TextEventType uint8

const (
	GenericText     TextEventType = 0x01
	CopyrightNotice TextEventType = 0x02
	SequenceName    TextEventType = 0x03
	InstrumentName  TextEventType = 0x04
	Lyric           TextEventType = 0x05
	Marker          TextEventType = 0x06
	CuePoint        TextEventType = 0x07
)

// Validates that v is one of the seven text meta-event types and returns it
// as a TextEventType.
func NewTextEventType(v uint8) (TextEventType, error) {
	if (v < uint8(GenericText)) || (v > uint8(CuePoint)) {
		return 0, fmt.Errorf("text event type %d: %w", v, ErrInvalidValue)
	}
	return TextEventType(v), nil
}

func (t TextEventType) String() string {
	switch t {
	case GenericText:
		return "Generic text event"
	case CopyrightNotice:
		return "Copyright notice"
	case SequenceName:
		return "Track/sequence name"
	case InstrumentName:
		return "Instrument name"
	case Lyric:
		return "Lyric"
	case Marker:
		return "Marker"
	case CuePoint:
		return "Cue point"
	}
	return fmt.Sprintf("Invalid text event type %d", uint8(t))
}

// A free-text meta-event. The Text must be valid UTF-8.
type TextMetaEvent struct {
	Type TextEventType
	Text string
}

func (t *TextMetaEvent) String() string {
	return fmt.Sprintf("%s: %s", t.Type, t.Text)
}

func (t *TextMetaEvent) appendTo(dst []byte) ([]byte, error) {
	if _, e := NewTextEventType(uint8(t.Type)); e != nil {
		return nil, e
	}
	if !utf8.ValidString(t.Text) {
		return nil, fmt.Errorf("%s: %w", t.Type, ErrInvalidText)
	}
	return appendMetaBytes(dst, uint8(t.Type), []byte(t.Text))
}

func decodeTextMetaEvent(eventType TextEventType, payload []byte) (Event,
	error) {
	if !utf8.Valid(payload) {
		return nil, fmt.Errorf("%s: %w", eventType, ErrInvalidText)
	}
	return &TextMetaEvent{
		Type: eventType,
		Text: string(payload),
	}, nil
}

// This represents a "MIDI Channel Prefix" meta-event, associating subsequent
// meta and sysex events with a channel number.
type ChannelPrefixMetaEvent Channel

func (c ChannelPrefixMetaEvent) String() string {
	return fmt.Sprintf("Channel prefix: %d", uint8(c))
}

func (c ChannelPrefixMetaEvent) appendTo(dst []byte) ([]byte, error) {
	if _, e := NewChannel(uint8(c)); e != nil {
		return nil, fmt.Errorf("channel prefix: %w", e)
	}
	return appendMetaBytes(dst, 0x20, []byte{byte(c)})
}

type EndOfTrackMetaEvent struct{}

func (t EndOfTrackMetaEvent) String() string {
	return "End of track"
}

func (t EndOfTrackMetaEvent) appendTo(dst []byte) ([]byte, error) {
	return appendMetaBytes(dst, 0x2f, nil)
}

// Holds the 24-bit value for a "set tempo" meta-event: the number of
// microseconds per quarter note.
type SetTempoMetaEvent Tempo

func (t SetTempoMetaEvent) String() string {
	return fmt.Sprintf("Set tempo to %d us/quarter note (%f BPM)", uint32(t),
		Tempo(t).BPM())
}

func (t SetTempoMetaEvent) appendTo(dst []byte) ([]byte, error) {
	if _, e := NewTempo(uint32(t)); e != nil {
		return nil, fmt.Errorf("set tempo: %w", e)
	}
	return appendMetaBytes(dst, 0x51, []byte{
		byte(t >> 16),
		byte(t >> 8),
		byte(t),
	})
}

func decodeSetTempoMetaEvent(payload []byte) (Event, error) {
	if len(payload) != 3 {
		return nil, fmt.Errorf("set tempo meta-event has %d payload bytes, "+
			"must be 3: %w", len(payload), ErrBadChunkLength)
	}
	toReturn := uint32(payload[0]) << 16
	toReturn |= uint32(payload[1]) << 8
	toReturn |= uint32(payload[2])
	return SetTempoMetaEvent(toReturn), nil
}

// Holds an SMPTE offset meta-event: the SMPTE time at which the track is to
// start.
type SMPTEOffsetMetaEvent struct {
	Hours            uint8
	Minutes          uint8
	Seconds          uint8
	Frames           uint8
	FractionalFrames uint8
}

func (s *SMPTEOffsetMetaEvent) String() string {
	// The fractional frames field specifies hundredths of a frame.
	frame := float32(s.Frames) + float32(s.FractionalFrames)/100.0
	return fmt.Sprintf("SMPTE offset: %d:%d:%d, %f frames", s.Hours,
		s.Minutes, s.Seconds, frame)
}

func (s *SMPTEOffsetMetaEvent) appendTo(dst []byte) ([]byte, error) {
	return appendMetaBytes(dst, 0x54, []byte{s.Hours, s.Minutes, s.Seconds,
		s.Frames, s.FractionalFrames})
}

func decodeSMPTEOffsetMetaEvent(payload []byte) (Event, error) {
	if len(payload) != 5 {
		return nil, fmt.Errorf("SMPTE offset meta-event has %d payload "+
			"bytes, must be 5: %w", len(payload), ErrBadChunkLength)
	}
	return &SMPTEOffsetMetaEvent{
		Hours:            payload[0],
		Minutes:          payload[1],
		Seconds:          payload[2],
		Frames:           payload[3],
		FractionalFrames: payload[4],
	}, nil
}

type TimeSignatureMetaEvent struct {
	// The "denominator" is a negative power of 2; for example, 5/8 time has
	// Numerator 5 and Denominator 3.
	Numerator   uint8
	Denominator uint8
	// The number of MIDI clocks (24ths of a quarter note) per metronome
	// tick.
	ClocksPerMetronomeTick uint8
	// The number of notated 32nd notes per quarter note.
	Notated32ndNotesPerQuarterNote uint8
}

func (s *TimeSignatureMetaEvent) String() string {
	base := uint32(1) << uint32(s.Denominator)
	return fmt.Sprintf("Time signature: %d/%d time, %d clocks per metronome "+
		"tick, %d 32nd notes per notated quarter note", s.Numerator, base,
		s.ClocksPerMetronomeTick, s.Notated32ndNotesPerQuarterNote)
}

func (s *TimeSignatureMetaEvent) appendTo(dst []byte) ([]byte, error) {
	return appendMetaBytes(dst, 0x58, []byte{
		s.Numerator,
		s.Denominator,
		s.ClocksPerMetronomeTick,
		s.Notated32ndNotesPerQuarterNote,
	})
}

func decodeTimeSignatureMetaEvent(payload []byte) (Event, error) {
	if len(payload) != 4 {
		return nil, fmt.Errorf("time signature meta-event has %d payload "+
			"bytes, must be 4: %w", len(payload), ErrBadChunkLength)
	}
	return &TimeSignatureMetaEvent{
		Numerator:                      payload[0],
		Denominator:                    payload[1],
		ClocksPerMetronomeTick:         payload[2],
		Notated32ndNotesPerQuarterNote: payload[3],
	}, nil
}

// A count of sharps (positive) or flats (negative) in a key signature, -7
// through 7.
type SharpsOrFlats int8

// Validates that v is in the range -7 through 7 and returns it as a
// SharpsOrFlats.
func NewSharpsOrFlats(v int8) (SharpsOrFlats, error) {
	if (v < -7) || (v > 7) {
		return 0, fmt.Errorf("sharp or flat count %d: %w", v, ErrInvalidValue)
	}
	return SharpsOrFlats(v), nil
}

// Whether a key signature denotes a major or a minor key.
type KeyType uint8

const (
	MajorKey KeyType = 0
	MinorKey KeyType = 1
)

// Validates that v is 0 (major) or 1 (minor) and returns it as a KeyType.
func NewKeyType(v uint8) (KeyType, error) {
	if v > uint8(MinorKey) {
		return 0, fmt.Errorf("key type %d: %w", v, ErrInvalidValue)
	}
	return KeyType(v), nil
}

func (k KeyType) String() string {
	if k == MinorKey {
		return "minor"
	}
	return "major"
}

type KeySignatureMetaEvent struct {
	SharpsOrFlats SharpsOrFlats
	KeyType       KeyType
}

func (s *KeySignatureMetaEvent) String() string {
	sf := s.SharpsOrFlats
	noun := "sharps or flats"
	if sf < 0 {
		sf = -sf
		noun = "flat"
	} else if sf > 0 {
		noun = "sharp"
	}
	if sf > 1 {
		noun += "s"
	}
	return fmt.Sprintf("Key signature: %d %s, %s key", sf, noun, s.KeyType)
}

func (s *KeySignatureMetaEvent) appendTo(dst []byte) ([]byte, error) {
	if _, e := NewSharpsOrFlats(int8(s.SharpsOrFlats)); e != nil {
		return nil, fmt.Errorf("key signature: %w", e)
	}
	if _, e := NewKeyType(uint8(s.KeyType)); e != nil {
		return nil, fmt.Errorf("key signature: %w", e)
	}
	return appendMetaBytes(dst, 0x59, []byte{byte(s.SharpsOrFlats),
		byte(s.KeyType)})
}

func decodeKeySignatureMetaEvent(payload []byte) (Event, error) {
	if len(payload) != 2 {
		return nil, fmt.Errorf("key signature meta-event has %d payload "+
			"bytes, must be 2: %w", len(payload), ErrBadChunkLength)
	}
	sf, e := NewSharpsOrFlats(int8(payload[0]))
	if e != nil {
		return nil, fmt.Errorf("key signature: %w", e)
	}
	keyType, e := NewKeyType(payload[1])
	if e != nil {
		return nil, fmt.Errorf("key signature: %w", e)
	}
	return &KeySignatureMetaEvent{
		SharpsOrFlats: sf,
		KeyType:       keyType,
	}, nil
}

// A sequencer-specific meta-event, carrying opaque bytes for a particular
// sequencer program.
type SequencerSpecificMetaEvent struct {
	Data []byte
}

func (s *SequencerSpecificMetaEvent) String() string {
	return fmt.Sprintf("Sequencer-specific event, %d bytes: % x",
		len(s.Data), s.Data)
}

func (s *SequencerSpecificMetaEvent) appendTo(dst []byte) ([]byte, error) {
	return appendMetaBytes(dst, 0x7f, s.Data)
}

// Decodes a meta-event. The leading 0xFF status byte has already been
// consumed; data starts at the type byte.
func decodeMetaEvent(data []byte) (Event, []byte, error) {
	if len(data) == 0 {
		return nil, data, fmt.Errorf("reading meta-event type: %w",
			ErrNotEnoughBytes)
	}
	eventType := data[0]
	length, rest, e := DecodeVLQ(data[1:])
	if e != nil {
		return nil, data, fmt.Errorf("meta-event length: %w", e)
	}
	if uint64(len(rest)) < uint64(length) {
		return nil, data, fmt.Errorf("meta-event type 0x%02x declares %d "+
			"payload bytes but only %d remain: %w", eventType, length,
			len(rest), ErrNotEnoughBytes)
	}
	payload := rest[:length]
	remainder := rest[length:]
	var event Event
	switch {
	case eventType == 0x00:
		event, e = decodeSequenceNumberMetaEvent(payload)
	case (eventType >= uint8(GenericText)) && (eventType <= uint8(CuePoint)):
		event, e = decodeTextMetaEvent(TextEventType(eventType), payload)
	case eventType == 0x20:
		if len(payload) != 1 {
			return nil, data, fmt.Errorf("channel prefix meta-event has %d "+
				"payload bytes, must be 1: %w", len(payload),
				ErrBadChunkLength)
		}
		channel, channelErr := NewChannel(payload[0])
		if channelErr != nil {
			return nil, data, fmt.Errorf("channel prefix: %w", channelErr)
		}
		event = ChannelPrefixMetaEvent(channel)
	case eventType == 0x2f:
		if len(payload) != 0 {
			return nil, data, fmt.Errorf("end-of-track meta-event has %d "+
				"payload bytes, must be 0: %w", len(payload),
				ErrBadChunkLength)
		}
		event = EndOfTrackMetaEvent{}
	case eventType == 0x51:
		event, e = decodeSetTempoMetaEvent(payload)
	case eventType == 0x54:
		event, e = decodeSMPTEOffsetMetaEvent(payload)
	case eventType == 0x58:
		event, e = decodeTimeSignatureMetaEvent(payload)
	case eventType == 0x59:
		event, e = decodeKeySignatureMetaEvent(payload)
	case eventType == 0x7f:
		event = &SequencerSpecificMetaEvent{
			// Copied so the decoded event doesn't alias the caller's buffer.
			Data: append([]byte{}, payload...),
		}
	default:
		return nil, data, fmt.Errorf("meta-event type 0x%02x: %w", eventType,
			ErrUnrecognizedMetaType)
	}
	if e != nil {
		return nil, data, e
	}
	return event, remainder, nil
}
