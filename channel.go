package smf

import (
	"fmt"
)

// This file contains the channel voice and channel mode messages: the events
// whose status byte's high nibble selects the message kind and whose low
// nibble addresses one of the 16 channels.

// The status-byte high nibbles of the channel voice messages.
const (
	noteOffStatus         = 0x80
	noteOnStatus          = 0x90
	aftertouchStatus      = 0xa0
	controlChangeStatus   = 0xb0
	programChangeStatus   = 0xc0
	channelPressureStatus = 0xd0
	pitchBendStatus       = 0xe0
)

// Renders a MIDI note number. The values corresponding to keys on a standard
// keyboard are 21 (A0) through 108 (C8).
func noteName(n U7) string {
	if (n < 21) || (n > 108) {
		return fmt.Sprintf("MIDI note %d", uint8(n))
	}
	notes := [...]string{"A", "A#", "B", "C", "C#", "D", "D#", "E", "F",
		"F#", "G", "G#"}
	index := (int(n) - 21) % 12
	octave := (int(n) - 12) / 12
	return fmt.Sprintf("%s%d", notes[index], octave)
}

type NoteOffEvent struct {
	Channel  Channel
	Note     U7
	Velocity U7
}

func (v *NoteOffEvent) String() string {
	return fmt.Sprintf("Channel %d: %s off, velocity = %d", v.Channel,
		noteName(v.Note), v.Velocity)
}

func (v *NoteOffEvent) appendTo(dst []byte) ([]byte, error) {
	e := checkChannelData("note-off", v.Channel, v.Note, v.Velocity)
	if e != nil {
		return nil, e
	}
	return append(dst, noteOffStatus|byte(v.Channel), byte(v.Note),
		byte(v.Velocity)), nil
}

type NoteOnEvent struct {
	Channel  Channel
	Note     U7
	Velocity U7
}

func (v *NoteOnEvent) String() string {
	return fmt.Sprintf("Channel %d: %s on, velocity = %d", v.Channel,
		noteName(v.Note), v.Velocity)
}

func (v *NoteOnEvent) appendTo(dst []byte) ([]byte, error) {
	e := checkChannelData("note-on", v.Channel, v.Note, v.Velocity)
	if e != nil {
		return nil, e
	}
	return append(dst, noteOnStatus|byte(v.Channel), byte(v.Note),
		byte(v.Velocity)), nil
}

// The aftertouch event is also known as a "polyphonic key pressure" event,
// but "aftertouch" is shorter in the source code.
type AftertouchEvent struct {
	Channel  Channel
	Note     U7
	Pressure U7
}

func (v *AftertouchEvent) String() string {
	return fmt.Sprintf("Channel %d: %s aftertouch pressure %d", v.Channel,
		noteName(v.Note), v.Pressure)
}

func (v *AftertouchEvent) appendTo(dst []byte) ([]byte, error) {
	e := checkChannelData("aftertouch", v.Channel, v.Note, v.Pressure)
	if e != nil {
		return nil, e
	}
	return append(dst, aftertouchStatus|byte(v.Channel), byte(v.Note),
		byte(v.Pressure)), nil
}

// A control-change message with a controller number below 120. Controller
// numbers 120 through 127 are channel mode messages, held by ChannelModeEvent
// instead.
type ControlChangeEvent struct {
	Channel    Channel
	Controller U7
	Value      U7
}

func (v *ControlChangeEvent) String() string {
	return fmt.Sprintf("Channel %d: control change, controller number %d, "+
		"value %d", v.Channel, v.Controller, v.Value)
}

func (v *ControlChangeEvent) appendTo(dst []byte) ([]byte, error) {
	e := checkChannelData("control-change", v.Channel, v.Controller, v.Value)
	if e != nil {
		return nil, e
	}
	if v.Controller >= U7(AllSoundOff) {
		return nil, fmt.Errorf("control-change controller %d is a channel "+
			"mode code: %w", v.Controller, ErrValueOutOfRange)
	}
	return append(dst, controlChangeStatus|byte(v.Channel),
		byte(v.Controller), byte(v.Value)), nil
}

// One of the eight channel mode message codes, sent as the controller number
// of a control-change status byte.
type ModeMessage uint8

const (
	AllSoundOff         ModeMessage = 120
	ResetAllControllers ModeMessage = 121
	LocalControl        ModeMessage = 122
	AllNotesOff         ModeMessage = 123
	OmniOff             ModeMessage = 124
	OmniOn              ModeMessage = 125
	Mono                ModeMessage = 126
	Poly                ModeMessage = 127
)

// Validates that v is one of the eight mode message codes (120 through 127)
// and returns it as a ModeMessage.
func NewModeMessage(v uint8) (ModeMessage, error) {
	if (v < uint8(AllSoundOff)) || (v > uint8(Poly)) {
		return 0, fmt.Errorf("mode message code %d: %w", v, ErrInvalidValue)
	}
	return ModeMessage(v), nil
}

func (m ModeMessage) String() string {
	switch m {
	case AllSoundOff:
		return "all sound off"
	case ResetAllControllers:
		return "reset all controllers"
	case LocalControl:
		return "local control"
	case AllNotesOff:
		return "all notes off"
	case OmniOff:
		return "omni mode off"
	case OmniOn:
		return "omni mode on"
	case Mono:
		return "mono mode on"
	case Poly:
		return "poly mode on"
	}
	return fmt.Sprintf("invalid mode message code %d", uint8(m))
}

// A channel mode message: a control-change status byte whose controller
// number is one of the mode codes, 120 through 127.
type ChannelModeEvent struct {
	Channel Channel
	Mode    ModeMessage
	Value   U7
}

func (v *ChannelModeEvent) String() string {
	if v.Mode == LocalControl {
		setting := "off"
		if v.Value == 127 {
			setting = "on"
		} else if v.Value != 0 {
			setting = fmt.Sprintf("unknown setting %d", v.Value)
		}
		return fmt.Sprintf("Channel %d: local control %s", v.Channel, setting)
	}
	return fmt.Sprintf("Channel %d: %s (v = %d)", v.Channel, v.Mode, v.Value)
}

func (v *ChannelModeEvent) appendTo(dst []byte) ([]byte, error) {
	if _, e := NewChannel(uint8(v.Channel)); e != nil {
		return nil, fmt.Errorf("channel-mode: %w", e)
	}
	if _, e := NewModeMessage(uint8(v.Mode)); e != nil {
		return nil, fmt.Errorf("channel-mode: %w", e)
	}
	if _, e := NewU7(uint8(v.Value)); e != nil {
		return nil, fmt.Errorf("channel-mode value: %w", e)
	}
	return append(dst, controlChangeStatus|byte(v.Channel), byte(v.Mode),
		byte(v.Value)), nil
}

// This sets the "instrument" associated with a channel.
type ProgramChangeEvent struct {
	Channel Channel
	Program U7
}

func (v *ProgramChangeEvent) String() string {
	return fmt.Sprintf("Channel %d: program change to %d", v.Channel,
		v.Program)
}

func (v *ProgramChangeEvent) appendTo(dst []byte) ([]byte, error) {
	if _, e := NewChannel(uint8(v.Channel)); e != nil {
		return nil, fmt.Errorf("program-change: %w", e)
	}
	if _, e := NewU7(uint8(v.Program)); e != nil {
		return nil, fmt.Errorf("program-change program: %w", e)
	}
	return append(dst, programChangeStatus|byte(v.Channel),
		byte(v.Program)), nil
}

type ChannelPressureEvent struct {
	Channel  Channel
	Pressure U7
}

func (v *ChannelPressureEvent) String() string {
	return fmt.Sprintf("Channel %d: set channel pressure to %d", v.Channel,
		v.Pressure)
}

func (v *ChannelPressureEvent) appendTo(dst []byte) ([]byte, error) {
	if _, e := NewChannel(uint8(v.Channel)); e != nil {
		return nil, fmt.Errorf("channel-pressure: %w", e)
	}
	if _, e := NewU7(uint8(v.Pressure)); e != nil {
		return nil, fmt.Errorf("channel-pressure value: %w", e)
	}
	return append(dst, channelPressureStatus|byte(v.Channel),
		byte(v.Pressure)), nil
}

// Holds a pitch-bend event. The "center" value is 0x2000. The value is at
// most 14 bits, split on the wire into two 7-bit bytes, low bits first.
type PitchBendEvent struct {
	Channel Channel
	Value   uint16
}

func (v *PitchBendEvent) String() string {
	return fmt.Sprintf("Channel %d: pitch bend value %d", v.Channel, v.Value)
}

func (v *PitchBendEvent) appendTo(dst []byte) ([]byte, error) {
	if _, e := NewChannel(uint8(v.Channel)); e != nil {
		return nil, fmt.Errorf("pitch-bend: %w", e)
	}
	if v.Value > 0x3fff {
		return nil, fmt.Errorf("pitch-bend value %d: %w", v.Value,
			ErrValueOutOfRange)
	}
	lowBits := byte(v.Value & 0x7f)
	highBits := byte(v.Value >> 7)
	return append(dst, pitchBendStatus|byte(v.Channel), lowBits,
		highBits), nil
}

// Validates the channel and two data bytes shared by the three-byte voice
// messages.
func checkChannelData(what string, channel Channel, a, b U7) error {
	if _, e := NewChannel(uint8(channel)); e != nil {
		return fmt.Errorf("%s: %w", what, e)
	}
	if _, e := NewU7(uint8(a)); e != nil {
		return fmt.Errorf("%s: %w", what, e)
	}
	if _, e := NewU7(uint8(b)); e != nil {
		return fmt.Errorf("%s: %w", what, e)
	}
	return nil
}

// Decodes a channel voice or mode message from the start of data. The first
// byte may be a status byte or, under running status, the first data byte.
func decodeChannelEvent(data []byte, runningStatus *byte) (Event, []byte,
	error) {
	status := data[0]
	rest := data
	if (status & 0x80) != 0 {
		// A new status byte: consume it and update the running status.
		rest = data[1:]
		*runningStatus = status
	} else {
		// The first byte is data, so the event reuses the running status.
		status = *runningStatus
		if (status & 0x80) == 0 {
			return nil, data, fmt.Errorf("data byte 0x%02x with no running "+
				"status in effect: %w", data[0], ErrUnrecognizedStatus)
		}
	}
	channel := Channel(status & 0xf)
	switch status & 0xf0 {
	case noteOffStatus:
		note, rest, e := readU7(rest, "note-off note")
		if e != nil {
			return nil, data, e
		}
		velocity, rest, e := readU7(rest, "note-off velocity")
		if e != nil {
			return nil, data, e
		}
		return &NoteOffEvent{
			Channel:  channel,
			Note:     note,
			Velocity: velocity,
		}, rest, nil
	case noteOnStatus:
		note, rest, e := readU7(rest, "note-on note")
		if e != nil {
			return nil, data, e
		}
		velocity, rest, e := readU7(rest, "note-on velocity")
		if e != nil {
			return nil, data, e
		}
		return &NoteOnEvent{
			Channel:  channel,
			Note:     note,
			Velocity: velocity,
		}, rest, nil
	case aftertouchStatus:
		note, rest, e := readU7(rest, "aftertouch note")
		if e != nil {
			return nil, data, e
		}
		pressure, rest, e := readU7(rest, "aftertouch pressure")
		if e != nil {
			return nil, data, e
		}
		return &AftertouchEvent{
			Channel:  channel,
			Note:     note,
			Pressure: pressure,
		}, rest, nil
	case controlChangeStatus:
		controller, rest, e := readU7(rest, "control-change controller number")
		if e != nil {
			return nil, data, e
		}
		value, rest, e := readU7(rest, "control-change value")
		if e != nil {
			return nil, data, e
		}
		// Controller numbers 120-127 are the channel mode messages.
		if controller >= U7(AllSoundOff) {
			return &ChannelModeEvent{
				Channel: channel,
				Mode:    ModeMessage(controller),
				Value:   value,
			}, rest, nil
		}
		return &ControlChangeEvent{
			Channel:    channel,
			Controller: controller,
			Value:      value,
		}, rest, nil
	case programChangeStatus:
		program, rest, e := readU7(rest, "program-change program")
		if e != nil {
			return nil, data, e
		}
		return &ProgramChangeEvent{
			Channel: channel,
			Program: program,
		}, rest, nil
	case channelPressureStatus:
		pressure, rest, e := readU7(rest, "channel-pressure value")
		if e != nil {
			return nil, data, e
		}
		return &ChannelPressureEvent{
			Channel:  channel,
			Pressure: pressure,
		}, rest, nil
	case pitchBendStatus:
		lowBits, rest, e := readU7(rest, "pitch-bend low bits")
		if e != nil {
			return nil, data, e
		}
		highBits, rest, e := readU7(rest, "pitch-bend high bits")
		if e != nil {
			return nil, data, e
		}
		return &PitchBendEvent{
			Channel: channel,
			Value:   (uint16(highBits) << 7) | uint16(lowBits),
		}, rest, nil
	}
	// Unreachable: 0xf0-range statuses are handled before dispatching here.
	return nil, data, fmt.Errorf("status byte 0x%02x: %w", status,
		ErrUnrecognizedStatus)
}
