package smf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Encodes and decodes a single event, checking the wire bytes both ways.
func checkEventBytes(t *testing.T, event Event, expected []byte) {
	encoded, e := EncodeEvent(event)
	if e != nil {
		t.Logf("Failed encoding %s: %s\n", event, e)
		t.FailNow()
	}
	assert.Equal(t, expected, encoded, "encoding of %s", event)
	runningStatus := byte(0)
	decoded, remainder, e := DecodeEvent(expected, &runningStatus)
	if e != nil {
		t.Logf("Failed decoding % x: %s\n", expected, e)
		t.FailNow()
	}
	assert.Empty(t, remainder)
	assert.Equal(t, event, decoded, "decoding of % x", expected)
}

func TestChannelVoiceEventBytes(t *testing.T) {
	checkEventBytes(t, &NoteOffEvent{Channel: 2, Note: 0x4c, Velocity: 0x20},
		[]byte{0x82, 0x4c, 0x20})
	checkEventBytes(t, &NoteOnEvent{Channel: 0, Note: 0x4c, Velocity: 0x20},
		[]byte{0x90, 0x4c, 0x20})
	checkEventBytes(t, &AftertouchEvent{Channel: 5, Note: 60, Pressure: 100},
		[]byte{0xa5, 60, 100})
	checkEventBytes(t,
		&ControlChangeEvent{Channel: 3, Controller: 7, Value: 0x64},
		[]byte{0xb3, 7, 0x64})
	checkEventBytes(t, &ProgramChangeEvent{Channel: 0, Program: 5},
		[]byte{0xc0, 5})
	checkEventBytes(t, &ChannelPressureEvent{Channel: 9, Pressure: 0x7f},
		[]byte{0xd9, 0x7f})
	// 0x2345 = low bits 0x45, high bits 0x46.
	checkEventBytes(t, &PitchBendEvent{Channel: 1, Value: 0x2345},
		[]byte{0xe1, 0x45, 0x46})
}

func TestChannelModeEventBytes(t *testing.T) {
	checkEventBytes(t, &ChannelModeEvent{Channel: 0, Mode: AllSoundOff},
		[]byte{0xb0, 120, 0})
	checkEventBytes(t,
		&ChannelModeEvent{Channel: 4, Mode: LocalControl, Value: 127},
		[]byte{0xb4, 122, 127})
	checkEventBytes(t, &ChannelModeEvent{Channel: 15, Mode: Poly},
		[]byte{0xbf, 127, 0})
}

func TestControlChangeModeSplit(t *testing.T) {
	// A control-change status byte with a controller of 120 or above decodes
	// as a mode message, never as a ControlChangeEvent.
	runningStatus := byte(0)
	event, _, e := DecodeEvent([]byte{0xb0, 123, 0}, &runningStatus)
	assert.NoError(t, e)
	assert.IsType(t, &ChannelModeEvent{}, event)
	// And a ControlChangeEvent holding a mode code refuses to encode.
	_, e = EncodeEvent(&ControlChangeEvent{Channel: 0, Controller: 123})
	assert.ErrorIs(t, e, ErrValueOutOfRange)
}

func TestRunningStatusDecode(t *testing.T) {
	// Two note-on events, the second omitting its status byte.
	data := []byte{0x90, 0x4c, 0x20, 0x4c, 0x00}
	runningStatus := byte(0)
	first, rest, e := DecodeEvent(data, &runningStatus)
	assert.NoError(t, e)
	assert.Equal(t, byte(0x90), runningStatus)
	second, rest, e := DecodeEvent(rest, &runningStatus)
	assert.NoError(t, e)
	assert.Empty(t, rest)
	assert.Equal(t, &NoteOnEvent{Channel: 0, Note: 0x4c, Velocity: 0x20},
		first)
	assert.Equal(t, &NoteOnEvent{Channel: 0, Note: 0x4c, Velocity: 0x00},
		second)
}

func TestRunningStatusResetByMetaAndSysex(t *testing.T) {
	runningStatus := byte(0)
	_, _, e := DecodeEvent([]byte{0x91, 0x40, 0x40}, &runningStatus)
	assert.NoError(t, e)
	assert.Equal(t, byte(0x91), runningStatus)
	// A meta-event clears the running status...
	_, _, e = DecodeEvent([]byte{0xff, 0x2f, 0x00}, &runningStatus)
	assert.NoError(t, e)
	assert.Equal(t, byte(0), runningStatus)
	// ...so a following data byte has no status to borrow.
	_, _, e = DecodeEvent([]byte{0x40, 0x40}, &runningStatus)
	if !errors.Is(e, ErrUnrecognizedStatus) {
		t.Logf("Didn't get expected error for a data byte with no running "+
			"status, got %v\n", e)
		t.FailNow()
	}
}

func TestChannelEventDecodeErrors(t *testing.T) {
	runningStatus := byte(0)
	// A data byte with the top bit set.
	_, _, e := DecodeEvent([]byte{0x90, 0x80, 0x20}, &runningStatus)
	assert.ErrorIs(t, e, ErrValueOutOfRange)
	// A truncated event.
	runningStatus = 0
	_, _, e = DecodeEvent([]byte{0x90, 0x4c}, &runningStatus)
	assert.ErrorIs(t, e, ErrNotEnoughBytes)
	// System common status bytes aren't supported in SMF track data.
	runningStatus = 0
	_, _, e = DecodeEvent([]byte{0xf1, 0x00}, &runningStatus)
	assert.ErrorIs(t, e, ErrUnrecognizedStatus)
}

func TestChannelEventEncodeValidation(t *testing.T) {
	_, e := EncodeEvent(&NoteOnEvent{Channel: 16, Note: 60, Velocity: 100})
	assert.ErrorIs(t, e, ErrValueOutOfRange)
	_, e = EncodeEvent(&NoteOnEvent{Channel: 0, Note: 0x80, Velocity: 100})
	assert.ErrorIs(t, e, ErrValueOutOfRange)
	_, e = EncodeEvent(&PitchBendEvent{Channel: 0, Value: 0x4000})
	assert.ErrorIs(t, e, ErrValueOutOfRange)
	_, e = EncodeEvent(&ChannelModeEvent{Channel: 0, Mode: 119})
	assert.ErrorIs(t, e, ErrInvalidValue)
}
