package smf

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Builds one well-formed event deterministically from a 16-bit seed, cycling
// through every variant the codec supports.
func eventFromSeed(seed uint16) Event {
	channel := Channel(seed & 0xf)
	a := U7((seed >> 4) & 0x7f)
	b := U7((seed >> 9) & 0x7f)
	switch seed % 13 {
	case 0:
		return &NoteOffEvent{Channel: channel, Note: a, Velocity: b}
	case 1:
		return &NoteOnEvent{Channel: channel, Note: a, Velocity: b}
	case 2:
		return &AftertouchEvent{Channel: channel, Note: a, Pressure: b}
	case 3:
		return &ControlChangeEvent{
			Channel:    channel,
			Controller: a % 120,
			Value:      b,
		}
	case 4:
		return &ProgramChangeEvent{Channel: channel, Program: a}
	case 5:
		return &ChannelPressureEvent{Channel: channel, Pressure: a}
	case 6:
		return &PitchBendEvent{Channel: channel, Value: seed & 0x3fff}
	case 7:
		return &ChannelModeEvent{
			Channel: channel,
			Mode:    ModeMessage(120 + uint8(seed>>4)%8),
			Value:   b,
		}
	case 8:
		return &SystemExclusiveEvent{
			Data: []byte{byte(seed), byte(seed >> 8)},
		}
	case 9:
		return &TextMetaEvent{
			Type: TextEventType(1 + uint8(seed>>4)%7),
			Text: fmt.Sprintf("t%d", seed),
		}
	case 10:
		return SetTempoMetaEvent(uint32(seed) * 7)
	case 11:
		return SequenceNumberMetaEvent(seed)
	}
	return EndOfTrackMetaEvent{}
}

func TestTrackRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("decode(encode(events)) == events", prop.ForAll(
		func(seeds []uint16, deltas []uint32) bool {
			count := len(seeds)
			if len(deltas) < count {
				count = len(deltas)
			}
			events := make([]TrackEvent, count)
			for i := 0; i < count; i++ {
				events[i] = TrackEvent{
					DeltaTime: deltas[i],
					Event:     eventFromSeed(seeds[i]),
				}
			}
			track := &TrackChunk{Events: events}
			encoded, e := track.Encode()
			if e != nil {
				return false
			}
			decoded, remainder, e := DecodeTrackChunk(encoded)
			if (e != nil) || (len(remainder) != 0) {
				return false
			}
			if count == 0 {
				return len(decoded.Events) == 0
			}
			return reflect.DeepEqual(events, decoded.Events)
		},
		gen.SliceOf(gen.UInt16()),
		gen.SliceOf(gen.UInt32Range(0, MaxVLQ)),
	))

	properties.Property("re-encoding a decoded track is byte-identical",
		prop.ForAll(
			func(seeds []uint16) bool {
				events := make([]TrackEvent, len(seeds))
				for i, seed := range seeds {
					events[i] = TrackEvent{
						DeltaTime: uint32(seed),
						Event:     eventFromSeed(seed),
					}
				}
				track := &TrackChunk{Events: events}
				encoded, e := track.Encode()
				if e != nil {
					return false
				}
				decoded, _, e := DecodeTrackChunk(encoded)
				if e != nil {
					return false
				}
				reEncoded, e := decoded.Encode()
				if e != nil {
					return false
				}
				return reflect.DeepEqual(encoded, reEncoded)
			},
			gen.SliceOf(gen.UInt16()),
		))

	properties.TestingRun(t)
}
