package smf

import (
	"fmt"
)

// This file contains the track ("MTrk") chunk codec.

// One entry in a track's event stream: an event and the number of ticks
// since the previous event in the same track (or since the track's start, for
// the first event).
type TrackEvent struct {
	DeltaTime uint32
	Event     Event
}

// The decoded content of an SMF track chunk: the event stream in playback
// order.
type TrackChunk struct {
	Events []TrackEvent
}

// Decodes a track chunk's payload: a sequence of (delta-time, event) pairs
// consumed until the payload is exhausted. The loop's termination condition
// is running out of payload, not an end-of-track marker; a delta-time or
// event that runs past the end of the payload is an error.
func decodeTrackPayload(payload []byte) ([]TrackEvent, error) {
	// Most events take around 3 or 4 bytes.
	toReturn := make([]TrackEvent, 0, len(payload)/4)
	runningStatus := byte(0)
	for len(payload) > 0 {
		deltaTime, rest, e := DecodeVLQ(payload)
		if e != nil {
			return nil, fmt.Errorf("delta time for event %d: %w",
				len(toReturn), e)
		}
		event, rest, e := DecodeEvent(rest, &runningStatus)
		if e != nil {
			return nil, fmt.Errorf("event %d: %w", len(toReturn), e)
		}
		toReturn = append(toReturn, TrackEvent{
			DeltaTime: deltaTime,
			Event:     event,
		})
		payload = rest
	}
	return toReturn, nil
}

// Decodes a complete track chunk, envelope included, from the start of data.
// Returns the track and the unconsumed remainder. The chunk's tag must be
// "MTrk", and the event stream must add up to exactly the declared payload
// length.
func DecodeTrackChunk(data []byte) (*TrackChunk, []byte, error) {
	chunkType, payload, remainder, e := UnframeChunk(data)
	if e != nil {
		return nil, data, e
	}
	if chunkType != TrackChunkType {
		return nil, data, fmt.Errorf("expected chunk type %q, got %q: %w",
			TrackChunkType.String(), chunkType.String(), ErrUnknownChunkType)
	}
	events, e := decodeTrackPayload(payload)
	if e != nil {
		return nil, data, e
	}
	return &TrackChunk{
		Events: events,
	}, remainder, nil
}

// Encodes the track chunk, envelope included: each event's delta time and
// bytes concatenated in order, wrapped in an "MTrk" envelope. Encoding is
// canonical, so every event carries its status byte.
func (t *TrackChunk) Encode() ([]byte, error) {
	payload := make([]byte, 0, len(t.Events)*4)
	var e error
	for i := range t.Events {
		payload, e = AppendVLQ(payload, t.Events[i].DeltaTime)
		if e != nil {
			return nil, fmt.Errorf("delta time for event %d: %w", i, e)
		}
		if t.Events[i].Event == nil {
			return nil, fmt.Errorf("event %d is nil: %w", i, ErrInvalidValue)
		}
		payload, e = t.Events[i].Event.appendTo(payload)
		if e != nil {
			return nil, fmt.Errorf("event %d: %w", i, e)
		}
	}
	return FrameChunk(TrackChunkType, payload)
}
