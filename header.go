package smf

import (
	"encoding/binary"
	"fmt"
)

// This file contains the header ("MThd") chunk codec.

// The SMF format code declared by the header chunk.
type Format uint16

const (
	// Format 0: the file contains a single multi-channel track.
	SingleMultiChannelTrack Format = 0
	// Format 1: one or more simultaneous tracks of a single sequence.
	OneOrMoreSimultaneousTracks Format = 1
	// Format 2: one or more independent single-track sequences.
	OneOrMoreIndependentTracks Format = 2
)

// Validates that v is one of the three legal format codes and returns it as a
// Format.
func NewFormat(v uint16) (Format, error) {
	switch Format(v) {
	case SingleMultiChannelTrack, OneOrMoreSimultaneousTracks,
		OneOrMoreIndependentTracks:
		return Format(v), nil
	}
	return 0, fmt.Errorf("format code %d: %w", v, ErrInvalidValue)
}

func (f Format) String() string {
	switch f {
	case SingleMultiChannelTrack:
		return "format 0 (single multi-channel track)"
	case OneOrMoreSimultaneousTracks:
		return "format 1 (one or more simultaneous tracks)"
	case OneOrMoreIndependentTracks:
		return "format 2 (one or more independent tracks)"
	}
	return fmt.Sprintf("invalid format code %d", uint16(f))
}

// The size of a header chunk's payload, pinned by the format.
const headerPayloadSize = 6

// The decoded content of an SMF header chunk.
type HeaderChunk struct {
	Format   Format
	NTracks  NTracks
	Division Division
}

// Validates the given fields and returns the header chunk they describe.
// Every field is re-validated, so cast-constructed values are caught here
// rather than producing a header that won't encode.
func NewHeaderChunk(format Format, ntracks NTracks, division Division) (
	*HeaderChunk, error) {
	f, e := NewFormat(uint16(format))
	if e != nil {
		return nil, e
	}
	n, e := NewNTracks(uint16(ntracks))
	if e != nil {
		return nil, e
	}
	if division == nil {
		return nil, fmt.Errorf("division must not be nil: %w", ErrInvalidValue)
	}
	if e = division.validate(); e != nil {
		return nil, fmt.Errorf("division: %w", e)
	}
	return &HeaderChunk{
		Format:   f,
		NTracks:  n,
		Division: division,
	}, nil
}

func (h *HeaderChunk) String() string {
	return fmt.Sprintf("%s, %d track(s), %s", h.Format, uint16(h.NTracks),
		h.Division)
}

// Decodes the fixed 6-byte payload of a header chunk. The payload's length
// must be exactly 6, even though the envelope already carried a length field.
func decodeHeaderPayload(payload []byte) (*HeaderChunk, error) {
	if len(payload) != headerPayloadSize {
		return nil, fmt.Errorf("header payload is %d bytes, must be %d: %w",
			len(payload), headerPayloadSize, ErrBadChunkLength)
	}
	format, e := NewFormat(binary.BigEndian.Uint16(payload[0:2]))
	if e != nil {
		return nil, fmt.Errorf("header format: %w", e)
	}
	ntracks, e := NewNTracks(binary.BigEndian.Uint16(payload[2:4]))
	if e != nil {
		return nil, fmt.Errorf("header track count: %w", e)
	}
	division, e := DecodeDivision(binary.BigEndian.Uint16(payload[4:6]))
	if e != nil {
		return nil, fmt.Errorf("header division: %w", e)
	}
	return &HeaderChunk{
		Format:   format,
		NTracks:  ntracks,
		Division: division,
	}, nil
}

// Decodes a complete header chunk, envelope included, from the start of
// data. Returns the header and the unconsumed remainder. The chunk's tag must
// be "MThd" and its declared length must be 6.
func DecodeHeaderChunk(data []byte) (*HeaderChunk, []byte, error) {
	chunkType, payload, remainder, e := UnframeChunk(data)
	if e != nil {
		return nil, data, e
	}
	if chunkType != HeaderChunkType {
		return nil, data, fmt.Errorf("expected chunk type %q, got %q: %w",
			HeaderChunkType.String(), chunkType.String(), ErrUnknownChunkType)
	}
	toReturn, e := decodeHeaderPayload(payload)
	if e != nil {
		return nil, data, e
	}
	return toReturn, remainder, nil
}

// Encodes the header chunk, envelope included. The result is always 14
// bytes.
func (h *HeaderChunk) Encode() ([]byte, error) {
	if _, e := NewFormat(uint16(h.Format)); e != nil {
		return nil, e
	}
	if _, e := NewNTracks(uint16(h.NTracks)); e != nil {
		return nil, e
	}
	if h.Division == nil {
		return nil, fmt.Errorf("division must not be nil: %w", ErrInvalidValue)
	}
	if e := h.Division.validate(); e != nil {
		return nil, fmt.Errorf("division: %w", e)
	}
	payload := make([]byte, 0, headerPayloadSize)
	payload = binary.BigEndian.AppendUint16(payload, uint16(h.Format))
	payload = binary.BigEndian.AppendUint16(payload, uint16(h.NTracks))
	payload = binary.BigEndian.AppendUint16(payload,
		EncodeDivision(h.Division))
	return FrameChunk(HeaderChunkType, payload)
}
