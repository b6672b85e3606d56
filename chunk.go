package smf

import (
	"encoding/binary"
	"fmt"
)

// This file contains the generic chunk envelope shared by every SMF chunk: a
// 4-byte ASCII type tag followed by a 4-byte big-endian payload length.

// The 4-byte tag identifying a chunk's type.
type ChunkType [4]byte

var (
	// The tag of the header chunk.
	HeaderChunkType = ChunkType{'M', 'T', 'h', 'd'}
	// The tag of a track chunk.
	TrackChunkType = ChunkType{'M', 'T', 'r', 'k'}
)

func (c ChunkType) String() string {
	return string(c[:])
}

// The size of the envelope itself: the tag plus the length field.
const chunkEnvelopeSize = 8

// Wraps payload in a chunk envelope with the given type tag: the tag, the
// payload's length as a big-endian uint32, and the payload itself. Returns
// ErrBadChunkLength if the payload is too large for the 32-bit length field.
func FrameChunk(chunkType ChunkType, payload []byte) ([]byte, error) {
	if uint64(len(payload)) > 0xffffffff {
		return nil, fmt.Errorf("payload of %d bytes doesn't fit a 32-bit "+
			"length field: %w", len(payload), ErrBadChunkLength)
	}
	toReturn := make([]byte, 0, chunkEnvelopeSize+len(payload))
	toReturn = append(toReturn, chunkType[:]...)
	toReturn = binary.BigEndian.AppendUint32(toReturn, uint32(len(payload)))
	return append(toReturn, payload...), nil
}

// Reads one chunk envelope from the start of data, returning the chunk's
// type, its payload, and the unconsumed remainder. Returns ErrNotEnoughBytes
// if fewer than 8 bytes are available for the envelope, or fewer bytes than
// the declared length remain for the payload. Returns ErrUnknownChunkType if
// the tag is neither "MThd" nor "MTrk"; dispatching on which of the two it
// was is the caller's job.
func UnframeChunk(data []byte) (ChunkType, []byte, []byte, error) {
	var chunkType ChunkType
	if len(data) < chunkEnvelopeSize {
		return chunkType, nil, data, fmt.Errorf("reading chunk envelope: %w",
			ErrNotEnoughBytes)
	}
	copy(chunkType[:], data[0:4])
	if (chunkType != HeaderChunkType) && (chunkType != TrackChunkType) {
		return chunkType, nil, data, fmt.Errorf("chunk type %q: %w",
			chunkType.String(), ErrUnknownChunkType)
	}
	length := binary.BigEndian.Uint32(data[4:8])
	body := data[chunkEnvelopeSize:]
	if uint64(len(body)) < uint64(length) {
		return chunkType, nil, data, fmt.Errorf("chunk %q declares %d payload "+
			"bytes but only %d remain: %w", chunkType.String(), length,
			len(body), ErrNotEnoughBytes)
	}
	return chunkType, body[:length], body[length:], nil
}
