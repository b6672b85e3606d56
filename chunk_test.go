package smf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameChunk(t *testing.T) {
	payload := []byte{1, 2, 3}
	framed, e := FrameChunk(TrackChunkType, payload)
	assert.NoError(t, e)
	assert.Equal(t, []byte{'M', 'T', 'r', 'k', 0, 0, 0, 3, 1, 2, 3}, framed)

	chunkType, unframedPayload, remainder, e := UnframeChunk(framed)
	assert.NoError(t, e)
	assert.Equal(t, TrackChunkType, chunkType)
	assert.Equal(t, payload, unframedPayload)
	assert.Empty(t, remainder)
}

func TestUnframeChunkRemainder(t *testing.T) {
	data := []byte{'M', 'T', 'h', 'd', 0, 0, 0, 2, 0xaa, 0xbb, 0xcc, 0xdd}
	chunkType, payload, remainder, e := UnframeChunk(data)
	assert.NoError(t, e)
	assert.Equal(t, HeaderChunkType, chunkType)
	assert.Equal(t, []byte{0xaa, 0xbb}, payload)
	assert.Equal(t, []byte{0xcc, 0xdd}, remainder)
}

func TestUnframeChunkErrors(t *testing.T) {
	// Fewer than 8 bytes for the envelope itself.
	_, _, _, e := UnframeChunk([]byte{'M', 'T', 'r', 'k', 0, 0, 0})
	if !errors.Is(e, ErrNotEnoughBytes) {
		t.Logf("Didn't get expected error for a short envelope, got %v\n", e)
		t.FailNow()
	}
	// A tag that's neither MThd nor MTrk.
	_, _, _, e = UnframeChunk([]byte{'R', 'I', 'F', 'F', 0, 0, 0, 0})
	if !errors.Is(e, ErrUnknownChunkType) {
		t.Logf("Didn't get expected error for an unknown tag, got %v\n", e)
		t.FailNow()
	}
	// A declared length running past the end of the buffer.
	_, _, _, e = UnframeChunk([]byte{'M', 'T', 'r', 'k', 0, 0, 0, 9, 1, 2, 3})
	if !errors.Is(e, ErrNotEnoughBytes) {
		t.Logf("Didn't get expected error for a truncated payload, got "+
			"%v\n", e)
		t.FailNow()
	}
}

func TestCorruptedLengthField(t *testing.T) {
	framed, e := FrameChunk(TrackChunkType, []byte{1, 2, 3, 4})
	assert.NoError(t, e)
	// Too long relative to the buffer: not enough bytes.
	framed[7] = 200
	_, _, _, e = UnframeChunk(framed)
	assert.ErrorIs(t, e, ErrNotEnoughBytes)
	// Too short but fits: the surplus shows up in the remainder, for the
	// caller to reject.
	framed[7] = 2
	_, payload, remainder, e := UnframeChunk(framed)
	assert.NoError(t, e)
	assert.Equal(t, []byte{1, 2}, payload)
	assert.Equal(t, []byte{3, 4}, remainder)
}
