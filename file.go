package smf

import (
	"fmt"
	"io"
)

// This file contains the whole-file layer: a header chunk followed by the
// number of track chunks the header declares.

// Holds an entire SMF file: its header chunk and its track chunks.
type SMFFile struct {
	Header *HeaderChunk
	Tracks []*TrackChunk
}

// Decodes a complete SMF file from data: one header chunk, then exactly as
// many track chunks as the header declares. Bytes remaining after the final
// track are an error.
func DecodeSMFFile(data []byte) (*SMFFile, error) {
	header, remainder, e := DecodeHeaderChunk(data)
	if e != nil {
		return nil, fmt.Errorf("parsing SMF header: %w", e)
	}
	tracks := make([]*TrackChunk, uint16(header.NTracks))
	for i := range tracks {
		tracks[i], remainder, e = DecodeTrackChunk(remainder)
		if e != nil {
			return nil, fmt.Errorf("parsing SMF track %d: %w", i, e)
		}
	}
	if len(remainder) != 0 {
		return nil, fmt.Errorf("%d bytes after track %d: %w", len(remainder),
			len(tracks)-1, ErrTrailingBytes)
	}
	return &SMFFile{
		Header: header,
		Tracks: tracks,
	}, nil
}

// Reads all of r into memory and decodes it as an SMF file. The codec itself
// never streams across I/O boundaries; this is the one convenience wrapper
// over DecodeSMFFile.
func ParseSMFFile(r io.Reader) (*SMFFile, error) {
	data, e := io.ReadAll(r)
	if e != nil {
		return nil, fmt.Errorf("reading input: %w", e)
	}
	return DecodeSMFFile(data)
}

// Encodes the entire file: the header chunk followed by every track chunk.
// The header's declared track count must match the number of tracks present.
func (f *SMFFile) Encode() ([]byte, error) {
	if f.Header == nil {
		return nil, fmt.Errorf("file has no header chunk: %w", ErrInvalidValue)
	}
	if int(uint16(f.Header.NTracks)) != len(f.Tracks) {
		return nil, fmt.Errorf("header declares %d tracks but file has %d: "+
			"%w", uint16(f.Header.NTracks), len(f.Tracks), ErrValueOutOfRange)
	}
	toReturn, e := f.Header.Encode()
	if e != nil {
		return nil, fmt.Errorf("encoding SMF header: %w", e)
	}
	for i, t := range f.Tracks {
		trackBytes, e := t.Encode()
		if e != nil {
			return nil, fmt.Errorf("encoding SMF track %d: %w", i, e)
		}
		toReturn = append(toReturn, trackBytes...)
	}
	return toReturn, nil
}

// Encodes the file and writes the bytes to w.
func (f *SMFFile) WriteToFile(w io.Writer) error {
	data, e := f.Encode()
	if e != nil {
		return e
	}
	_, e = w.Write(data)
	if e != nil {
		return fmt.Errorf("writing SMF file: %w", e)
	}
	return nil
}
