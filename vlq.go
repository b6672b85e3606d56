// This package defines a codec for the Standard MIDI File (SMF) binary
// format: it decodes a byte buffer into a structured, validated in-memory
// representation and encodes that representation back into bytes. The
// smf_tool directory contains a command-line interface that exposes most of
// the library's features.
//
// The codec never touches a file or device itself; callers hand it a
// contiguous byte slice (see ParseSMFFile for the io.Reader convenience
// wrapper) and get back either a typed value or a typed error.
package smf

import (
	"fmt"
)

// MaxVLQ is the largest integer representable as a MIDI variable-length
// quantity: 28 bits, i.e. four bytes of seven payload bits each.
const MaxVLQ = 0x0fffffff

// Appends the variable-length-quantity encoding of n to dst and returns the
// extended slice. The encoding is canonical: 1 to 4 bytes, most-significant
// group first, no leading zero groups, with the top bit of every byte except
// the last set as a continuation flag. Returns ErrVLQRange if n exceeds
// MaxVLQ.
func AppendVLQ(dst []byte, n uint32) ([]byte, error) {
	if n > MaxVLQ {
		return dst, fmt.Errorf("0x%08x: %w", n, ErrVLQRange)
	}
	// Break the number into 7-bit groups, least significant first, then emit
	// them in reverse with the continuation bit on all but the final group.
	var groups [4]byte
	count := 0
	for {
		groups[count] = byte(n & 0x7f)
		count++
		n >>= 7
		if n == 0 {
			break
		}
	}
	for i := count - 1; i > 0; i-- {
		dst = append(dst, groups[i]|0x80)
	}
	return append(dst, groups[0]), nil
}

// Returns the variable-length-quantity encoding of n, or ErrVLQRange if n
// exceeds MaxVLQ.
func EncodeVLQ(n uint32) ([]byte, error) {
	return AppendVLQ(make([]byte, 0, 4), n)
}

// Reads a variable-length quantity from the start of data, returning the
// value and the unconsumed remainder. At most four bytes are read; the 28-bit
// cap means a fourth byte is always final, so its continuation bit is
// ignored. Returns ErrNotEnoughBytes if data is exhausted before a
// terminating byte is found.
func DecodeVLQ(data []byte) (uint32, []byte, error) {
	toReturn := uint32(0)
	for i := 0; i < 4; i++ {
		if i >= len(data) {
			return 0, data, fmt.Errorf("reading variable-length quantity: %w",
				ErrNotEnoughBytes)
		}
		b := data[i]
		toReturn = (toReturn << 7) | uint32(b&0x7f)
		if (b&0x80) == 0 || i == 3 {
			return toReturn, data[i+1:], nil
		}
	}
	// Unreachable; the loop always returns by its fourth iteration.
	return 0, data, fmt.Errorf("reading variable-length quantity: %w",
		ErrNotEnoughBytes)
}
