// Package packed provides memory efficient keys for sequences of canonical stacks.
package packed

import (
	"encoding/binary"
	"errors"
)

var errTruncated = errors.New("truncated packed key")

// Identifier is implemented by canonical values carrying a process unique ID.
type Identifier interface {
	ID() uint32
}

// Key is a compressed representation of a sequence of IDs. IDs are stored as
// unsigned varints, so small IDs take a single byte and the sequence length
// is implied by the encoding.
type Key string

// Pack returns the key of the ID sequence of values.
func Pack[S Identifier](values []S) Key {
	b := make([]byte, 0, len(values)*2)
	for _, v := range values {
		b = binary.AppendUvarint(b, uint64(v.ID()))
	}
	return Key(b)
}

// PackIDs returns the key of ids.
func PackIDs(ids []uint32) Key {
	b := make([]byte, 0, len(ids)*2)
	for _, id := range ids {
		b = binary.AppendUvarint(b, uint64(id))
	}
	return Key(b)
}

// Unpack returns the ID sequence stored in k.
func Unpack(k Key) ([]uint32, error) {
	var ids []uint32
	b := []byte(k)
	for len(b) > 0 {
		id, n := binary.Uvarint(b)
		if n <= 0 {
			return nil, errTruncated
		}
		ids = append(ids, uint32(id))
		b = b[n:]
	}
	return ids, nil
}
