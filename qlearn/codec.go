package qlearn

import (
	"bytes"
	"encoding/gob"

	"github.com/pkg/errors"
)

// ErrCorruptModel is returned when a serialized model cannot be decoded.
var ErrCorruptModel = errors.New("could not load model")

// blobVersion tags the serialized layout. A decoded blob with a
// different version is rejected rather than misread.
const blobVersion = 1

// blobModel is the on-disk shape of a serialized table. Exactly one of
// Entries (full table) or Best (reduced greedy policy) is populated.
type blobModel[S comparable, A comparable] struct {
	Version int
	Reduced bool
	Entries map[S]map[A]float64
	Best    map[S]A
}

// Encode serializes the table to an opaque binary blob. With reduced
// set, only the greedy state→action map is stored, which is much
// smaller but loses value magnitudes. The full path is lossless:
// decoding reproduces every entry exactly.
func (t *Table[S, A]) Encode(reduced bool) ([]byte, error) {
	m := blobModel[S, A]{Version: blobVersion, Reduced: reduced}
	if reduced {
		m.Best = t.Reduce()
	} else {
		m.Entries = t.entries
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m); err != nil {
		return nil, errors.Wrap(err, "encode model")
	}
	return buf.Bytes(), nil
}

// Decode deserializes a blob produced by Encode. Corrupt data and
// version mismatches are reported as ErrCorruptModel; they are never
// silently turned into an empty table.
func Decode[S comparable, A comparable](blob []byte) (*Table[S, A], error) {
	var m blobModel[S, A]
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&m); err != nil {
		return nil, errors.Wrapf(ErrCorruptModel, "decode: %v", err)
	}
	if m.Version != blobVersion {
		return nil, errors.Wrapf(ErrCorruptModel, "unsupported model version %d", m.Version)
	}

	if m.Reduced {
		return FromReduced(m.Best), nil
	}
	t := NewTable[S, A]()
	for s, actions := range m.Entries {
		for a, v := range actions {
			t.Set(s, a, v)
		}
	}
	return t, nil
}
