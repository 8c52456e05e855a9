package qlearn

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeFull(t *testing.T) {
	tab := NewTable[int, string]()
	tab.Set(1, "a", 0.2)
	tab.Set(1, "b", 0.9)
	tab.Set(2, "c", -0.4)

	blob, err := tab.Encode(false)
	require.NoError(t, err)

	got, err := Decode[int, string](blob)
	require.NoError(t, err)

	assert.Equal(t, tab.Len(), got.Len())
	for _, st := range []int{1, 2} {
		for _, a := range []string{"a", "b", "c"} {
			want, wok := tab.Get(st, a)
			v, ok := got.Get(st, a)
			assert.Equal(t, wok, ok)
			assert.Equal(t, want, v, "state %d action %q", st, a)
		}
	}
}

func TestEncodeDecodeReduced(t *testing.T) {
	tab := NewTable[int, string]()
	tab.Set(1, "a", 0.2)
	tab.Set(1, "b", 0.9)

	blob, err := tab.Encode(true)
	require.NoError(t, err)

	got, err := Decode[int, string](blob)
	require.NoError(t, err)

	// Only the greedy choice survives; the runner-up is gone.
	a, _, ok := got.BestAction(1)
	require.True(t, ok)
	assert.Equal(t, "b", a)
	_, ok = got.Get(1, "a")
	assert.False(t, ok)
}

func TestDecodeCorruptBlob(t *testing.T) {
	_, err := Decode[int, string]([]byte("not a model"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptModel))
}

func TestDecodeVersionMismatch(t *testing.T) {
	m := blobModel[int, string]{Version: blobVersion + 1}
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(m))

	_, err := Decode[int, string](buf.Bytes())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptModel))
}
