package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRoundTrip(t *testing.T) {
	r := NewRegistry()
	r.Register("uint32",
		func(c *Cursor, strict bool) (any, error) { return c.Uint32LE() },
		func(w *Writer, v any) error {
			w.Uint32LE(v.(uint32))
			return nil
		},
	)

	encoded, err := r.EncodeType("uint32", uint32(42))
	require.NoError(t, err)

	decoded, err := r.DecodeType("uint32", encoded, true)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), decoded)
}

func TestRegistryUnknownType(t *testing.T) {
	r := NewRegistry()
	_, err := r.DecodeType("nope", []byte{}, true)
	require.Error(t, err)
	_, err = r.EncodeType("nope", nil)
	require.Error(t, err)
}

func TestRegistryDecodeTypeStrictRejectsTrailingBytes(t *testing.T) {
	r := NewRegistry()
	r.Register("uint32",
		func(c *Cursor, strict bool) (any, error) { return c.Uint32LE() },
		func(w *Writer, v any) error {
			w.Uint32LE(v.(uint32))
			return nil
		},
	)

	encoded, err := r.EncodeType("uint32", uint32(42))
	require.NoError(t, err)
	withTrailer := append(encoded, 0xff)

	_, err = r.DecodeType("uint32", withTrailer, true)
	require.Error(t, err)

	decoded, err := r.DecodeType("uint32", withTrailer, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), decoded)
}
