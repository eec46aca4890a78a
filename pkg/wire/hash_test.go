package wire

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoubleSHA256KnownVector(t *testing.T) {
	// SHA256d("") per Bitcoin/Zcash lineage test vectors.
	got := DoubleSHA256(nil)
	assert.Equal(t, "5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9456", hex.EncodeToString(got[:]))
}

func TestMerkleRootSingleLeaf(t *testing.T) {
	leaf := DoubleSHA256([]byte("only transaction"))
	root, err := MerkleRoot([][32]byte{leaf})
	require.NoError(t, err)
	assert.Equal(t, leaf, root)
}

func TestMerkleRootDoublesOddLevel(t *testing.T) {
	a := DoubleSHA256([]byte("a"))
	b := DoubleSHA256([]byte("b"))
	c := DoubleSHA256([]byte("c"))

	root, err := MerkleRoot([][32]byte{a, b, c})
	require.NoError(t, err)

	ab := DoubleSHA256(append(append([]byte{}, a[:]...), b[:]...))
	cc := DoubleSHA256(append(append([]byte{}, c[:]...), c[:]...))
	want := DoubleSHA256(append(append([]byte{}, ab[:]...), cc[:]...))

	assert.Equal(t, want, root)
}

func TestMerkleRootEmptyIsError(t *testing.T) {
	_, err := MerkleRoot(nil)
	require.Error(t, err)
	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
}

func TestReverseHexRoundTrip(t *testing.T) {
	h := DoubleSHA256([]byte("round trip me"))
	disp := ReverseHex(h)
	back, err := HashFromHex(disp)
	require.NoError(t, err)
	assert.Equal(t, h, back)
}

func TestHash160Length(t *testing.T) {
	h := Hash160([]byte("a public key or script"))
	assert.Len(t, h, 20)
}
