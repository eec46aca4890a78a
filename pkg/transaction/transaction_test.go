package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleVin() *TransactionIn {
	return &TransactionIn{
		PrevTxID:  [32]byte{1, 2, 3},
		PrevIndex: 0,
		ScriptSig: []byte{0x51, 0x52},
		Sequence:  0xffffffff,
	}
}

func sampleVout() *TransactionOut {
	return &TransactionOut{
		Value:        5000000000,
		ScriptPubKey: []byte{0x76, 0xa9, 0x14},
	}
}

func sampleJoinSplit(useGroth bool) *JoinSplitDescription {
	js := &JoinSplitDescription{
		VPubOld: 10,
		VPubNew: 20,
	}
	if useGroth {
		var p GrothProof
		js.GrothZKProof = &p
	} else {
		js.PHGRZKProof = &PHGRProof{}
	}
	return js
}

func TestTransactionLegacyV1RoundTrip(t *testing.T) {
	tx := &Transaction{
		Shape:    ShapeLegacyV1,
		Version:  1,
		Vin:      []*TransactionIn{sampleVin()},
		Vout:     []*TransactionOut{sampleVout()},
		LockTime: 0,
	}

	encoded, err := tx.Encode()
	require.NoError(t, err)

	got, err := Decode(encoded, true)
	require.NoError(t, err)
	assert.Equal(t, ShapeLegacyV1, got.Shape)
	assert.Empty(t, got.JoinSplits)
	assert.False(t, got.HasJoinSplitSig)
	assert.Equal(t, tx.Vin[0].PrevTxID, got.Vin[0].PrevTxID)
}

func TestTransactionLegacyV2RoundTripWithJoinSplits(t *testing.T) {
	tx := &Transaction{
		Shape:           ShapeLegacyV2,
		Version:         2,
		Vin:             []*TransactionIn{sampleVin()},
		Vout:            []*TransactionOut{sampleVout()},
		LockTime:        500,
		JoinSplits:      []*JoinSplitDescription{sampleJoinSplit(false)},
		JoinSplitPubKey: [32]byte{9, 9, 9},
		JoinSplitSig:    [64]byte{7, 7, 7},
	}

	encoded, err := tx.Encode()
	require.NoError(t, err)

	got, err := Decode(encoded, true)
	require.NoError(t, err)
	assert.Equal(t, ShapeLegacyV2, got.Shape)
	require.Len(t, got.JoinSplits, 1)
	assert.NotNil(t, got.JoinSplits[0].PHGRZKProof)
	assert.Nil(t, got.JoinSplits[0].GrothZKProof)
	assert.Equal(t, tx.JoinSplitPubKey, got.JoinSplitPubKey)
	assert.Equal(t, tx.JoinSplitSig, got.JoinSplitSig)
}

// Overwinter v3 transactions carry joinsplits the same as legacy v2: only
// version 1 omits the joinsplit section entirely.
func TestTransactionOverwinterV3RoundTripWithJoinSplits(t *testing.T) {
	tx := &Transaction{
		Shape:           ShapeOverwinterV3,
		Overwintered:    true,
		Version:         3,
		VersionGroupID:  OverwinterVersionGroupID,
		Vin:             []*TransactionIn{sampleVin()},
		Vout:            []*TransactionOut{sampleVout()},
		LockTime:        100,
		ExpiryHeight:    200,
		JoinSplits:      []*JoinSplitDescription{sampleJoinSplit(false)},
		JoinSplitPubKey: [32]byte{1},
		JoinSplitSig:    [64]byte{2},
	}

	encoded, err := tx.Encode()
	require.NoError(t, err)

	got, err := Decode(encoded, true)
	require.NoError(t, err)
	assert.Equal(t, ShapeOverwinterV3, got.Shape)
	assert.Equal(t, uint32(200), got.ExpiryHeight)
	require.Len(t, got.JoinSplits, 1, "overwinter v3 must decode a non-empty joinsplit section")
	assert.NotNil(t, got.JoinSplits[0].PHGRZKProof, "overwinter v3 joinsplits use PHGR proofs, not Groth")
	assert.True(t, got.HasJoinSplitSig)
}

func TestTransactionOverwinterV3RoundTripWithoutJoinSplits(t *testing.T) {
	tx := &Transaction{
		Shape:          ShapeOverwinterV3,
		Overwintered:   true,
		Version:        3,
		VersionGroupID: OverwinterVersionGroupID,
		Vin:            []*TransactionIn{sampleVin()},
		Vout:           []*TransactionOut{sampleVout()},
		ExpiryHeight:   42,
	}

	encoded, err := tx.Encode()
	require.NoError(t, err)

	got, err := Decode(encoded, true)
	require.NoError(t, err)
	assert.Empty(t, got.JoinSplits)
	assert.False(t, got.HasJoinSplitSig)
}

func TestTransactionSaplingV4RoundTripShielded(t *testing.T) {
	tx := &Transaction{
		Shape:           ShapeSaplingV4,
		Overwintered:    true,
		Version:         4,
		VersionGroupID:  SaplingVersionGroupID,
		Vin:             []*TransactionIn{sampleVin()},
		Vout:            []*TransactionOut{sampleVout()},
		ExpiryHeight:    10,
		ValueBalance:    -100,
		ShieldedSpends:  []*SpendDescription{{}},
		ShieldedOutputs: []*OutputDescription{{}},
		BindingSig:      [64]byte{5, 5, 5},
		JoinSplits:      []*JoinSplitDescription{sampleJoinSplit(true)},
		JoinSplitPubKey: [32]byte{3},
		JoinSplitSig:    [64]byte{4},
	}

	encoded, err := tx.Encode()
	require.NoError(t, err)

	got, err := Decode(encoded, true)
	require.NoError(t, err)
	assert.Equal(t, ShapeSaplingV4, got.Shape)
	assert.Equal(t, int64(-100), got.ValueBalance)
	require.Len(t, got.ShieldedSpends, 1)
	require.Len(t, got.ShieldedOutputs, 1)
	assert.True(t, got.HasBindingSig)
	assert.Equal(t, tx.BindingSig, got.BindingSig)
	require.Len(t, got.JoinSplits, 1)
	assert.NotNil(t, got.JoinSplits[0].GrothZKProof, "sapling v4 joinsplits use Groth proofs")
}

func TestTransactionSaplingV4NoBindingSigWhenUnshielded(t *testing.T) {
	tx := &Transaction{
		Shape:          ShapeSaplingV4,
		Overwintered:   true,
		Version:        4,
		VersionGroupID: SaplingVersionGroupID,
		Vin:            []*TransactionIn{sampleVin()},
		Vout:           []*TransactionOut{sampleVout()},
		ExpiryHeight:   10,
	}

	encoded, err := tx.Encode()
	require.NoError(t, err)

	got, err := Decode(encoded, true)
	require.NoError(t, err)
	assert.False(t, got.HasBindingSig)
}

func TestDecodeStrictRejectsTrailingBytes(t *testing.T) {
	tx := &Transaction{Shape: ShapeLegacyV1, Version: 1}
	encoded, err := tx.Encode()
	require.NoError(t, err)

	_, err = Decode(append(encoded, 0xff), true)
	require.Error(t, err)

	got, err := Decode(append(encoded, 0xff), false)
	require.NoError(t, err)
	assert.Equal(t, ShapeLegacyV1, got.Shape)
}

func TestDecodeOneReportsConsumedLength(t *testing.T) {
	tx1 := &Transaction{Shape: ShapeLegacyV1, Version: 1, Vin: []*TransactionIn{sampleVin()}}
	tx2 := &Transaction{Shape: ShapeLegacyV1, Version: 1, Vout: []*TransactionOut{sampleVout()}}
	enc1, err := tx1.Encode()
	require.NoError(t, err)
	enc2, err := tx2.Encode()
	require.NoError(t, err)

	packed := append(append([]byte(nil), enc1...), enc2...)

	first, n, err := DecodeOne(packed)
	require.NoError(t, err)
	assert.Equal(t, len(enc1), n)

	second, n2, err := DecodeOne(packed[n:])
	require.NoError(t, err)
	assert.Equal(t, len(enc2), n2)
	assert.Len(t, first.Vin, 1)
	assert.Len(t, second.Vout, 1)
}

func TestIsCoinbase(t *testing.T) {
	coinbaseIn := &TransactionIn{PrevIndex: 0xffffffff}
	tx := &Transaction{Vin: []*TransactionIn{coinbaseIn}}
	assert.True(t, tx.IsCoinbase())

	normal := &Transaction{Vin: []*TransactionIn{sampleVin()}}
	assert.False(t, normal.IsCoinbase())

	multiIn := &Transaction{Vin: []*TransactionIn{coinbaseIn, sampleVin()}}
	assert.False(t, multiIn.IsCoinbase())
}

func TestShapeForUnknownCombinationErrors(t *testing.T) {
	_, err := shapeFor(false, 3, 0)
	require.Error(t, err)

	_, err = shapeFor(true, 4, 0xdeadbeef)
	require.Error(t, err)
}

func TestTxIDUsesRawBytesWhenAvailable(t *testing.T) {
	tx := &Transaction{Shape: ShapeLegacyV1, Version: 1, Vin: []*TransactionIn{sampleVin()}}
	encoded, err := tx.Encode()
	require.NoError(t, err)

	decoded, err := Decode(encoded, true)
	require.NoError(t, err)
	assert.Equal(t, encoded, decoded.rawBytes)

	reEncoded, err := decoded.Encode()
	require.NoError(t, err)
	assert.Equal(t, encoded, reEncoded)
	assert.NotEqual(t, [32]byte{}, decoded.TxID())
}
