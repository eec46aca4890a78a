package porcelain

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zcblock/pkg/block"
	"zcblock/pkg/transaction"
	"zcblock/pkg/wire"
)

func TestFormatCoin(t *testing.T) {
	assert.Equal(t, 1.0, FormatCoin(wire.Coin))
	assert.Equal(t, 0.5, FormatCoin(wire.Coin/2))
	assert.Equal(t, -0.5, FormatCoin(-wire.Coin/2))
}

func TestFormatBitsAndVersionGroupID(t *testing.T) {
	assert.Equal(t, "1d00ffff", FormatBits(0x1d00ffff))
	assert.Equal(t, "03c48270", FormatVersionGroupID(transaction.OverwinterVersionGroupID))
}

func TestEncodeAddressPubKeyHash(t *testing.T) {
	var hash [20]byte
	for i := range hash {
		hash[i] = byte(i)
	}
	addr := PubKeyHashAddress(hash)
	assert.NotEmpty(t, addr)
	assert.NotEqual(t, addr, ScriptHashAddress(hash))
}

func TestClassifyScriptNullData(t *testing.T) {
	info := ClassifyScript([]byte{0x6a, 0x02, 0xde, 0xad})
	assert.Equal(t, "nulldata", info.Type)
}

func TestClassifyScriptUnparseable(t *testing.T) {
	info := ClassifyScript([]byte{0xff, 0xff, 0xff})
	assert.Equal(t, "nonstandard", info.Type)
}

// secp256k1GeneratorCompressed is the standard generator point G in
// compressed form, a valid curve point usable in any script requiring a
// well-formed pubkey.
const secp256k1GeneratorCompressed = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func TestClassifyScriptPubKeyExtractsAddress(t *testing.T) {
	pubkey, err := hex.DecodeString(secp256k1GeneratorCompressed)
	require.NoError(t, err)
	script := append([]byte{byte(len(pubkey))}, pubkey...)
	script = append(script, 0xac) // OP_CHECKSIG

	info := ClassifyScript(script)
	assert.Equal(t, "pubkey", info.Type)
	require.Len(t, info.Addresses, 1)
	assert.Equal(t, PubKeyHashAddress(wire.Hash160(pubkey)), info.Addresses[0])
}

func TestClassifyScriptMultiSigExtractsAddresses(t *testing.T) {
	pubkey, err := hex.DecodeString(secp256k1GeneratorCompressed)
	require.NoError(t, err)

	script := []byte{0x51} // OP_1 (required signatures)
	script = append(script, byte(len(pubkey)))
	script = append(script, pubkey...)
	script = append(script, 0x51) // OP_1 (total keys)
	script = append(script, 0xae) // OP_CHECKMULTISIG

	info := ClassifyScript(script)
	assert.Equal(t, "multisig", info.Type)
	assert.Equal(t, 1, info.ReqSigs)
	require.Len(t, info.Addresses, 1)
	assert.Equal(t, PubKeyHashAddress(wire.Hash160(pubkey)), info.Addresses[0])
}

func buildSaplingTx() *transaction.Transaction {
	return &transaction.Transaction{
		Shape:          transaction.ShapeSaplingV4,
		Overwintered:   true,
		Version:        4,
		VersionGroupID: transaction.SaplingVersionGroupID,
		Vin: []*transaction.TransactionIn{{
			PrevIndex: 0xffffffff,
			ScriptSig: []byte{0x03, 0x01, 0x02, 0x03},
			Sequence:  0xffffffff,
		}},
		Vout: []*transaction.TransactionOut{{
			Value:        1250000000,
			ScriptPubKey: []byte{0x76, 0xa9, 0x14, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 0x88, 0xac},
		}},
		ExpiryHeight:    100,
		ValueBalance:    -500000,
		ShieldedSpends:  []*transaction.SpendDescription{{}},
		ShieldedOutputs: []*transaction.OutputDescription{{}},
		BindingSig:      [64]byte{1, 2, 3},
	}
}

func TestTransactionPorcelainRoundTripSapling(t *testing.T) {
	tx := buildSaplingTx()

	p, err := TransactionToPorcelain(tx)
	require.NoError(t, err)
	assert.Equal(t, "892f2085", p["versiongroupid"])
	assert.Equal(t, uint32(100), p["expiryheight"])

	got, err := TransactionFromPorcelain(p)
	require.NoError(t, err)
	assert.Equal(t, transaction.ShapeSaplingV4, got.Shape)
	assert.Equal(t, tx.VersionGroupID, got.VersionGroupID)
	assert.Equal(t, tx.ExpiryHeight, got.ExpiryHeight)
	assert.Equal(t, tx.ValueBalance, got.ValueBalance)
	assert.True(t, got.HasBindingSig)
	require.Len(t, got.ShieldedSpends, 1)
	require.Len(t, got.ShieldedOutputs, 1)
	assert.True(t, got.Vin[0].IsCoinbasePrevout())
}

func buildOverwinterJoinSplitTx() *transaction.Transaction {
	var p transaction.PHGRProof
	return &transaction.Transaction{
		Shape:          transaction.ShapeOverwinterV3,
		Overwintered:   true,
		Version:        3,
		VersionGroupID: transaction.OverwinterVersionGroupID,
		Vin: []*transaction.TransactionIn{{
			PrevTxID:  [32]byte{9},
			PrevIndex: 1,
			ScriptSig: []byte{0x51},
			Sequence:  0xfffffffe,
		}},
		Vout: []*transaction.TransactionOut{{
			Value:        100000,
			ScriptPubKey: []byte{0x6a},
		}},
		ExpiryHeight: 50,
		JoinSplits: []*transaction.JoinSplitDescription{{
			VPubOld:     1000,
			VPubNew:     2000,
			PHGRZKProof: &p,
		}},
		JoinSplitPubKey: [32]byte{7},
		JoinSplitSig:    [64]byte{8},
		HasJoinSplitSig: true,
	}
}

func TestTransactionPorcelainRoundTripOverwinterWithJoinSplit(t *testing.T) {
	tx := buildOverwinterJoinSplitTx()

	p, err := TransactionToPorcelain(tx)
	require.NoError(t, err)
	js, ok := p["vjoinsplit"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, js, 1, "overwinter v3 joinsplits must survive porcelain rendering")

	got, err := TransactionFromPorcelain(p)
	require.NoError(t, err)
	require.Len(t, got.JoinSplits, 1)
	assert.NotNil(t, got.JoinSplits[0].PHGRZKProof)
	assert.Nil(t, got.JoinSplits[0].GrothZKProof)
	assert.True(t, got.HasJoinSplitSig)
	assert.Equal(t, tx.JoinSplitPubKey, got.JoinSplitPubKey)
}

func TestBlockPorcelainModeHeaderOmitsTx(t *testing.T) {
	blk := &block.Block{
		Header: block.Header{
			Version:  4,
			Bits:     0x1d00ffff,
			Time:     1600000000,
			Solution: make([]byte, 1344),
		},
	}

	p, err := BlockToPorcelain(blk, BlockModeHeader)
	require.NoError(t, err)
	_, hasTx := p["tx"]
	assert.False(t, hasTx)
	_, hasSize := p["size"]
	assert.False(t, hasSize, "header mode reports no tx and no size")
	assert.Equal(t, "1d00ffff", p["bits"])
}

func TestBlockPorcelainMinModeIncludesSize(t *testing.T) {
	tx := buildSaplingTx()
	blk := &block.Block{
		Header:       block.Header{Bits: 0x1d00ffff, Solution: make([]byte, 1344)},
		Transactions: []*transaction.Transaction{tx},
	}

	p, err := BlockToPorcelain(blk, BlockModeMin)
	require.NoError(t, err)
	_, hasSize := p["size"]
	assert.True(t, hasSize)
}

func TestBlockPorcelainModeMinListsTxids(t *testing.T) {
	tx := buildSaplingTx()
	blk := &block.Block{
		Header:       block.Header{Bits: 0x1d00ffff, Solution: make([]byte, 1344)},
		Transactions: []*transaction.Transaction{tx},
	}

	p, err := BlockToPorcelain(blk, BlockModeMin)
	require.NoError(t, err)
	txList, ok := p["tx"].([]any)
	require.True(t, ok)
	require.Len(t, txList, 1)
	_, isString := txList[0].(string)
	assert.True(t, isString)
}

func TestBlockPorcelainRoundTripDefaultMode(t *testing.T) {
	tx := buildSaplingTx()
	blk := &block.Block{
		Header: block.Header{
			Version:          4,
			PrevBlock:        [32]byte{1},
			MerkleRoot:       [32]byte{2},
			FinalSaplingRoot: [32]byte{3},
			Time:             1600000000,
			Bits:             0x1d00ffff,
			Nonce:            [32]byte{4},
			Solution:         make([]byte, 1344),
		},
		Transactions: []*transaction.Transaction{tx},
	}

	p, err := BlockToPorcelain(blk, BlockModeDefault)
	require.NoError(t, err)

	got, err := BlockFromPorcelain(p)
	require.NoError(t, err)
	assert.Equal(t, blk.Header.Version, got.Header.Version)
	assert.Equal(t, blk.Header.MerkleRoot, got.Header.MerkleRoot)
	assert.Equal(t, blk.Header.Bits, got.Header.Bits, "bits must round-trip through its hex rendering without byte-swapping")
	assert.Equal(t, blk.Header.Nonce, got.Header.Nonce)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, tx.VersionGroupID, got.Transactions[0].VersionGroupID)
}

func TestBlockFromPorcelainRejectsMinModeTxList(t *testing.T) {
	zeroHash32 := strings.Repeat("00", 32)
	p := map[string]any{
		"merkleroot": zeroHash32,
		"nonce":      zeroHash32,
		"solution":   "",
		"bits":       "1d00ffff",
		"tx":         []any{"deadbeef"},
	}
	_, err := BlockFromPorcelain(p)
	require.Error(t, err)
}

func TestBlockToPorcelainOmitsPreviousBlockHashAtGenesis(t *testing.T) {
	tx := buildSaplingTx()
	blk := &block.Block{
		Header: block.Header{
			MerkleRoot: [32]byte{9},
			Nonce:      [32]byte{1},
			Bits:       0x1f07ffff,
			Solution:   make([]byte, 1344),
		},
		Transactions: []*transaction.Transaction{tx},
	}

	p, err := BlockToPorcelain(blk, BlockModeHeader)
	require.NoError(t, err)
	_, hasPrev := p["previousblockhash"]
	assert.False(t, hasPrev)
}
