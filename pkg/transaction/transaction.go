package transaction

import (
	"zcblock/pkg/wire"
)

// Shape identifies one of the four transaction wire layouts this library
// understands. Every other combination of overwintered/version/
// versiongroupid is a decode error.
type Shape int

const (
	// ShapeLegacyV1 is a pre-Overwinter transaction with no joinsplits.
	ShapeLegacyV1 Shape = iota
	// ShapeLegacyV2 is a pre-Overwinter transaction carrying Sprout joinsplits.
	ShapeLegacyV2
	// ShapeOverwinterV3 is an Overwinter transaction (ZIP 202).
	ShapeOverwinterV3
	// ShapeSaplingV4 is a Sapling transaction (ZIP 243) with shielded I/O.
	ShapeSaplingV4
)

// OverwinterVersionGroupID and SaplingVersionGroupID are the only
// versiongroupid values this decoder accepts for overwintered transactions.
const (
	OverwinterVersionGroupID uint32 = 0x03C48270
	SaplingVersionGroupID    uint32 = 0x892F2085
)

const overwinteredBit uint32 = 1 << 31

// Transaction is a decoded Zcash transaction spanning any of the four
// supported wire shapes. Fields that a given shape does not carry are left
// at their zero value.
type Transaction struct {
	Shape          Shape
	Overwintered   bool
	Version        int32
	VersionGroupID uint32

	Vin  []*TransactionIn
	Vout []*TransactionOut

	LockTime     uint32
	ExpiryHeight uint32 // ShapeOverwinterV3, ShapeSaplingV4 only

	ValueBalance    int64 // ShapeSaplingV4 only, zatoshis
	ShieldedSpends  []*SpendDescription
	ShieldedOutputs []*OutputDescription

	JoinSplits      []*JoinSplitDescription
	JoinSplitPubKey [32]byte
	JoinSplitSig    [64]byte
	HasJoinSplitSig bool
	BindingSig      [64]byte
	HasBindingSig   bool

	// rawBytes captures the exact bytes decoded, for TxID without re-encoding.
	rawBytes []byte
}

// shapeFor determines which wire shape a given overwintered/version/
// versiongroupid combination corresponds to, or reports a decode error.
func shapeFor(overwintered bool, version int32, versionGroupID uint32) (Shape, error) {
	switch {
	case !overwintered && version == 1:
		return ShapeLegacyV1, nil
	case !overwintered && version == 2:
		return ShapeLegacyV2, nil
	case overwintered && version == 3 && versionGroupID == OverwinterVersionGroupID:
		return ShapeOverwinterV3, nil
	case overwintered && version == 4 && versionGroupID == SaplingVersionGroupID:
		return ShapeSaplingV4, nil
	default:
		return 0, &wire.UnknownShapeError{Overwintered: overwintered, Version: version, VersionGroupID: versionGroupID}
	}
}

// useGrothProofs reports whether this shape's joinsplits (if any) are
// Groth16-proved rather than the pre-Sapling PHGR format. Sapling v4 always
// uses Groth; legacy v2 and Overwinter v3 always use PHGR.
func (s Shape) useGrothProofs() bool {
	return s == ShapeSaplingV4
}

// Decode parses a single transaction from its consensus-serialized wire
// bytes. When strict is true, every byte of data must belong to the
// transaction; trailing bytes are a decode error.
func Decode(data []byte, strict bool) (*Transaction, error) {
	tx, n, err := decode(data)
	if err != nil {
		return nil, err
	}
	if strict && n != len(data) {
		return nil, &wire.StrictLengthError{Code: "tx-trailing-bytes", Message: "transaction did not consume all input bytes", Expected: len(data), Got: n}
	}
	return tx, nil
}

// decode parses a transaction starting at the beginning of b, returning the
// number of bytes consumed so callers decoding a sequence of transactions
// (a block's tx vector) know where the next one starts.
func decode(b []byte) (*Transaction, int, error) {
	c := wire.NewCursor(b)
	start := c.Bookmark()

	rawHeader, err := c.Uint32LE()
	if err != nil {
		return nil, 0, wire.NewDecodeError("tx-header", "reading version/overwintered header", err)
	}
	overwintered := rawHeader&overwinteredBit != 0
	version := int32(rawHeader &^ overwinteredBit)

	var versionGroupID uint32
	if overwintered {
		versionGroupID, err = c.Uint32LE()
		if err != nil {
			return nil, 0, wire.NewDecodeError("tx-versiongroupid", "reading versiongroupid", err)
		}
	}

	shape, err := shapeFor(overwintered, version, versionGroupID)
	if err != nil {
		return nil, 0, err
	}

	tx := &Transaction{
		Shape:          shape,
		Overwintered:   overwintered,
		Version:        version,
		VersionGroupID: versionGroupID,
	}

	if tx.Vin, err = wire.ReadVector(c, func() *TransactionIn { return &TransactionIn{} }); err != nil {
		return nil, 0, wire.NewDecodeError("tx-vin", "reading inputs", err)
	}
	if tx.Vout, err = wire.ReadVector(c, func() *TransactionOut { return &TransactionOut{} }); err != nil {
		return nil, 0, wire.NewDecodeError("tx-vout", "reading outputs", err)
	}
	if tx.LockTime, err = c.Uint32LE(); err != nil {
		return nil, 0, wire.NewDecodeError("tx-locktime", "reading locktime", err)
	}

	if shape == ShapeOverwinterV3 || shape == ShapeSaplingV4 {
		if tx.ExpiryHeight, err = c.Uint32LE(); err != nil {
			return nil, 0, wire.NewDecodeError("tx-expiry", "reading expiry height", err)
		}
	}

	if shape == ShapeSaplingV4 {
		vb, err := c.Uint64LE()
		if err != nil {
			return nil, 0, wire.NewDecodeError("tx-valuebalance", "reading value balance", err)
		}
		tx.ValueBalance = int64(vb)

		if tx.ShieldedSpends, err = wire.ReadVector(c, func() *SpendDescription { return &SpendDescription{} }); err != nil {
			return nil, 0, wire.NewDecodeError("tx-shielded-spends", "reading shielded spends", err)
		}
		if tx.ShieldedOutputs, err = wire.ReadVector(c, func() *OutputDescription { return &OutputDescription{} }); err != nil {
			return nil, 0, wire.NewDecodeError("tx-shielded-outputs", "reading shielded outputs", err)
		}
	}

	if shape == ShapeLegacyV1 {
		// no joinsplits at version 1
	} else {
		tx.JoinSplits, err = decodeJoinSplits(c, shape.useGrothProofs())
		if err != nil {
			return nil, 0, wire.NewDecodeError("tx-joinsplits", "reading joinsplits", err)
		}
		if len(tx.JoinSplits) > 0 {
			pk, err := c.Hash256()
			if err != nil {
				return nil, 0, wire.NewDecodeError("tx-js-pubkey", "reading joinSplitPubKey", err)
			}
			tx.JoinSplitPubKey = pk
			sig, err := c.Bytes(64)
			if err != nil {
				return nil, 0, wire.NewDecodeError("tx-js-sig", "reading joinSplitSig", err)
			}
			copy(tx.JoinSplitSig[:], sig)
			tx.HasJoinSplitSig = true
		}
	}

	if shape == ShapeSaplingV4 && (len(tx.ShieldedSpends) > 0 || len(tx.ShieldedOutputs) > 0) {
		sig, err := c.Bytes(64)
		if err != nil {
			return nil, 0, wire.NewDecodeError("tx-binding-sig", "reading binding signature", err)
		}
		copy(tx.BindingSig[:], sig)
		tx.HasBindingSig = true
	}

	tx.rawBytes = append([]byte(nil), c.Since(start)...)
	return tx, c.Pos(), nil
}

// DecodeOne parses a transaction from the start of data and reports how
// many bytes it consumed, for decoding a sequence of transactions packed
// back to back (a block's transaction vector) without knowing each one's
// length up front.
func DecodeOne(data []byte) (*Transaction, int, error) {
	return decode(data)
}

// Encode serializes the transaction back to consensus wire bytes.
func (tx *Transaction) Encode() ([]byte, error) {
	w := wire.NewWriter()

	header := uint32(tx.Version)
	if tx.Overwintered {
		header |= overwinteredBit
	}
	w.Uint32LE(header)
	if tx.Overwintered {
		w.Uint32LE(tx.VersionGroupID)
	}

	wire.WriteVector(w, tx.Vin)
	wire.WriteVector(w, tx.Vout)
	w.Uint32LE(tx.LockTime)

	if tx.Shape == ShapeOverwinterV3 || tx.Shape == ShapeSaplingV4 {
		w.Uint32LE(tx.ExpiryHeight)
	}

	if tx.Shape == ShapeSaplingV4 {
		w.Uint64LE(uint64(tx.ValueBalance))
		wire.WriteVector(w, tx.ShieldedSpends)
		wire.WriteVector(w, tx.ShieldedOutputs)
	}

	if tx.Shape != ShapeLegacyV1 {
		encodeJoinSplits(w, tx.JoinSplits)
		if len(tx.JoinSplits) > 0 {
			w.Hash256(tx.JoinSplitPubKey)
			w.Raw(tx.JoinSplitSig[:])
		}
	}

	if tx.Shape == ShapeSaplingV4 && (len(tx.ShieldedSpends) > 0 || len(tx.ShieldedOutputs) > 0) {
		w.Raw(tx.BindingSig[:])
	}

	return w.Bytes(), nil
}

// TxID returns the double-SHA-256 hash of the transaction's serialized
// bytes, in wire byte order (reverse with wire.ReverseHex for display).
func (tx *Transaction) TxID() [32]byte {
	if tx.rawBytes != nil {
		return wire.DoubleSHA256(tx.rawBytes)
	}
	encoded, _ := tx.Encode()
	return wire.DoubleSHA256(encoded)
}

// IsCoinbase reports whether this transaction is a block's coinbase
// transaction: exactly one input, whose prevout is the all-zero txid at
// index 0xffffffff.
func (tx *Transaction) IsCoinbase() bool {
	return len(tx.Vin) == 1 && tx.Vin[0].IsCoinbasePrevout()
}
