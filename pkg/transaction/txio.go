package transaction

import (
	"zcblock/pkg/wire"
)

// TransactionIn is a transparent input: a reference to a previous output
// plus the script that satisfies it.
type TransactionIn struct {
	PrevTxID  [32]byte
	PrevIndex uint32
	ScriptSig []byte
	Sequence  uint32
}

// DecodeFrom implements wire.Codec.
func (in *TransactionIn) DecodeFrom(c *wire.Cursor) error {
	txid, err := c.Hash256()
	if err != nil {
		return wire.NewDecodeError("vin-txid", "reading prevout txid", err)
	}
	in.PrevTxID = txid

	index, err := c.Uint32LE()
	if err != nil {
		return wire.NewDecodeError("vin-index", "reading prevout index", err)
	}
	in.PrevIndex = index

	scriptLen, err := c.CompactSizeInt()
	if err != nil {
		return wire.NewDecodeError("vin-script-len", "reading scriptSig length", err)
	}
	script, err := c.Bytes(scriptLen)
	if err != nil {
		return wire.NewDecodeError("vin-script", "reading scriptSig", err)
	}
	in.ScriptSig = append([]byte(nil), script...)

	seq, err := c.Uint32LE()
	if err != nil {
		return wire.NewDecodeError("vin-sequence", "reading sequence", err)
	}
	in.Sequence = seq
	return nil
}

// EncodeTo implements wire.Codec.
func (in *TransactionIn) EncodeTo(w *wire.Writer) {
	w.Hash256(in.PrevTxID)
	w.Uint32LE(in.PrevIndex)
	w.CompactSizeBytes(in.ScriptSig)
	w.Uint32LE(in.Sequence)
}

// IsCoinbasePrevout reports whether this input's prevout is the all-zero
// txid with index 0xffffffff, the marker for a coinbase input.
func (in *TransactionIn) IsCoinbasePrevout() bool {
	if in.PrevIndex != 0xffffffff {
		return false
	}
	for _, b := range in.PrevTxID {
		if b != 0 {
			return false
		}
	}
	return true
}

// TransactionOut is a transparent output: a value in zatoshis and the
// script that locks it.
type TransactionOut struct {
	Value        int64
	ScriptPubKey []byte
}

// DecodeFrom implements wire.Codec.
func (out *TransactionOut) DecodeFrom(c *wire.Cursor) error {
	value, err := c.Uint64LE()
	if err != nil {
		return wire.NewDecodeError("vout-value", "reading output value", err)
	}
	out.Value = int64(value)

	scriptLen, err := c.CompactSizeInt()
	if err != nil {
		return wire.NewDecodeError("vout-script-len", "reading scriptPubKey length", err)
	}
	script, err := c.Bytes(scriptLen)
	if err != nil {
		return wire.NewDecodeError("vout-script", "reading scriptPubKey", err)
	}
	out.ScriptPubKey = append([]byte(nil), script...)
	return nil
}

// EncodeTo implements wire.Codec.
func (out *TransactionOut) EncodeTo(w *wire.Writer) {
	w.Uint64LE(uint64(out.Value))
	w.CompactSizeBytes(out.ScriptPubKey)
}
