package block

import (
	"zcblock/pkg/transaction"
	"zcblock/pkg/wire"
)

// HeaderSize is the fixed serialized size of a Zcash block header: version,
// prevBlock, merkleRoot, finalSaplingRoot, time, bits, nonce and the
// Equihash solution (1344 bytes) together with their length prefixes.
const HeaderSize = wire.HeaderBytes

// Header is a Zcash block header. All hash fields are stored in wire byte
// order; display hex is the byte-reversed form (see wire.ReverseHex).
type Header struct {
	Version          int32
	PrevBlock        [32]byte
	MerkleRoot       [32]byte
	FinalSaplingRoot [32]byte
	Time             uint32
	Bits             uint32
	Nonce            [32]byte
	SolutionSize     int
	Solution         []byte
}

// Block is a full Zcash block: a header plus its transactions.
type Block struct {
	Header       Header
	Transactions []*transaction.Transaction

	// headerOnly marks a Block produced by DecodeHeaderOnly, which never
	// read a transaction count off the wire at all. Encode must reproduce
	// that: writing a CompactSize(0) tx count for such a block would turn a
	// 1487-byte header back into 1488 bytes.
	headerOnly bool

	rawHeader []byte
}

// DecodeHeaderOnly parses only the fixed-size block header, leaving
// Transactions nil. When strict is true, data must be exactly HeaderSize
// bytes; trailing bytes are a decode error.
func DecodeHeaderOnly(data []byte, strict bool) (*Block, error) {
	c := wire.NewCursor(data)
	start := c.Bookmark()
	h, err := decodeHeader(c)
	if err != nil {
		return nil, err
	}
	n := c.Pos() - start
	if strict && n != len(data) {
		return nil, &wire.StrictLengthError{Code: "header-trailing-bytes", Message: "header did not consume all input bytes", Expected: len(data), Got: n}
	}
	return &Block{Header: *h, headerOnly: true, rawHeader: append([]byte(nil), c.Since(start)...)}, nil
}

func decodeHeader(c *wire.Cursor) (*Header, error) {
	h := &Header{}
	var err error

	if h.Version, err = c.Int32LE(); err != nil {
		return nil, wire.NewDecodeError("header-version", "reading block version", err)
	}
	if h.PrevBlock, err = c.Hash256(); err != nil {
		return nil, wire.NewDecodeError("header-prevblock", "reading hashPrevBlock", err)
	}
	if h.MerkleRoot, err = c.Hash256(); err != nil {
		return nil, wire.NewDecodeError("header-merkleroot", "reading hashMerkleRoot", err)
	}
	if h.FinalSaplingRoot, err = c.Hash256(); err != nil {
		return nil, wire.NewDecodeError("header-finalsaplingroot", "reading hashFinalSaplingRoot", err)
	}
	if h.Time, err = c.Uint32LE(); err != nil {
		return nil, wire.NewDecodeError("header-time", "reading block time", err)
	}
	if h.Bits, err = c.Uint32LE(); err != nil {
		return nil, wire.NewDecodeError("header-bits", "reading nBits", err)
	}
	nonce, err := c.Bytes(32)
	if err != nil {
		return nil, wire.NewDecodeError("header-nonce", "reading nonce", err)
	}
	copy(h.Nonce[:], nonce)

	solLen, err := c.CompactSizeInt()
	if err != nil {
		return nil, wire.NewDecodeError("header-solution-len", "reading Equihash solution length", err)
	}
	sol, err := c.Bytes(solLen)
	if err != nil {
		return nil, wire.NewDecodeError("header-solution", "reading Equihash solution", err)
	}
	h.SolutionSize = solLen
	h.Solution = append([]byte(nil), sol...)
	return h, nil
}

func (h *Header) encodeTo(w *wire.Writer) {
	w.Int32LE(h.Version)
	w.Hash256(h.PrevBlock)
	w.Hash256(h.MerkleRoot)
	w.Hash256(h.FinalSaplingRoot)
	w.Uint32LE(h.Time)
	w.Uint32LE(h.Bits)
	w.Raw(h.Nonce[:])
	w.CompactSizeBytes(h.Solution)
}

// Decode parses a full block: header followed by a CompactSize-prefixed
// transaction vector. When strict is true, data must be fully consumed;
// trailing bytes are a decode error.
func Decode(data []byte, strict bool) (*Block, error) {
	c := wire.NewCursor(data)
	headerStart := c.Bookmark()
	h, err := decodeHeader(c)
	if err != nil {
		return nil, err
	}
	rawHeader := append([]byte(nil), c.Since(headerStart)...)

	txCount, err := c.CompactSizeInt()
	if err != nil {
		return nil, wire.NewDecodeError("block-tx-count", "reading transaction count", err)
	}

	blk := &Block{Header: *h, rawHeader: rawHeader}
	blk.Transactions = make([]*transaction.Transaction, 0, txCount)
	for i := 0; i < txCount; i++ {
		tx, n, err := transaction.DecodeOne(c.Peek())
		if err != nil {
			return nil, wire.NewDecodeError("block-tx", "decoding transaction", err)
		}
		if err := c.Advance(n); err != nil {
			return nil, wire.NewDecodeError("block-tx-advance", "advancing past decoded transaction", err)
		}
		blk.Transactions = append(blk.Transactions, tx)
	}
	if strict && c.Remaining() != 0 {
		return nil, &wire.StrictLengthError{Code: "block-trailing-bytes", Message: "block did not consume all input bytes", Expected: len(data), Got: c.Pos()}
	}
	return blk, nil
}

// Encode serializes the block back to consensus wire bytes. A Block
// produced by DecodeHeaderOnly never read a transaction count off the wire,
// so it encodes back to just the header, not the header plus a spurious
// empty tx vector.
func (b *Block) Encode() ([]byte, error) {
	w := wire.NewWriter()
	b.Header.encodeTo(w)
	if b.headerOnly {
		return w.Bytes(), nil
	}
	w.CompactSize(uint64(len(b.Transactions)))
	for _, tx := range b.Transactions {
		encoded, err := tx.Encode()
		if err != nil {
			return nil, err
		}
		w.Raw(encoded)
	}
	return w.Bytes(), nil
}

// Hash returns the header's double-SHA-256 hash, in wire byte order, by
// re-encoding the header fields. Callers holding a Block decoded from wire
// bytes should prefer Block.Hash, which hashes the captured raw bytes
// instead.
func (h *Header) Hash() [32]byte {
	w := wire.NewWriter()
	h.encodeTo(w)
	return wire.DoubleSHA256(w.Bytes())
}

// Hash returns the block's header hash. When b was produced by Decode or
// DecodeHeaderOnly, this hashes the exact bytes captured off the wire
// rather than re-encoding the header fields, mirroring
// Transaction.TxID's rawBytes-first behavior: a byte-mismatching encodeTo
// would otherwise hash its own output and silently agree with itself.
func (b *Block) Hash() [32]byte {
	if b.rawHeader != nil {
		return wire.DoubleSHA256(b.rawHeader)
	}
	return b.Header.Hash()
}

// CalculateMerkleRoot recomputes the merkle root from the block's
// transaction IDs, independent of the header's recorded MerkleRoot field.
func (b *Block) CalculateMerkleRoot() ([32]byte, error) {
	leaves := make([][32]byte, len(b.Transactions))
	for i, tx := range b.Transactions {
		leaves[i] = tx.TxID()
	}
	return wire.MerkleRoot(leaves)
}

// genesisBits is the compact-form difficulty target of the Zcash genesis
// block, used as the reference point when normalizing difficulty to 1.0.
const genesisBits uint32 = 0x1f07ffff

// Difficulty converts the header's compact-form nBits target into the
// zcashd-style floating-point difficulty value, relative to the genesis
// block's minimum-difficulty target.
func (h *Header) Difficulty() float64 {
	return bitsToDifficulty(h.Bits)
}

func bitsToDifficulty(bits uint32) float64 {
	genesisExponent := int(genesisBits >> 24)
	genesisMantissa := float64(genesisBits & 0x00ffffff)

	exponent := int(bits >> 24)
	mantissa := float64(bits & 0x00ffffff)
	if mantissa == 0 {
		return 0
	}

	difficulty := genesisMantissa / mantissa
	shift := genesisExponent - exponent
	for shift > 0 {
		difficulty *= 256
		shift--
	}
	for shift < 0 {
		difficulty /= 256
		shift++
	}
	return difficulty
}
