package porcelain

import (
	"encoding/hex"

	"zcblock/pkg/block"
	"zcblock/pkg/wire"
)

// BlockMode selects how much of a block ToPorcelain renders, mirroring
// zcashd's getblock RPC verbosity levels.
type BlockMode int

const (
	// BlockModeHeader renders only header fields, no tx key at all.
	BlockModeHeader BlockMode = iota
	// BlockModeMin renders header fields plus tx as a list of txid strings.
	BlockModeMin
	// BlockModeDefault renders header fields plus tx as full decoded
	// transaction porcelain objects.
	BlockModeDefault
)

var genesisPrevBlock [32]byte

// BlockToPorcelain renders b the way zcashd's getblock RPC renders a
// decoded block. Chain-context fields this library cannot derive from the
// block bytes alone (confirmations, height, chainwork, nextblockhash, ...)
// are not produced; Fixture.Clean strips the equivalent keys from a
// zcashd-sourced expected value before comparing against this output.
func BlockToPorcelain(b *block.Block, mode BlockMode) (map[string]any, error) {
	h := b.Header
	out := map[string]any{
		"hash":             wire.ReverseHex(b.Hash()),
		"version":          h.Version,
		"merkleroot":       wire.ReverseHex(h.MerkleRoot),
		"finalsaplingroot": wire.ReverseHex(h.FinalSaplingRoot),
		"time":             h.Time,
		"nonce":            hex.EncodeToString(h.Nonce[:]),
		"solution":         hex.EncodeToString(h.Solution),
		"bits":             FormatBits(h.Bits),
		"difficulty":       h.Difficulty(),
	}
	if h.PrevBlock != genesisPrevBlock {
		out["previousblockhash"] = wire.ReverseHex(h.PrevBlock)
	}

	if mode == BlockModeHeader {
		return out, nil
	}

	out["size"] = len(encodeOrZero(b))

	tx := make([]any, 0, len(b.Transactions))
	for _, t := range b.Transactions {
		if mode == BlockModeMin {
			tx = append(tx, wire.ReverseHex(t.TxID()))
			continue
		}
		p, err := TransactionToPorcelain(t)
		if err != nil {
			return nil, err
		}
		tx = append(tx, p)
	}
	out["tx"] = tx

	return out, nil
}

func encodeOrZero(b *block.Block) []byte {
	encoded, err := b.Encode()
	if err != nil {
		return nil
	}
	return encoded
}

// BlockFromPorcelain reconstructs a Block's header fields from its
// porcelain map representation. The tx key, when present as full
// transaction objects (BlockModeDefault), is reconstructed via
// TransactionFromPorcelain; a tx key of plain txid strings
// (BlockModeMin) carries no wire bytes to reconstruct and is rejected.
func BlockFromPorcelain(v map[string]any) (*block.Block, error) {
	merkleHex, ok := v["merkleroot"].(string)
	if !ok {
		return nil, &wire.PreconditionError{Code: "missing-merkleroot", Message: "block porcelain missing merkleroot"}
	}
	merkle, err := wire.HashFromHex(merkleHex)
	if err != nil {
		return nil, &wire.PorcelainError{Code: "bad-merkleroot", Message: "invalid merkleroot hex", Cause: err}
	}

	finalSaplingHex, _ := v["finalsaplingroot"].(string)
	var finalSapling [32]byte
	if finalSaplingHex != "" {
		finalSapling, err = wire.HashFromHex(finalSaplingHex)
		if err != nil {
			return nil, &wire.PorcelainError{Code: "bad-finalsaplingroot", Message: "invalid finalsaplingroot hex", Cause: err}
		}
	}

	var prev [32]byte
	if prevHex, ok := v["previousblockhash"].(string); ok {
		prev, err = wire.HashFromHex(prevHex)
		if err != nil {
			return nil, &wire.PorcelainError{Code: "bad-previousblockhash", Message: "invalid previousblockhash hex", Cause: err}
		}
	}

	nonceHex, _ := v["nonce"].(string)
	nonceBytes, err := hex.DecodeString(nonceHex)
	if err != nil || len(nonceBytes) != 32 {
		return nil, &wire.PorcelainError{Code: "bad-nonce", Message: "nonce must be 32 bytes of hex", Cause: err}
	}
	var nonce [32]byte
	copy(nonce[:], nonceBytes)

	solutionHex, _ := v["solution"].(string)
	solution, err := hex.DecodeString(solutionHex)
	if err != nil {
		return nil, &wire.PorcelainError{Code: "bad-solution", Message: "invalid solution hex", Cause: err}
	}

	bitsHex, _ := v["bits"].(string)
	bitsBytes, err := hex.DecodeString(bitsHex)
	if err != nil || len(bitsBytes) != 4 {
		return nil, &wire.PorcelainError{Code: "bad-bits", Message: "bits must be 8 hex digits", Cause: err}
	}
	bits := uint32(bitsBytes[0])<<24 | uint32(bitsBytes[1])<<16 | uint32(bitsBytes[2])<<8 | uint32(bitsBytes[3])

	version, _ := intField(v, "version")
	timeVal, _ := intField(v, "time")

	blk := &block.Block{
		Header: block.Header{
			Version:          int32(version),
			PrevBlock:        prev,
			MerkleRoot:       merkle,
			FinalSaplingRoot: finalSapling,
			Time:             uint32(timeVal),
			Bits:             bits,
			Nonce:            nonce,
			SolutionSize:     len(solution),
			Solution:         solution,
		},
	}

	rawTx, ok := v["tx"].([]any)
	if !ok {
		return blk, nil
	}
	for _, item := range rawTx {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &wire.PreconditionError{Code: "min-mode-tx", Message: "cannot reconstruct a block whose tx list holds txid strings rather than transaction objects"}
		}
		t, err := TransactionFromPorcelain(m)
		if err != nil {
			return nil, err
		}
		blk.Transactions = append(blk.Transactions, t)
	}
	return blk, nil
}
