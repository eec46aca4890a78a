// Package api provides the high-level public API for decoding and
// re-encoding Zcash blocks and transactions.
//
// This is the main entry point for applications using this library. It
// wraps pkg/block, pkg/transaction, and pkg/porcelain behind a single
// import, the same role pkg/pczt/roles filled for PCZT construction in the
// library this one is descended from.
package api

import (
	"fmt"

	"zcblock/pkg/block"
	"zcblock/pkg/porcelain"
	"zcblock/pkg/transaction"
)

// DecodeBlock parses a consensus-serialized block. When strict is true,
// data must be fully consumed.
func DecodeBlock(data []byte, strict bool) (*block.Block, error) {
	b, err := block.Decode(data, strict)
	if err != nil {
		return nil, fmt.Errorf("decode block: %w", err)
	}
	return b, nil
}

// DecodeBlockHeader parses only a block's fixed-size header.
func DecodeBlockHeader(data []byte, strict bool) (*block.Block, error) {
	b, err := block.DecodeHeaderOnly(data, strict)
	if err != nil {
		return nil, fmt.Errorf("decode block header: %w", err)
	}
	return b, nil
}

// EncodeBlock serializes b back to consensus wire bytes.
func EncodeBlock(b *block.Block) ([]byte, error) {
	return b.Encode()
}

// BlockToPorcelain renders b as a zcashd-shaped field map.
func BlockToPorcelain(b *block.Block, mode porcelain.BlockMode) (map[string]any, error) {
	return porcelain.BlockToPorcelain(b, mode)
}

// BlockFromPorcelain reconstructs a Block from its porcelain field map.
func BlockFromPorcelain(v map[string]any) (*block.Block, error) {
	return porcelain.BlockFromPorcelain(v)
}

// DecodeTransaction parses a single consensus-serialized transaction. When
// strict is true, data must be fully consumed.
func DecodeTransaction(data []byte, strict bool) (*transaction.Transaction, error) {
	t, err := transaction.Decode(data, strict)
	if err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	return t, nil
}

// EncodeTransaction serializes t back to consensus wire bytes.
func EncodeTransaction(t *transaction.Transaction) ([]byte, error) {
	return t.Encode()
}

// TransactionToPorcelain renders t as a zcashd-shaped field map.
func TransactionToPorcelain(t *transaction.Transaction) (map[string]any, error) {
	return porcelain.TransactionToPorcelain(t)
}

// TransactionFromPorcelain reconstructs a Transaction from its porcelain
// field map.
func TransactionFromPorcelain(v map[string]any) (*transaction.Transaction, error) {
	return porcelain.TransactionFromPorcelain(v)
}
