package block

import (
	"errors"

	"zcblock/pkg/transaction"
	"zcblock/pkg/wire"
)

var errNotABlock = errors.New("block: value passed to encoder is not a *Block")

func init() {
	wire.Default.Register("block",
		func(c *wire.Cursor, strict bool) (any, error) {
			headerStart := c.Bookmark()
			h, err := decodeHeader(c)
			if err != nil {
				return nil, err
			}
			blk := &Block{Header: *h, rawHeader: append([]byte(nil), c.Since(headerStart)...)}
			txCount, err := c.CompactSizeInt()
			if err != nil {
				return nil, wire.NewDecodeError("block-tx-count", "reading transaction count", err)
			}
			for i := 0; i < txCount; i++ {
				tx, n, err := transaction.DecodeOne(c.Peek())
				if err != nil {
					return nil, err
				}
				if err := c.Advance(n); err != nil {
					return nil, err
				}
				blk.Transactions = append(blk.Transactions, tx)
			}
			return blk, nil
		},
		func(w *wire.Writer, v any) error {
			blk, ok := v.(*Block)
			if !ok {
				return errNotABlock
			}
			encoded, err := blk.Encode()
			if err != nil {
				return err
			}
			w.Raw(encoded)
			return nil
		},
	)
}
