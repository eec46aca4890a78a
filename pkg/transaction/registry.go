package transaction

import (
	"errors"

	"zcblock/pkg/wire"
)

var errNotATransaction = errors.New("transaction: value passed to encoder is not a *Transaction")

func init() {
	wire.Default.Register("transaction",
		func(c *wire.Cursor, strict bool) (any, error) {
			tx, n, err := decode(c.Peek())
			if err != nil {
				return nil, err
			}
			if err := c.Advance(n); err != nil {
				return nil, err
			}
			return tx, nil
		},
		func(w *wire.Writer, v any) error {
			tx, ok := v.(*Transaction)
			if !ok {
				return errNotATransaction
			}
			encoded, err := tx.Encode()
			if err != nil {
				return err
			}
			w.Raw(encoded)
			return nil
		},
	)
}
