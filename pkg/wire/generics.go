package wire

// Codec is implemented by any wire type that knows how to decode and encode
// itself from/to a Cursor/Writer. The vector<T> fields in the data model
// (transaction inputs, outputs, spend/output descriptions, ...) are all
// slices of a Codec.
type Codec interface {
	DecodeFrom(c *Cursor) error
	EncodeTo(w *Writer)
}

// ReadVector decodes a CompactSize-prefixed vector of T, where T is a
// pointer type implementing Codec via a zero-value receiver (e.g.
// *TransactionIn). newT must return a fresh T each call.
func ReadVector[T Codec](c *Cursor, newT func() T) ([]T, error) {
	n, err := c.CompactSizeInt()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		item := newT()
		if err := item.DecodeFrom(c); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// WriteVector encodes items as a CompactSize-prefixed vector.
func WriteVector[T Codec](w *Writer, items []T) {
	w.CompactSize(uint64(len(items)))
	for _, item := range items {
		item.EncodeTo(w)
	}
}

