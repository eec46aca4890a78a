package wire

import "fmt"

// DecodeFunc decodes a value of some registered type from c. strict is
// threaded through from DecodeType so a type's own decode logic can make
// the same strict/lenient distinction its standalone Decode function does,
// even though DecodeType also enforces it generically once dec returns.
type DecodeFunc func(c *Cursor, strict bool) (any, error)

// EncodeFunc encodes v, previously produced by the matching DecodeFunc, to w.
type EncodeFunc func(w *Writer, v any) error

// Registry dispatches decode/encode by a short type name, giving the
// library's public surface a decodeType(name, bytes)/encodeType(name, value)
// shape without resorting to reflection: each registered name is backed by
// a concrete, statically-typed function pair supplied by the package that
// owns the type (block, transaction, ...).
type Registry struct {
	decoders map[string]DecodeFunc
	encoders map[string]EncodeFunc
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		decoders: make(map[string]DecodeFunc),
		encoders: make(map[string]EncodeFunc),
	}
}

// Default is the process-wide registry that pkg/block and pkg/transaction
// populate from their own init() functions. It is built up incrementally
// at package-init time and never mutated afterward, so concurrent lookups
// against it need no locking.
var Default = NewRegistry()

// Register associates name with a decode/encode function pair.
func (r *Registry) Register(name string, dec DecodeFunc, enc EncodeFunc) {
	r.decoders[name] = dec
	r.encoders[name] = enc
}

// DecodeType decodes bytes as the named type. When strict is true, b must
// be fully consumed by the decode; trailing bytes are a decode error, the
// same guarantee block.Decode and transaction.Decode give their callers
// directly.
func (r *Registry) DecodeType(name string, b []byte, strict bool) (any, error) {
	dec, ok := r.decoders[name]
	if !ok {
		return nil, fmt.Errorf("wire: no decoder registered for type %q", name)
	}
	c := NewCursor(b)
	v, err := dec(c, strict)
	if err != nil {
		return nil, err
	}
	if strict && c.Remaining() != 0 {
		return nil, &StrictLengthError{Code: "registry-trailing-bytes", Message: "decode did not consume all input bytes", Expected: len(b), Got: c.Pos()}
	}
	return v, nil
}

// EncodeType encodes v, which must have been produced by DecodeType(name, ...)
// or be structurally compatible with it, as the named type.
func (r *Registry) EncodeType(name string, v any) ([]byte, error) {
	enc, ok := r.encoders[name]
	if !ok {
		return nil, fmt.Errorf("wire: no encoder registered for type %q", name)
	}
	w := NewWriter()
	if err := enc(w, v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
