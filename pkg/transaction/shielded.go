package transaction

import "zcblock/pkg/wire"

// GrothProof is the fixed 192-byte zk-SNARK proof format used by Sapling
// spends and outputs.
type GrothProof [192]byte

// SpendDescription describes a Sapling shielded spend in a v4 (Sapling)
// transaction. Unlike later shielded protocols, each spend carries its own
// anchor rather than sharing one across the bundle.
type SpendDescription struct {
	CV           [32]byte
	Anchor       [32]byte
	Nullifier    [32]byte
	RK           [32]byte
	ZKProof      GrothProof
	SpendAuthSig [64]byte
}

// DecodeFrom implements wire.Codec.
func (s *SpendDescription) DecodeFrom(c *wire.Cursor) error {
	var err error
	if s.CV, err = c.Hash256(); err != nil {
		return wire.NewDecodeError("spend-cv", "reading spend cv", err)
	}
	if s.Anchor, err = c.Hash256(); err != nil {
		return wire.NewDecodeError("spend-anchor", "reading spend anchor", err)
	}
	if s.Nullifier, err = c.Hash256(); err != nil {
		return wire.NewDecodeError("spend-nullifier", "reading spend nullifier", err)
	}
	if s.RK, err = c.Hash256(); err != nil {
		return wire.NewDecodeError("spend-rk", "reading spend rk", err)
	}
	proof, err := c.Bytes(192)
	if err != nil {
		return wire.NewDecodeError("spend-zkproof", "reading spend zkproof", err)
	}
	copy(s.ZKProof[:], proof)
	sig, err := c.Bytes(64)
	if err != nil {
		return wire.NewDecodeError("spend-authsig", "reading spend auth sig", err)
	}
	copy(s.SpendAuthSig[:], sig)
	return nil
}

// EncodeTo implements wire.Codec.
func (s *SpendDescription) EncodeTo(w *wire.Writer) {
	w.Hash256(s.CV)
	w.Hash256(s.Anchor)
	w.Hash256(s.Nullifier)
	w.Hash256(s.RK)
	w.Raw(s.ZKProof[:])
	w.Raw(s.SpendAuthSig[:])
}

// OutputDescription describes a Sapling shielded output in a v4 (Sapling)
// transaction.
type OutputDescription struct {
	CV            [32]byte
	CMU           [32]byte
	EphemeralKey  [32]byte
	EncCiphertext [580]byte
	OutCiphertext [80]byte
	ZKProof       GrothProof
}

// DecodeFrom implements wire.Codec.
func (o *OutputDescription) DecodeFrom(c *wire.Cursor) error {
	var err error
	if o.CV, err = c.Hash256(); err != nil {
		return wire.NewDecodeError("output-cv", "reading output cv", err)
	}
	if o.CMU, err = c.Hash256(); err != nil {
		return wire.NewDecodeError("output-cmu", "reading output cmu", err)
	}
	if o.EphemeralKey, err = c.Hash256(); err != nil {
		return wire.NewDecodeError("output-ephemeral-key", "reading ephemeral key", err)
	}
	enc, err := c.Bytes(580)
	if err != nil {
		return wire.NewDecodeError("output-enc-ciphertext", "reading enc ciphertext", err)
	}
	copy(o.EncCiphertext[:], enc)
	outc, err := c.Bytes(80)
	if err != nil {
		return wire.NewDecodeError("output-out-ciphertext", "reading out ciphertext", err)
	}
	copy(o.OutCiphertext[:], outc)
	proof, err := c.Bytes(192)
	if err != nil {
		return wire.NewDecodeError("output-zkproof", "reading output zkproof", err)
	}
	copy(o.ZKProof[:], proof)
	return nil
}

// EncodeTo implements wire.Codec.
func (o *OutputDescription) EncodeTo(w *wire.Writer) {
	w.Hash256(o.CV)
	w.Hash256(o.CMU)
	w.Hash256(o.EphemeralKey)
	w.Raw(o.EncCiphertext[:])
	w.Raw(o.OutCiphertext[:])
	w.Raw(o.ZKProof[:])
}
