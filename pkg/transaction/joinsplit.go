package transaction

import "zcblock/pkg/wire"

// PHGRProof is the pre-Sapling (BCTV14) zk-SNARK proof format used by
// Sprout joinsplits on networks that have not yet enabled the Groth16
// proof system (Sapling activation switches joinsplits over to
// GrothProof).
type PHGRProof struct {
	GA      [33]byte
	GAPrime [33]byte
	GB      [65]byte
	GBPrime [33]byte
	GC      [33]byte
	GCPrime [33]byte
	GK      [33]byte
	GH      [33]byte
}

func decodePHGRProof(c *wire.Cursor) (PHGRProof, error) {
	var p PHGRProof
	read := func(dst []byte) error {
		b, err := c.Bytes(len(dst))
		if err != nil {
			return err
		}
		copy(dst, b)
		return nil
	}
	fields := [][]byte{p.GA[:], p.GAPrime[:], p.GB[:], p.GBPrime[:], p.GC[:], p.GCPrime[:], p.GK[:], p.GH[:]}
	for _, f := range fields {
		if err := read(f); err != nil {
			return p, wire.NewDecodeError("phgr-proof", "reading PHGR proof element", err)
		}
	}
	return p, nil
}

func (p PHGRProof) encodeTo(w *wire.Writer) {
	w.Raw(p.GA[:])
	w.Raw(p.GAPrime[:])
	w.Raw(p.GB[:])
	w.Raw(p.GBPrime[:])
	w.Raw(p.GC[:])
	w.Raw(p.GCPrime[:])
	w.Raw(p.GK[:])
	w.Raw(p.GH[:])
}

// JoinSplitDescription describes a single Sprout joinsplit: a transfer
// between the transparent/Sprout value pools that spends up to two Sprout
// notes and creates up to two new ones. The proof field is PHGRProof or
// GrothProof depending on whether the enclosing transaction's network
// upgrade has activated Sapling; that choice is not recorded per-joinsplit
// on the wire, so decode takes it from the caller and encode writes
// whichever of the two proof fields is set.
type JoinSplitDescription struct {
	VPubOld      uint64
	VPubNew      uint64
	Anchor       [32]byte
	Nullifiers   [2][32]byte
	Commitments  [2][32]byte
	EphemeralKey [32]byte
	RandomSeed   [32]byte
	VMACs        [2][32]byte
	PHGRZKProof  *PHGRProof
	GrothZKProof *GrothProof
	Ciphertexts  [2][601]byte
}

func decodeJoinSplit(c *wire.Cursor, useGroth bool) (*JoinSplitDescription, error) {
	js := &JoinSplitDescription{}
	var err error

	vOld, err := c.Uint64LE()
	if err != nil {
		return nil, wire.NewDecodeError("js-vpub-old", "reading vpub_old", err)
	}
	js.VPubOld = vOld

	vNew, err := c.Uint64LE()
	if err != nil {
		return nil, wire.NewDecodeError("js-vpub-new", "reading vpub_new", err)
	}
	js.VPubNew = vNew

	if js.Anchor, err = c.Hash256(); err != nil {
		return nil, wire.NewDecodeError("js-anchor", "reading joinsplit anchor", err)
	}
	for i := 0; i < 2; i++ {
		if js.Nullifiers[i], err = c.Hash256(); err != nil {
			return nil, wire.NewDecodeError("js-nullifier", "reading joinsplit nullifier", err)
		}
	}
	for i := 0; i < 2; i++ {
		if js.Commitments[i], err = c.Hash256(); err != nil {
			return nil, wire.NewDecodeError("js-commitment", "reading joinsplit commitment", err)
		}
	}
	if js.EphemeralKey, err = c.Hash256(); err != nil {
		return nil, wire.NewDecodeError("js-ephemeral-key", "reading joinsplit ephemeral key", err)
	}
	if js.RandomSeed, err = c.Hash256(); err != nil {
		return nil, wire.NewDecodeError("js-random-seed", "reading joinsplit random seed", err)
	}
	for i := 0; i < 2; i++ {
		if js.VMACs[i], err = c.Hash256(); err != nil {
			return nil, wire.NewDecodeError("js-vmac", "reading joinsplit vmac", err)
		}
	}

	if useGroth {
		var proof GrothProof
		b, err := c.Bytes(192)
		if err != nil {
			return nil, wire.NewDecodeError("js-groth-proof", "reading joinsplit groth proof", err)
		}
		copy(proof[:], b)
		js.GrothZKProof = &proof
	} else {
		proof, err := decodePHGRProof(c)
		if err != nil {
			return nil, err
		}
		js.PHGRZKProof = &proof
	}

	for i := 0; i < 2; i++ {
		b, err := c.Bytes(601)
		if err != nil {
			return nil, wire.NewDecodeError("js-ciphertext", "reading joinsplit ciphertext", err)
		}
		copy(js.Ciphertexts[i][:], b)
	}
	return js, nil
}

func (js *JoinSplitDescription) encodeTo(w *wire.Writer) {
	w.Uint64LE(js.VPubOld)
	w.Uint64LE(js.VPubNew)
	w.Hash256(js.Anchor)
	for _, n := range js.Nullifiers {
		w.Hash256(n)
	}
	for _, cm := range js.Commitments {
		w.Hash256(cm)
	}
	w.Hash256(js.EphemeralKey)
	w.Hash256(js.RandomSeed)
	for _, m := range js.VMACs {
		w.Hash256(m)
	}
	if js.GrothZKProof != nil {
		w.Raw(js.GrothZKProof[:])
	} else if js.PHGRZKProof != nil {
		js.PHGRZKProof.encodeTo(w)
	}
	for _, ct := range js.Ciphertexts {
		w.Raw(ct[:])
	}
}

func decodeJoinSplits(c *wire.Cursor, useGroth bool) ([]*JoinSplitDescription, error) {
	n, err := c.CompactSizeInt()
	if err != nil {
		return nil, wire.NewDecodeError("js-count", "reading joinsplit count", err)
	}
	out := make([]*JoinSplitDescription, 0, n)
	for i := 0; i < n; i++ {
		js, err := decodeJoinSplit(c, useGroth)
		if err != nil {
			return nil, err
		}
		out = append(out, js)
	}
	return out, nil
}

func encodeJoinSplits(w *wire.Writer, joinSplits []*JoinSplitDescription) {
	w.CompactSize(uint64(len(joinSplits)))
	for _, js := range joinSplits {
		js.encodeTo(w)
	}
}
