package porcelain

import (
	"encoding/hex"
	"encoding/json"
	"math"

	"zcblock/pkg/transaction"
	"zcblock/pkg/wire"
)

func hexOf(b []byte) string { return hex.EncodeToString(b) }

func hexOfArray(b [32]byte) string { return hex.EncodeToString(b[:]) }

// TransactionToPorcelain renders t the way zcashd's getrawtransaction RPC
// renders a decoded transaction: a plain field map, hash fields in display
// (byte-reversed) hex, values in both ZEC and zatoshis.
func TransactionToPorcelain(t *transaction.Transaction) (map[string]any, error) {
	out := map[string]any{
		"txid":     wire.ReverseHex(t.TxID()),
		"version":  t.Version,
		"locktime": t.LockTime,
	}
	if t.Overwintered {
		out["overwintered"] = true
		out["versiongroupid"] = FormatVersionGroupID(t.VersionGroupID)
	}
	if t.Shape == transaction.ShapeOverwinterV3 || t.Shape == transaction.ShapeSaplingV4 {
		out["expiryheight"] = t.ExpiryHeight
	}

	vin := make([]map[string]any, 0, len(t.Vin))
	for _, in := range t.Vin {
		if in.IsCoinbasePrevout() {
			vin = append(vin, map[string]any{
				"coinbase": hexOf(in.ScriptSig),
				"sequence": in.Sequence,
			})
			continue
		}
		vin = append(vin, map[string]any{
			"txid":     wire.ReverseHex(in.PrevTxID),
			"vout":     in.PrevIndex,
			"sequence": in.Sequence,
			"scriptSig": map[string]any{
				"asm": asmFor(in.ScriptSig),
				"hex": hexOf(in.ScriptSig),
			},
		})
	}
	out["vin"] = vin

	vout := make([]map[string]any, 0, len(t.Vout))
	for i, o := range t.Vout {
		info := ClassifyScript(o.ScriptPubKey)
		spk := map[string]any{
			"asm":  info.Asm,
			"hex":  hexOf(o.ScriptPubKey),
			"type": info.Type,
		}
		if info.Type == "pubkey" || info.Type == "pubkeyhash" || info.Type == "scripthash" || info.Type == "multisig" {
			spk["reqSigs"] = info.ReqSigs
			spk["addresses"] = info.Addresses
		}
		vout = append(vout, map[string]any{
			"value":        FormatCoin(o.Value),
			"valueZat":     o.Value,
			"valueSat":     o.Value,
			"n":            i,
			"scriptPubKey": spk,
		})
	}
	out["vout"] = vout

	if t.Shape == transaction.ShapeSaplingV4 {
		out["valueBalance"] = FormatCoin(t.ValueBalance)
		out["valueBalanceZat"] = t.ValueBalance
	}

	if len(t.ShieldedSpends) > 0 {
		spends := make([]map[string]any, 0, len(t.ShieldedSpends))
		for _, s := range t.ShieldedSpends {
			spends = append(spends, map[string]any{
				"cv":           hexOfArray(s.CV),
				"anchor":       hexOfArray(s.Anchor),
				"nullifier":    hexOfArray(s.Nullifier),
				"rk":           hexOfArray(s.RK),
				"proof":        hexOf(s.ZKProof[:]),
				"spendAuthSig": hexOf(s.SpendAuthSig[:]),
			})
		}
		out["vShieldedSpend"] = spends
	}
	if len(t.ShieldedOutputs) > 0 {
		outs := make([]map[string]any, 0, len(t.ShieldedOutputs))
		for _, o := range t.ShieldedOutputs {
			outs = append(outs, map[string]any{
				"cv":            hexOfArray(o.CV),
				"cmu":           hexOfArray(o.CMU),
				"ephemeralKey":  hexOfArray(o.EphemeralKey),
				"encCiphertext": hexOf(o.EncCiphertext[:]),
				"outCiphertext": hexOf(o.OutCiphertext[:]),
				"proof":         hexOf(o.ZKProof[:]),
			})
		}
		out["vShieldedOutput"] = outs
	}
	if t.HasBindingSig {
		out["bindingSig"] = hexOf(t.BindingSig[:])
	}

	if len(t.JoinSplits) > 0 {
		js := make([]map[string]any, 0, len(t.JoinSplits))
		for _, j := range t.JoinSplits {
			entry := map[string]any{
				"vpub_old": FormatCoin(int64(j.VPubOld)),
				"vpub_new": FormatCoin(int64(j.VPubNew)),
				"anchor":   hexOfArray(j.Anchor),
				"nullifiers": []string{
					hexOfArray(j.Nullifiers[0]), hexOfArray(j.Nullifiers[1]),
				},
				"commitments": []string{
					hexOfArray(j.Commitments[0]), hexOfArray(j.Commitments[1]),
				},
				"onetimePubKey": hexOfArray(j.EphemeralKey),
				"randomSeed":    hexOfArray(j.RandomSeed),
				"macs": []string{
					hexOfArray(j.VMACs[0]), hexOfArray(j.VMACs[1]),
				},
				"ciphertexts": []string{
					hexOf(j.Ciphertexts[0][:]), hexOf(j.Ciphertexts[1][:]),
				},
			}
			if j.GrothZKProof != nil {
				entry["proof"] = hexOf(j.GrothZKProof[:])
			} else if j.PHGRZKProof != nil {
				entry["proof"] = hexOfPHGR(*j.PHGRZKProof)
			}
			js = append(js, entry)
		}
		out["vjoinsplit"] = js
		out["joinSplitPubKey"] = hexOfArray(t.JoinSplitPubKey)
		out["joinSplitSig"] = hexOf(t.JoinSplitSig[:])
	}

	return out, nil
}

func hexOfPHGR(p transaction.PHGRProof) string {
	buf := make([]byte, 0, 296)
	buf = append(buf, p.GA[:]...)
	buf = append(buf, p.GAPrime[:]...)
	buf = append(buf, p.GB[:]...)
	buf = append(buf, p.GBPrime[:]...)
	buf = append(buf, p.GC[:]...)
	buf = append(buf, p.GCPrime[:]...)
	buf = append(buf, p.GK[:]...)
	buf = append(buf, p.GH[:]...)
	return hexOf(buf)
}

// phgrProofFromHex parses hexOfPHGR's output back into a PHGRProof, slicing
// the concatenated element bytes at their fixed field widths.
func phgrProofFromHex(s string) (*transaction.PHGRProof, error) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 296 {
		return nil, &wire.PorcelainError{Code: "bad-phgr-proof", Message: "PHGR proof must be 296 bytes of hex", Cause: err}
	}
	p := &transaction.PHGRProof{}
	widths := []struct {
		dst []byte
	}{
		{p.GA[:]}, {p.GAPrime[:]}, {p.GB[:]}, {p.GBPrime[:]},
		{p.GC[:]}, {p.GCPrime[:]}, {p.GK[:]}, {p.GH[:]},
	}
	off := 0
	for _, w := range widths {
		copy(w.dst, b[off:off+len(w.dst)])
		off += len(w.dst)
	}
	return p, nil
}

// asmFor is a thin delegate to the same disassembler used for scriptPubKey,
// so scriptSig gets the same ASM rendering treatment.
func asmFor(script []byte) string {
	return ClassifyScript(script).Asm
}

// shapeFromHeader re-derives a Shape from the overwintered/version/
// versiongroupid triple a porcelain map carries, mirroring
// transaction.shapeFor (unexported) against the same exported
// version-group-id constants.
func shapeFromHeader(overwintered bool, version int32, versionGroupID uint32) (transaction.Shape, error) {
	switch {
	case !overwintered && version == 1:
		return transaction.ShapeLegacyV1, nil
	case !overwintered && version == 2:
		return transaction.ShapeLegacyV2, nil
	case overwintered && version == 3 && versionGroupID == transaction.OverwinterVersionGroupID:
		return transaction.ShapeOverwinterV3, nil
	case overwintered && version == 4 && versionGroupID == transaction.SaplingVersionGroupID:
		return transaction.ShapeSaplingV4, nil
	default:
		return 0, &wire.UnknownShapeError{Overwintered: overwintered, Version: version, VersionGroupID: versionGroupID}
	}
}

// TransactionFromPorcelain reconstructs a Transaction from its porcelain
// map representation for the fields this package's ToPorcelain produces.
// Fields that depend on chain context (confirmations, blockhash, time,
// blocktime) are not part of the wire Transaction and are ignored if
// present.
func TransactionFromPorcelain(v map[string]any) (*transaction.Transaction, error) {
	// TransactionToPorcelain builds typed slices ([]map[string]any,
	// []string) where JSON-sourced porcelain holds []any; a JSON round trip
	// gives both the same shape before any field is read.
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, &wire.PorcelainError{Code: "bad-porcelain", Message: "transaction porcelain is not JSON-representable", Cause: err}
	}
	var normalized map[string]any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, &wire.PorcelainError{Code: "bad-porcelain", Message: "transaction porcelain is not JSON-representable", Cause: err}
	}
	v = normalized

	version, ok := intField(v, "version")
	if !ok {
		return nil, &wire.PreconditionError{Code: "missing-version", Message: "transaction porcelain missing version"}
	}
	overwintered, _ := v["overwintered"].(bool)

	var versionGroupID uint32
	if overwintered {
		vg, ok := v["versiongroupid"].(string)
		if !ok {
			return nil, &wire.PreconditionError{Code: "missing-versiongroupid", Message: "overwintered transaction porcelain missing versiongroupid"}
		}
		b, err := hex.DecodeString(vg)
		if err != nil || len(b) != 4 {
			return nil, &wire.PorcelainError{Code: "bad-versiongroupid", Message: "versiongroupid must be 8 hex digits", Cause: err}
		}
		versionGroupID = uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	}

	shape, err := shapeFromHeader(overwintered, int32(version), versionGroupID)
	if err != nil {
		return nil, err
	}

	tx := &transaction.Transaction{
		Shape:          shape,
		Overwintered:   overwintered,
		Version:        int32(version),
		VersionGroupID: versionGroupID,
	}
	if lt, ok := intField(v, "locktime"); ok {
		tx.LockTime = uint32(lt)
	}
	if eh, ok := intField(v, "expiryheight"); ok {
		tx.ExpiryHeight = uint32(eh)
	}

	vinRaw, _ := v["vin"].([]any)
	for _, item := range vinRaw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &wire.PreconditionError{Code: "bad-vin", Message: "vin entry is not an object"}
		}
		in, err := txInFromPorcelain(m)
		if err != nil {
			return nil, err
		}
		tx.Vin = append(tx.Vin, in)
	}

	voutRaw, _ := v["vout"].([]any)
	for _, item := range voutRaw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &wire.PreconditionError{Code: "bad-vout", Message: "vout entry is not an object"}
		}
		out, err := txOutFromPorcelain(m)
		if err != nil {
			return nil, err
		}
		tx.Vout = append(tx.Vout, out)
	}

	if shape == transaction.ShapeSaplingV4 {
		if zat, ok := intField(v, "valueBalanceZat"); ok {
			tx.ValueBalance = zat
		}

		spendsRaw, _ := v["vShieldedSpend"].([]any)
		for _, item := range spendsRaw {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, &wire.PreconditionError{Code: "bad-vshieldedspend", Message: "vShieldedSpend entry is not an object"}
			}
			s, err := spendFromPorcelain(m)
			if err != nil {
				return nil, err
			}
			tx.ShieldedSpends = append(tx.ShieldedSpends, s)
		}

		outsRaw, _ := v["vShieldedOutput"].([]any)
		for _, item := range outsRaw {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, &wire.PreconditionError{Code: "bad-vshieldedoutput", Message: "vShieldedOutput entry is not an object"}
			}
			o, err := outputFromPorcelain(m)
			if err != nil {
				return nil, err
			}
			tx.ShieldedOutputs = append(tx.ShieldedOutputs, o)
		}

		if bs, ok := v["bindingSig"].(string); ok {
			sig, err := hex.DecodeString(bs)
			if err != nil || len(sig) != 64 {
				return nil, &wire.PorcelainError{Code: "bad-bindingsig", Message: "bindingSig must be 64 bytes of hex", Cause: err}
			}
			copy(tx.BindingSig[:], sig)
			tx.HasBindingSig = true
		}
	}

	if shape != transaction.ShapeLegacyV1 {
		jsRaw, _ := v["vjoinsplit"].([]any)
		for _, item := range jsRaw {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, &wire.PreconditionError{Code: "bad-vjoinsplit", Message: "vjoinsplit entry is not an object"}
			}
			js, err := joinSplitFromPorcelain(m, shape == transaction.ShapeSaplingV4)
			if err != nil {
				return nil, err
			}
			tx.JoinSplits = append(tx.JoinSplits, js)
		}
		if len(tx.JoinSplits) > 0 {
			pkHex, _ := v["joinSplitPubKey"].(string)
			pk, err := hex.DecodeString(pkHex)
			if err != nil || len(pk) != 32 {
				return nil, &wire.PorcelainError{Code: "bad-joinsplitpubkey", Message: "joinSplitPubKey must be 32 bytes of hex", Cause: err}
			}
			copy(tx.JoinSplitPubKey[:], pk)

			sigHex, _ := v["joinSplitSig"].(string)
			sig, err := hex.DecodeString(sigHex)
			if err != nil || len(sig) != 64 {
				return nil, &wire.PorcelainError{Code: "bad-joinsplitsig", Message: "joinSplitSig must be 64 bytes of hex", Cause: err}
			}
			copy(tx.JoinSplitSig[:], sig)
			tx.HasJoinSplitSig = true
		}
	}

	return tx, nil
}

func txInFromPorcelain(m map[string]any) (*transaction.TransactionIn, error) {
	in := &transaction.TransactionIn{}
	if seq, ok := intField(m, "sequence"); ok {
		in.Sequence = uint32(seq)
	}
	if cb, ok := m["coinbase"].(string); ok {
		script, err := hex.DecodeString(cb)
		if err != nil {
			return nil, &wire.PorcelainError{Code: "bad-coinbase", Message: "coinbase is not valid hex", Cause: err}
		}
		in.ScriptSig = script
		in.PrevIndex = 0xffffffff
		return in, nil
	}

	txidHex, ok := m["txid"].(string)
	if !ok {
		return nil, &wire.PreconditionError{Code: "missing-vin-txid", Message: "vin entry missing txid"}
	}
	txid, err := wire.HashFromHex(txidHex)
	if err != nil {
		return nil, &wire.PorcelainError{Code: "bad-vin-txid", Message: "invalid vin txid hex", Cause: err}
	}
	in.PrevTxID = txid

	if voutIdx, ok := intField(m, "vout"); ok {
		in.PrevIndex = uint32(voutIdx)
	}

	sigMap, _ := m["scriptSig"].(map[string]any)
	scriptHex, _ := sigMap["hex"].(string)
	script, err := hex.DecodeString(scriptHex)
	if err != nil {
		return nil, &wire.PorcelainError{Code: "bad-scriptsig", Message: "scriptSig.hex is not valid hex", Cause: err}
	}
	in.ScriptSig = script
	return in, nil
}

func txOutFromPorcelain(m map[string]any) (*transaction.TransactionOut, error) {
	out := &transaction.TransactionOut{}
	if zat, ok := intField(m, "valueZat"); ok {
		out.Value = zat
	} else if val, ok := m["value"].(float64); ok {
		out.Value = int64(math.Round(val * wire.Coin))
	}

	spkMap, _ := m["scriptPubKey"].(map[string]any)
	scriptHex, _ := spkMap["hex"].(string)
	script, err := hex.DecodeString(scriptHex)
	if err != nil {
		return nil, &wire.PorcelainError{Code: "bad-scriptpubkey", Message: "scriptPubKey.hex is not valid hex", Cause: err}
	}
	out.ScriptPubKey = script
	return out, nil
}

func hash32Field(m map[string]any, key string) ([32]byte, error) {
	var h [32]byte
	s, ok := m[key].(string)
	if !ok {
		return h, &wire.PreconditionError{Code: "missing-" + key, Message: "missing field " + key}
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		return h, &wire.PorcelainError{Code: "bad-" + key, Message: key + " must be 32 bytes of hex", Cause: err}
	}
	copy(h[:], b)
	return h, nil
}

func fixedBytesField(m map[string]any, key string, n int) ([]byte, error) {
	s, ok := m[key].(string)
	if !ok {
		return nil, &wire.PreconditionError{Code: "missing-" + key, Message: "missing field " + key}
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != n {
		return nil, &wire.PorcelainError{Code: "bad-" + key, Message: key + " has the wrong byte length", Cause: err}
	}
	return b, nil
}

func spendFromPorcelain(m map[string]any) (*transaction.SpendDescription, error) {
	s := &transaction.SpendDescription{}
	var err error
	if s.CV, err = hash32Field(m, "cv"); err != nil {
		return nil, err
	}
	if s.Anchor, err = hash32Field(m, "anchor"); err != nil {
		return nil, err
	}
	if s.Nullifier, err = hash32Field(m, "nullifier"); err != nil {
		return nil, err
	}
	if s.RK, err = hash32Field(m, "rk"); err != nil {
		return nil, err
	}
	proof, err := fixedBytesField(m, "proof", 192)
	if err != nil {
		return nil, err
	}
	copy(s.ZKProof[:], proof)
	sig, err := fixedBytesField(m, "spendAuthSig", 64)
	if err != nil {
		return nil, err
	}
	copy(s.SpendAuthSig[:], sig)
	return s, nil
}

func outputFromPorcelain(m map[string]any) (*transaction.OutputDescription, error) {
	o := &transaction.OutputDescription{}
	var err error
	if o.CV, err = hash32Field(m, "cv"); err != nil {
		return nil, err
	}
	if o.CMU, err = hash32Field(m, "cmu"); err != nil {
		return nil, err
	}
	if o.EphemeralKey, err = hash32Field(m, "ephemeralKey"); err != nil {
		return nil, err
	}
	enc, err := fixedBytesField(m, "encCiphertext", 580)
	if err != nil {
		return nil, err
	}
	copy(o.EncCiphertext[:], enc)
	outc, err := fixedBytesField(m, "outCiphertext", 80)
	if err != nil {
		return nil, err
	}
	copy(o.OutCiphertext[:], outc)
	proof, err := fixedBytesField(m, "proof", 192)
	if err != nil {
		return nil, err
	}
	copy(o.ZKProof[:], proof)
	return o, nil
}

func hashPairField(m map[string]any, key string) ([2][32]byte, error) {
	var out [2][32]byte
	raw, ok := m[key].([]any)
	if !ok || len(raw) != 2 {
		return out, &wire.PreconditionError{Code: "bad-" + key, Message: key + " must be a 2-element array"}
	}
	for i, item := range raw {
		s, ok := item.(string)
		if !ok {
			return out, &wire.PreconditionError{Code: "bad-" + key, Message: key + " elements must be hex strings"}
		}
		b, err := hex.DecodeString(s)
		if err != nil || len(b) != 32 {
			return out, &wire.PorcelainError{Code: "bad-" + key, Message: key + " elements must be 32 bytes of hex", Cause: err}
		}
		copy(out[i][:], b)
	}
	return out, nil
}

func joinSplitFromPorcelain(m map[string]any, useGroth bool) (*transaction.JoinSplitDescription, error) {
	js := &transaction.JoinSplitDescription{}

	if vOld, ok := m["vpub_old"].(float64); ok {
		js.VPubOld = uint64(math.Round(vOld * wire.Coin))
	}
	if vNew, ok := m["vpub_new"].(float64); ok {
		js.VPubNew = uint64(math.Round(vNew * wire.Coin))
	}

	var err error
	if js.Anchor, err = hash32Field(m, "anchor"); err != nil {
		return nil, err
	}
	if js.Nullifiers, err = hashPairField(m, "nullifiers"); err != nil {
		return nil, err
	}
	if js.Commitments, err = hashPairField(m, "commitments"); err != nil {
		return nil, err
	}
	if js.EphemeralKey, err = hash32Field(m, "onetimePubKey"); err != nil {
		return nil, err
	}
	if js.RandomSeed, err = hash32Field(m, "randomSeed"); err != nil {
		return nil, err
	}
	if js.VMACs, err = hashPairField(m, "macs"); err != nil {
		return nil, err
	}

	ctsRaw, ok := m["ciphertexts"].([]any)
	if !ok || len(ctsRaw) != 2 {
		return nil, &wire.PreconditionError{Code: "bad-ciphertexts", Message: "ciphertexts must be a 2-element array"}
	}
	for i, item := range ctsRaw {
		s, ok := item.(string)
		if !ok {
			return nil, &wire.PreconditionError{Code: "bad-ciphertexts", Message: "ciphertexts elements must be hex strings"}
		}
		b, err := hex.DecodeString(s)
		if err != nil || len(b) != 601 {
			return nil, &wire.PorcelainError{Code: "bad-ciphertexts", Message: "ciphertexts elements must be 601 bytes of hex", Cause: err}
		}
		copy(js.Ciphertexts[i][:], b)
	}

	proofHex, _ := m["proof"].(string)
	if useGroth {
		proof, err := hex.DecodeString(proofHex)
		if err != nil || len(proof) != 192 {
			return nil, &wire.PorcelainError{Code: "bad-joinsplit-proof", Message: "Groth joinsplit proof must be 192 bytes of hex", Cause: err}
		}
		var g transaction.GrothProof
		copy(g[:], proof)
		js.GrothZKProof = &g
	} else {
		p, err := phgrProofFromHex(proofHex)
		if err != nil {
			return nil, err
		}
		js.PHGRZKProof = p
	}

	return js, nil
}

func intField(v map[string]any, key string) (int64, bool) {
	raw, ok := v[key]
	if !ok {
		return 0, false
	}
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
