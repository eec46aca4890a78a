package porcelain

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// ScriptInfo is the porcelain rendering of a scriptPubKey: its
// human-readable disassembly plus the classification and addresses
// zcashd's getrawtransaction RPC reports for a vout's scriptPubKey.
type ScriptInfo struct {
	Asm       string
	Type      string
	ReqSigs   int
	Addresses []string
}

// hashAddresser is satisfied by the btcutil.Address implementations that
// wrap a single 20-byte hash (pubkey-hash and script-hash addresses), so
// ClassifyScript can call Hash160 on them without a type switch over each
// concrete btcutil address type.
type hashAddresser interface {
	Hash160() *[20]byte
}

// ClassifyScript disassembles and classifies a scriptPubKey, delegating the
// actual script-grammar parsing and address extraction to txscript rather
// than reimplementing Bitcoin-lineage script evaluation in this module.
// Extracted addresses are re-rendered with Zcash's own address version
// bytes rather than txscript's Bitcoin ones. A pubkey script (and each
// constituent pubkey of a multisig script) is extracted as a
// *btcutil.AddressPubKey, not a hash-carrying address directly, so those
// are hashed down to their pubkey-hash form via AddressPubKeyHash() before
// going through the same PubKeyHashAddress rendering as an ordinary P2PKH
// output.
func ClassifyScript(scriptPubKey []byte) ScriptInfo {
	info := ScriptInfo{Type: "nonstandard"}

	asm, err := txscript.DisasmString(scriptPubKey)
	if err == nil {
		info.Asm = asm
	}

	class, addrs, reqSigs, err := txscript.ExtractPkScriptAddrs(scriptPubKey, &chaincfg.MainNetParams)
	if err != nil {
		return info
	}
	info.Type = scriptClassName(class)
	info.ReqSigs = reqSigs

	for _, addr := range addrs {
		if pk, ok := addr.(*btcutil.AddressPubKey); ok {
			info.Addresses = append(info.Addresses, PubKeyHashAddress(*pk.AddressPubKeyHash().Hash160()))
			continue
		}
		if ha, ok := addr.(hashAddresser); ok {
			switch class {
			case txscript.PubKeyHashTy:
				info.Addresses = append(info.Addresses, PubKeyHashAddress(*ha.Hash160()))
			case txscript.ScriptHashTy:
				info.Addresses = append(info.Addresses, ScriptHashAddress(*ha.Hash160()))
			}
		}
	}
	return info
}

func scriptClassName(class txscript.ScriptClass) string {
	switch class {
	case txscript.PubKeyTy:
		return "pubkey"
	case txscript.PubKeyHashTy:
		return "pubkeyhash"
	case txscript.ScriptHashTy:
		return "scripthash"
	case txscript.MultiSigTy:
		return "multisig"
	case txscript.NullDataTy:
		return "nulldata"
	default:
		return "nonstandard"
	}
}
