package porcelain

import (
	"github.com/btcsuite/btcutil/base58"

	"zcblock/pkg/wire"
)

// Zcash mainnet address version prefixes (two bytes, unlike Bitcoin's
// single-byte prefixes), per the protocol spec's base58check conventions.
var (
	PubKeyHashPrefix = [2]byte{0x1c, 0xb8} // t1...
	ScriptHashPrefix = [2]byte{0x1c, 0xbd} // t3...
)

// EncodeAddress base58check-encodes a 20-byte hash behind a 2-byte Zcash
// version prefix, the same checksum-then-base58 pattern used for WIF
// private key encoding, generalized to Zcash's wider address prefix.
func EncodeAddress(prefix [2]byte, hash [20]byte) string {
	payload := make([]byte, 0, 2+20)
	payload = append(payload, prefix[0], prefix[1])
	payload = append(payload, hash[:]...)

	checksum := wire.DoubleSHA256(payload)
	full := append(payload, checksum[:4]...)
	return base58.Encode(full)
}

// PubKeyHashAddress renders a P2PKH address from a public key hash.
func PubKeyHashAddress(hash [20]byte) string {
	return EncodeAddress(PubKeyHashPrefix, hash)
}

// ScriptHashAddress renders a P2SH address from a redeem script hash.
func ScriptHashAddress(hash [20]byte) string {
	return EncodeAddress(ScriptHashPrefix, hash)
}
