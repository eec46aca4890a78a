package wire

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/ripemd160"
)

// DoubleSHA256 computes SHA-256(SHA-256(b)), the hash function used for
// block hashes and transaction IDs.
func DoubleSHA256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

// Hash160 computes RIPEMD-160(SHA-256(b)), used to derive P2PKH/P2SH
// address payloads from a public key or redeem script.
func Hash160(b []byte) [20]byte {
	sha := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(sha[:])
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// MerkleRoot computes a block's merkle root from its leaf transaction
// hashes using the doubled-last-node rule: at each level, if the number of
// nodes is odd, the final node is hashed with itself before pairing up. A
// block always has at least a coinbase transaction, so an empty leaf set is
// a caller error rather than a degenerate zero-hash case.
func MerkleRoot(leaves [][32]byte) ([32]byte, error) {
	if len(leaves) == 0 {
		return [32]byte{}, &PreconditionError{Code: "empty-merkle-leaves", Message: "cannot compute a merkle root with no leaves"}
	}
	level := make([][32]byte, len(leaves))
	copy(level, leaves)
	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([][32]byte, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			buf := make([]byte, 64)
			copy(buf[:32], level[i][:])
			copy(buf[32:], level[i+1][:])
			next = append(next, DoubleSHA256(buf))
		}
		level = next
	}
	return level[0], nil
}

// ReverseHex returns the hex encoding of h with its byte order reversed,
// matching the display convention for block hashes and txids (wire bytes
// are little-endian; zcashd/bitcoind display them byte-reversed).
func ReverseHex(h [32]byte) string {
	var rev [32]byte
	for i := range h {
		rev[i] = h[31-i]
	}
	return hex.EncodeToString(rev[:])
}

// HashFromHex parses a display-order hex hash string back into its
// wire-order byte form, the inverse of ReverseHex.
func HashFromHex(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, &StrictLengthError{Code: "bad-hash-hex", Message: "hash hex must decode to 32 bytes", Expected: 32, Got: len(b)}
	}
	for i := range b {
		out[i] = b[31-i]
	}
	return out, nil
}
