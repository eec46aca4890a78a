package porcelain

import (
	"fmt"

	"zcblock/pkg/wire"
)

// FormatCoin converts a zatoshi amount to ZEC (zatoshis / Coin) as a
// float64, the numeric form zcashd's RPC JSON uses for value fields.
func FormatCoin(zatoshis int64) float64 {
	return float64(zatoshis) / float64(wire.Coin)
}

// FormatBits renders nBits as a bare lowercase hex string, with no 0x
// prefix and no leading-zero stripping (it is always exactly 8 hex digits).
func FormatBits(bits uint32) string {
	return fmt.Sprintf("%08x", bits)
}

// FormatVersionGroupID renders a transaction's versiongroupid as an
// 8-digit lowercase hex string.
func FormatVersionGroupID(id uint32) string {
	return fmt.Sprintf("%08x", id)
}
