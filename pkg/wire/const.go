package wire

// HeaderBytes is the fixed serialized size of a Zcash block header.
const HeaderBytes = 1487

// Coin is the number of zatoshis in one ZEC.
const Coin = 100_000_000
