// zcblock CLI - decode and inspect Zcash blocks and transactions
//
// Example usage:
//
//	# Decode a raw block to JSON
//	zcblock decode-block blockhex.txt
//
//	# Decode a raw transaction to JSON
//	zcblock decode-tx txhex.txt
//
//	# Re-encode a decoded block/transaction and confirm it round-trips
//	zcblock roundtrip-block blockhex.txt
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"zcblock/pkg/api"
	"zcblock/pkg/porcelain"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "decode-block":
		cmdDecodeBlock()
	case "decode-tx":
		cmdDecodeTx()
	case "roundtrip-block":
		cmdRoundtripBlock()
	case "roundtrip-tx":
		cmdRoundtripTx()
	case "version":
		cmdVersion()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`zcblock - Zcash block/transaction codec

Usage:
  zcblock <command> [options]

Commands:
  decode-block <hexfile>       Decode a raw block and print its porcelain JSON
  decode-tx <hexfile>          Decode a raw transaction and print its porcelain JSON
  roundtrip-block <hexfile>    Decode then re-encode a block, verify byte equality
  roundtrip-tx <hexfile>       Decode then re-encode a transaction, verify byte equality
  version                      Show version information
  help                         Show this help message

Input files contain a single hex string (consensus-serialized wire bytes).`)
}

func cmdVersion() {
	fmt.Println("zcblock v0.1.0")
	fmt.Println("Zcash block and transaction binary codec")
}

func readHexFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return hex.DecodeString(strings.TrimSpace(string(raw)))
}

func cmdDecodeBlock() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Error: hex file argument required")
		os.Exit(1)
	}
	data, err := readHexFile(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		os.Exit(1)
	}

	b, err := api.DecodeBlock(data, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode block: %v\n", err)
		os.Exit(1)
	}

	porc, err := api.BlockToPorcelain(b, porcelain.BlockModeDefault)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render porcelain: %v\n", err)
		os.Exit(1)
	}
	printJSON(porc)
}

func cmdDecodeTx() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Error: hex file argument required")
		os.Exit(1)
	}
	data, err := readHexFile(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		os.Exit(1)
	}

	t, err := api.DecodeTransaction(data, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode transaction: %v\n", err)
		os.Exit(1)
	}

	porc, err := api.TransactionToPorcelain(t)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render porcelain: %v\n", err)
		os.Exit(1)
	}
	printJSON(porc)
}

func cmdRoundtripBlock() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Error: hex file argument required")
		os.Exit(1)
	}
	data, err := readHexFile(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		os.Exit(1)
	}

	b, err := api.DecodeBlock(data, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode block: %v\n", err)
		os.Exit(1)
	}
	reencoded, err := api.EncodeBlock(b)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to re-encode block: %v\n", err)
		os.Exit(1)
	}
	if hex.EncodeToString(reencoded) != hex.EncodeToString(data) {
		fmt.Fprintln(os.Stderr, "Round-trip mismatch")
		os.Exit(1)
	}
	fmt.Println("OK")
}

func cmdRoundtripTx() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Error: hex file argument required")
		os.Exit(1)
	}
	data, err := readHexFile(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		os.Exit(1)
	}

	t, err := api.DecodeTransaction(data, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode transaction: %v\n", err)
		os.Exit(1)
	}
	reencoded, err := api.EncodeTransaction(t)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to re-encode transaction: %v\n", err)
		os.Exit(1)
	}
	if hex.EncodeToString(reencoded) != hex.EncodeToString(data) {
		fmt.Fprintln(os.Stderr, "Round-trip mismatch")
		os.Exit(1)
	}
	fmt.Println("OK")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render JSON: %v\n", err)
		os.Exit(1)
	}
}
