package api

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"zcblock/pkg/block"
)

// chainContextKeys are porcelain fields that depend on chain state this
// library never has access to (block height, confirmation count, the best
// chain's accumulated work, ...). A zcashd-sourced fixture carries them;
// this library's own ToPorcelain output never does, so Clean strips them
// before the two are compared.
var chainContextKeys = []string{
	"anchor", "chainhistoryroot", "chainwork", "confirmations",
	"height", "mediantime", "nextblockhash", "valuePools",
}

// Fixture pairs a raw block's wire bytes with the zcashd RPC JSON this
// library's porcelain output is expected to match, once chain-context keys
// are stripped.
type Fixture struct {
	Raw      []byte
	Expected map[string]any
}

// LoadFixture reads a hex-encoded block from hexPath and its expected
// getblock-shaped JSON from jsonPath.
func LoadFixture(hexPath, jsonPath string) (*Fixture, error) {
	hexBytes, err := os.ReadFile(hexPath)
	if err != nil {
		return nil, fmt.Errorf("reading fixture hex: %w", err)
	}
	raw, err := hex.DecodeString(strings.TrimSpace(string(hexBytes)))
	if err != nil {
		return nil, fmt.Errorf("decoding fixture hex: %w", err)
	}

	jsonBytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("reading fixture json: %w", err)
	}
	var expected map[string]any
	if err := json.Unmarshal(jsonBytes, &expected); err != nil {
		return nil, fmt.Errorf("parsing fixture json: %w", err)
	}

	return &Fixture{Raw: raw, Expected: expected}, nil
}

// Clean returns a copy of f.Expected with every chain-context key removed.
func (f *Fixture) Clean() map[string]any {
	cleaned := make(map[string]any, len(f.Expected))
	for k, v := range f.Expected {
		cleaned[k] = v
	}
	for _, k := range chainContextKeys {
		delete(cleaned, k)
	}
	return cleaned
}

// DifficultyWithinTolerance reports whether this library's computed
// difficulty for the fixture's block is within pct percent of the
// fixture's expected difficulty value, allowing for floating-point
// reimplementation drift rather than requiring bit-exact agreement.
func (f *Fixture) DifficultyWithinTolerance(pct float64) (bool, error) {
	b, err := block.DecodeHeaderOnly(f.Raw, false)
	if err != nil {
		return false, fmt.Errorf("decoding fixture header: %w", err)
	}
	got := b.Header.Difficulty()

	want, ok := f.Expected["difficulty"].(float64)
	if !ok {
		return false, fmt.Errorf("fixture expected JSON missing numeric difficulty")
	}
	if want == 0 {
		return got == 0, nil
	}

	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff/want*100 <= pct, nil
}
