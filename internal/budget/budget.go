// Package budget estimates whether a keyword prompt fits a model's context
// window.
package budget

import (
	"math"
	"strings"
	"unicode/utf8"
)

// EstimateTokensFromChars converts a character count into a conservative
// token estimate (~4 chars per token). At least 1 when chars > 0.
func EstimateTokensFromChars(charCount int) int {
	if charCount <= 0 {
		return 0
	}
	return int(math.Ceil(float64(charCount) / 4.0))
}

// EstimateTokens returns the estimated token count of s.
func EstimateTokens(s string) int {
	return EstimateTokensFromChars(utf8.RuneCountInString(s))
}

// ModelContextTokens returns an estimated context window for modelName.
// Unknown models fall back to 8192.
func ModelContextTokens(modelName string) int {
	name := strings.ToLower(strings.TrimSpace(modelName))
	if name == "" {
		return 8192
	}
	if v, ok := knownModelMax[name]; ok {
		return v
	}
	switch {
	case strings.HasSuffix(name, "1m"):
		return 1_000_000
	case strings.HasSuffix(name, "200k"):
		return 200_000
	case strings.HasSuffix(name, "128k"):
		return 128_000
	case strings.HasSuffix(name, "32k"):
		return 32_768
	case strings.HasSuffix(name, "16k"):
		return 16_384
	case strings.Contains(name, "-mini"), strings.HasPrefix(name, "gpt-4.1"), strings.HasPrefix(name, "gpt-4o"):
		return 128_000
	}
	return 8192
}

// Estimate is a sizing report for one prompt.
type Estimate struct {
	PromptTokens   int
	ReservedOutput int
	ModelContext   int
	Remaining      int
	Fits           bool
}

// Check sizes prompt against modelName's context while reserving
// reservedOutput tokens for the answer.
func Check(modelName, prompt string, reservedOutput int) Estimate {
	if reservedOutput < 0 {
		reservedOutput = 0
	}
	e := Estimate{
		PromptTokens:   EstimateTokens(prompt),
		ReservedOutput: reservedOutput,
		ModelContext:   ModelContextTokens(modelName),
	}
	e.Remaining = e.ModelContext - e.ReservedOutput - e.PromptTokens
	if e.Remaining < 0 {
		e.Remaining = 0
	}
	e.Fits = e.Remaining > 0
	return e
}

// knownModelMax holds rough context sizes for common model identifiers.
var knownModelMax = map[string]int{
	"gpt-3.5-turbo":     16_384,
	"gpt-3.5-turbo-16k": 16_384,
	"gpt-4":             8_192,
	"gpt-4-32k":         32_768,
	"gpt-4-turbo":       128_000,
	"gpt-4o":            128_000,
	"gpt-4o-mini":       128_000,
	"llama-3":           8_192,
	"llama-3.1":         128_000,
	"gpt-oss-20b":       4_096,
}
