// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize folds Unicode double-quote variants to the ASCII
// quote and re-expands every ASCII quote into alternating typographic
// opening and closing quotes.
package normalize

import "strings"

// asciiQuote is the intermediate pairing unit every variant folds to.
const asciiQuote = '"'

// Left and Right are the typographic quotes assigned by alternation.
const (
	Left  = '“' // left double quotation mark
	Right = '”' // right double quotation mark
)

// variants lists the double-quote characters folded to the ASCII quote.
// There is no overlap between entries, so order does not matter.
var variants = []string{
	"“", // left double quotation mark
	"”", // right double quotation mark
	"„", // double low-9 quotation mark
	"‟", // double high-reversed-9 quotation mark
	"″", // double prime
	"〝", // reversed double prime quotation mark
	"〞", // double prime quotation mark
	"＂", // fullwidth quotation mark
}

var folder = newFolder()

func newFolder() *strings.Replacer {
	pairs := make([]string, 0, 2*len(variants))
	for _, v := range variants {
		pairs = append(pairs, v, string(asciiQuote))
	}
	return strings.NewReplacer(pairs...)
}

// Stats holds the quote counts for one normalization pass.
type Stats struct {
	// Quotes is the number of ASCII quotes present after folding,
	// i.e. the number of quote positions the pairing pass consumed.
	Quotes int `json:"quotes" yaml:"quotes"`

	// Left and Right count the typographic quotes in the output.
	// Quotes == Left + Right always holds.
	Left  int `json:"left" yaml:"left"`
	Right int `json:"right" yaml:"right"`

	// Residual counts ASCII quotes remaining in the output. The pairing
	// pass consumes every ASCII quote, so this is always zero; it is
	// reported for diagnostic display only.
	Residual int `json:"residual" yaml:"residual"`
}

// Fold replaces every known quote variant with the ASCII quote.
// Folding is idempotent: no variant character survives one pass.
func Fold(s string) string {
	return folder.Replace(s)
}

// Pair replaces each ASCII quote in s with Left or Right, strictly
// alternating left-to-right and starting with Left. Pairing is purely
// positional: there is no awareness of nesting or escaping, and an
// odd total count leaves the final quote as an unmatched Left. All
// other characters pass through unchanged.
func Pair(s string) (string, Stats) {
	var stats Stats
	var b strings.Builder
	b.Grow(len(s))

	opening := true
	for _, r := range s {
		if r != asciiQuote {
			b.WriteRune(r)
			continue
		}
		stats.Quotes++
		if opening {
			b.WriteRune(Left)
			stats.Left++
		} else {
			b.WriteRune(Right)
			stats.Right++
		}
		opening = !opening
	}

	out := b.String()
	stats.Residual = strings.Count(out, string(asciiQuote))
	return out, stats
}

// Text runs the full normalization: fold quote variants to the ASCII
// quote, then pair every ASCII quote. A buffer with no quotes comes
// back unchanged with zero stats.
func Text(s string) (string, Stats) {
	return Pair(Fold(s))
}
