package template

import (
	"fmt"
)

// Extractor scans plain template text and produces the ordered
// placeholder list. It is stateless and safe for reuse; Extract is a
// pure function of its input.
type Extractor struct {
	policy SignaturePolicy
}

// NewExtractor creates an extractor with the default signature-block
// policy.
func NewExtractor() *Extractor {
	return NewExtractorWithPolicy(DefaultSignaturePolicy())
}

// NewExtractorWithPolicy creates an extractor with a custom
// signature-block gate.
func NewExtractorWithPolicy(policy SignaturePolicy) *Extractor {
	return &Extractor{policy: policy}
}

// Extract runs every recognizer over the text in fixed priority order
// (bracketed, dollar, explicit labeled underscore, then the gated
// signature passes), deduplicates by (text, position), and assigns IDs
// in acceptance order. The returned order is the canonical sequence
// the fill session walks. An empty result means no placeholders were
// found; the caller decides whether that is an error.
func (e *Extractor) Extract(text string) []Placeholder {
	var candidates []Match
	candidates = append(candidates, matchBracketed(text)...)
	candidates = append(candidates, matchDollar(text)...)
	candidates = append(candidates, matchLabeledUnderscore(text)...)

	if e.policy.Applies(text) {
		candidates = append(candidates, matchSignatureLabels(text)...)
		candidates = append(candidates, matchSignatureLines(text)...)
	}

	seen := make(map[string]struct{}, len(candidates))
	placeholders := make([]Placeholder, 0, len(candidates))
	id := 1
	for _, m := range candidates {
		key := fmt.Sprintf("%s_pos_%d", m.Text, m.Start)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		placeholders = append(placeholders, Placeholder{
			ID:             id,
			Kind:           m.Kind,
			Text:           m.Text,
			Description:    m.Description,
			SourcePosition: m.Start,
		})
		id++
	}
	return placeholders
}
