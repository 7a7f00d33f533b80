package template

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Miss records a filled placeholder whose value could not be located by
// any substitution strategy. Misses are diagnostic; reconstruction
// still returns a best-effort document.
type Miss struct {
	Placeholder Placeholder `json:"placeholder"`
	Reason      string      `json:"reason"`
}

// Reconstruct substitutes every filled placeholder's value into the
// original text and returns the completed document. Placeholders are
// applied longest-text-first so a short placeholder's literal text
// cannot corrupt a longer one it is a substring of. Only the first
// occurrence of each pattern is replaced; unfilled placeholders keep
// their literal text. Calling Reconstruct on its own output with the
// same placeholders is a no-op.
func Reconstruct(original string, placeholders []Placeholder) (string, []Miss) {
	filled := make([]Placeholder, 0, len(placeholders))
	for _, p := range placeholders {
		if p.Filled && p.Value != "" {
			filled = append(filled, p)
		}
	}

	sort.SliceStable(filled, func(i, j int) bool {
		return len(filled[i].Text) > len(filled[j].Text)
	})

	content := original
	var misses []Miss
	for _, p := range filled {
		next, ok := substitute(content, p)
		if !ok {
			misses = append(misses, Miss{
				Placeholder: p,
				Reason:      fmt.Sprintf("no occurrence of %q matched any strategy", p.Text),
			})
			continue
		}
		content = next
	}
	return content, misses
}

// substitute applies the strategy chain for one placeholder against the
// current document text. It reports whether any strategy matched.
func substitute(content string, p Placeholder) (string, bool) {
	kind := p.Kind
	if kind == "" {
		kind = KindForText(p.Text)
	}

	switch kind {
	case KindSignatureField:
		return substituteSignature(content, p)
	default:
		// Bracketed, dollar, generic underscore and the final fallback
		// all replace the first literal occurrence of the canonical
		// text.
		return replaceFirstLiteral(content, p.Text, p.Value)
	}
}

// replaceFirstLiteral replaces the first literal occurrence of old in
// content with value.
func replaceFirstLiteral(content, old, value string) (string, bool) {
	if !strings.Contains(content, old) {
		return content, false
	}
	return strings.Replace(content, old, value, 1), true
}

// substituteSignature handles labeled signature fields, where the
// canonical "<Label>: ____" form frequently drifts from the authored
// text (underscore runs of any length, label and line split across
// lines, or a bare trailing label). Strategies are tried in order of
// decreasing precision; the first match wins and is replaced with
// "<Label>: <value>".
func substituteSignature(content string, p Placeholder) (string, bool) {
	fieldName := signatureFieldName(p.Text)
	replacement := fieldName + ": " + p.Value

	if strings.Contains(content, p.Text) {
		return strings.Replace(content, p.Text, replacement, 1), true
	}

	quoted := regexp.QuoteMeta(fieldName)
	fallbacks := []*regexp.Regexp{
		regexp.MustCompile(`(?i)` + quoted + `:\s*_{2,}`),
		regexp.MustCompile(`(?im)` + quoted + `:\s*[_\s]*$`),
		regexp.MustCompile(`(?im)` + quoted + `:\s*$`),
	}
	for _, pattern := range fallbacks {
		if loc := pattern.FindStringIndex(content); loc != nil {
			return content[:loc[0]] + replacement + content[loc[1]:], true
		}
	}
	return content, false
}
