package template

import (
	"regexp"
	"strings"
)

const (
	// maxBracketInnerLength bounds the inner content of a bracketed
	// field; anything longer is template prose, not a field name.
	maxBracketInnerLength = 100

	// minUnderscoreLineLength is the shortest run of underscores that
	// counts as a standalone signature line.
	minUnderscoreLineLength = 5
)

var (
	bracketPattern = regexp.MustCompile(`\[([^\]]+)\]`)
	dollarPattern  = regexp.MustCompile(`\$\[([^\]]*)\]`)

	// Label and underscores must share a line; fields split across
	// lines belong to the gated signature passes.
	underscorePattern = regexp.MustCompile(`([A-Za-z][A-Za-z ]*):[ \t]*_{3,}`)

	// Signature label patterns are applied in a fixed order so that
	// all matches for one label precede matches for the next.
	signatureLabelPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^(\s*)(By):\s*[_\s]*$`),
		regexp.MustCompile(`(?im)^(\s*)(Name):\s*[_\s]*$`),
		regexp.MustCompile(`(?im)^(\s*)(Title):\s*[_\s]*$`),
		regexp.MustCompile(`(?im)^(\s*)(Address):\s*[_\s]*$`),
		regexp.MustCompile(`(?im)^(\s*)(Email):\s*[_\s]*$`),
	}

	signatureLinePattern  = regexp.MustCompile(`^_{5,}$`)
	signatureLabelLine    = regexp.MustCompile(`(?i)^(By|Name|Title|Address|Email):\s*$`)
	signatureFieldMarker  = ": ____"
	signatureFieldPadding = "____"
)

// SignaturePolicy gates signature-field detection. Without the gate
// every colon-terminated line in a document would produce a spurious
// placeholder, so label-line recognizers only run when the document
// plausibly contains a signature block.
type SignaturePolicy struct {
	// Keywords are matched case-insensitively anywhere in the document.
	Keywords []string
	// Tokens are matched literally, case preserved.
	Tokens []string
}

// DefaultSignaturePolicy returns the gate used for typical legal
// templates: the word "signature" anywhere, or the block headers
// "INVESTOR:" / "COMPANY:".
func DefaultSignaturePolicy() SignaturePolicy {
	return SignaturePolicy{
		Keywords: []string{"signature"},
		Tokens:   []string{"INVESTOR:", "COMPANY:"},
	}
}

// Applies reports whether the document text passes the gate.
func (p SignaturePolicy) Applies(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range p.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	for _, tok := range p.Tokens {
		if strings.Contains(text, tok) {
			return true
		}
	}
	return false
}

// matchBracketed finds bracketed fields like [COMPANY NAME]. The inner
// content must be non-empty, shorter than 100 characters, contain at
// least one letter, and contain only printable ASCII. This excludes
// footnote markers and non-text artifacts while accepting arbitrary
// field names.
func matchBracketed(text string) []Match {
	var matches []Match
	for _, loc := range bracketPattern.FindAllStringSubmatchIndex(text, -1) {
		full := text[loc[0]:loc[1]]
		inner := text[loc[2]:loc[3]]
		if !validBracketInner(inner) {
			continue
		}
		matches = append(matches, Match{
			Kind:        KindBracketed,
			Text:        full,
			Inner:       inner,
			Description: "Please provide a value for: " + inner,
			Start:       loc[0],
		})
	}
	return matches
}

// validBracketInner applies the bracket content rules.
func validBracketInner(inner string) bool {
	if len(inner) == 0 || len(inner) >= maxBracketInnerLength {
		return false
	}
	hasLetter := false
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c < 0x20 || c > 0x7E {
			return false
		}
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			hasLetter = true
		}
	}
	return hasLetter
}

// matchDollar finds dollar-amount fields like $[Purchase Amount] or the
// blank form $[_____]. The inner content may be empty; the delimiters
// alone make it valid.
func matchDollar(text string) []Match {
	var matches []Match
	for _, loc := range dollarPattern.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, Match{
			Kind:        KindDollarAmount,
			Text:        text[loc[0]:loc[1]],
			Inner:       text[loc[2]:loc[3]],
			Description: "Please provide a dollar amount",
			Start:       loc[0],
		})
	}
	return matches
}

// matchLabeledUnderscore finds explicit labeled fields like
// "Name: ____" where a label is followed by a colon and three or more
// underscores. This recognizer is not gated; the underscores are
// explicit authoring intent.
func matchLabeledUnderscore(text string) []Match {
	var matches []Match
	for _, loc := range underscorePattern.FindAllStringSubmatchIndex(text, -1) {
		inner := strings.TrimSpace(text[loc[2]:loc[3]])
		matches = append(matches, Match{
			Kind:        KindSignatureField,
			Text:        text[loc[0]:loc[1]],
			Inner:       inner,
			Description: "Please provide a value for: " + inner,
			Start:       loc[0],
		})
	}
	return matches
}

// matchSignatureLabels finds gated signature labels (By, Name, Title,
// Address, Email) whose line carries only blank or underscore content,
// on the same line or continuing onto the next. The canonical text is
// normalized to "<Label>: ____" since the authored span rarely repeats
// verbatim; the reconstructor's fallback strategies absorb the drift.
// The reported position is the label's own offset so that the same
// field found by another pass deduplicates.
func matchSignatureLabels(text string) []Match {
	var matches []Match
	for _, pattern := range signatureLabelPatterns {
		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			label := text[loc[4]:loc[5]]
			matches = append(matches, Match{
				Kind:        KindSignatureField,
				Text:        label + signatureFieldMarker,
				Inner:       label,
				Description: "Please provide the " + strings.ToLower(label),
				Start:       loc[4],
			})
		}
	}
	return matches
}

// matchSignatureLines finds standalone underscore lines whose previous
// line is a bare signature label ("By:" etc.). The position reported is
// the label's offset so that a span already claimed by
// matchSignatureLabels deduplicates instead of producing a twin.
func matchSignatureLines(text string) []Match {
	var matches []Match
	lines := strings.Split(text, "\n")
	offset := 0
	prevOffset := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if i > 0 && signatureLinePattern.MatchString(trimmed) {
			raw := lines[i-1]
			prev := strings.TrimSpace(raw)
			if signatureLabelLine.MatchString(prev) {
				label := strings.TrimSpace(strings.TrimSuffix(prev, ":"))
				indent := len(raw) - len(strings.TrimLeft(raw, " \t"))
				matches = append(matches, Match{
					Kind:        KindSignatureField,
					Text:        label + signatureFieldMarker,
					Inner:       label,
					Description: "Please provide the " + strings.ToLower(label),
					Start:       prevOffset + indent,
				})
			}
		}
		prevOffset = offset
		offset += len(line) + 1
	}
	return matches
}

// signatureFieldName derives the label from a signature placeholder's
// canonical text, tolerating more than four underscores in the
// authored form.
func signatureFieldName(text string) string {
	if i := strings.Index(text, signatureFieldMarker); i >= 0 {
		return text[:i]
	}
	if i := strings.Index(text, ":"); i >= 0 {
		return text[:i]
	}
	return text
}

// KindForText classifies a placeholder's canonical text by shape. The
// extractor assigns kinds directly; this covers placeholders built by
// hand (direct API use, tests) so reconstruction stays total.
func KindForText(text string) Kind {
	switch {
	case strings.HasPrefix(text, "$["):
		return KindDollarAmount
	case strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]"):
		return KindBracketed
	case strings.Contains(text, signatureFieldMarker):
		return KindSignatureField
	case strings.Contains(text, signatureFieldPadding):
		return KindUnderscoreGeneric
	default:
		return KindGeneric
	}
}
