package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstructAgreementScenario(t *testing.T) {
	text := "This Agreement is between [COMPANY NAME] and [INVESTOR NAME]. Amount: $[_____]."

	placeholders := NewExtractor().Extract(text)
	require.Len(t, placeholders, 3)

	placeholders[0] = placeholders[0].WithValue("Acme Inc.")
	placeholders[1] = placeholders[1].WithValue("Jane Doe")
	placeholders[2] = placeholders[2].WithValue("$50,000")

	result, misses := Reconstruct(text, placeholders)

	assert.Empty(t, misses)
	assert.Equal(t, "This Agreement is between Acme Inc. and Jane Doe. Amount: $50,000.", result)
}

func TestReconstructLongestFirst(t *testing.T) {
	// [CO] must not clobber [COMPANY] no matter which order the
	// placeholders arrive in.
	original := "Between [COMPANY] and the buyer, care of [CO]."

	co := Placeholder{ID: 1, Kind: KindBracketed, Text: "[CO]"}.WithValue("Carrier")
	company := Placeholder{ID: 2, Kind: KindBracketed, Text: "[COMPANY]"}.WithValue("Acme Inc.")

	forward, missesA := Reconstruct(original, []Placeholder{co, company})
	reversed, missesB := Reconstruct(original, []Placeholder{company, co})

	assert.Empty(t, missesA)
	assert.Empty(t, missesB)
	assert.Equal(t, "Between Acme Inc. and the buyer, care of Carrier.", forward)
	assert.Equal(t, forward, reversed)
}

func TestReconstructIdempotent(t *testing.T) {
	original := "Party [COMPANY NAME], amount $[_____].\nSignature:\nBy:\n__________\n"

	placeholders := NewExtractor().Extract(original)
	require.Len(t, placeholders, 3)
	values := []string{"Acme Inc.", "$50,000", "J. Smith"}
	for i := range placeholders {
		placeholders[i] = placeholders[i].WithValue(values[i])
	}

	once, _ := Reconstruct(original, placeholders)
	twice, _ := Reconstruct(once, placeholders)

	assert.Equal(t, once, twice)
}

func TestReconstructUnfilledPreserved(t *testing.T) {
	original := "Between [COMPANY NAME] and [INVESTOR NAME]."

	placeholders := NewExtractor().Extract(original)
	require.Len(t, placeholders, 2)
	placeholders[0] = placeholders[0].WithValue("Acme Inc.")

	result, misses := Reconstruct(original, placeholders)

	assert.Empty(t, misses)
	assert.Equal(t, "Between Acme Inc. and [INVESTOR NAME].", result)
}

func TestReconstructSignatureFallbacks(t *testing.T) {
	field := Placeholder{ID: 1, Kind: KindSignatureField, Text: "By: ____"}.WithValue("J. Smith")

	tests := []struct {
		name     string
		original string
		want     string
	}{
		{
			name:     "exact literal",
			original: "By: ____",
			want:     "By: J. Smith",
		},
		{
			name:     "longer underscore run",
			original: "By: _________",
			want:     "By: J. Smith",
		},
		{
			name:     "label and line split",
			original: "By:\n________________",
			want:     "By: J. Smith",
		},
		{
			name:     "bare trailing label",
			original: "By:\nTitle: CEO",
			want:     "By: J. Smith\nTitle: CEO",
		},
		{
			name:     "case drift",
			original: "BY: _____",
			want:     "By: J. Smith",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, misses := Reconstruct(tt.original, []Placeholder{field})
			assert.Empty(t, misses)
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestReconstructFirstOccurrenceOnly(t *testing.T) {
	original := "[CITY] is duplicated later as [CITY]."

	p := Placeholder{ID: 1, Kind: KindBracketed, Text: "[CITY]"}.WithValue("Springfield")

	result, misses := Reconstruct(original, []Placeholder{p})

	assert.Empty(t, misses)
	assert.Equal(t, "Springfield is duplicated later as [CITY].", result)
}

func TestReconstructReportsMisses(t *testing.T) {
	original := "Nothing to see here."

	p := Placeholder{ID: 7, Kind: KindBracketed, Text: "[GONE]"}.WithValue("value")

	result, misses := Reconstruct(original, []Placeholder{p})

	assert.Equal(t, original, result)
	require.Len(t, misses, 1)
	assert.Equal(t, 7, misses[0].Placeholder.ID)
	assert.Contains(t, misses[0].Reason, "[GONE]")
}

func TestReconstructKindInferredWhenUnset(t *testing.T) {
	// Hand-built placeholders without a kind still reconstruct; the
	// shape of the text decides the strategy.
	original := "Name:\n_______"
	p := Placeholder{ID: 1, Text: "Name: ____"}.WithValue("Jane Doe")

	result, misses := Reconstruct(original, []Placeholder{p})

	assert.Empty(t, misses)
	assert.Equal(t, "Name: Jane Doe", result)
}

func TestReconstructEmptyValueIgnored(t *testing.T) {
	original := "Hello [NAME]."
	p := Placeholder{ID: 1, Kind: KindBracketed, Text: "[NAME]", Filled: true}

	result, misses := Reconstruct(original, []Placeholder{p})

	assert.Empty(t, misses)
	assert.Equal(t, original, result)
}

func TestReconstructDollarOverlapResolved(t *testing.T) {
	// Both $[Purchase Amount] and its bracket twin are extracted; the
	// dollar form is longer so it substitutes first and the bracket
	// twin reports a miss rather than corrupting the output.
	original := "Pay $[Purchase Amount] on closing."

	placeholders := NewExtractor().Extract(original)
	require.Len(t, placeholders, 2)
	for i := range placeholders {
		placeholders[i] = placeholders[i].WithValue("$10,000")
	}

	result, misses := Reconstruct(original, placeholders)

	assert.Equal(t, "Pay $10,000 on closing.", result)
	require.Len(t, misses, 1)
	assert.Equal(t, "[Purchase Amount]", misses[0].Placeholder.Text)
}
