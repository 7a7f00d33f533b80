package template

// Kind identifies the shape of a detected placeholder. It is determined
// once at extraction time and drives the substitution strategy during
// reconstruction.
type Kind string

const (
	// KindBracketed is a bracketed field like [COMPANY NAME].
	KindBracketed Kind = "bracketed"
	// KindDollarAmount is a dollar-amount field like $[Purchase Amount] or $[_____].
	KindDollarAmount Kind = "dollar_amount"
	// KindSignatureField is a labeled signature field like "Name: ____".
	KindSignatureField Kind = "signature_field"
	// KindUnderscoreGeneric is any other underscore-bearing field.
	KindUnderscoreGeneric Kind = "underscore_generic"
	// KindGeneric is the fallback kind for literal replacement.
	KindGeneric Kind = "generic"
)

// Placeholder represents a single fillable field detected in a template.
type Placeholder struct {
	ID             int    `json:"id"`
	Kind           Kind   `json:"kind"`
	Text           string `json:"text"`
	Description    string `json:"description"`
	Value          string `json:"value,omitempty"`
	Filled         bool   `json:"filled"`
	SourcePosition int    `json:"source_position"`
}

// WithValue returns a copy of the placeholder with the value set. The
// receiver is not modified; Text, Kind and ID never change after
// extraction.
func (p Placeholder) WithValue(value string) Placeholder {
	p.Value = value
	p.Filled = true
	return p
}

// DocumentData aggregates everything known about one uploaded template.
// It is created once per document and owned exclusively by the fill
// session; OriginalContent is the immutable substitution baseline.
type DocumentData struct {
	OriginalContent string        `json:"original_content"`
	FileName        string        `json:"file_name"`
	SourcePath      string        `json:"source_path"`
	Placeholders    []Placeholder `json:"placeholders"`
}

// FilledCount returns the number of placeholders with a value set.
func (d *DocumentData) FilledCount() int {
	count := 0
	for _, p := range d.Placeholders {
		if p.Filled {
			count++
		}
	}
	return count
}

// Match is a single raw recognizer hit before deduplication.
type Match struct {
	Kind        Kind
	Text        string // canonical placeholder text used as the substitution key
	Inner       string // captured inner content
	Description string // prompt text shown when collecting the value
	Start       int    // byte offset of the first character of the match
}
