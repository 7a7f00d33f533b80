package docfill

import (
	"github.com/docfill/mcp-docfill/internal/session"
	"github.com/docfill/mcp-docfill/internal/template"
)

// LoadTemplateRequest represents a request to load a template document
// and start a fill session over it.
type LoadTemplateRequest struct {
	Path string `json:"path"`
}

// LoadTemplateResult holds the extraction outcome and the opening
// session messages.
type LoadTemplateResult struct {
	FileName         string                 `json:"file_name"`
	Path             string                 `json:"path"`
	Size             int64                  `json:"size"`
	Pages            int                    `json:"pages,omitempty"`
	PlaceholderCount int                    `json:"placeholder_count"`
	Placeholders     []template.Placeholder `json:"placeholders"`
	Messages         []session.Message      `json:"messages"`
	State            string                 `json:"state"`
}

// AnswerRequest feeds one user reply into the fill dialogue.
type AnswerRequest struct {
	Input string `json:"input"`
}

// AnswerResult carries the assistant messages the reply produced and
// the session progress after the transition.
type AnswerResult struct {
	Messages []session.Message `json:"messages"`
	State    string            `json:"state"`
	Complete bool              `json:"complete"`
	Filled   int               `json:"filled"`
	Total    int               `json:"total"`
}

// EditFieldRequest asks to re-collect one field from the confirmation
// summary.
type EditFieldRequest struct {
	Field string `json:"field"`
}

// EditFieldResult carries the edit prompt (or the not-found notice).
type EditFieldResult struct {
	Messages []session.Message `json:"messages"`
	State    string            `json:"state"`
}

// SetFieldRequest sets a placeholder value directly, outside the
// guided dialogue.
type SetFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// SetFieldResult returns the placeholder after the update.
type SetFieldResult struct {
	Placeholder template.Placeholder `json:"placeholder"`
	Filled      int                  `json:"filled"`
	Total       int                  `json:"total"`
}

// PreviewResult is the reconstructed document text with any
// placeholders that could not be located in the original.
type PreviewResult struct {
	FileName string         `json:"file_name"`
	Content  string         `json:"content"`
	Misses   []template.Miss `json:"misses,omitempty"`
	Filled   int            `json:"filled"`
	Total    int            `json:"total"`
	Complete bool           `json:"complete"`
}

// StatusResult summarizes the active session.
type StatusResult struct {
	Active       bool                   `json:"active"`
	FileName     string                 `json:"file_name,omitempty"`
	State        string                 `json:"state,omitempty"`
	Filled       int                    `json:"filled"`
	Total        int                    `json:"total"`
	Placeholders []template.Placeholder `json:"placeholders,omitempty"`
}

// DownloadResult describes the completed document written to the
// output directory.
type DownloadResult struct {
	FileName  string `json:"file_name"`
	MediaType string `json:"media_type"`
	Path      string `json:"path"`
	Size      int64  `json:"size"`
}

// ResetResult confirms the session slot was cleared.
type ResetResult struct {
	HadSession bool   `json:"had_session"`
	FileName   string `json:"file_name,omitempty"`
}
