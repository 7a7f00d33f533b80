// Package session implements the guided fill dialogue: a deterministic
// state machine that walks the extracted placeholders one at a time,
// accepts values, supports out-of-order correction by field name, and
// finishes in a terminal confirmed state. Every transition appends to
// an observability-only message log; the log never feeds back into
// substitution logic.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/docfill/mcp-docfill/internal/template"
)

// State identifies where the dialogue currently is.
type State string

const (
	// StateCollecting means the session is asking for placeholder
	// values in canonical order.
	StateCollecting State = "collecting"
	// StateEditing means the session is waiting for a replacement
	// value for one specific placeholder.
	StateEditing State = "editing"
	// StateConfirming means all values are collected and the session
	// is waiting for the user to confirm or request a change.
	StateConfirming State = "confirming"
	// StateComplete is terminal; the guided protocol accepts no
	// further mutation.
	StateComplete State = "complete"
)

// Role distinguishes who authored a message.
type Role string

const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Message is one entry in the append-only session log.
type Message struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

var (
	// ErrNoPlaceholders is returned when a session is started over a
	// document in which extraction found nothing to fill.
	ErrNoPlaceholders = errors.New("document has no placeholders to fill")

	// ErrFieldNotFound is returned when a field reference resolves to
	// no placeholder.
	ErrFieldNotFound = errors.New("field not found")

	// ErrNotConfirming is returned when an edit is requested through
	// the guided protocol outside the confirmation stage.
	ErrNotConfirming = errors.New("session is not awaiting confirmation")
)

// Session owns one document's fill dialogue. All mutation of
// placeholder values inside the owned DocumentData goes through the
// session; value updates replace the placeholder record rather than
// mutating it in place.
type Session struct {
	doc     template.DocumentData
	state   State
	index   int // next placeholder while collecting
	editing int // placeholder ID being edited
	log     []Message
}

// New starts a session over an extracted document. The opening
// assistant messages (welcome plus the first field prompt) are appended
// immediately. A document with no placeholders cannot start a session.
func New(doc template.DocumentData) (*Session, error) {
	if len(doc.Placeholders) == 0 {
		return nil, ErrNoPlaceholders
	}

	s := &Session{
		doc:   doc,
		state: StateCollecting,
	}
	s.appendAssistant(fmt.Sprintf(
		"Great! I've analyzed your document %q and found %d placeholders that need to be filled. Let's go through them one by one.",
		doc.FileName, len(doc.Placeholders)))
	s.appendAssistant(askPrompt(doc.Placeholders[0]))
	return s, nil
}

// Answer feeds one line of user input into the state machine and
// returns the assistant messages produced by the transition.
func (s *Session) Answer(input string) []Message {
	s.log = append(s.log, Message{ID: uuid.NewString(), Role: RoleUser, Content: input})
	mark := len(s.log)

	switch s.state {
	case StateCollecting:
		s.collectValue(input)
	case StateEditing:
		s.applyEdit(input)
	case StateConfirming:
		s.confirm(input)
	case StateComplete:
		s.appendAssistant("The document is already complete. Use the preview or download it, or start over with a new template.")
	}

	return s.log[mark:]
}

// RequestEdit drives the confirmation-stage change transition directly
// (the editField operation). Outside the confirmation stage the guided
// protocol has nothing to edit yet.
func (s *Session) RequestEdit(fieldRef string) ([]Message, error) {
	if s.state != StateConfirming {
		return nil, ErrNotConfirming
	}
	mark := len(s.log)
	s.beginEdit(fieldRef)
	return s.log[mark:], nil
}

// SetFieldValue is the direct-edit path: it resolves a field reference
// and replaces that placeholder's value without touching the dialogue
// state. It remains available after the session is complete.
func (s *Session) SetFieldValue(fieldRef, value string) (template.Placeholder, error) {
	i := s.resolveField(fieldRef)
	if i < 0 {
		return template.Placeholder{}, ErrFieldNotFound
	}
	s.doc.Placeholders[i] = s.doc.Placeholders[i].WithValue(value)
	return s.doc.Placeholders[i], nil
}

// State returns the current dialogue state.
func (s *Session) State() State {
	return s.state
}

// IsComplete reports whether the dialogue reached its terminal state.
func (s *Session) IsComplete() bool {
	return s.state == StateComplete
}

// Document returns a snapshot of the owned document, with the
// placeholder slice copied so callers cannot alias session state.
func (s *Session) Document() template.DocumentData {
	doc := s.doc
	doc.Placeholders = s.Placeholders()
	return doc
}

// Placeholders returns a copy of the placeholder list in canonical
// order, including any values collected so far.
func (s *Session) Placeholders() []template.Placeholder {
	out := make([]template.Placeholder, len(s.doc.Placeholders))
	copy(out, s.doc.Placeholders)
	return out
}

// Messages returns a copy of the append-only log.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.log))
	copy(out, s.log)
	return out
}

// FilledCount returns how many placeholders have values.
func (s *Session) FilledCount() int {
	return s.doc.FilledCount()
}

// collectValue stores the answer for the current placeholder and moves
// to the next one, or to confirmation once every field has a value.
func (s *Session) collectValue(input string) {
	s.doc.Placeholders[s.index] = s.doc.Placeholders[s.index].WithValue(input)
	s.index++
	if s.index < len(s.doc.Placeholders) {
		s.appendAssistant(askPrompt(s.doc.Placeholders[s.index]))
		return
	}
	s.showSummary()
}

// applyEdit stores the replacement value for the placeholder under
// edit and returns to confirmation with a refreshed summary.
func (s *Session) applyEdit(input string) {
	for i, p := range s.doc.Placeholders {
		if p.ID == s.editing {
			s.doc.Placeholders[i] = p.WithValue(input)
			s.appendAssistant(fmt.Sprintf("Updated! I've changed %q to %q.", p.Text, input))
			break
		}
	}
	s.showSummary()
}

// confirm handles input while awaiting confirmation: an affirmative
// completes the session, a change request enters editing, anything
// else earns a usage hint.
func (s *Session) confirm(input string) {
	lower := strings.ToLower(input)

	if strings.Contains(lower, "yes") {
		s.state = StateComplete
		s.appendAssistant("Perfect! Your document is now complete and ready for review. Preview the final text or download the finished document.")
		return
	}

	if strings.Contains(lower, "change") {
		fieldRef := strings.TrimSpace(strings.Replace(lower, "change", "", 1))
		s.beginEdit(fieldRef)
		return
	}

	s.appendAssistant(`Please type "yes" to proceed or "change [field name]" to modify a specific field.`)
}

// beginEdit resolves a field reference and transitions to editing, or
// reports that the field was not recognized and stays put.
func (s *Session) beginEdit(fieldRef string) {
	i := s.resolveField(fieldRef)
	if i < 0 {
		s.appendAssistant("I couldn't find that field. Please try again with the exact field name from the summary above.")
		return
	}
	s.state = StateEditing
	s.editing = s.doc.Placeholders[i].ID
	s.appendAssistant(fmt.Sprintf("What should I put for %q instead?", s.doc.Placeholders[i].Text))
}

// resolveField matches a free-text field reference against the
// placeholders by case-insensitive substring containment in either
// direction, with bracket characters stripped from the placeholder
// side. Ambiguity resolves to the first placeholder in canonical
// order.
func (s *Session) resolveField(fieldRef string) int {
	ref := strings.ToLower(strings.TrimSpace(fieldRef))
	if ref == "" {
		return -1
	}
	for i, p := range s.doc.Placeholders {
		text := strings.ToLower(p.Text)
		stripped := strings.NewReplacer("[", "", "]", "").Replace(text)
		if strings.Contains(text, ref) || strings.Contains(ref, stripped) {
			return i
		}
	}
	return -1
}

// showSummary renders the collected values and asks for confirmation.
func (s *Session) showSummary() {
	var b strings.Builder
	b.WriteString("Perfect! I've collected all the information. Here's what you've entered:\n\n")
	for _, p := range s.doc.Placeholders {
		fmt.Fprintf(&b, "• %s: %q\n", p.Text, p.Value)
	}
	b.WriteString("\nDoes everything look correct? Type 'yes' to proceed, or tell me which field you'd like to change (e.g., \"change company name\").")

	s.state = StateConfirming
	s.appendAssistant(b.String())
}

// askPrompt builds the collection prompt for one placeholder.
func askPrompt(p template.Placeholder) string {
	if p.Description == "" {
		return fmt.Sprintf("What should I put for %q?", p.Text)
	}
	return fmt.Sprintf("What should I put for %q? %s", p.Text, p.Description)
}

// appendAssistant adds an assistant message to the log.
func (s *Session) appendAssistant(content string) {
	s.log = append(s.log, Message{ID: uuid.NewString(), Role: RoleAssistant, Content: content})
}
