package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	DocLoadTemplateDescription = `Load a legal document template and detect its fill-in placeholders.

**When to use:** Starting work on a new template. This is always the first step; every other tool operates on the session this one creates.

**Why it's useful:** Automatically finds bracketed placeholders like [COMPANY NAME], dollar amounts like $[Purchase Amount], labeled blanks like "Name: _____", and signature-block fields (By:, Name:, Title:, Address:, Email:) so nothing has to be marked up by hand.

**Examples:**
• Start filling an NDA: "Load nda.txt and walk me through the blanks"
• Prepare an investment agreement: "Load safe-agreement.pdf so we can fill in the investor details"

**Common workflows:**
1. Guided fill: doc_load_template → doc_answer for each prompt → confirm with "yes" → doc_download
2. Inspection: doc_load_template → doc_status to review the detected fields before answering

**Best practices:** Keep templates inside the configured template directory. Loading a new template replaces any session in progress.`

	DocAnswerDescription = `Send one reply into the guided fill dialogue.

**When to use:** After doc_load_template, whenever the assistant has asked a question: a field value, a confirmation ("yes"), or a change request ("change company name").

**Why it's useful:** The dialogue walks every detected placeholder in document order, then shows a summary for review, so a document is filled completely without tracking fields yourself.

**Examples:**
• Provide a value: input "Acme Inc." while the company name is being asked for
• Confirm the summary: input "yes"
• Fix a field from the summary: input "change purchase amount"

**Best practices:** The reply is stored verbatim as the field value while collecting, so send exactly the text that should appear in the document.`

	DocEditFieldDescription = `Re-open one field from the confirmation summary.

**When to use:** The summary is showing and one value needs to change; this is the direct form of typing "change [field name]".

**Why it's useful:** Jumps straight to re-collecting a single field without restarting the session or re-entering the other values.

**Examples:**
• "Edit the purchase amount" → doc_edit_field with field "purchase amount", then doc_answer with the new value

**Best practices:** Field matching is case-insensitive and accepts partial names. Only available while the session is awaiting confirmation.`

	DocSetFieldDescription = `Set a placeholder value directly, outside the guided dialogue.

**When to use:** A value must change without driving the dialogue, including after the session is complete.

**Why it's useful:** Late corrections (a typo noticed in the preview, an updated amount) do not require redoing the conversation.

**Examples:**
• After completion: doc_set_field with field "company name" and value "Globex Corp", then doc_preview to verify

**Best practices:** Prefer doc_answer/doc_edit_field during the dialogue so the conversation log stays meaningful; use this tool for post-completion fixes.`

	DocPreviewDescription = `Reconstruct the document text with all collected values substituted in.

**When to use:** Any time after loading a template: mid-session to see progress, or after completion for a final review before download.

**Why it's useful:** Shows exactly what the completed document will say. Unfilled placeholders remain visible in their original form, and any value that could not be placed back into the text is reported.

**Common workflows:**
1. Final review: complete the dialogue → doc_preview → doc_download
2. Progress check: answer a few fields → doc_preview to see the document taking shape

**Best practices:** The preview is recomputed from the original text on every call, so repeating it is always safe.`

	DocStatusDescription = `Report session progress: file name, dialogue state, and per-field fill status.

**When to use:** To check how many fields remain, which are already filled, or whether a session is active at all.

**Why it's useful:** Gives the full field list with current values at a glance, without advancing the dialogue.

**Best practices:** Read-only; call freely.`

	DocDownloadDescription = `Write the completed document to the output directory.

**When to use:** After the dialogue is complete and the preview looks right.

**Why it's useful:** Produces the deliverable file: plain text for text templates, a Word-compatible document for .doc/.docx templates, named completed_<original name>.

**Best practices:** Requires a complete session. A failed write leaves the session untouched, so the call is safe to retry.`

	DocResetDescription = `Discard the active session.

**When to use:** Abandoning the current document, or clearing state before loading a different template explicitly.

**Why it's useful:** Returns the server to a clean slate; collected values and the conversation log are dropped.

**Best practices:** doc_load_template also replaces the session implicitly, so reset is only needed when no new template follows.`

	DocServerInfoDescription = `Get server information, available tools, template directory contents, and usage guidance.

**When to use:** First contact with the server, or when unsure which tool fits.

**Why it's useful:** Lists every tool with usage notes and shows which template files are available in the configured directory.`
)

// ToolDescriptions maps tool names to their detailed descriptions
var ToolDescriptions = map[string]string{
	"doc_load_template": DocLoadTemplateDescription,
	"doc_answer":        DocAnswerDescription,
	"doc_edit_field":    DocEditFieldDescription,
	"doc_set_field":     DocSetFieldDescription,
	"doc_preview":       DocPreviewDescription,
	"doc_status":        DocStatusDescription,
	"doc_download":      DocDownloadDescription,
	"doc_reset":         DocResetDescription,
	"doc_server_info":   DocServerInfoDescription,
}

// GetToolDescription returns the description for a specific tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
