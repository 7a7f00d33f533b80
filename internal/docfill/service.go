// Package docfill is the operation surface behind the MCP tools: it
// owns the single active fill session and orchestrates extraction,
// placeholder detection, the guided dialogue, reconstruction, and
// download encoding.
package docfill

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/docfill/mcp-docfill/internal/encode"
	"github.com/docfill/mcp-docfill/internal/extract"
	"github.com/docfill/mcp-docfill/internal/security"
	"github.com/docfill/mcp-docfill/internal/session"
	"github.com/docfill/mcp-docfill/internal/template"
)

var (
	// ErrNoActiveSession is returned when an operation needs a loaded
	// template and none is loaded.
	ErrNoActiveSession = errors.New("no active session: load a template first")

	// ErrSessionComplete is returned when the guided dialogue is
	// driven after it already finished.
	ErrSessionComplete = errors.New("session is already complete")
)

// extractionSampleLength bounds the diagnostic text sample reported
// when a document yields no placeholders.
const extractionSampleLength = 200

// Service orchestrates document fill operations. One session at a
// time; the mutex serializes tool handlers that may run concurrently.
type Service struct {
	reader    *extract.Reader
	extractor *template.Extractor
	paths     *security.PathValidator
	outputDir string

	mu      sync.Mutex
	session *session.Session

	dirCache directoryCache
}

// NewService creates a docfill service rooted at the configured
// template directory, writing completed documents to outputDir.
func NewService(maxFileSize int64, templateDir, outputDir string, policy template.SignaturePolicy) (*Service, error) {
	paths, err := security.NewPathValidator(templateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		reader:    extract.NewReader(maxFileSize),
		extractor: template.NewExtractorWithPolicy(policy),
		paths:     paths,
		outputDir: outputDir,
		dirCache:  directoryCache{ttl: scanCacheTTL},
	}, nil
}

// LoadTemplate reads a template file, detects its placeholders, and
// starts a fresh fill session. A document with no detectable
// placeholders fails without disturbing any session already loaded.
func (s *Service) LoadTemplate(req LoadTemplateRequest) (*LoadTemplateResult, error) {
	path, err := s.paths.NormalizePath(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	src, err := s.reader.ReadFile(path)
	if err != nil {
		return nil, err
	}

	placeholders := s.extractor.Extract(src.Content)
	if len(placeholders) == 0 {
		return nil, fmt.Errorf("%w in %q (text sample: %q)",
			session.ErrNoPlaceholders, src.FileName, textSample(src.Content))
	}

	sess, err := session.New(template.DocumentData{
		OriginalContent: src.Content,
		FileName:        src.FileName,
		SourcePath:      src.Path,
		Placeholders:    placeholders,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	return &LoadTemplateResult{
		FileName:         src.FileName,
		Path:             src.Path,
		Size:             src.Size,
		Pages:            src.Pages,
		PlaceholderCount: len(placeholders),
		Placeholders:     placeholders,
		Messages:         sess.Messages(),
		State:            string(sess.State()),
	}, nil
}

// Answer feeds one user reply into the dialogue.
func (s *Service) Answer(req AnswerRequest) (*AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoActiveSession
	}
	if s.session.IsComplete() {
		return nil, ErrSessionComplete
	}

	msgs := s.session.Answer(req.Input)
	return &AnswerResult{
		Messages: msgs,
		State:    string(s.session.State()),
		Complete: s.session.IsComplete(),
		Filled:   s.session.FilledCount(),
		Total:    len(s.session.Placeholders()),
	}, nil
}

// EditField re-opens one field from the confirmation summary.
func (s *Service) EditField(req EditFieldRequest) (*EditFieldResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoActiveSession
	}
	if s.session.IsComplete() {
		return nil, ErrSessionComplete
	}

	msgs, err := s.session.RequestEdit(req.Field)
	if err != nil {
		return nil, err
	}
	return &EditFieldResult{
		Messages: msgs,
		State:    string(s.session.State()),
	}, nil
}

// SetField sets a placeholder value directly, bypassing the dialogue.
// It works in any session state, including after completion.
func (s *Service) SetField(req SetFieldRequest) (*SetFieldResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoActiveSession
	}

	p, err := s.session.SetFieldValue(req.Field, req.Value)
	if err != nil {
		return nil, err
	}
	return &SetFieldResult{
		Placeholder: p,
		Filled:      s.session.FilledCount(),
		Total:       len(s.session.Placeholders()),
	}, nil
}

// Preview reconstructs the document from the original text and the
// values collected so far. It recomputes from scratch on every call.
func (s *Service) Preview() (*PreviewResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoActiveSession
	}

	doc := s.session.Document()
	content, misses := template.Reconstruct(doc.OriginalContent, doc.Placeholders)
	return &PreviewResult{
		FileName: doc.FileName,
		Content:  content,
		Misses:   misses,
		Filled:   doc.FilledCount(),
		Total:    len(doc.Placeholders),
		Complete: s.session.IsComplete(),
	}, nil
}

// Status reports session progress without touching session state.
func (s *Service) Status() (*StatusResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return &StatusResult{Active: false}, nil
	}

	doc := s.session.Document()
	return &StatusResult{
		Active:       true,
		FileName:     doc.FileName,
		State:        string(s.session.State()),
		Filled:       doc.FilledCount(),
		Total:        len(doc.Placeholders),
		Placeholders: doc.Placeholders,
	}, nil
}

// Download encodes the completed document and writes it to the output
// directory. A failed write leaves the session untouched, so the call
// is safe to retry.
func (s *Service) Download() (*DownloadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoActiveSession
	}
	if !s.session.IsComplete() {
		return nil, fmt.Errorf("cannot download: session is not complete (%d/%d fields filled)",
			s.session.FilledCount(), len(s.session.Placeholders()))
	}

	doc := s.session.Document()
	content, _ := template.Reconstruct(doc.OriginalContent, doc.Placeholders)
	encoded := encode.ForDownload(doc.FileName, content)

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	outPath := filepath.Join(s.outputDir, encoded.FileName)
	if err := os.WriteFile(outPath, encoded.Data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write completed document: %w", err)
	}

	return &DownloadResult{
		FileName:  encoded.FileName,
		MediaType: encoded.MediaType,
		Path:      outPath,
		Size:      int64(len(encoded.Data)),
	}, nil
}

// Reset discards the active session so a new template can start clean.
func (s *Service) Reset() (*ResetResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return &ResetResult{HadSession: false}, nil
	}
	fileName := s.session.Document().FileName
	s.session = nil
	return &ResetResult{HadSession: true, FileName: fileName}, nil
}

// textSample trims extracted text to a short diagnostic excerpt.
func textSample(content string) string {
	if len(content) > extractionSampleLength {
		return content[:extractionSampleLength]
	}
	return content
}
