// Package extract turns template files on disk into plain text ready
// for placeholder detection. Plain-text files are read directly; PDF
// files are structurally validated with pdfcpu and then flattened to
// text page by page.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageBreakMarker separates pages in text flattened from a PDF.
const PageBreakMarker = "\n\n--- Page Break ---\n\n"

// Source is the extraction result handed to placeholder detection.
type Source struct {
	Path     string `json:"path"`
	FileName string `json:"file_name"`
	Content  string `json:"content"`
	Size     int64  `json:"size"`
	Pages    int    `json:"pages,omitempty"`
}

// Reader reads template files under the configured size constraints.
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a reader with the specified file-size constraint.
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ReadFile extracts the text content of a template file. PDF files go
// through structural validation and page-wise text extraction; every
// other extension is read directly as text.
func (r *Reader) ReadFile(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if fileInfo.Size() == 0 {
		return nil, fmt.Errorf("file is empty: %s", path)
	}
	if fileInfo.Size() > r.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	if strings.ToLower(filepath.Ext(path)) == ".pdf" {
		return r.readPDFFile(path, fileInfo)
	}
	return r.readTextFile(path, fileInfo)
}

// readTextFile reads a plain-text template. Line endings are
// normalized to LF so line-anchored placeholder patterns behave the
// same for files authored on any platform.
func (r *Reader) readTextFile(path string, fileInfo os.FileInfo) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	if len(content) > r.maxTextSize {
		content = content[:r.maxTextSize]
	}

	return &Source{
		Path:     path,
		FileName: filepath.Base(path),
		Content:  content,
		Size:     fileInfo.Size(),
	}, nil
}

// readPDFFile validates a PDF structurally and flattens it to text.
func (r *Reader) readPDFFile(path string, fileInfo os.FileInfo) (*Source, error) {
	if err := r.validatePDF(path); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	content, err := r.extractTextContent(pdfReader)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text content: %w", err)
	}

	return &Source{
		Path:     path,
		FileName: filepath.Base(path),
		Content:  content,
		Size:     fileInfo.Size(),
		Pages:    pdfReader.NumPage(),
	}, nil
}

// validatePDF checks the document structure with pdfcpu before any
// text extraction is attempted.
func (r *Reader) validatePDF(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	return nil
}

// extractTextContent flattens the PDF to text page by page. A page
// that fails to decode is skipped rather than failing the whole file.
func (r *Reader) extractTextContent(pdfReader *pdf.Reader) (string, error) {
	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if totalLength+len(content) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}

		builder.WriteString(content)
		totalLength += len(content)

		if pageNum < pdfReader.NumPage() {
			builder.WriteString(PageBreakMarker)
		}
	}

	text := builder.String()
	if text == "" {
		return "", fmt.Errorf("no text content could be extracted from PDF")
	}

	return text, nil
}
