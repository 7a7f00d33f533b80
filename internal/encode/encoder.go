// Package encode turns the reconstructed document text into the bytes
// handed back on download. The output format follows the template's
// original extension: Word templates come back as a Word-compatible
// HTML document, everything else as plain text.
package encode

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Document is an encoded download artifact.
type Document struct {
	FileName  string `json:"file_name"`
	MediaType string `json:"media_type"`
	Data      []byte `json:"-"`
}

const wordDocumentHeader = `<!DOCTYPE html>
<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word">
<head>
  <meta charset="utf-8">
  <title>Legal Document</title>
  <!--[if gte mso 9]>
  <xml>
    <w:WordDocument>
      <w:View>Print</w:View>
      <w:Zoom>90</w:Zoom>
      <w:DoNotPromptForConvert/>
      <w:DoNotShowInsertionsAndDeletions/>
    </w:WordDocument>
  </xml>
  <![endif]-->
  <style>
    body {
      font-family: 'Times New Roman', serif;
      font-size: 12pt;
      line-height: 1.5;
      margin: 1in;
      color: black;
    }
    p { margin: 0 0 12pt 0; }
  </style>
</head>
<body>
`

// ForDownload encodes the completed document text. Word templates
// (.doc, .docx) produce a Word-compatible HTML document; anything else
// produces plain text. Either way the result is named after the source
// with a completed_ prefix.
func ForDownload(sourceFileName, content string) Document {
	ext := strings.ToLower(filepath.Ext(sourceFileName))
	if ext == ".doc" || ext == ".docx" {
		return wordDocument(sourceFileName, content)
	}
	return textDocument(sourceFileName, content)
}

// textDocument encodes the content as-is.
func textDocument(sourceFileName, content string) Document {
	return Document{
		FileName:  completedName(sourceFileName, ".txt"),
		MediaType: "text/plain",
		Data:      []byte(content),
	}
}

// wordDocument wraps the content in HTML that Word opens natively: one
// paragraph per line, with markup characters escaped and tabs expanded
// to non-breaking spaces.
func wordDocument(sourceFileName, content string) Document {
	var b strings.Builder
	b.WriteString(wordDocumentHeader)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(&b, "<p>%s</p>", escapeLine(line))
	}
	b.WriteString("\n</body>\n</html>")

	return Document{
		FileName:  completedName(sourceFileName, ".doc"),
		MediaType: "application/msword",
		Data:      []byte(b.String()),
	}
}

// escapeLine makes one line of document text safe for the HTML body.
func escapeLine(line string) string {
	line = strings.ReplaceAll(line, "&", "&amp;")
	line = strings.ReplaceAll(line, "<", "&lt;")
	line = strings.ReplaceAll(line, ">", "&gt;")
	return strings.ReplaceAll(line, "\t", "&nbsp;&nbsp;&nbsp;&nbsp;")
}

// completedName derives the download name from the source file name,
// swapping the extension and prefixing completed_.
func completedName(sourceFileName, newExt string) string {
	base := strings.TrimSuffix(sourceFileName, filepath.Ext(sourceFileName))
	return "completed_" + base + newExt
}
