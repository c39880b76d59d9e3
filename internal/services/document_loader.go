package services

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"golang.org/x/text/unicode/norm"
)

// SupportedResumeExtensions lists the résumé formats LoadText understands.
var SupportedResumeExtensions = []string{".pdf", ".txt", ".docx"}

type DocumentLoader interface {
	LoadText(path string) (string, error)
}

type documentLoader struct{}

func NewDocumentLoader() DocumentLoader {
	return &documentLoader{}
}

// LoadText extracts the plain text of a résumé file. Unsupported or
// unreadable files are input errors. A file without text, such as a scanned
// PDF, yields "" and scores 0.
func (l *documentLoader) LoadText(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", &InputError{Message: "resume file is missing", Err: err}
	}

	var (
		text string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		text, err = extractPDFText(path)
	case ".txt":
		var data []byte
		data, err = os.ReadFile(path)
		text = string(data)
	case ".docx":
		text, err = extractDocxText(path)
	default:
		return "", NewInputError("unsupported resume file type %q", ext)
	}
	if err != nil {
		return "", &InputError{Message: "resume file could not be read", Err: err}
	}

	return NormalizeText(text), nil
}

func extractPDFText(path string) (text string, err error) {
	// The PDF reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var pages []string
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}
		pages = append(pages, pageText)
	}

	return strings.Join(pages, " "), nil
}

func extractDocxText(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	return wordXMLText(r.Editable().GetContent())
}

// wordXMLText returns the text runs of a WordprocessingML body, one line per
// paragraph.
func wordXMLText(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))

	var sb strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString("\t")
			case "br":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}

// NormalizeText applies NFKC normalization, so ligatures from PDF output
// compare equal to plain letters, strips control characters other than
// newlines and tabs, and trims surrounding whitespace.
func NormalizeText(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
	return strings.TrimSpace(normed)
}
