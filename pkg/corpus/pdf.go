package corpus

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

const (
	// MaxPDFPages limits the number of pages to process
	MaxPDFPages = 500
)

// PageText is the cleaned text of one PDF page. Page numbers are 1-based so
// evidence citations match what a reader sees in the document.
type PageText struct {
	Page int
	Text string
}

// ValidatePDF checks if a file is a valid PDF by attempting to open it
func ValidatePDF(data []byte) error {
	reader := bytes.NewReader(data)
	_, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return fmt.Errorf("invalid PDF: %w", err)
	}
	return nil
}

// ExtractPages extracts text per page. Pages that fail extraction or come
// back empty are skipped rather than failing the whole document.
func ExtractPages(data []byte) ([]PageText, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	totalPages := pdfReader.NumPage()
	if totalPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}
	if totalPages > MaxPDFPages {
		return nil, fmt.Errorf("PDF has too many pages (%d), max allowed is %d", totalPages, MaxPDFPages)
	}

	var pages []PageText
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		cleaned := cleanText(text)
		if cleaned == "" {
			continue
		}
		pages = append(pages, PageText{Page: pageNum, Text: cleaned})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("no extractable text in PDF")
	}
	return pages, nil
}

func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	text = normalizeWhitespace(text)
	return strings.TrimSpace(text)
}

func normalizeWhitespace(text string) string {
	var result strings.Builder
	lastWasSpace := false

	for _, r := range text {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				if r == '\n' {
					result.WriteRune('\n')
					lastWasSpace = false
				} else {
					result.WriteRune(' ')
					lastWasSpace = true
				}
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}
