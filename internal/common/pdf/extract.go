// Package pdf pulls plain text out of resume PDFs.
package pdf

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ExtractText returns the concatenated text layer of every page, in page
// order. Pages without a text layer (scanned images) contribute nothing;
// an empty result is NOT an error, since the extraction model is prompted
// against whatever text we found. Only an unreadable document fails.
func ExtractText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	var full strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			// Skip a broken page rather than lose the whole resume.
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		full.WriteString(pageText)
		full.WriteString("\n\n")
	}

	return strings.TrimSpace(full.String()), nil
}
