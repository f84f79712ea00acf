package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
)

// PDF extracts text from PDF files page by page. A page that fails to
// decode is skipped; the document fails only when no page yields text.
type PDF struct{}

// ExtractText returns the concatenated text of all readable pages.
func (p *PDF) ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExtraction, path, err)
	}
	defer f.Close()

	var parts []string
	pages := r.NumPage()
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("%w: %s: no extractable text in %d pages", domain.ErrExtraction, path, pages)
	}
	return strings.Join(parts, "\n\n"), nil
}
