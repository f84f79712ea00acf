package extract

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
)

// Plaintext reads .txt and .md files as-is.
type Plaintext struct{}

// ExtractText returns the file contents, rejecting files that are not
// valid UTF-8 text.
func (p *Plaintext) ExtractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExtraction, path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8 text", domain.ErrExtraction, path)
	}
	return string(data), nil
}
