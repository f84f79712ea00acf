// Package extract reads source files and returns their plain text for
// chunking. Extraction failures are per-document: the ingestion batch
// carries on without the broken file.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
)

// Registry routes a file to the extractor for its extension.
type Registry struct {
	byExt map[string]domain.Extractor
}

// NewRegistry returns a registry with the built-in extractors: PDF for
// .pdf, plain text for .txt and .md.
func NewRegistry() *Registry {
	plain := &Plaintext{}
	return &Registry{byExt: map[string]domain.Extractor{
		".pdf": &PDF{},
		".txt": plain,
		".md":  plain,
	}}
}

// ExtractText extracts the text of the file at path using the extractor
// registered for its extension.
func (r *Registry) ExtractText(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: unsupported file type %q", domain.ErrExtraction, ext)
	}
	return e.ExtractText(path)
}
