package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
)

func TestRegistryPlaintext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "act.txt")
	require.NoError(t, os.WriteFile(path, []byte("section 73 deals with committee elections"), 0o644))

	r := NewRegistry()
	text, err := r.ExtractText(path)
	require.NoError(t, err)
	assert.Equal(t, "section 73 deals with committee elections", text)
}

func TestRegistryUnsupportedExtension(t *testing.T) {
	r := NewRegistry()
	_, err := r.ExtractText("notes.docx")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestPlaintextMissingFile(t *testing.T) {
	p := &Plaintext{}
	_, err := p.ExtractText(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestPlaintextRejectsBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0o644))

	p := &Plaintext{}
	_, err := p.ExtractText(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestPDFCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

	p := &PDF{}
	_, err := p.ExtractText(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}
