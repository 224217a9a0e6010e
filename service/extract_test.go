package service

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDocx(t *testing.T, path, documentXML string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)

	entry, err := w.Create("word/document.xml")
	require.NoError(t, err)

	_, err = entry.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, w.Close())
}

func TestExtractTextPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mail.txt")
	require.NoError(t, os.WriteFile(path, []byte("Meeting at 10 AM tomorrow"), 0o644))

	require.Equal(t, "Meeting at 10 AM tomorrow", ExtractText(path))
}

func TestExtractTextPlainUppercaseExt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mail.TXT")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	require.Equal(t, "hello", ExtractText(path))
}

func TestExtractTextDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mail.docx")
	writeDocx(t, path, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Claim your prize</w:t></w:r><w:r><w:t> by clicking this link</w:t></w:r></w:p>
    <w:p><w:r><w:t>Act now</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	require.Equal(t, "Claim your prize by clicking this link\nAct now", ExtractText(path))
}

func TestExtractTextDocxCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mail.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o644))

	require.Equal(t, "", ExtractText(path))
}

func TestExtractTextUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mail.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	require.Equal(t, "", ExtractText(path))
}

func TestExtractTextMissingFile(t *testing.T) {
	require.Equal(t, "", ExtractText(filepath.Join(t.TempDir(), "gone.txt")))
}
