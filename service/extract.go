package service

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path"
	"strings"
)

// ExtractText pulls plain text out of a stored upload. Plain .txt is read
// verbatim and .docx yields its concatenated paragraph text. Anything else,
// including unreadable or corrupt files, degrades to an empty string so the
// caller falls through to its no-content handling
func ExtractText(p string) string {
	switch strings.ToLower(path.Ext(p)) {
	case ".txt":
		b, err := os.ReadFile(p)
		if err != nil {
			return ""
		}

		return string(b)
	case ".docx":
		return extractDocx(p)
	default:
		return ""
	}
}

// extractDocx reads word/document.xml out of the docx archive and joins
// the text runs of each paragraph with newlines
func extractDocx(p string) string {
	r, err := zip.OpenReader(p)
	if err != nil {
		return ""
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}

		fr, err := f.Open()
		if err != nil {
			return ""
		}
		defer fr.Close()

		return docxParagraphs(fr)
	}

	return ""
}

func docxParagraphs(r io.Reader) string {
	var paragraphs []string
	var current strings.Builder

	dec := xml.NewDecoder(r)

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			// <w:t> wraps every literal text run
			if t.Name.Local == "t" {
				var run string
				if err := dec.DecodeElement(&run, &t); err == nil {
					current.WriteString(run)
				}
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		}
	}

	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	return strings.Join(paragraphs, "\n")
}
