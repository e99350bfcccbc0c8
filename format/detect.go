// Package format recognises the office packages a submission may arrive as.
// Only PPTX can be graded; the others are told apart so that a wrong upload
// gets a precise error.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PPTX indicates an Office Open XML presentation.
	PPTX
	// ODP indicates an OpenDocument presentation.
	ODP
	// DOCX indicates an Office Open XML word processing document.
	DOCX
	// XLSX indicates an Office Open XML spreadsheet.
	XLSX
	// ODT indicates an OpenDocument text document.
	ODT
)

// info describes how a format is recognised. OOXML packages are told apart
// by their main part, OpenDocument packages by the mimetype entry.
type info struct {
	name       string
	extensions []string // first is the canonical one
	mainPart   string
	mimeType   string
}

var formats = map[Format]info{
	PPTX: {name: "PPTX", extensions: []string{".pptx", ".ppsx", ".potx", ".pptm"}, mainPart: "ppt/presentation.xml"},
	ODP:  {name: "ODP", extensions: []string{".odp"}, mimeType: "application/vnd.oasis.opendocument.presentation"},
	DOCX: {name: "DOCX", extensions: []string{".docx"}, mainPart: "word/document.xml"},
	XLSX: {name: "XLSX", extensions: []string{".xlsx"}, mainPart: "xl/workbook.xml"},
	ODT:  {name: "ODT", extensions: []string{".odt"}, mimeType: "application/vnd.oasis.opendocument.text"},
}

// String returns the string representation of the format.
func (f Format) String() string {
	if i, ok := formats[f]; ok {
		return i.name
	}
	return "Unknown"
}

// Extension returns the canonical file extension for the format.
func (f Format) Extension() string {
	if i, ok := formats[f]; ok {
		return i.extensions[0]
	}
	return ""
}

// Gradable reports whether presentations of this format can be scored.
func (f Format) Gradable() bool {
	return f == PPTX
}

// Detect determines the format from the filename extension. Slide show,
// template and macro-enabled PowerPoint files are PPTX.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return Unknown
	}
	for f, i := range formats {
		for _, e := range i.extensions {
			if e == ext {
				return f
			}
		}
	}
	return Unknown
}

// DetectFile inspects the content of filename.
func DetectFile(filename string) (Format, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Unknown, err
	}
	return DetectFromReader(f, st.Size())
}

// zipMagic is the local file header signature every package starts with.
var zipMagic = []byte("PK\x03\x04")

// DetectFromReader inspects the content to determine the format. Every
// supported format is a ZIP package, so anything else is Unknown.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, len(zipMagic))
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	if n < len(zipMagic) || !bytes.Equal(magic, zipMagic) {
		return Unknown, nil
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}
	return detectPackage(zr), nil
}

// detectPackage checks the OpenDocument mimetype entry first, then the
// OOXML main parts.
func detectPackage(zr *zip.Reader) Format {
	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = f
	}

	if mt, ok := entries["mimetype"]; ok {
		if mime := readMimeType(mt); mime != "" {
			for f, i := range formats {
				if i.mimeType != "" && strings.HasPrefix(mime, i.mimeType) {
					// .presentation-template and friends share the prefix
					return f
				}
			}
		}
	}

	for f, i := range formats {
		if i.mainPart == "" {
			continue
		}
		if _, ok := entries[i.mainPart]; ok {
			return f
		}
	}
	return Unknown
}

func readMimeType(f *zip.File) string {
	rc, err := f.Open()
	if err != nil {
		return ""
	}
	defer rc.Close()
	data, _ := io.ReadAll(io.LimitReader(rc, 256))
	return strings.TrimSpace(string(data))
}
