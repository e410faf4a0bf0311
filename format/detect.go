// Package format names the supported document formats and maps file names
// and leading bytes to them.
package format

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOC indicates a Word 97-2003 binary document (.doc).
	DOC
	// DOCX indicates an Office Open XML Word document (.docx).
	DOCX
)

var (
	// compound file signature
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipMagic = []byte{'P', 'K', 0x03, 0x04}
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOC:
		return "DOC"
	case DOCX:
		return "DOCX"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOC:
		return ".doc"
	case DOCX:
		return ".docx"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(f.String())), nil
}

// Parse returns the format named by s, accepting "doc" and "docx" with or
// without a leading dot, in any case.
func Parse(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "doc":
		return DOC, nil
	case "docx":
		return DOCX, nil
	default:
		return Unknown, fmt.Errorf("unknown format %q", s)
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".doc", ".dot":
		return DOC
	case ".docx", ".docm", ".dotx", ".dotm":
		return DOCX
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes for the compound file or ZIP
// signature. A ZIP archive is reported as DOCX without inspecting its parts.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, oleMagic):
		return DOC
	case bytes.HasPrefix(data, zipMagic):
		return DOCX
	default:
		return Unknown
	}
}
