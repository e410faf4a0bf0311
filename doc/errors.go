package doc

import "errors"

var (
	// ErrNotWordDocument is returned when the input is not a Word 97-2003
	// compound file or its main stream lacks a valid file information block.
	ErrNotWordDocument = errors.New("doc: not a Word document")

	// ErrEncrypted is returned for password-protected documents.
	ErrEncrypted = errors.New("doc: document is encrypted")

	// ErrUnsupportedVersion is returned for files older than Word 97.
	ErrUnsupportedVersion = errors.New("doc: unsupported Word version")

	// ErrCorrupt is returned when a structure points outside its stream.
	ErrCorrupt = errors.New("doc: corrupt document")
)
