package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOC, "DOC"},
		{DOCX, "DOCX"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.format.String())
	}
}

func TestFormat_Extension(t *testing.T) {
	assert.Equal(t, ".doc", DOC.Extension())
	assert.Equal(t, ".docx", DOCX.Extension())
	assert.Empty(t, Unknown.Extension())
}

func TestFormat_MarshalText(t *testing.T) {
	b, err := DOCX.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "docx", string(b))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"doc", DOC, false},
		{"DOC", DOC, false},
		{".docx", DOCX, false},
		{" Docx ", DOCX, false},
		{"pdf", Unknown, true},
		{"", Unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"report.doc", DOC},
		{"REPORT.DOC", DOC},
		{"template.dot", DOC},
		{"report.docx", DOCX},
		{"/path/to/Report.DocX", DOCX},
		{"macro.docm", DOCX},
		{"report.pdf", Unknown},
		{"noext", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.filename))
		})
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"compound file", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0, 0}, DOC},
		{"zip", []byte("PK\x03\x04rest"), DOCX},
		{"pdf", []byte("%PDF-1.7"), Unknown},
		{"short", []byte{0xD0, 0xCF}, Unknown},
		{"empty", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFromMagic(tt.data))
		})
	}
}
