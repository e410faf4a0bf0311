package model

import "strings"

// DocumentContent is the normalized content of one source document.
type DocumentContent struct {
	// Text is the normalized paragraph text, one paragraph per line.
	// Table text is not included.
	Text string `json:"text"`

	// Tables are the document's top-level tables in source order.
	Tables []Table `json:"tables"`

	Metadata Metadata `json:"metadata"`
}

// Metadata contains document-level information
type Metadata struct {
	Title    string   `json:"title,omitempty"`
	Author   string   `json:"author,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Creator  string   `json:"creator,omitempty"` // producing application
}

// IsEmpty reports whether no metadata field is set.
func (m Metadata) IsEmpty() bool {
	return m.Title == "" && m.Author == "" && m.Subject == "" && len(m.Keywords) == 0 && m.Creator == ""
}

// SplitKeywords splits a comma or semicolon separated keyword list,
// dropping empty entries.
func SplitKeywords(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var keywords []string
	for _, kw := range fields {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// TableCount returns the number of tables
func (d *DocumentContent) TableCount() int {
	return len(d.Tables)
}
