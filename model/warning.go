package model

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal anomaly recovered during extraction.
// Table, Row and Col are 0-indexed and -1 when not applicable.
type Warning struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Table   int    `json:"table"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
}

// NewWarning creates a warning that is not tied to a table position.
func NewWarning(stage, format string, args ...any) Warning {
	return Warning{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
		Table:   -1,
		Row:     -1,
		Col:     -1,
	}
}

// At returns a copy of the warning positioned at the given row and column.
func (w Warning) At(row, col int) Warning {
	w.Row = row
	w.Col = col
	return w
}

// InTable returns a copy of the warning attributed to the given table.
func (w Warning) InTable(table int) Warning {
	w.Table = table
	return w
}

func (w Warning) String() string {
	var sb strings.Builder
	sb.WriteString(w.Stage)
	if w.Table >= 0 {
		fmt.Fprintf(&sb, ": table %d", w.Table)
	}
	if w.Row >= 0 {
		fmt.Fprintf(&sb, " row %d", w.Row)
	}
	if w.Col >= 0 {
		fmt.Fprintf(&sb, " col %d", w.Col)
	}
	sb.WriteString(": ")
	sb.WriteString(w.Message)
	return sb.String()
}
