package text

import (
	"log/slog"
	"strings"

	"github.com/boyonger/word-extractor/internal/logging"
	"github.com/boyonger/word-extractor/model"
)

const stageText = "text"

// Result is the output of an assembly pass.
type Result struct {
	// Text holds one normalized paragraph per line, each followed by a newline.
	Text string

	// TableRegions counts the tables skipped, whether marked by a table
	// element or delimited from table paragraphs.
	TableRegions int

	Warnings []model.Warning
}

// Assembler builds document text from body elements.
// It holds no per-document state and may be shared between goroutines.
type Assembler struct {
	logger *slog.Logger
}

// NewAssembler creates an assembler. A nil logger discards log output.
func NewAssembler(logger *slog.Logger) *Assembler {
	return &Assembler{logger: logging.Module(logger, "text")}
}

// Assemble walks elements in order and returns the normalized text of all
// paragraphs outside tables.
func (a *Assembler) Assemble(elements []Element) Result {
	var res Result
	var sb strings.Builder

	for i := 0; i < len(elements); i++ {
		el := elements[i]

		switch {
		case el.Kind == ElementTable:
			res.TableRegions++

		case el.InTable:
			end, ok := tableRegionEnd(elements, i)
			if !ok {
				w := model.NewWarning(stageText,
					"paragraph %d is marked as in a table at depth %d; excluded from text", i, el.Depth)
				a.logger.Warn(w.Message, "stage", w.Stage, "element", i)
				res.Warnings = append(res.Warnings, w)
				continue
			}
			res.TableRegions++
			a.logger.Debug("skipped table region", "from", i, "to", end-1)
			i = end - 1

		default:
			if IsBlank(el.Text) {
				continue
			}
			sb.WriteString(Normalize(el.Text))
			sb.WriteByte('\n')
		}
	}

	res.Text = sb.String()
	return res
}

// tableRegionEnd returns the index just past the table region starting at
// start. The region extends while paragraphs stay in a table at depth one
// or more. It reports false when the paragraph at start claims table
// membership without a table depth.
func tableRegionEnd(elements []Element, start int) (int, bool) {
	if elements[start].Depth < 1 {
		return start, false
	}
	end := start
	for end < len(elements) {
		el := elements[end]
		if el.Kind != ElementParagraph || !el.InTable || el.Depth < 1 {
			break
		}
		end++
	}
	return end, true
}
