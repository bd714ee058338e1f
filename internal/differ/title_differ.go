package differ

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// TitleDiffer produces a compact textual summary of how a result's title
// changed between scans, for display in movement reports.
type TitleDiffer struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewTitleDiffer creates a new title differ
func NewTitleDiffer() *TitleDiffer {
	return &TitleDiffer{
		dmp: diffmatchpatch.New(),
	}
}

// Summarize renders the previous-to-current title change as a single line,
// with removed text in [-...-] and added text in {+...+} markers.
func (td *TitleDiffer) Summarize(previousTitle, currentTitle string) string {
	diffs := td.dmp.DiffMain(previousTitle, currentTitle, false)
	diffs = td.dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-")
			sb.WriteString(d.Text)
			sb.WriteString("-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+")
			sb.WriteString(d.Text)
			sb.WriteString("+}")
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}
