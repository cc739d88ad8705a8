package fixtures

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// textDiff marks deletions from want as [-text-] and insertions in got as
// {+text+}.
func textDiff(want, got string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(want, got, false))
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+")
			b.WriteString(d.Text)
			b.WriteString("+}")
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-")
			b.WriteString(d.Text)
			b.WriteString("-]")
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
