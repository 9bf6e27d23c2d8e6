package commits

import (
	"fmt"
	"io"

	"github.com/temirov/clawgit/internal/output"
	"github.com/temirov/clawgit/internal/shared"
)

const (
	logRowTemplateConstant          = "%s %s %s"
	logRelativeTimeTemplateConstant = "(%s)"
)

// RenderLog writes one row per commit between blank lines: hash, subject, and relative time.
func RenderLog(writer io.Writer, palette output.Palette, commits []shared.CommitSummary) {
	_, _ = fmt.Fprintln(writer)
	for _, commit := range commits {
		relativeTime := palette.Muted(fmt.Sprintf(logRelativeTimeTemplateConstant, commit.RelativeTime))
		_, _ = fmt.Fprintf(writer, logRowTemplateConstant+"\n", palette.Warning(commit.ShortHash), commit.Subject, relativeTime)
	}
	_, _ = fmt.Fprintln(writer)
}
