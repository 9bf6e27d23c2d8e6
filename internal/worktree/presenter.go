package worktree

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/clawgit/internal/output"
	"github.com/temirov/clawgit/internal/shared"
)

const (
	branchLinePrefixConstant            = "  📍 "
	aheadTemplateConstant               = "↑%d"
	behindTemplateConstant              = "↓%d"
	lastCommitTemplateConstant          = "└─ %s %s (%s)"
	sectionIndentConstant               = "  "
	entryIndentConstant                 = "    "
	cleanWorkingTreeMessageConstant     = "✓ Clean working tree"
	stagedHeaderTemplateConstant        = "Staged (%d):"
	modifiedHeaderTemplateConstant      = "Modified (%d):"
	untrackedHeaderTemplateConstant     = "Untracked (%d):"
	untrackedMarkerConstant             = "?"
	quickCleanEmojiConstant             = "🟢"
	quickStagedEmojiConstant            = "🟡"
	quickDirtyEmojiConstant             = "🔴"
	quickCleanSuffixConstant            = " | clean"
	quickCountsTemplateConstant         = " | %dS %dM %dU"
	jsonIndentConstant                  = "  "
	statusEncodingErrorTemplateConstant = "failed to encode status: %w"
	fragmentSeparatorConstant           = " "
)

// StatusPresenter renders reports for humans and machines.
type StatusPresenter struct {
	palette output.Palette
}

// NewStatusPresenter binds a presenter to palette.
func NewStatusPresenter(palette output.Palette) StatusPresenter {
	return StatusPresenter{palette: palette}
}

// RenderReport writes the multi-section status report.
func (presenter StatusPresenter) RenderReport(writer io.Writer, report Report) {
	lines := []string{"", branchLinePrefixConstant + presenter.formatBranchLine(report)}
	if report.Last != nil {
		lastCommitDescription := fmt.Sprintf(lastCommitTemplateConstant, report.Last.ShortHash, report.Last.Subject, report.Last.RelativeTime)
		lines = append(lines, sectionIndentConstant+presenter.palette.Muted(lastCommitDescription))
	}

	if report.IsClean() {
		lines = append(lines, "", sectionIndentConstant+presenter.palette.Success(cleanWorkingTreeMessageConstant), "")
		writeLines(writer, lines)
		return
	}

	lines = append(lines, "")
	lines = append(lines, presenter.formatChangeSection(stagedHeaderTemplateConstant, report.Staged, presenter.palette.Success)...)
	lines = append(lines, presenter.formatChangeSection(modifiedHeaderTemplateConstant, report.Unstaged, presenter.palette.Warning)...)
	if len(report.Untracked) > 0 {
		lines = append(lines, sectionIndentConstant+presenter.palette.Danger(fmt.Sprintf(untrackedHeaderTemplateConstant, len(report.Untracked))))
		for _, path := range report.Untracked {
			lines = append(lines, entryIndentConstant+presenter.palette.Danger(untrackedMarkerConstant)+fragmentSeparatorConstant+path)
		}
	}
	lines = append(lines, "")

	writeLines(writer, lines)
}

// RenderJSON writes the report as JSON indented by two spaces.
func (presenter StatusPresenter) RenderJSON(writer io.Writer, report Report) error {
	encoded, encodingError := json.MarshalIndent(report, "", jsonIndentConstant)
	if encodingError != nil {
		return fmt.Errorf(statusEncodingErrorTemplateConstant, encodingError)
	}
	_, _ = fmt.Fprintln(writer, string(encoded))
	return nil
}

// FormatQuickLine builds the uncolored one-line summary.
func FormatQuickLine(report Report) string {
	var builder strings.Builder
	builder.WriteString(quickEmoji(report.WorkingTreeState))
	builder.WriteString(fragmentSeparatorConstant)
	builder.WriteString(report.Branch)
	for _, fragment := range divergenceFragments(report.Remote) {
		builder.WriteString(fragmentSeparatorConstant)
		builder.WriteString(fragment)
	}
	if report.IsClean() {
		builder.WriteString(quickCleanSuffixConstant)
	} else {
		builder.WriteString(fmt.Sprintf(quickCountsTemplateConstant, len(report.Staged), len(report.Unstaged), len(report.Untracked)))
	}
	return builder.String()
}

func (presenter StatusPresenter) formatBranchLine(report Report) string {
	branchLine := presenter.palette.Branch(report.Branch)
	if report.Remote.Ahead > 0 {
		branchLine += fragmentSeparatorConstant + presenter.palette.Success(fmt.Sprintf(aheadTemplateConstant, report.Remote.Ahead))
	}
	if report.Remote.Behind > 0 {
		branchLine += fragmentSeparatorConstant + presenter.palette.Danger(fmt.Sprintf(behindTemplateConstant, report.Remote.Behind))
	}
	return branchLine
}

func (presenter StatusPresenter) formatChangeSection(headerTemplate string, entries []shared.ChangeEntry, style func(string) string) []string {
	if len(entries) == 0 {
		return nil
	}
	lines := []string{sectionIndentConstant + style(fmt.Sprintf(headerTemplate, len(entries)))}
	for _, entry := range entries {
		lines = append(lines, entryIndentConstant+style(entry.StatusCode)+fragmentSeparatorConstant+entry.Path)
	}
	return lines
}

func quickEmoji(state shared.WorkingTreeState) string {
	switch {
	case state.IsClean():
		return quickCleanEmojiConstant
	case len(state.Staged) > 0:
		return quickStagedEmojiConstant
	default:
		return quickDirtyEmojiConstant
	}
}

func divergenceFragments(divergence shared.RemoteDivergence) []string {
	fragments := []string{}
	if divergence.Ahead > 0 {
		fragments = append(fragments, fmt.Sprintf(aheadTemplateConstant, divergence.Ahead))
	}
	if divergence.Behind > 0 {
		fragments = append(fragments, fmt.Sprintf(behindTemplateConstant, divergence.Behind))
	}
	return fragments
}

func writeLines(writer io.Writer, lines []string) {
	for _, line := range lines {
		_, _ = fmt.Fprintln(writer, line)
	}
}
