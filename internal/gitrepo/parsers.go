package gitrepo

import (
	"strconv"
	"strings"

	"github.com/temirov/clawgit/internal/shared"
)

const (
	lineSeparatorConstant            = "\n"
	carriageReturnConstant           = "\r"
	untrackedStatusCodeConstant      = '?'
	unmodifiedStatusCodeConstant     = ' '
	porcelainMinimumLineLength       = 4
	porcelainPathOffset              = 3
	commitFieldSeparatorConstant     = "\x1f"
	commitFieldCountConstant         = 3
	divergenceFieldCountConstant     = 2
	trailingWhitespaceCutsetConstant = " \t\r\n"
)

// ParseWorkingTreeState interprets `git status --porcelain` output.
// Each line carries an index code, a worktree code, a space, and the path.
// Blank and short lines are skipped; a path may appear both staged and unstaged.
func ParseWorkingTreeState(porcelainOutput string) shared.WorkingTreeState {
	state := shared.WorkingTreeState{
		Staged:    []shared.ChangeEntry{},
		Unstaged:  []shared.ChangeEntry{},
		Untracked: []string{},
	}

	for _, line := range splitLines(porcelainOutput) {
		if len(line) < porcelainMinimumLineLength {
			continue
		}

		indexCode := line[0]
		worktreeCode := line[1]
		path := line[porcelainPathOffset:]

		if indexCode == untrackedStatusCodeConstant && worktreeCode == untrackedStatusCodeConstant {
			state.Untracked = append(state.Untracked, path)
			continue
		}
		if isChangeCode(indexCode) {
			state.Staged = append(state.Staged, shared.ChangeEntry{StatusCode: string(indexCode), Path: path})
		}
		if isChangeCode(worktreeCode) {
			state.Unstaged = append(state.Unstaged, shared.ChangeEntry{StatusCode: string(worktreeCode), Path: path})
		}
	}

	return state
}

// ParseDivergence interprets `git rev-list --left-right --count HEAD...@{u}` output ("ahead<TAB>behind").
// Anything unparsable yields zero counts.
func ParseDivergence(revListOutput string) shared.RemoteDivergence {
	fields := strings.Fields(revListOutput)
	if len(fields) != divergenceFieldCountConstant {
		return shared.RemoteDivergence{}
	}

	ahead, aheadError := strconv.Atoi(fields[0])
	behind, behindError := strconv.Atoi(fields[1])
	if aheadError != nil || behindError != nil || ahead < 0 || behind < 0 {
		return shared.RemoteDivergence{}
	}

	return shared.RemoteDivergence{Ahead: ahead, Behind: behind}
}

// ParseLastCommit interprets a single `%h%x1f%s%x1f%ar` log line. Empty or malformed output yields nil.
func ParseLastCommit(logOutput string) *shared.CommitSummary {
	lines := splitLines(logOutput)
	if len(lines) == 0 {
		return nil
	}
	summary, parsed := parseCommitLine(lines[0])
	if !parsed {
		return nil
	}
	return &summary
}

// ParseCommitLog interprets `%h%x1f%s%x1f%ar` log output, one commit per line, skipping malformed lines.
func ParseCommitLog(logOutput string) []shared.CommitSummary {
	commits := []shared.CommitSummary{}
	for _, line := range splitLines(logOutput) {
		if summary, parsed := parseCommitLine(line); parsed {
			commits = append(commits, summary)
		}
	}
	return commits
}

// ParseBranchList interprets `git branch --format=%(refname:short)` output.
func ParseBranchList(branchOutput string) []string {
	return nonEmptyTrimmedLines(branchOutput)
}

// ParseStagedFiles interprets `git diff --cached --name-only` output.
func ParseStagedFiles(diffOutput string) []string {
	return nonEmptyTrimmedLines(diffOutput)
}

func parseCommitLine(line string) (shared.CommitSummary, bool) {
	fields := strings.SplitN(line, commitFieldSeparatorConstant, commitFieldCountConstant)
	if len(fields) != commitFieldCountConstant {
		return shared.CommitSummary{}, false
	}
	shortHash := strings.TrimSpace(fields[0])
	if len(shortHash) == 0 {
		return shared.CommitSummary{}, false
	}
	return shared.CommitSummary{
		ShortHash:    shortHash,
		Subject:      fields[1],
		RelativeTime: strings.TrimSpace(fields[2]),
	}, true
}

func isChangeCode(code byte) bool {
	return code != unmodifiedStatusCodeConstant && code != untrackedStatusCodeConstant
}

// splitLines drops carriage returns and blank lines but keeps leading spaces, which carry meaning in porcelain output.
func splitLines(output string) []string {
	trimmedOutput := strings.TrimRight(output, trailingWhitespaceCutsetConstant)
	if len(trimmedOutput) == 0 {
		return nil
	}

	lines := []string{}
	for _, line := range strings.Split(trimmedOutput, lineSeparatorConstant) {
		line = strings.TrimSuffix(line, carriageReturnConstant)
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func nonEmptyTrimmedLines(output string) []string {
	values := []string{}
	for _, line := range splitLines(output) {
		values = append(values, strings.TrimSpace(line))
	}
	return values
}
