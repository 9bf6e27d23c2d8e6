package commits

import (
	"errors"
	"fmt"
	"strings"
)

const (
	nothingToCommitMessageConstant    = "nothing to commit"
	singleFileMessageTemplateConstant = "update %s"
	fileCountMessageTemplateConstant  = "update %d files"
	fileListSeparatorConstant         = ", "
	maximumListedFilesConstant        = 3
)

// ErrNothingToCommit indicates there are no staged files to describe.
var ErrNothingToCommit = errors.New(nothingToCommitMessageConstant)

// SynthesizeMessage describes the staged files: up to three are listed by name, more are counted.
func SynthesizeMessage(stagedFiles []string) (string, error) {
	switch fileCount := len(stagedFiles); {
	case fileCount == 0:
		return "", ErrNothingToCommit
	case fileCount <= maximumListedFilesConstant:
		return fmt.Sprintf(singleFileMessageTemplateConstant, strings.Join(stagedFiles, fileListSeparatorConstant)), nil
	default:
		return fmt.Sprintf(fileCountMessageTemplateConstant, fileCount), nil
	}
}
