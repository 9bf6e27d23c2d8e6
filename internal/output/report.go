package output

import (
	"fmt"
	"io"

	"github.com/temirov/clawgit/internal/shared"
)

// ReportNotRepository prints the not-a-repository notice in red and returns an error
// the entrypoint recognizes as already shown.
func ReportNotRepository(writer io.Writer, palette Palette) error {
	_, _ = fmt.Fprintln(writer, palette.Danger(notRepositoryMessageConstant))
	return shared.ReportedError{Cause: shared.ErrNotRepository}
}
