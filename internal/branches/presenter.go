package branches

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/temirov/clawgit/internal/output"
)

const (
	currentBranchMarkerConstant          = "* "
	otherBranchIndentConstant            = "  "
	listingEncodingErrorTemplateConstant = "failed to encode branches: %w"
)

// RenderListing writes one branch per line between blank lines, marking the current branch.
func RenderListing(writer io.Writer, palette output.Palette, listing Listing) {
	_, _ = fmt.Fprintln(writer)
	for _, branchName := range listing.Branches {
		if branchName == listing.Current {
			_, _ = fmt.Fprintln(writer, palette.Current(currentBranchMarkerConstant+branchName))
			continue
		}
		_, _ = fmt.Fprintln(writer, otherBranchIndentConstant+branchName)
	}
	_, _ = fmt.Fprintln(writer)
}

// RenderListingJSON writes the listing as compact JSON.
func RenderListingJSON(writer io.Writer, listing Listing) error {
	encoded, encodingError := json.Marshal(listing)
	if encodingError != nil {
		return fmt.Errorf(listingEncodingErrorTemplateConstant, encodingError)
	}
	_, _ = fmt.Fprintln(writer, string(encoded))
	return nil
}
