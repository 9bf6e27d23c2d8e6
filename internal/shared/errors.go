package shared

// ReportedError marks a failure whose message has already been written to the user.
// The entrypoint exits non-zero without printing it again.
type ReportedError struct {
	Cause error
}

// Error returns the underlying cause description.
func (reportedError ReportedError) Error() string {
	if reportedError.Cause == nil {
		return ""
	}
	return reportedError.Cause.Error()
}

// Unwrap exposes the underlying cause.
func (reportedError ReportedError) Unwrap() error {
	return reportedError.Cause
}
