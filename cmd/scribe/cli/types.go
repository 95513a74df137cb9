package cli

// SilentError wraps an error whose message has already been shown to the
// user; main should exit non-zero without printing it again.
type SilentError struct {
	err error
}

// NewSilentError creates a SilentError wrapping err.
func NewSilentError(err error) *SilentError {
	return &SilentError{err: err}
}

func (e *SilentError) Error() string {
	return e.err.Error()
}

func (e *SilentError) Unwrap() error {
	return e.err
}
