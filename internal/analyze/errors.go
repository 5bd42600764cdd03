package analyze

import (
	"errors"
	"fmt"
)

var (
	// ErrQuotaExceeded short-circuits before any network call; the daily
	// allowance resets at midnight. Carries no token cost.
	ErrQuotaExceeded = errors.New("daily analysis limit reached, resets at midnight")

	// ErrBackendUnreachable covers transport-level failures and timeouts.
	ErrBackendUnreachable = errors.New("analysis backend unreachable, check the backend URL and your connection")

	// ErrInvalidBackendURL rejects backend URLs that do not normalize to an
	// absolute http(s) form.
	ErrInvalidBackendURL = errors.New("invalid backend url: must be an absolute http or https URL")

	// ErrNoResume means analysis was requested before a resume was saved.
	ErrNoResume = errors.New("no resume saved, upload a resume first")

	// ErrNoJob means analysis was requested with no extractable job posting.
	ErrNoJob = errors.New("no job posting detected on this page")
)

// BackendError is a non-2xx response from the analysis backend. The
// too-short-description rejection is distinguished so callers can surface
// "still loading, retry shortly" instead of a generic server error.
type BackendError struct {
	StatusCode          int
	Message             string
	DescriptionTooShort bool
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("analysis backend rejected the request (status %d)", e.StatusCode)
}
