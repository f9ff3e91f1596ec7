package domain

import "fmt"

// UpstreamError is a catalog backend answer whose status differs from the one
// the call expects.
type UpstreamError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}
