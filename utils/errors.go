package utils

import (
	"fmt"
	"strings"
)

type InvalidIPFormatError struct {
	Address string
}

type ClientIPUndetectableError struct{}

// NoValidResultsError is returned when not a single provider produced a
// record. Failures holds "service: message" pairs in registry order.
type NoValidResultsError struct {
	Failures []string
}

// ProviderReportedFailureError is raised by a transform when the payload
// itself flags the lookup as failed.
type ProviderReportedFailureError struct {
	Message string
}

type ProviderHTTPError struct {
	StatusCode int
	Status     string
}

type ProviderTimeoutError struct {
	URL string
}

type ProviderParseError struct {
	Reason string
}

type ErrorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (e InvalidIPFormatError) Error() string {
	return fmt.Sprintf("invalid IP address: %q", e.Address)
}

func (e ClientIPUndetectableError) Error() string {
	return "unable to detect client IP address"
}

func (e NoValidResultsError) Error() string {
	if len(e.Failures) == 0 {
		return "No valid results to cross-reference"
	}

	return "All IP lookup services failed: " + strings.Join(e.Failures, ", ")
}

func (e ProviderReportedFailureError) Error() string {
	if e.Message == "" {
		return "IP lookup failed"
	}

	return e.Message
}

func (e ProviderHTTPError) Error() string {
	return "HTTP " + e.Status
}

func (e ProviderTimeoutError) Error() string {
	return "request timed out: " + e.URL
}

func (e ProviderParseError) Error() string {
	return "cannot parse response: " + e.Reason
}
