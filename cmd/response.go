package cmd

import (
	"errors"
	"net/http"

	"github.com/cloud66-oss/geolookup/utils"
)

const (
	retrySuggestion  = "Please try again or use the manual lookup feature to analyze a specific IP address."
	manualSuggestion = "You can use the manual lookup feature to analyze any IP address."
	formatSuggestion = "Use a public IPv4 address such as 8.8.8.8 or a full IPv6 address such as 2001:4860:4860:0:0:0:0:8888."
)

// errorResponse maps a lookup error to the status and body returned to
// the client. Anything it does not recognise is a 500.
func errorResponse(err error) (int, utils.ErrorResponse) {
	var (
		invalid      utils.InvalidIPFormatError
		undetectable utils.ClientIPUndetectableError
		noResults    utils.NoValidResultsError
	)

	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, utils.ErrorResponse{
			Error:      "Please enter a valid IP address",
			Suggestion: formatSuggestion,
		}
	case errors.As(err, &undetectable):
		return http.StatusBadRequest, utils.ErrorResponse{
			Error:      "Unable to detect your IP address automatically. Please try entering an IP address manually or check your network connection.",
			Suggestion: manualSuggestion,
		}
	case errors.As(err, &noResults):
		return http.StatusServiceUnavailable, utils.ErrorResponse{
			Error:      noResults.Error(),
			Suggestion: retrySuggestion,
		}
	}

	return http.StatusInternalServerError, utils.ErrorResponse{
		Error:      "An unexpected error occurred",
		Suggestion: retrySuggestion,
	}
}
