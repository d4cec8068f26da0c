package huwise

import (
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Static errors for err113 compliance.
var (
	// ErrConfigRequired is returned when a nil configuration is supplied.
	ErrConfigRequired = errors.New("config is required")

	// ErrAPIKeyRequired is returned when the API key setting is missing.
	ErrAPIKeyRequired = errors.New("API key is required")

	// ErrDomainRequired is returned when the domain setting is missing.
	ErrDomainRequired = errors.New("domain is required")

	// ErrIdentifierRequired is returned when neither a dataset ID nor a
	// dataset UID was supplied.
	ErrIdentifierRequired = errors.New("either dataset_id or dataset_uid must be specified")

	// ErrIdentifiersMutuallyExclusive is returned when both a dataset ID
	// and a dataset UID were supplied for the same item.
	ErrIdentifiersMutuallyExclusive = errors.New("dataset_id and dataset_uid are mutually exclusive")

	// ErrDatasetNotFound is returned when an identifier does not resolve
	// to any dataset.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrNoFieldsToUpdate is returned for an update spec without fields.
	ErrNoFieldsToUpdate = errors.New("update spec contains no fields")

	// ErrDatasetBusy is returned while a dataset's processing status is
	// not yet idle.
	ErrDatasetBusy = errors.New("dataset is not idle")
)

// APIError represents a non-2xx response from the automation API.
type APIError struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Message    string `json:"message"     yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error: %s (status %d)", http.StatusText(e.StatusCode), e.StatusCode)
	}

	return fmt.Sprintf("API error: %s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound checks whether the error is an HTTP 404 from the API.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	return errors.Is(err, ErrDatasetNotFound)
}

// IsRetryable reports whether an error is a transient transport condition:
// an HTTP 5xx response, a connection failure, or a timeout. Client errors
// (4xx) and validation errors are permanent and never retried.
func IsRetryable(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return false
}
