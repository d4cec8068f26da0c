package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for a single HTTP request.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as status polls.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits for the transport layer.
const (
	// DefaultRetryMax is the default number of retries after the initial
	// attempt, giving six attempts in total.
	DefaultRetryMax = 5

	// DefaultRetryWaitMin is the wait before the first retry.
	DefaultRetryWaitMin = 5 * time.Second

	// DefaultRetryWaitMax caps the exponential backoff between retries.
	DefaultRetryWaitMax = 80 * time.Second
)

// Concurrency and pagination limits.
const (
	// DefaultBulkConcurrency limits concurrent per-dataset operations.
	// Kept small to respect the remote portal's rate limits.
	DefaultBulkConcurrency = 8

	// ListPageSize is the page size used when enumerating datasets.
	ListPageSize = 100
)

// Dataset status polling.
const (
	// IdlePollDelay is the delay between dataset status polls.
	IdlePollDelay = 3 * time.Second

	// IdlePollTries bounds how many times a dataset status is polled
	// before giving up.
	IdlePollTries = 40
)

// Display constants.
const (
	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)
