package intent

import "errors"

// Sentinel errors for the intent package. Using sentinels instead of ad-hoc
// fmt.Errorf allows callers to match with errors.Is for reliable error handling.
var (
	// ErrIntentNotFound is returned when a status transition targets an
	// intent id absent from the registry.
	ErrIntentNotFound = errors.New("intent not found")
)
