package errorz

import "errors"

var (
	ErrInvalidState        = errors.New("invalid state")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCallbackData = errors.New("invalid callback data")

	// ErrNoPractices means no practice is configured for the requested
	// weekday or curriculum slot. Callers skip the send and log, not crash.
	ErrNoPractices = errors.New("no practices for the requested slot")

	// ErrDuplicateURL is returned when a practice with the same video url
	// already exists.
	ErrDuplicateURL = errors.New("practice with this video url already exists")

	// ErrNotOnboarded is returned by operations that require a saved notify
	// time before the user has completed onboarding.
	ErrNotOnboarded = errors.New("user has not completed onboarding")

	// ErrNotRanked is returned when a rank is not meaningful for the user,
	// i.e. the user has zero completed practices.
	ErrNotRanked = errors.New("user has no completed practices")

	// ErrNoBroadcast is returned when bulk edit/delete is requested but no
	// broadcast batch has been recorded.
	ErrNoBroadcast = errors.New("no recorded broadcast batch")
)
