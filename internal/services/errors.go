package services

import "errors"

// Domain errors returned by the services. Handlers translate these to HTTP
// statuses with errors.Is; repository lookups additionally surface
// repositories.ErrNotFound.
var (
	// ErrInvalidCredentials is returned on any login failure. It is deliberately
	// generic so callers cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConflict is returned when a unique field (username, email) is already taken.
	ErrConflict = errors.New("already exists")

	// ErrMovieUnavailable is returned when renting a movie marked unavailable.
	ErrMovieUnavailable = errors.New("movie is not available")

	// ErrInvalidDateRange is returned when a rental's end date precedes its start date.
	ErrInvalidDateRange = errors.New("end date must not precede start date")

	// ErrInvalidStatus is returned when a status value is outside the allowed set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrPosterTooLarge is returned when an application's poster payload exceeds
	// the configured ceiling.
	ErrPosterTooLarge = errors.New("poster payload too large")

	// ErrNoRecipient is returned when a notification cannot resolve a recipient
	// address, which indicates missing configuration.
	ErrNoRecipient = errors.New("no notification recipient configured")
)
