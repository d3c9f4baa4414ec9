package interactions

import "errors"

var (
	// ErrTogglePending is returned when a toggle for the same entity is
	// already in flight.
	ErrTogglePending = errors.New("toggle already in progress")

	// ErrCancelled is returned when the caller's context was already done
	// before any state was touched.
	ErrCancelled = errors.New("toggle cancelled")

	// ErrUnauthorized means the interaction API rejected the call as
	// unauthenticated; the caller should prompt for sign-in.
	ErrUnauthorized = errors.New("interaction unauthorized")

	// ErrForbidden means the caller is authenticated but not allowed to
	// toggle this entity.
	ErrForbidden = errors.New("interaction forbidden")

	// ErrUnavailable covers timeouts and server-side failures; the caller
	// should retry later.
	ErrUnavailable = errors.New("interaction service unavailable")
)
