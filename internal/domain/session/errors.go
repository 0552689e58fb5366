package session

import "errors"

var (
	// ErrNotFound is returned when the session does not exist
	ErrNotFound = errors.New("session not found")

	// ErrUserNotFound is returned when the participant is absent
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfSession is returned when a user schedules a session with themself
	ErrSelfSession = errors.New("cannot schedule a session with yourself")

	// ErrNotConnected is returned when the two users have no accepted match
	ErrNotConnected = errors.New("users are not connected")

	// ErrInvalidDuration is returned for a duration outside the pricing table
	ErrInvalidDuration = errors.New("duration must be 15, 30 or 60 minutes")

	// ErrNotAuthorized is returned when the actor may not perform this
	// transition on this session
	ErrNotAuthorized = errors.New("not authorized to act on this session")

	// ErrInvalidTransition is returned when the session status does not allow
	// the transition; the loser of two racing transitions sees this
	ErrInvalidTransition = errors.New("session is not in a state that allows this transition")

	// ErrAlreadyRated is returned when the session already carries a rating
	ErrAlreadyRated = errors.New("session has already been rated")
)
