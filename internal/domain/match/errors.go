package match

import "errors"

var (
	// ErrNotFound is returned when the match does not exist
	ErrNotFound = errors.New("match not found")

	// ErrUserNotFound is returned when a referenced user is absent
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfMatch is returned on a proposal to oneself
	ErrSelfMatch = errors.New("cannot propose a match with yourself")

	// ErrDuplicateMatch is returned when a non-terminal match already exists
	// between the pair, in either direction
	ErrDuplicateMatch = errors.New("an active match already exists between these users")

	// ErrNotAuthorized is returned when the actor may not perform this
	// transition (accept/reject are the recipient's, cancel the requester's)
	ErrNotAuthorized = errors.New("not authorized to act on this match")

	// ErrInvalidTransition is returned when the match is not pending; the
	// loser of two racing transitions sees this
	ErrInvalidTransition = errors.New("match is not in a state that allows this transition")
)
