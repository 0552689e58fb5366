package skill

import "errors"

var (
	ErrNotFound      = errors.New("skill not found")
	ErrNotOwner      = errors.New("skill belongs to another user")
	ErrAlreadyExists = errors.New("skill already declared")
)
