package core

import (
	"errors"
)

var (
	ErrNotInitialized     = errors.New("subsystem not initialized")
	ErrAlreadyInitialized = errors.New("subsystem already initialized")
	ErrInvalidID          = errors.New("invalid identifier")
	ErrUnknown            = errors.New("unknown")
)
