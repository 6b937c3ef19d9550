package repository

import "errors"

var (
	// ErrUnknownModel indicates the lens model name is not registered
	ErrUnknownModel = errors.New("unknown lens model")

	// ErrMissingParameter indicates a required model parameter was not supplied
	ErrMissingParameter = errors.New("missing lens model parameter")

	// ErrInvalidParameter indicates a model parameter has an invalid value
	ErrInvalidParameter = errors.New("invalid lens model parameter")
)
