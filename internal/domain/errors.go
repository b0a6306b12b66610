package domain

import "errors"

var (
	// ErrSourceUnavailable signals that the patient collection could not be supplied.
	ErrSourceUnavailable = errors.New("patient source unavailable")
	// ErrInvalidData signals a collection document that is not a JSON array of objects.
	ErrInvalidData = errors.New("invalid patient data")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
