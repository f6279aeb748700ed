package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// journey does not exist in the collection.
// Handlers should map this to HTTP 404, or to a silent no-op on the page.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. a required field is blank).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrMissingPhoto is returned when a new journey is submitted without a photo.
// It wraps ErrValidation, so errors.Is(err, ErrValidation) also holds.
var ErrMissingPhoto = fmt.Errorf("%w: photo is required", ErrValidation)

// ErrInvalidPhoto is returned when the uploaded file is not a usable image.
var ErrInvalidPhoto = fmt.Errorf("%w: photo must be an image", ErrValidation)
