package reminder

import "errors"

var (
	ErrMissingID     = errors.New("reminder is missing the id field")
	ErrUnexpectedID  = errors.New("reminder must not carry an id field")
	ErrMissingIDs    = errors.New("more than one reminder is missing the id field")
	ErrNotCollection = errors.New("store value is not a collection")
)

// IsValidation reports whether err was caused by a request body that failed
// validation, as opposed to a store failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingID) ||
		errors.Is(err, ErrUnexpectedID) ||
		errors.Is(err, ErrMissingIDs)
}
