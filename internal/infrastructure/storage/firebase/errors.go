package firebase

import (
	"errors"

	"reminders/internal/infrastructure/identity"
)

// Errors returned by the store client. Their text is shown to API clients.
var (
	ErrAuthentication = identity.ErrAuthentication
	ErrNotFound       = errors.New("not found")
	ErrWrite          = errors.New("error writing data")
	ErrDelete         = errors.New("error deleting data")
)
