package session

import "errors"

var ErrNotAuthenticated = errors.New("not authenticated")

var ErrInvalidToken = errors.New("invalid access token")

var ErrEntryNotFound = errors.New("storage entry not found")
