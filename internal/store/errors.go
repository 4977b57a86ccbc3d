package store

import "errors"

// ErrUnauthenticated means no user identity was established for the call.
var ErrUnauthenticated = errors.New("no user identity established")
