package domain

import "errors"

// ErrRecorderClosed is returned when appending to a recorder that has
// already been released.
var ErrRecorderClosed = errors.New("flight recorder closed")
