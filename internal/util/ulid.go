package util

import "github.com/oklog/ulid/v2"

// NewULID returns a new time-ordered ID for questions and sessions. It is
// safe for concurrent use; IDs from one process are strictly increasing.
func NewULID() string {
	return ulid.Make().String()
}
