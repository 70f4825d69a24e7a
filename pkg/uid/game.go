package uid

import "github.com/google/uuid"

// GameID returns a new unique game identifier.
func GameID() string {
	return uuid.NewString()
}
