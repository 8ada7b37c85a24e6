package uid

import "github.com/google/uuid"

// GenerateRoundID returns a random identifier for one round of play.
func GenerateRoundID() string {
	return uuid.NewString()
}
