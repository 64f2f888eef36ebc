package ids

import "github.com/google/uuid"

// New returns a random identifier suitable for assessment and
// record IDs. UUIDv4, lower-case, hyphenated.
func New() string {
	return uuid.NewString()
}
