package mojang

import (
	"encoding/hex"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// validateUsername validates a Minecraft username.
// Rules:
// - Must be 3-16 characters long
// - Must contain only ASCII characters
func validateUsername(username string) error {
	if n := utf8.RuneCountInString(username); n < 3 || n > 16 {
		return fmt.Errorf("%w %q: must be between 3 and 16 characters", ErrInvalidUsername, username)
	}

	for _, r := range username {
		if r > unicode.MaxASCII {
			return fmt.Errorf("%w %q: contains non-ASCII characters", ErrInvalidUsername, username)
		}
	}

	return nil
}

// undashed renders a UUID as 32 hex digits, the form the session server
// expects in request paths.
func undashed(id uuid.UUID) string {
	return hex.EncodeToString(id[:])
}
