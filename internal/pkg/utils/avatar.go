package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// DefaultAvatarSize is the pixel edge used in the admin user listing.
const DefaultAvatarSize = 200

// AvatarURL builds the Gravatar address for an email. The address is
// normalized before hashing so equivalent spellings resolve to the same
// avatar; accounts without one fall back to the generated placeholder.
func AvatarURL(email string, size int) string {
	if size <= 0 {
		size = DefaultAvatarSize
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := sha256.Sum256([]byte(normalized))

	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&d=mp", hex.EncodeToString(sum[:]), size)
}
