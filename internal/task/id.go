package task

import (
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// Task IDs are prefixes of a base36-encoded random UUID. Short prefixes are
// easy to type at the index prompt; a prefix grows only when it collides.
// An ID always contains a letter so it never reads as a task index.
const (
	minIDLength = 3
	maxIDLength = 8
)

// GenerateID returns a short ID for which exists reports false.
func GenerateID(exists func(string) bool) string {
	for {
		encoded := encodeUUID(uuid.New())
		for length := minIDLength; length <= maxIDLength && length <= len(encoded); length++ {
			if candidate := encoded[:length]; hasLetter(candidate) && !exists(candidate) {
				return candidate
			}
		}
	}
}

// encodeUUID renders the UUID as lowercase base36 without leading zeros.
func encodeUUID(u uuid.UUID) string {
	return new(big.Int).SetBytes(u[:]).Text(36)
}

func hasLetter(s string) bool {
	return strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz")
}
