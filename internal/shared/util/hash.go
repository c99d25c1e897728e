package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey derives the stable per-user segment of resume and guide
// object keys. OAuth subjects carry characters that are unsafe in paths,
// so the store keys on a hex digest instead of the raw ID.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
