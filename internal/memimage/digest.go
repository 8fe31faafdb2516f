package memimage

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainImage prefixes image digests so they never collide with a plain
// SHA-256 of the same bytes.
const DomainImage = "meminit/image/v1"

// Digest returns the hex SHA-256 of raw with domain separation.
// Format: SHA256(DomainImage + 0x00 + raw)
func Digest(raw []byte) string {
	h := sha256.New()
	h.Write([]byte(DomainImage))
	h.Write([]byte{0x00})
	h.Write(raw)
	return hex.EncodeToString(h.Sum(nil))
}
