package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// ShortDigestLen is the number of hex characters kept by ShortDigest.
const ShortDigestLen = 8

// Digest returns the hex SHA-256 of content.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ShortDigest returns the first ShortDigestLen hex characters of Digest. It
// names inline grammar sources and identifies content in log output.
func ShortDigest(content []byte) string {
	return Digest(content)[:ShortDigestLen]
}

// ShortDigestReader drains r and returns the short digest of what it read.
func ShortDigestReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil))[:ShortDigestLen], nil
}
