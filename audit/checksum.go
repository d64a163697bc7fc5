package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// Hash computes the SHA-256 digest of content as a 64-character hex string.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// HashFile computes the SHA-256 digest of a file without loading it whole.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
