package lockfile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// HashBytes returns the recorded-hash form of data: "sha256:" + 64
// lowercase hex characters.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:])
}

// HashFile returns the recorded-hash form of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return "sha256:" + hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyFile recomputes the content hash of the live file and compares
// it, case-insensitively, against the recorded hash. A missing or
// unreadable file reports false rather than an error.
func VerifyFile(livePath, recordedHash string) bool {
	live, err := HashFile(livePath)
	if err != nil {
		return false
	}
	return strings.EqualFold(live, recordedHash)
}
