package report

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/sha3"
)

// Digest returns the hex-encoded SHA3-256 of the file at path.
func Digest(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is the rendered report
	if err != nil {
		return "", fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	h := sha3.New256()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash report: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
