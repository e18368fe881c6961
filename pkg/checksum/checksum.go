// Package checksum provides SHA-256 checksum utilities for file integrity
// verification. It is used during version uploads to compute the content
// fingerprint stored with each model version, and on the file-serving path to
// expose per-file checksums. Keeping this logic in a dedicated package makes it
// easy to apply consistent hashing behaviour across the upload, serving, and
// storage layers without duplicating crypto/sha256 wiring throughout the codebase.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
)

// File is a named byte source contributing to a fingerprint.
type File struct {
	Name   string
	Reader io.Reader
}

// CalculateSHA256 calculates the SHA256 checksum of data from a reader
func CalculateSHA256(reader io.Reader) (string, error) {
	hasher := sha256.New()

	if _, err := io.Copy(hasher, reader); err != nil {
		return "", fmt.Errorf("failed to calculate checksum: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// VerifySHA256 verifies that the checksum of data matches the expected checksum
func VerifySHA256(reader io.Reader, expectedChecksum string) (bool, error) {
	actualChecksum, err := CalculateSHA256(reader)
	if err != nil {
		return false, err
	}

	return actualChecksum == expectedChecksum, nil
}

// FileSetFingerprint computes a deterministic digest over a set of named files.
// Files are sorted by name before hashing so the result is invariant to upload
// order; each file contributes its name followed by its full content to a single
// cumulative SHA-256. Renaming a file therefore changes the fingerprint even
// when the bytes are identical.
func FileSetFingerprint(files []File) (string, error) {
	sorted := make([]File, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	hasher := sha256.New()
	for _, f := range sorted {
		if _, err := hasher.Write([]byte(f.Name)); err != nil {
			return "", fmt.Errorf("failed to hash file name %s: %w", f.Name, err)
		}
		if _, err := io.Copy(hasher, f.Reader); err != nil {
			return "", fmt.Errorf("failed to hash file %s: %w", f.Name, err)
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
