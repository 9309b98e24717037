package hashpix

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// CryptoDigest computes a cryptographic digest over raw decoded pixel
// bytes and returns lowercase hex, truncated to digestSize bytes. Hashing
// decoded pixels rather than file bytes is the invariant that keeps the
// id stable across metadata-only edits (§4.1).
func CryptoDigest(pixels []byte, algo string, digestSize int) (string, error) {
	var sum []byte
	switch algo {
	case "blake2b":
		size := digestSize
		if size > blake2b.Size {
			size = blake2b.Size
		}
		h, err := blake2b.New(size, nil)
		if err != nil {
			return "", fmt.Errorf("hashpix: blake2b: %w", err)
		}
		h.Write(pixels)
		sum = h.Sum(nil)
	case "sha224":
		s := sha256.Sum224(pixels)
		sum = s[:]
	case "sha256":
		s := sha256.Sum256(pixels)
		sum = s[:]
	case "sha512":
		s := sha512.Sum512(pixels)
		sum = s[:]
	default:
		return "", fmt.Errorf("hashpix: unknown crypto hash %q", algo)
	}
	if digestSize > 0 && digestSize < len(sum) {
		sum = sum[:digestSize]
	}
	return hex.EncodeToString(sum), nil
}
