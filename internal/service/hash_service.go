package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SHA256HashService implements ports.HashService using literal unsalted
// SHA-256. See DESIGN.md for why this gateway follows that contract
// literally instead of a salted KDF.
type SHA256HashService struct{}

// NewSHA256HashService creates a new unsalted-SHA-256 hash service.
func NewSHA256HashService() *SHA256HashService {
	return &SHA256HashService{}
}

// HashPassword returns sha256_hex(password).
func (s *SHA256HashService) HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword recomputes the digest and compares in constant time.
func (s *SHA256HashService) VerifyPassword(password string, digest string) bool {
	computed := s.HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
