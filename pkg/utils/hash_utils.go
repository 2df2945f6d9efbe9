package utils

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// Hasher provides consistent content hashing across the application
type Hasher struct{}

// NewHasher creates a new hasher instance
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash generates a hex MD5 digest of value. Empty input hashes to "".
func (h *Hasher) Hash(value string) string {
	if value == "" {
		return ""
	}

	sum := md5.Sum([]byte(value))
	return fmt.Sprintf("%x", sum)
}

// ShortHash returns the first 8 characters of Hash
func (h *Hasher) ShortHash(value string) string {
	full := h.Hash(value)
	if len(full) >= 8 {
		return full[:8]
	}
	return full
}

var globalHasher = NewHasher()

// Hash is a convenience function that uses the global hasher
func Hash(value string) string {
	return globalHasher.Hash(value)
}

// ShortHash is a convenience function that uses the global hasher
func ShortHash(value string) string {
	return globalHasher.ShortHash(value)
}

// RunTitle builds a short human title from the first keywords of a run,
// e.g. "삼성전자, 아파트청약". Falls back to fallback when keywords is empty.
func RunTitle(keywords []string, fallback string) string {
	if len(keywords) == 0 {
		return fallback
	}
	if len(keywords) > 2 {
		keywords = keywords[:2]
	}
	return strings.Join(keywords, ", ")
}
