package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"time"
)

// Signer produces the X-Signature header of the search-ad API:
// base64(HMAC-SHA256(secret, "{timestamp}.{method}.{path}")).
type Signer struct {
	secret []byte
}

// NewSigner creates a signer for the given secret key
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the signature for one request
func (s *Signer) Sign(timestamp, method, path string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(timestamp + "." + method + "." + path))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Timestamp formats t as epoch milliseconds
func Timestamp(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
