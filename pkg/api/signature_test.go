package api

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_Sign(t *testing.T) {
	signer := NewSigner("secret")

	sig := signer.Sign("1700000000000", "GET", "/keywordstool")
	raw, err := base64.StdEncoding.DecodeString(sig)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	assert.Equal(t, sig, NewSigner("secret").Sign("1700000000000", "GET", "/keywordstool"))
	assert.NotEqual(t, sig, NewSigner("other").Sign("1700000000000", "GET", "/keywordstool"))
	assert.NotEqual(t, sig, signer.Sign("1700000000001", "GET", "/keywordstool"))
	assert.NotEqual(t, sig, signer.Sign("1700000000000", "POST", "/keywordstool"))
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "1700000000123", Timestamp(time.UnixMilli(1700000000123)))
}
