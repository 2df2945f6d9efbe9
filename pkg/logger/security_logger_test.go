package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedSecurityLogger(buf *bytes.Buffer) *SecurityLogger {
	return &SecurityLogger{Logger: NewWithWriter(Config{Level: "debug"}, buf)}
}

func TestSecurityLogger_MaskSecret(t *testing.T) {
	sl := newBufferedSecurityLogger(&bytes.Buffer{})

	assert.Equal(t, "unset", sl.MaskSecret(""))

	masked := sl.MaskSecret("super-secret-value")
	assert.True(t, strings.HasPrefix(masked, "secret#"))
	assert.NotContains(t, masked, "super-secret-value")
	assert.Equal(t, masked, sl.MaskSecret("super-secret-value"))
	assert.NotEqual(t, masked, sl.MaskSecret("other-secret-value"))
}

func TestSecurityLogger_MaskEndpoint(t *testing.T) {
	sl := newBufferedSecurityLogger(&bytes.Buffer{})

	masked := sl.MaskEndpoint("https://api.naver.com/keywordstool?hintKeywords=abc")
	assert.True(t, strings.HasPrefix(masked, "api.naver.com#"))
	assert.NotContains(t, masked, "hintKeywords")

	assert.True(t, strings.HasPrefix(sl.MaskEndpoint("not a url"), "endpoint#"))
	assert.Equal(t, "", sl.MaskEndpoint(""))
}

func TestSecurityLogger_MaskKeywords(t *testing.T) {
	sl := newBufferedSecurityLogger(&bytes.Buffer{})

	assert.Equal(t, "no_keywords", sl.MaskKeywords(nil))
	assert.Equal(t, "keywords_count=2", sl.MaskKeywords([]string{"a", "b"}))
	assert.Equal(t, "keywords_count=4,sample=[a,b,...]", sl.MaskKeywords([]string{"a", "b", "c", "d"}))
}

func TestSecurityLogger_SafeErrorMasksCredentials(t *testing.T) {
	var buf bytes.Buffer
	sl := newBufferedSecurityLogger(&buf)

	sl.SafeError("lookup failed for https://openapi.naver.com/v1/search/blog.json?query=x",
		errors.New("rejected secret=abc123"),
		map[string]interface{}{
			"client_secret": "abc123",
			"batch_size":    5,
		})

	out := buf.String()
	require.NotEmpty(t, out)
	assert.NotContains(t, out, "abc123")
	assert.NotContains(t, out, "query=x")
	assert.Contains(t, out, "openapi.naver.com#")
	assert.Contains(t, out, `"batch_size":5`)
}
