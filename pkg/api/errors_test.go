package api

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	cases := map[int]ErrorKind{
		400: KindMalformed,
		401: KindUnauthorized,
		403: KindUnauthorized,
		404: KindMalformed,
		429: KindRateLimited,
		500: KindTransient,
		503: KindTransient,
	}
	for status, want := range cases {
		assert.Equal(t, want, ClassifyStatus(status), "status %d", status)
	}
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, KindCanceled, ClassifyError(context.Canceled))
	assert.Equal(t, KindTransient, ClassifyError(context.DeadlineExceeded))
	assert.Equal(t, KindUnavailable, ClassifyError(fmt.Errorf("volume: %w", ErrNotConfigured)))
	assert.Equal(t, KindRateLimited, ClassifyError(errors.New("rate limit exceeded")))
	assert.Equal(t, KindUnauthorized, ClassifyError(errors.New("403 Forbidden")))
	assert.Equal(t, KindMalformed, ClassifyError(errors.New("invalid character 'x' looking for beginning of value")))
	assert.Equal(t, KindTransient, ClassifyError(errors.New("dial tcp: connection refused")))
}

func TestKindOf_UnwrapsLookupError(t *testing.T) {
	le := &LookupError{Source: SourceDocuments, Kind: KindRateLimited, Status: 429}
	wrapped := fmt.Errorf("documents for %q: %w", "삼성전자", le)

	assert.Equal(t, KindRateLimited, KindOf(wrapped))

	var target *LookupError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, 429, target.Status)
}

func TestLookupError_Message(t *testing.T) {
	le := &LookupError{Source: SourceVolume, Kind: KindTransient, Status: 502, Err: errors.New("bad gateway")}

	assert.Equal(t, "volume lookup transient (status 502): bad gateway", le.Error())
	assert.True(t, le.Retryable())
	assert.False(t, unavailable(SourceVolume).Retryable())
	assert.True(t, errors.Is(unavailable(SourceVolume), ErrNotConfigured))
}

func TestWrap_PreservesLookupError(t *testing.T) {
	le := &LookupError{Source: SourceSuggestion, Kind: KindMalformed}

	assert.Same(t, le, wrap(SourceVolume, fmt.Errorf("outer: %w", le)))

	plain := wrap(SourceVolume, errors.New("timeout"))
	assert.Equal(t, SourceVolume, plain.Source)
	assert.Equal(t, KindTransient, plain.Kind)
}
