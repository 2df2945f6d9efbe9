package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	counts map[string]int
	fail   map[string]bool
	calls  map[string]int
}

func (s *countingSource) LookupDocumentCount(_ context.Context, keyword string) (int, error) {
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[keyword]++
	if s.fail[keyword] {
		return 0, &LookupError{Source: SourceDocuments, Kind: KindTransient, Err: errors.New("timeout")}
	}
	return s.counts[keyword], nil
}

func TestCachedDocumentCountSource_CachesSuccesses(t *testing.T) {
	next := &countingSource{counts: map[string]int{"삼성전자": 120}}
	cached := NewCachedDocumentCountSource(next, 10, time.Minute)
	defer cached.Close()

	for i := 0; i < 3; i++ {
		count, err := cached.LookupDocumentCount(context.Background(), "삼성전자")
		require.NoError(t, err)
		assert.Equal(t, 120, count)
	}

	assert.Equal(t, 1, next.calls["삼성전자"])
	stats := cached.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, 1, stats.Size)
}

func TestCachedDocumentCountSource_DoesNotCacheFailures(t *testing.T) {
	next := &countingSource{fail: map[string]bool{"실패": true}}
	cached := NewCachedDocumentCountSource(next, 10, 0)
	defer cached.Close()

	for i := 0; i < 2; i++ {
		_, err := cached.LookupDocumentCount(context.Background(), "실패")
		assert.Equal(t, KindTransient, KindOf(err))
	}
	assert.Equal(t, 2, next.calls["실패"])
}
