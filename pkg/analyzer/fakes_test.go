package analyzer

import (
	"context"
	"errors"
	"sync"

	"keyword-radar/pkg/api"
)

type fakeVolumeSource struct {
	mu      sync.Mutex
	volumes map[string]int
	failOn  map[int]error
	batches [][]string
}

func (f *fakeVolumeSource) LookupVolumes(_ context.Context, batch []string) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := len(f.batches)
	f.batches = append(f.batches, append([]string(nil), batch...))
	if err, ok := f.failOn[idx]; ok {
		return nil, err
	}

	out := make(map[string]int)
	for _, kw := range batch {
		for label, v := range f.volumes {
			if label == kw || label == compactForTest(kw) {
				out[label] = v
			}
		}
	}
	return out, nil
}

type fakeDocumentSource struct {
	mu     sync.Mutex
	counts map[string]int
	fail   map[string]error
	calls  []string
}

func (f *fakeDocumentSource) LookupDocumentCount(_ context.Context, keyword string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, keyword)
	if err, ok := f.fail[keyword]; ok {
		return 0, err
	}
	return f.counts[keyword], nil
}

type fakeSuggestionSource struct {
	terms map[string][]string
	fail  map[string]error
	calls []string
}

func (f *fakeSuggestionSource) LookupSuggestions(_ context.Context, keyword string) ([]string, error) {
	f.calls = append(f.calls, keyword)
	if err, ok := f.fail[keyword]; ok {
		return nil, err
	}
	return f.terms[keyword], nil
}

type unavailableSources struct{}

func (unavailableSources) LookupVolumes(context.Context, []string) (map[string]int, error) {
	return nil, &api.LookupError{Source: api.SourceVolume, Kind: api.KindUnavailable, Err: api.ErrNotConfigured}
}

func (unavailableSources) LookupDocumentCount(context.Context, string) (int, error) {
	return 0, &api.LookupError{Source: api.SourceDocuments, Kind: api.KindUnavailable, Err: api.ErrNotConfigured}
}

func (unavailableSources) LookupSuggestions(context.Context, string) ([]string, error) {
	return nil, &api.LookupError{Source: api.SourceSuggestion, Kind: api.KindUnavailable, Err: api.ErrNotConfigured}
}

type recordingPacer struct {
	mu    sync.Mutex
	waits int
}

func (p *recordingPacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waits++
	return ctx.Err()
}

func (p *recordingPacer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waits
}

var errTimeout = &api.LookupError{Source: api.SourceDocuments, Kind: api.KindTransient, Err: errors.New("timeout")}

func compactForTest(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r != ' ' {
			out = append(out, r)
		}
	}
	return string(out)
}
