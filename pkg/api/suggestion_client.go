package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"
)

const (
	DefaultSuggestionBaseURL = "https://mac.search.naver.com"
	autocompletePath         = "/mobile/ac"
)

// SuggestionClientConfig configures the autocomplete endpoint. It needs no
// credentials.
type SuggestionClientConfig struct {
	BaseURL    string
	Connection ConnectionConfig
}

type autocompleteResponse struct {
	Items []json.RawMessage `json:"items"`
}

// SuggestionClient implements SuggestionSource with the mobile autocomplete API
type SuggestionClient struct {
	config  SuggestionClientConfig
	connMgr *ConnectionManager
	retry   *SimpleRetry
}

// NewSuggestionClient creates an autocomplete client
func NewSuggestionClient(config SuggestionClientConfig) *SuggestionClient {
	return NewSuggestionClientWithManager(config, NewConnectionManager(config.Connection))
}

// NewSuggestionClientWithManager creates a client on an existing connection manager
func NewSuggestionClientWithManager(config SuggestionClientConfig, connMgr *ConnectionManager) *SuggestionClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultSuggestionBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	cc := connMgr.Config()
	return &SuggestionClient{
		config:  config,
		connMgr: connMgr,
		retry:   NewSimpleRetry(cc.MaxRetries, cc.RetryDelay),
	}
}

// LookupSuggestions returns the first-group autocomplete terms in provider order
func (c *SuggestionClient) LookupSuggestions(ctx context.Context, keyword string) ([]string, error) {
	args := fasthttp.AcquireArgs()
	args.Set("q", keyword)
	args.Set("st", "1")
	args.Set("frm", "mobile_nv")
	args.Set("r_format", "json")
	args.Set("r_enc", "UTF-8")
	args.Set("r_unicode", "0")
	args.Set("t_koreng", "1")
	args.Set("ans", "2")
	args.Set("run", "2")
	uri := c.config.BaseURL + autocompletePath + "?" + args.String()
	fasthttp.ReleaseArgs(args)

	var terms []string
	err := c.retry.Execute(ctx, func() error {
		body, err := getJSON(ctx, c.connMgr, SourceSuggestion, uri, nil)
		if err != nil {
			return err
		}
		parsed, err := parseAutocomplete(body)
		if err != nil {
			return &LookupError{Source: SourceSuggestion, Kind: KindMalformed, Err: err}
		}
		terms = parsed
		return nil
	})
	if err != nil {
		return nil, wrap(SourceSuggestion, err)
	}
	return terms, nil
}

// parseAutocomplete extracts items[0][i][0]. Entries that are not a
// non-empty array starting with a string are skipped.
func parseAutocomplete(body []byte) ([]string, error) {
	var resp autocompleteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode autocomplete response: %w", err)
	}
	if len(resp.Items) == 0 {
		return []string{}, nil
	}

	var group []json.RawMessage
	if err := json.Unmarshal(resp.Items[0], &group); err != nil {
		return nil, fmt.Errorf("failed to decode autocomplete group: %w", err)
	}

	terms := make([]string, 0, len(group))
	for _, entry := range group {
		var fields []interface{}
		if err := json.Unmarshal(entry, &fields); err != nil || len(fields) == 0 {
			continue
		}
		if term, ok := fields[0].(string); ok && strings.TrimSpace(term) != "" {
			terms = append(terms, term)
		}
	}
	return terms, nil
}

// Close releases idle connections
func (c *SuggestionClient) Close() {
	c.connMgr.Close()
}
