package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"

	"keyword-radar/pkg/logger"
)

const (
	DefaultDocumentBaseURL = "https://openapi.naver.com"
	blogSearchPath         = "/v1/search/blog.json"
)

// DocumentClientConfig holds open-API credentials for blog search
type DocumentClientConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Connection   ConnectionConfig
}

// Configured reports whether both credentials are present
func (c DocumentClientConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type blogSearchResponse struct {
	Total *int64 `json:"total"`
}

// DocumentCountClient implements DocumentCountSource using the blog search
// total as the document count.
type DocumentCountClient struct {
	config    DocumentClientConfig
	connMgr   *ConnectionManager
	retry     *SimpleRetry
	secLogger *logger.SecurityLogger
}

// NewDocumentCountClient creates a blog search client
func NewDocumentCountClient(config DocumentClientConfig) *DocumentCountClient {
	return NewDocumentCountClientWithManager(config, NewConnectionManager(config.Connection))
}

// NewDocumentCountClientWithManager creates a client on an existing connection manager
func NewDocumentCountClientWithManager(config DocumentClientConfig, connMgr *ConnectionManager) *DocumentCountClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultDocumentBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	cc := connMgr.Config()
	return &DocumentCountClient{
		config:    config,
		connMgr:   connMgr,
		retry:     NewSimpleRetry(cc.MaxRetries, cc.RetryDelay),
		secLogger: logger.GetSecurityLogger(),
	}
}

// LookupDocumentCount returns the number of blog documents for keyword
func (c *DocumentCountClient) LookupDocumentCount(ctx context.Context, keyword string) (int, error) {
	if !c.config.Configured() {
		return 0, unavailable(SourceDocuments)
	}

	args := fasthttp.AcquireArgs()
	args.Set("query", keyword)
	args.Set("display", "1")
	uri := c.config.BaseURL + blogSearchPath + "?" + args.String()
	fasthttp.ReleaseArgs(args)

	headers := map[string]string{
		"X-Naver-Client-Id":     c.config.ClientID,
		"X-Naver-Client-Secret": c.config.ClientSecret,
	}

	var count int
	err := c.retry.Execute(ctx, func() error {
		body, err := getJSON(ctx, c.connMgr, SourceDocuments, uri, headers)
		if err != nil {
			return err
		}

		var resp blogSearchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return &LookupError{Source: SourceDocuments, Kind: KindMalformed, Err: fmt.Errorf("failed to decode blog search response: %w", err)}
		}
		if resp.Total == nil {
			return &LookupError{Source: SourceDocuments, Kind: KindMalformed, Err: fmt.Errorf("blog search response has no total")}
		}
		count = clampCount(int(*resp.Total))
		return nil
	})
	if err != nil {
		le := wrap(SourceDocuments, err)
		c.secLogger.SafeDebug("Document count lookup failed", map[string]interface{}{
			"endpoint": c.config.BaseURL,
			"keyword":  []string{keyword},
			"kind":     le.Kind.String(),
			"status":   le.Status,
		})
		return 0, le
	}

	return count, nil
}

// Close releases idle connections
func (c *DocumentCountClient) Close() {
	c.connMgr.Close()
}
