package api

import (
	"context"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"keyword-radar/pkg/logger"
)

const (
	DefaultVolumeBaseURL = "https://api.naver.com"
	keywordstoolPath     = "/keywordstool"
)

// VolumeClientConfig holds search-ad credentials and endpoint settings
type VolumeClientConfig struct {
	BaseURL    string
	CustomerID string
	AccessKey  string
	SecretKey  string
	Connection ConnectionConfig
}

// Configured reports whether all credentials are present
func (c VolumeClientConfig) Configured() bool {
	return c.CustomerID != "" && c.AccessKey != "" && c.SecretKey != ""
}

// VolumeClient implements VolumeSource against the search-ad keywordstool API
type VolumeClient struct {
	config    VolumeClientConfig
	connMgr   *ConnectionManager
	signer    *Signer
	parser    *KeywordstoolParser
	retry     *SimpleRetry
	secLogger *logger.SecurityLogger
	now       func() time.Time
}

// NewVolumeClient creates a keywordstool client. A client without
// credentials is valid; every lookup then fails with KindUnavailable.
func NewVolumeClient(config VolumeClientConfig) *VolumeClient {
	return NewVolumeClientWithManager(config, NewConnectionManager(config.Connection))
}

// NewVolumeClientWithManager creates a client on an existing connection manager
func NewVolumeClientWithManager(config VolumeClientConfig, connMgr *ConnectionManager) *VolumeClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultVolumeBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	cc := connMgr.Config()
	return &VolumeClient{
		config:    config,
		connMgr:   connMgr,
		signer:    NewSigner(config.SecretKey),
		parser:    NewKeywordstoolParser(),
		retry:     NewSimpleRetry(cc.MaxRetries, cc.RetryDelay),
		secLogger: logger.GetSecurityLogger(),
		now:       time.Now,
	}
}

// LookupVolumes queries one batch of hint keywords
func (c *VolumeClient) LookupVolumes(ctx context.Context, batch []string) (map[string]int, error) {
	if !c.config.Configured() {
		return nil, unavailable(SourceVolume)
	}
	if len(batch) == 0 {
		return map[string]int{}, nil
	}

	uri := c.buildURI(batch)

	var volumes map[string]int
	err := c.retry.Execute(ctx, func() error {
		body, err := getJSON(ctx, c.connMgr, SourceVolume, uri, c.signedHeaders(fasthttp.MethodGet, keywordstoolPath))
		if err != nil {
			return err
		}
		parsed, err := c.parser.ParseResponse(body)
		if err != nil {
			return &LookupError{Source: SourceVolume, Kind: KindMalformed, Err: err}
		}
		volumes = parsed
		return nil
	})
	if err != nil {
		le := wrap(SourceVolume, err)
		c.secLogger.SafeDebug("Volume lookup failed", map[string]interface{}{
			"endpoint": c.config.BaseURL,
			"batch":    len(batch),
			"kind":     le.Kind.String(),
			"status":   le.Status,
		})
		return nil, le
	}

	return volumes, nil
}

func (c *VolumeClient) buildURI(batch []string) string {
	hints := make([]string, 0, len(batch))
	for _, kw := range batch {
		if kw = strings.ReplaceAll(kw, " ", ""); kw != "" {
			hints = append(hints, kw)
		}
	}

	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Set("hintKeywords", strings.Join(hints, ","))
	args.Set("showDetail", "1")

	return c.config.BaseURL + keywordstoolPath + "?" + args.String()
}

func (c *VolumeClient) signedHeaders(method, path string) map[string]string {
	ts := Timestamp(c.now())
	return map[string]string{
		"Content-Type": "application/json; charset=UTF-8",
		"X-Timestamp":  ts,
		"X-API-KEY":    c.config.AccessKey,
		"X-Customer":   c.config.CustomerID,
		"X-Signature":  c.signer.Sign(ts, method, path),
	}
}

// Close releases idle connections
func (c *VolumeClient) Close() {
	c.connMgr.Close()
}
