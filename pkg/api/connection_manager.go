package api

import (
	"time"

	"github.com/valyala/fasthttp"
)

// ConnectionConfig holds configuration for outbound lookup connections
type ConnectionConfig struct {
	MaxConnsPerHost     int           `json:"max_conns_per_host"`
	MaxIdleConnDuration time.Duration `json:"max_idle_conn_duration"`
	ReadTimeout         time.Duration `json:"read_timeout"`
	WriteTimeout        time.Duration `json:"write_timeout"`
	RequestTimeout      time.Duration `json:"request_timeout"`
	MaxRetries          int           `json:"max_retries"`
	RetryDelay          time.Duration `json:"retry_delay"`
	UserAgent           string        `json:"user_agent"`
}

// DefaultConnectionConfig returns settings suited to a handful of sequential
// calls against a rate-limited API.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxConnsPerHost:     16,
		MaxIdleConnDuration: 90 * time.Second,
		ReadTimeout:         10 * time.Second,
		WriteTimeout:        10 * time.Second,
		RequestTimeout:      10 * time.Second,
		MaxRetries:          0,
		RetryDelay:          500 * time.Millisecond,
		UserAgent:           "keyword-radar/1.0",
	}
}

// WithTimeout returns a copy of c with the per-call timeout replaced
func (c ConnectionConfig) WithTimeout(timeout time.Duration) ConnectionConfig {
	if timeout > 0 {
		c.RequestTimeout = timeout
		if c.ReadTimeout < timeout {
			c.ReadTimeout = timeout
		}
		if c.WriteTimeout < timeout {
			c.WriteTimeout = timeout
		}
	}
	return c
}

// ConnectionManager owns the fasthttp client shared by one lookup source
type ConnectionManager struct {
	config ConnectionConfig
	client *fasthttp.Client
}

// NewConnectionManager creates a new connection manager with specified config
func NewConnectionManager(config ConnectionConfig) *ConnectionManager {
	return &ConnectionManager{
		config: config,
		client: &fasthttp.Client{
			Name:                config.UserAgent,
			MaxConnsPerHost:     config.MaxConnsPerHost,
			MaxIdleConnDuration: config.MaxIdleConnDuration,
			ReadTimeout:         config.ReadTimeout,
			WriteTimeout:        config.WriteTimeout,
		},
	}
}

// NewConnectionManagerWithClient wraps an existing client, e.g. one dialing
// an in-memory listener.
func NewConnectionManagerWithClient(config ConnectionConfig, client *fasthttp.Client) *ConnectionManager {
	return &ConnectionManager{config: config, client: client}
}

// GetFastHTTPClient returns the managed client
func (cm *ConnectionManager) GetFastHTTPClient() *fasthttp.Client {
	return cm.client
}

// Config returns the connection settings
func (cm *ConnectionManager) Config() ConnectionConfig {
	return cm.config
}

// Close closes idle connections
func (cm *ConnectionManager) Close() {
	cm.client.CloseIdleConnections()
}
