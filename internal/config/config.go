package config

import (
	"path/filepath"
	"time"

	"keyword-radar/pkg/analyzer"
	"keyword-radar/pkg/api"
	"keyword-radar/pkg/logger"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Naver    NaverConfig    `mapstructure:"naver"`
	Lookup   LookupConfig   `mapstructure:"lookup"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type StorageConfig struct {
	DataDir    string `mapstructure:"data_dir"`
	DBFile     string `mapstructure:"db_file"`
	CSVFile    string `mapstructure:"csv_file"`
	CacheSize  int    `mapstructure:"cache_size"`
	CacheTTLMs int    `mapstructure:"cache_ttl_ms"`
}

// NaverConfig holds the credentials of the three upstream services
type NaverConfig struct {
	Ad      AdConfig      `mapstructure:"ad"`
	Search  SearchConfig  `mapstructure:"search"`
	Suggest SuggestConfig `mapstructure:"suggest"`
}

type AdConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	CustomerID string `mapstructure:"customer_id"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
}

type SearchConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

type SuggestConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type LookupConfig struct {
	VolumeTimeoutMs     int `mapstructure:"volume_timeout_ms"`
	DocumentTimeoutMs   int `mapstructure:"document_timeout_ms"`
	SuggestionTimeoutMs int `mapstructure:"suggestion_timeout_ms"`
	VolumeDelayMs       int `mapstructure:"volume_delay_ms"`
	DocumentDelayMs     int `mapstructure:"document_delay_ms"`
	SuggestionDelayMs   int `mapstructure:"suggestion_delay_ms"`
	MaxRetries          int `mapstructure:"max_retries"`
	RetryDelayMs        int `mapstructure:"retry_delay_ms"`
	MaxConnsPerHost     int `mapstructure:"max_conns_per_host"`
}

type AnalysisConfig struct {
	BatchSize           int     `mapstructure:"batch_size"`
	SaturationThreshold float64 `mapstructure:"saturation_threshold"`
	MinMonthlySearch    int     `mapstructure:"min_monthly_search"`
	Limit               int     `mapstructure:"limit"`
	TopK                int     `mapstructure:"top_k"`
	MaxSuggestions      int     `mapstructure:"max_suggestions"`
	DocumentWorkers     int     `mapstructure:"document_workers"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
	Watch(onChange func(*Config)) error
}

// AnalyzerOptions converts the analysis section
func (c *Config) AnalyzerOptions() analyzer.Options {
	a := c.Analysis
	return analyzer.Options{
		BatchSize:           a.BatchSize,
		SaturationThreshold: a.SaturationThreshold,
		MinMonthlySearch:    a.MinMonthlySearch,
		Limit:               a.Limit,
		TopK:                a.TopK,
		MaxSuggestions:      a.MaxSuggestions,
		DocumentWorkers:     a.DocumentWorkers,
	}
}

func (c *Config) connection(timeoutMs int) api.ConnectionConfig {
	cc := api.DefaultConnectionConfig().WithTimeout(ms(timeoutMs))
	cc.MaxRetries = c.Lookup.MaxRetries
	cc.RetryDelay = ms(c.Lookup.RetryDelayMs)
	if c.Lookup.MaxConnsPerHost > 0 {
		cc.MaxConnsPerHost = c.Lookup.MaxConnsPerHost
	}
	return cc
}

func (c *Config) VolumeClientConfig() api.VolumeClientConfig {
	return api.VolumeClientConfig{
		BaseURL:    c.Naver.Ad.BaseURL,
		CustomerID: c.Naver.Ad.CustomerID,
		AccessKey:  c.Naver.Ad.AccessKey,
		SecretKey:  c.Naver.Ad.SecretKey,
		Connection: c.connection(c.Lookup.VolumeTimeoutMs),
	}
}

func (c *Config) DocumentClientConfig() api.DocumentClientConfig {
	return api.DocumentClientConfig{
		BaseURL:      c.Naver.Search.BaseURL,
		ClientID:     c.Naver.Search.ClientID,
		ClientSecret: c.Naver.Search.ClientSecret,
		Connection:   c.connection(c.Lookup.DocumentTimeoutMs),
	}
}

func (c *Config) SuggestionClientConfig() api.SuggestionClientConfig {
	return api.SuggestionClientConfig{
		BaseURL:    c.Naver.Suggest.BaseURL,
		Connection: c.connection(c.Lookup.SuggestionTimeoutMs),
	}
}

func (c *Config) VolumeDelay() time.Duration     { return ms(c.Lookup.VolumeDelayMs) }
func (c *Config) DocumentDelay() time.Duration   { return ms(c.Lookup.DocumentDelayMs) }
func (c *Config) SuggestionDelay() time.Duration { return ms(c.Lookup.SuggestionDelayMs) }
func (c *Config) CacheTTL() time.Duration        { return ms(c.Storage.CacheTTLMs) }

// DBPath resolves the bbolt file inside the data directory
func (c *Config) DBPath() string {
	return c.resolve(c.Storage.DBFile)
}

// CSVPath resolves the history CSV inside the data directory
func (c *Config) CSVPath() string {
	return c.resolve(c.Storage.CSVFile)
}

func (c *Config) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Storage.DataDir, name)
}

// LoggerSettings converts the logger section
func (c *Config) LoggerSettings() logger.Config {
	return logger.Config{
		Level:      c.Logger.Level,
		Format:     c.Logger.Format,
		Output:     c.Logger.Output,
		TimeFormat: c.Logger.TimeFormat,
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
