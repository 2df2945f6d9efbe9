package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"keyword-radar/pkg/logger"
)

const envPrefix = "KEYWORD_RADAR"

// credentialEnv binds the conventional credential variable names in
// addition to the prefixed ones.
var credentialEnv = map[string]string{
	"naver.ad.customer_id":       "NAVER_AD_CUSTOMER_ID",
	"naver.ad.access_key":        "NAVER_AD_CLIENT_ID",
	"naver.ad.secret_key":        "NAVER_AD_CLIENT_SECRET",
	"naver.search.client_id":     "NAVER_CLIENT_ID",
	"naver.search.client_secret": "NAVER_CLIENT_SECRET",
}

type manager struct {
	mu         sync.RWMutex
	config     *Config
	viper      *viper.Viper
	configPath string
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

// Load reads defaults, the optional file at configPath and the environment.
// An empty configPath skips the file.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.configPath = configPath
	if err := m.setupViper(configPath); err != nil {
		return nil, fmt.Errorf("failed to setup viper: %w", err)
	}

	if configPath != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	config, err := m.decode()
	if err != nil {
		return nil, err
	}

	m.config = config
	return config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return fmt.Errorf("config not loaded")
	}

	if m.configPath != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to reload config: %w", err)
		}
	}

	config, err := m.decode()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Watch reloads the file on change and passes every valid new config to
// onChange. Invalid edits are logged and the previous config stays active.
func (m *manager) Watch(onChange func(*Config)) error {
	m.mu.RLock()
	path := m.configPath
	m.mu.RUnlock()

	if path == "" {
		return errors.New("no config file to watch")
	}

	log := logger.GetLogger().WithField("component", "config")
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		if err := m.Reload(); err != nil {
			log.WithError(err).WithField("file", e.Name).Warn("Ignoring invalid config change")
			return
		}
		log.WithField("file", e.Name).Info("Config reloaded")
		if onChange != nil {
			onChange(m.GetConfig())
		}
	})
	m.viper.WatchConfig()
	return nil
}

func (m *manager) setupViper(configPath string) error {
	if configPath != "" {
		m.viper.SetConfigFile(configPath)
	}

	m.viper.SetEnvPrefix(envPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	for key, env := range credentialEnv {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := m.viper.BindEnv(key, prefixed, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	setDefaults(m.viper)
	return nil
}

func (m *manager) decode() (*Config, error) {
	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("storage.data_dir", "./data")
	v.SetDefault("storage.db_file", "history.db")
	v.SetDefault("storage.csv_file", "history.csv")
	v.SetDefault("storage.cache_size", 1000)
	v.SetDefault("storage.cache_ttl_ms", 3600000)

	v.SetDefault("naver.ad.base_url", "https://api.naver.com")
	v.SetDefault("naver.ad.customer_id", "")
	v.SetDefault("naver.ad.access_key", "")
	v.SetDefault("naver.ad.secret_key", "")
	v.SetDefault("naver.search.base_url", "https://openapi.naver.com")
	v.SetDefault("naver.search.client_id", "")
	v.SetDefault("naver.search.client_secret", "")
	v.SetDefault("naver.suggest.base_url", "https://mac.search.naver.com")

	v.SetDefault("lookup.volume_timeout_ms", 10000)
	v.SetDefault("lookup.document_timeout_ms", 5000)
	v.SetDefault("lookup.suggestion_timeout_ms", 5000)
	v.SetDefault("lookup.volume_delay_ms", 100)
	v.SetDefault("lookup.document_delay_ms", 50)
	v.SetDefault("lookup.suggestion_delay_ms", 50)
	v.SetDefault("lookup.max_retries", 1)
	v.SetDefault("lookup.retry_delay_ms", 500)
	v.SetDefault("lookup.max_conns_per_host", 16)

	v.SetDefault("analysis.batch_size", 5)
	v.SetDefault("analysis.saturation_threshold", 1.0)
	v.SetDefault("analysis.min_monthly_search", 0)
	v.SetDefault("analysis.limit", 0)
	v.SetDefault("analysis.top_k", 10)
	v.SetDefault("analysis.max_suggestions", 5)
	v.SetDefault("analysis.document_workers", 1)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.time_format", "")
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Storage.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}

	if config.Lookup.VolumeTimeoutMs <= 0 || config.Lookup.DocumentTimeoutMs <= 0 || config.Lookup.SuggestionTimeoutMs <= 0 {
		return fmt.Errorf("lookup timeouts must be positive")
	}

	if config.Lookup.VolumeDelayMs < 0 || config.Lookup.DocumentDelayMs < 0 || config.Lookup.SuggestionDelayMs < 0 {
		return fmt.Errorf("lookup delays cannot be negative")
	}

	if config.Lookup.MaxRetries < 0 {
		return fmt.Errorf("max_retries cannot be negative")
	}

	if err := config.AnalyzerOptions().Validate(); err != nil {
		return err
	}

	return nil
}
