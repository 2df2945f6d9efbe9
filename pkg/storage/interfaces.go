package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Load for missing keys.
var ErrNotFound = errors.New("key not found")

type StorageConfig struct {
	DataDir   string        `mapstructure:"data_dir" json:"data_dir"`
	DBFile    string        `mapstructure:"db_file" json:"db_file"`
	CSVFile   string        `mapstructure:"csv_file" json:"csv_file"`
	CacheSize int           `mapstructure:"cache_size" json:"cache_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl" json:"cache_ttl"`
}

// Storage is a JSON document store keyed by string.
type Storage interface {
	Save(ctx context.Context, key string, data interface{}) error
	Load(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// Keys returns the keys starting with prefix in ascending byte order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

type Cache interface {
	Set(key string, value interface{}) error
	Get(key string) (interface{}, bool)
	Delete(key string) error
	Clear() error
}
