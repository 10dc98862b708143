package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend    string `toml:"backend" json:"backend"`
	Dir        string `toml:"dir" json:"dir,omitempty"`                 // file
	URL        string `toml:"url" json:"url,omitempty"`                 // redis, mongo
	Prefix     string `toml:"prefix" json:"prefix,omitempty"`           // redis
	Database   string `toml:"database" json:"database,omitempty"`       // mongo
	Collection string `toml:"collection" json:"collection,omitempty"`   // mongo
	MaxEntries int    `toml:"max_entries" json:"max_entries,omitempty"` // memory
}

// Open returns the cache described by cfg. An empty backend is "none".
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("%w: file cache needs a directory", ErrBackend)
		}
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMemory:
		return NewMemoryCache(cfg.MaxEntries), nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, cfg.URL, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		collection := cfg.Collection
		if collection == "" {
			collection = "artifacts"
		}
		c, err := NewMongoCache(ctx, cfg.URL, cfg.Database, collection)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q (must be one of: file, memory, redis, mongo, none)", ErrBackend, cfg.Backend)
	}
}
