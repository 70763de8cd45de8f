package cache

import (
	"fmt"
	"io"

	"github.com/jaennil/guide_helper/backend/mapcore/pkg/config"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/logger"
)

// NewCache creates a cache instance based on the configured cache type. The
// returned closer releases backend connections and is never nil.
func NewCache(cfg config.Cache, redisCfg config.Redis, l logger.Logger) (TileCache, io.Closer, error) {
	l = logger.OrNop(l)

	var (
		c      TileCache
		closer io.Closer = nopCloser{}
	)

	switch cfg.Type {
	case "map":
		l.Info("using map cache")
		c = NewMapCache()
	case "memory":
		l.Info("using memory cache", "max_tiles", cfg.MemoryTiles)
		c = NewMemoryCache(cfg.MemoryTiles)
	case "file", "filesystem":
		l.Info("using file cache", "cache_dir", cfg.Dir)
		fc, err := NewFilesystemCache(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		c = fc
	case "sqlite":
		l.Info("using sqlite cache", "path", cfg.SQLitePath)
		sc, err := NewSQLiteCache(cfg.SQLitePath, l)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize sqlite cache: %w", err)
		}
		c, closer = sc, sc
	case "redis":
		l.Info("using redis cache", "addr", redisCfg.Addr, "ttl", redisCfg.TTL)
		rc, err := NewRedisCache(RedisConfig{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
			TTL:      redisCfg.TTL,
		})
		if err != nil {
			return nil, nil, err
		}
		c, closer = rc, rc
	case "disabled", "none":
		l.Info("cache disabled")
		c = NewNoopCache()
	default:
		return nil, nil, fmt.Errorf("%w: %s (supported: map, memory, file, sqlite, redis, disabled)", ErrUnknownType, cfg.Type)
	}

	c = Instrument(cfg.Type, c)
	return WithNamespace(c, cfg.Namespace), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
