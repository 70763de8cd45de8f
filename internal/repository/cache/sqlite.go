package cache

import (
	"context"
	"database/sql"
	"embed"
	"errors"

	"github.com/jaennil/guide_helper/backend/mapcore/pkg/logger"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

type SQLiteCache struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSQLiteCache(path string, l logger.Logger) (*SQLiteCache, error) {
	l = logger.OrNop(l)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, err
	}

	c := &SQLiteCache{
		db:     db,
		logger: l,
	}

	err = c.runMigrations()
	if err != nil {
		db.Close()
		return nil, err
	}

	l.Info("sqlite cache initialized", "path", path)

	return c, nil
}

func (c *SQLiteCache) runMigrations() error {
	goose.SetBaseFS(migrations)

	err := goose.SetDialect("sqlite3")
	if err != nil {
		return err
	}

	err = goose.Up(c.db, "migrations")
	if err != nil {
		return err
	}

	return nil
}

var _ TileCache = (*SQLiteCache)(nil)

func (c *SQLiteCache) Get(ctx context.Context, k string) (TileCacheValue, bool, error) {
	c.logger.Debug("sqlite cache get", "key", k)

	query := `SELECT tile_data
	FROM tile_cache
	WHERE cache_key = ?`

	var tileData []byte
	err := c.db.QueryRowContext(ctx, query, k).Scan(&tileData)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		c.logger.Error("sqlite cache get failed", "key", k, "error", err)
		return nil, false, err
	}

	return tileData, true, nil
}

func (c *SQLiteCache) Set(ctx context.Context, k string, v TileCacheValue) error {
	c.logger.Debug("sqlite cache set", "key", k, "size", len(v))

	query := `INSERT INTO tile_cache (cache_key, tile_data)
	VALUES (?, ?)
	ON CONFLICT(cache_key) DO UPDATE SET tile_data = excluded.tile_data, created_at = CURRENT_TIMESTAMP`

	_, err := c.db.ExecContext(ctx, query, k, []byte(v))
	if err != nil {
		c.logger.Error("sqlite cache set failed", "key", k, "error", err)
		return err
	}

	return nil
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
