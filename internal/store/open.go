package store

import (
	"lessonloop/internal/config"
)

// Open picks the backend from configuration: Redis when REDIS_ADDR is
// set, Postgres when DATABASE_URL is set, otherwise the local file.
func Open(cfg *config.Config) (Store, error) {
	switch {
	case cfg.RedisAddr != "":
		return NewRedisStore(cfg.RedisAddr)
	case cfg.DatabaseURL != "":
		return NewPostgresStore(cfg.DatabaseURL)
	default:
		return NewFileStore(cfg.StorePath)
	}
}
