package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/jask/drogafarm/internal/config"
	"github.com/jask/drogafarm/internal/database"
	"github.com/jask/drogafarm/internal/database/repository"
	"github.com/jask/drogafarm/internal/store"
	"github.com/jask/drogafarm/internal/store/redisstore"
)

// openBackend returns the KV selected by store.backend and a func that
// releases it.
func openBackend(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (store.KV, func(), error) {
	log = log.WithField("backend", cfg.Store.Backend)
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("mkdir db dir: %w", err)
		}
		if err := database.RunMigrations(cfg.Database.Path); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}
		log.WithField("path", cfg.Database.Path).Debug("session store ready")
		return repository.NewKVRepo(db), func() { _ = db.Close() }, nil

	case config.BackendRedis:
		rs := redisstore.New(redisstore.Options{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
			TTL:       cfg.Redis.TTL,
		})
		// an unreachable server only degrades persistence to warnings
		if err := rs.Ping(ctx); err != nil {
			log.WithError(err).Warn("redis unreachable")
		}
		return rs, func() { _ = rs.Close() }, nil

	case config.BackendFile:
		path := cfg.File.Path
		if path == "" {
			p, err := store.DefaultFilePath()
			if err != nil {
				return nil, nil, err
			}
			path = p
		}
		log.WithField("path", path).Debug("session store ready")
		return store.NewFile(path), func() {}, nil

	case config.BackendMemory:
		mem := store.NewMemory()
		return mem, func() { _ = mem.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
