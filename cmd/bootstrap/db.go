package bootstrap

import (
	"context"
	"log/slog"

	"shareit/internal/infra/db"
	"shareit/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// NewDB opens the pool and, with DB_AUTO_MIGRATE set, applies pending migrations before serving.
func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.DB.AutoMigrate {
				return nil
			}
			applied, err := db.Migrate(ctx, cfg.DB)
			if err != nil {
				return err
			}
			slog.Info("migrations applied on startup", "count", len(applied), "dir", cfg.DB.MigrationsDir)
			return nil
		},
		OnStop: func(_ context.Context) error {
			stat := pool.Stat()
			slog.Info("closing database pool",
				"acquired", stat.AcquiredConns(),
				"total", stat.TotalConns())
			cleanup()
			return nil
		},
	})

	return pool, nil
}
