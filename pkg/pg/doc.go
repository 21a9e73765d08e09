// Package pg opens pgx connection pools and runs goose migrations.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	if err := pg.Migrate(ctx, pool, migrations, "migrations", cfg, log); err != nil {
//		return err
//	}
//
// Migrations run through database/sql via stdlib.OpenDBFromPool, sharing the
// pool's connections. Goose output is logged through slog.
package pg
