// Package contact serves contact forms over any transport.
//
// A Service keeps one contactform.Form per form id in a StateStore
// (MemoryStateStore or RedisStateStore). Input is sanitized before it reaches
// the form. Successful submissions are archived in a Repository
// (MemoryRepository, PostgresRepository or MongoRepository) and passed to a
// Notifier such as EmailNotifier.
//
//	svc := contact.NewService(
//		contact.NewRedisStateStore(rdb, "contactform:", 24*time.Hour),
//		contact.NewPostgresRepository(pool),
//		contact.WithNotifier(contact.NewEmailNotifier(mailer, "team@example.com")),
//		contact.WithLogger(log),
//	)
//
// PostgresRepository expects the goose migrations in Migrations to be applied,
// for example with pg.Migrate(ctx, pool, contact.Migrations, contact.MigrationsDir, cfg, log).
package contact
