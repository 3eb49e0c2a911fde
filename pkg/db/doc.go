// Package db connects to PostgreSQL through pgxpool and provides the pieces
// a rex application needs around it: goose migrations, transactions carried
// on the context, a readiness check and the presence checker behind the
// unique and exists validation rules.
//
// Configuration comes from the environment. DATABASE_CONN_URL wins when set;
// otherwise the URL is assembled from DB_HOST, DB_PORT, DB_DATABASE,
// DB_USERNAME, DB_PASSWORD and DB_SSLMODE.
//
//	var cfg db.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	if err := db.NewMigrator(pool, migrations, db.WithMigrationsDir("migrations")).Up(ctx); err != nil {
//	    return err
//	}
//
//	app := rex.New(
//	    rex.WithPresenceChecker(db.Presence(pool)),
//	    rex.WithHealthChecks(rex.WithReadinessCheck("postgres", db.Healthcheck(pool))),
//	)
//	app.Run(addr, rex.ShutdownHook(db.Shutdown(pool)))
//
// Repositories call [Conn] so they join a transaction started by [WithTx]:
//
//	err := db.WithTx(ctx, pool, func(ctx context.Context) error {
//	    _, err := db.Conn(ctx, pool).Exec(ctx, "UPDATE users SET is_active = false WHERE id = $1", id)
//	    return err
//	})
package db
