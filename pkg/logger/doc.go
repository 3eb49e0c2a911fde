// Package logger builds the slog loggers used across rex.
//
// [New] returns a JSON or text logger at the configured level. Context
// extractors add request-scoped attributes to every record logged with a
// context, which is how request IDs reach the logs:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "user created", slog.String("user_id", id))
//
// [NewWithSentry] also forwards warnings and errors to Sentry when a DSN is
// configured, and falls back to [New] otherwise. [NewNope] discards
// everything and is the default for an App without a logger.
package logger
