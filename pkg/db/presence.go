package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/rex/pkg/validator"
)

// Presence returns the checker behind the unique and exists rules.
// Table may be schema-qualified ("auth.users"). Identifiers are quoted,
// the value is always a bind parameter.
func Presence(pool *pgxpool.Pool) validator.PresenceChecker {
	return validator.PresenceFunc(func(ctx context.Context, table, column string, value any) (bool, error) {
		query, err := existsQuery(table, column)
		if err != nil {
			return false, err
		}
		var found bool
		if err := Conn(ctx, pool).QueryRow(ctx, query, value).Scan(&found); err != nil {
			return false, fmt.Errorf("db: presence check %s.%s: %w", table, column, err)
		}
		return found, nil
	})
}

func existsQuery(table, column string) (string, error) {
	tableIdent := pgx.Identifier(strings.Split(table, "."))
	for _, part := range tableIdent {
		if strings.TrimSpace(part) == "" || strings.TrimSpace(column) == "" {
			return "", fmt.Errorf("%w: %q.%q", ErrInvalidIdentifier, table, column)
		}
	}
	return fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		tableIdent.Sanitize(),
		pgx.Identifier{column}.Sanitize(),
	), nil
}
