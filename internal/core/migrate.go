// AngelaMos | 2026
// migrate.go

package core

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies every embedded schema file in name order inside a single
// transaction. Statements are idempotent so reruns are harmless.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	return InTx(ctx, db, func(tx *sqlx.Tx) error {
		for _, name := range names {
			body, readErr := migrationFiles.ReadFile(name)
			if readErr != nil {
				return fmt.Errorf("read %s: %w", name, readErr)
			}

			if _, execErr := tx.ExecContext(ctx, string(body)); execErr != nil {
				return fmt.Errorf("apply %s: %w", name, execErr)
			}

			slog.Info("migration applied", "file", name)
		}
		return nil
	})
}
