package application

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplySchemas executes every embedded .sql file registered by the loaded
// modules, in registration order. Schema files are idempotent (CREATE IF
// NOT EXISTS) so reapplying on boot is safe.
func ApplySchemas(ctx context.Context, pool *pgxpool.Pool, fss []*embed.FS) error {
	for _, schemaFS := range fss {
		err := fs.WalkDir(schemaFS, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != ".sql" {
				return nil
			}
			content, err := schemaFS.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read schema %s: %w", path, err)
			}
			if _, err := pool.Exec(ctx, string(content)); err != nil {
				return fmt.Errorf("failed to apply schema %s: %w", path, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
