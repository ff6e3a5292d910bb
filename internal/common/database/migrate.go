// internal/common/database/migrate.go
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ApplyMigrations executes every *.sql file in dir in lexical order. Each file
// must be idempotent; applied versions are not tracked.
func (c *PostgresClient) ApplyMigrations(ctx context.Context, dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("list migrations in %s: %w", dir, err)
	}
	sort.Strings(files)

	applied := make([]string, 0, len(files))
	for _, f := range files {
		body, err := os.ReadFile(f)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", f, err)
		}
		if _, err := c.DB.ExecContext(ctx, string(body)); err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", filepath.Base(f), err)
		}
		applied = append(applied, filepath.Base(f))
	}
	return applied, nil
}
