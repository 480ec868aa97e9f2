//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/jackc/pgx/v5/pgxpool"

	pgrepo "github.com/Gunvolt24/logistics/internal/repo/postgres"
)

// MigrationsDir — <repo_root>/migrations, вычисляется от расположения этого файла,
// поэтому не зависит от рабочего каталога go test.
func MigrationsDir() (string, error) {
	_, thisFile, _, _ := runtime.Caller(0)
	dir := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "migrations"))
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return "", fmt.Errorf("migrations dir not found: %q (рассчитан от %s)", dir, thisFile)
	}
	return dir, nil
}

// ApplyMigrations — те же миграции и тот же путь применения, что при POSTGRES_AUTO_MIGRATE=true.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	dir, err := MigrationsDir()
	if err != nil {
		return err
	}
	_, err = pgrepo.Migrate(ctx, pool, dir)
	return err
}
