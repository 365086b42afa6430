// Package migrations applies the embedded schema. The statements stick to
// the subset of SQL that SQLite and PostgreSQL share, so one set of files
// serves both drivers.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/database"
)

//go:embed sql/*.sql
var schemaFS embed.FS

// Files lists the up migrations in the order Run applies them.
func Files() ([]string, error) {
	entries, err := schemaFS.ReadDir("sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)
	return upFiles, nil
}

// Run executes every up migration in order. Each file is idempotent, so
// running it against an existing database is a no-op.
func Run(ctx context.Context, exec database.Executor) error {
	files, err := Files()
	if err != nil {
		return err
	}

	for _, file := range files {
		body, err := schemaFS.ReadFile("sql/" + file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		for _, stmt := range statements(string(body)) {
			if _, err := exec.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", file, err)
			}
		}
	}
	return nil
}

// statements splits a migration file on ';' and drops comment lines. The
// schema has no semicolons inside literals.
func statements(body string) []string {
	var out []string
	for _, part := range strings.Split(body, ";") {
		var lines []string
		for _, line := range strings.Split(part, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
