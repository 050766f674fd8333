package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var migrationFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir checks that every SQL file in dir follows the goose naming
// convention and carries both Up and Down sections. An empty or missing
// directory is not an error.
func ValidateDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	var problems []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}
		if !migrationFileRe.MatchString(name) {
			problems = append(problems, fmt.Sprintf("%s: name must match <14 digit version>_<snake_case>.sql", name))
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read migration %q: %w", name, err)
		}
		content := string(data)
		if !strings.Contains(content, "-- +goose Up") {
			problems = append(problems, fmt.Sprintf("%s: missing '-- +goose Up' section", name))
		}
		if !strings.Contains(content, "-- +goose Down") {
			problems = append(problems, fmt.Sprintf("%s: missing '-- +goose Down' section", name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid migrations in %q:\n  %s", dir, strings.Join(problems, "\n  "))
	}
	return nil
}
