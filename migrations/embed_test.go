package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

// TestMigrationsArePaired verifies every up migration has a down migration.
func TestMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(FS, "*.up.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(ups) == 0 {
		t.Fatal("no embedded migrations")
	}
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		if _, err := fs.Stat(FS, down); err != nil {
			t.Errorf("%s has no matching %s", up, down)
		}
	}
}
