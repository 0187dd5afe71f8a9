package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/college-directory/internal/db"
)

// executeCommand runs the root command in-process with fresh flag values and
// returns everything written to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// newTestDatabase creates a SQLite college table seeded with records and
// returns its path for --database-url.
func newTestDatabase(t *testing.T, records ...map[string]any) string {
	t.Helper()
	t.Setenv("COLLEGE_CONFIG", "")
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "colleges.db")
	store, err := db.OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	schema, err := os.ReadFile(filepath.Join("..", "..", "internal", "db", "testdata", "college_sqlite.sql"))
	require.NoError(t, err)
	require.NoError(t, store.Exec(ctx, string(schema)))

	for _, record := range records {
		_, err := store.CreateCollege(ctx, record)
		require.NoError(t, err)
	}
	return path
}
