package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-streamline/aiworkflow/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, environment string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`app:
  environment: %s
database:
  driver: sqlite
  dsn: %s
log:
  level: ERROR
`, environment, filepath.Join(dir, "app.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(args ...string) (string, error) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateAndDropTables(t *testing.T) {
	path := writeConfig(t, config.EnvDevelopment)

	out, err := run("--config", path, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrated 4 tables")

	_, err = run("--config", path, "drop-tables")
	assert.Error(t, err)

	out, err = run("--config", path, "drop-tables", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "dropped 4 tables")
}

func TestDropTables_RefusedInProduction(t *testing.T) {
	path := writeConfig(t, config.EnvProduction)

	_, err := run("--config", path, "drop-tables", "--yes")
	assert.ErrorContains(t, err, "production")
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: oracle\n"), 0o644))

	_, err := run("--config", path, "migrate")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewHandlerWiresStores(t *testing.T) {
	env, err := setup(&rootOptions{configFile: writeConfig(t, config.EnvDevelopment)})
	require.NoError(t, err)
	defer env.close()

	h, err := newHandler(env)
	require.NoError(t, err)
	assert.NotNil(t, h)
}
