package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.ini")
}

func TestWriteDefault(t *testing.T) {
	path := configPath(t)
	require.NoError(t, WriteDefault(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, want := range []string{
		"[DEFAULT]", "[SSH]", "[BACKUP]", "[PRUNE]", "[ENVIRONMENT]",
		"repopath", "None",
		"compression", "lz4",
		"keep-daily", "7",
		"keyfile",
	} {
		assert.Contains(t, string(content), want)
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRepair_PreservesUserValues(t *testing.T) {
	path := configPath(t)
	require.NoError(t, os.WriteFile(path, []byte(
		"[DEFAULT]\nrepopath = /backups\nssh = false\n",
	), 0o600))

	require.NoError(t, Repair(path))

	cfg, err := NewParser().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/backups", cfg.Default.RepoPath)
	assert.False(t, cfg.Default.SSH)
	// restored sections carry their defaults
	assert.Equal(t, 22, cfg.SSH.Port)
	assert.Equal(t, "lz4", cfg.Backup.Compression)
}

func TestRepair_DropsUnknownSectionsAndKeys(t *testing.T) {
	path := configPath(t)
	require.NoError(t, os.WriteFile(path, []byte(
		"[DEFAULT]\nbogus = value\n\n[NONSENSE]\nfoo = bar\n",
	), 0o600))

	require.NoError(t, Repair(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "bogus")
	assert.NotContains(t, string(content), "NONSENSE")
	assert.Contains(t, string(content), "[PRUNE]")
}

func TestRepair_MissingFileYieldsDefaults(t *testing.T) {
	path := configPath(t)
	require.NoError(t, Repair(path))

	cfg, err := NewParser().LoadFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.Default.Configured())
	assert.Equal(t, 7, cfg.Prune.KeepDaily)
}

func TestRepair_GarbageIsRepaired(t *testing.T) {
	path := configPath(t)
	require.NoError(t, os.WriteFile(path, []byte(
		"[DEFAULT]\nrepopath = /backups\n[SSH\nport 2222\n",
	), 0o600))

	// malformed structure is repaired, not fatal
	require.NoError(t, Repair(path))

	cfg, err := NewParser().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 22, cfg.SSH.Port)
	assert.Equal(t, "lz4", cfg.Backup.Compression)
}
