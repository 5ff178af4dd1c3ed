package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_LoadReader_Defaults(t *testing.T) {
	cfg, err := NewParser().LoadReader("")

	require.NoError(t, err)
	hostname, _ := os.Hostname()
	assert.Equal(t, hostname, cfg.Default.RepoName)
	assert.Empty(t, cfg.Default.RepoPath)
	assert.False(t, cfg.Default.Configured())
	assert.Equal(t, DefaultTimestamp, cfg.Default.Timestamp)
	assert.True(t, cfg.Default.SSH)
	assert.True(t, cfg.Default.Prune)
	assert.Equal(t, 22, cfg.SSH.Port)
	assert.Equal(t, "AME", cfg.Backup.Filter)
	assert.Equal(t, "lz4", cfg.Backup.Compression)
	assert.True(t, cfg.Backup.ExcludeCaches)
	assert.False(t, cfg.Prune.Verbose)
	assert.Equal(t, 7, cfg.Prune.KeepDaily)
	assert.Equal(t, 4, cfg.Prune.KeepWeekly)
	assert.Equal(t, 6, cfg.Prune.KeepMonthly)
	assert.False(t, cfg.Environment.HasKeyfile())
}

func TestParser_LoadReader_FullConfig(t *testing.T) {
	content := `[DEFAULT]
reponame = myhost
repopath = /backups
timestamp = 2006-01-02
ssh = false
prune = false

[SSH]
remoteuser = backup
remotehost = nas.local
port = 2222

[BACKUP]
verbose = false
stats = true
list = false
show-rc = false
exclude-caches = false
filter = AM
compression = zstd

[PRUNE]
verbose = true
keep-daily = 14
keep-weekly = 8
keep-monthly = 12

[ENVIRONMENT]
keyfile = /root/.keyfile
`
	cfg, err := NewParser().LoadReader(content)

	require.NoError(t, err)
	assert.Equal(t, "myhost", cfg.Default.RepoName)
	assert.Equal(t, "/backups", cfg.Default.RepoPath)
	assert.True(t, cfg.Default.Configured())
	assert.Equal(t, "2006-01-02", cfg.Default.Timestamp)
	assert.False(t, cfg.Default.SSH)
	assert.False(t, cfg.Default.Prune)
	assert.Equal(t, "backup", cfg.SSH.RemoteUser)
	assert.Equal(t, "nas.local", cfg.SSH.RemoteHost)
	assert.Equal(t, 2222, cfg.SSH.Port)
	assert.False(t, cfg.Backup.Verbose)
	assert.Equal(t, "AM", cfg.Backup.Filter)
	assert.Equal(t, "zstd", cfg.Backup.Compression)
	assert.True(t, cfg.Prune.Verbose)
	assert.Equal(t, 14, cfg.Prune.KeepDaily)
	assert.Equal(t, 8, cfg.Prune.KeepWeekly)
	assert.Equal(t, 12, cfg.Prune.KeepMonthly)
	assert.True(t, cfg.Environment.HasKeyfile())
	assert.Equal(t, "/root/.keyfile", cfg.Environment.Keyfile)
}

func TestParser_LoadReader_NonePlaceholderIsUnset(t *testing.T) {
	content := "[DEFAULT]\nrepopath = None\n\n[ENVIRONMENT]\nkeyfile = None\n"
	cfg, err := NewParser().LoadReader(content)

	require.NoError(t, err)
	assert.False(t, cfg.Default.Configured())
	assert.False(t, cfg.Environment.HasKeyfile())
}

func TestParser_LoadReader_MissingSectionsFallBack(t *testing.T) {
	content := "[DEFAULT]\nrepopath = /backups\n"
	cfg, err := NewParser().LoadReader(content)

	require.NoError(t, err)
	assert.Equal(t, 22, cfg.SSH.Port)
	assert.Equal(t, "lz4", cfg.Backup.Compression)
	assert.Equal(t, 7, cfg.Prune.KeepDaily)
}

func TestParser_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, WriteDefault(path))

	cfg, err := NewParser().LoadFile(path)

	require.NoError(t, err)
	assert.True(t, cfg.Default.SSH)
	assert.ErrorIs(t, Validate(cfg), ErrNotConfigured)
}

func TestValidate(t *testing.T) {
	cfg, err := NewParser().LoadReader("[DEFAULT]\nrepopath = /backups\n")
	require.NoError(t, err)
	assert.NoError(t, Validate(cfg))

	assert.Error(t, Validate(nil))
}
