package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jshwi/borgini/internal/models"
	"github.com/spf13/viper"
)

// ErrNotConfigured is returned when the repository path has never been
// set. It is a distinct condition so the caller can print an actionable
// message instead of a parse error.
var ErrNotConfigured = errors.New("path to repo not configured")

// Parser handles config.ini parsing.
type Parser struct {
	v *viper.Viper
}

// NewParser creates a new configuration parser with every recognized
// key defaulted, so a file missing keys still yields a complete
// Settings value.
func NewParser() *Parser {
	v := viper.New()
	v.SetConfigType("ini")
	for _, section := range defaultSections() {
		for _, key := range section.keys {
			v.SetDefault(section.name+"."+key.name, key.value)
		}
	}
	return &Parser{v: v}
}

// LoadFile loads settings from a config.ini path.
func (p *Parser) LoadFile(path string) (*models.Settings, error) {
	p.v.SetConfigFile(path)
	if err := p.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return p.parse(), nil
}

// LoadReader loads settings from a string (useful for testing).
func (p *Parser) LoadReader(content string) (*models.Settings, error) {
	if err := p.v.ReadConfig(strings.NewReader(content)); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return p.parse(), nil
}

func (p *Parser) parse() *models.Settings {
	cfg := &models.Settings{}

	cfg.Default = models.DefaultSettings{
		RepoName:  p.getString("DEFAULT.reponame"),
		RepoPath:  p.getString("DEFAULT.repopath"),
		Timestamp: p.getString("DEFAULT.timestamp"),
		SSH:       p.v.GetBool("DEFAULT.ssh"),
		Prune:     p.v.GetBool("DEFAULT.prune"),
	}
	if cfg.Default.Timestamp == "" {
		cfg.Default.Timestamp = DefaultTimestamp
	}

	cfg.SSH = models.SSHSettings{
		RemoteUser: p.getString("SSH.remoteuser"),
		RemoteHost: p.getString("SSH.remotehost"),
		Port:       p.v.GetInt("SSH.port"),
	}
	if cfg.SSH.Port == 0 {
		cfg.SSH.Port = 22
	}

	cfg.Backup = models.BackupSettings{
		Verbose:       p.v.GetBool("BACKUP.verbose"),
		Stats:         p.v.GetBool("BACKUP.stats"),
		List:          p.v.GetBool("BACKUP.list"),
		ShowRC:        p.v.GetBool("BACKUP.show-rc"),
		ExcludeCaches: p.v.GetBool("BACKUP.exclude-caches"),
		Filter:        p.getString("BACKUP.filter"),
		Compression:   p.getString("BACKUP.compression"),
	}

	cfg.Prune = models.PruneSettings{
		Verbose:     p.v.GetBool("PRUNE.verbose"),
		Stats:       p.v.GetBool("PRUNE.stats"),
		List:        p.v.GetBool("PRUNE.list"),
		ShowRC:      p.v.GetBool("PRUNE.show-rc"),
		KeepDaily:   p.v.GetInt("PRUNE.keep-daily"),
		KeepWeekly:  p.v.GetInt("PRUNE.keep-weekly"),
		KeepMonthly: p.v.GetInt("PRUNE.keep-monthly"),
	}

	cfg.Environment = models.EnvironmentSettings{
		Keyfile: p.getString("ENVIRONMENT.keyfile"),
	}

	return cfg
}

// getString reads a key, mapping the "None" placeholder to empty.
func (p *Parser) getString(key string) string {
	value := strings.TrimSpace(p.v.GetString(key))
	if value == placeholder {
		return ""
	}
	return value
}

// Validate checks that the settings are runnable for a backup.
func Validate(cfg *models.Settings) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}
	if !cfg.Default.Configured() {
		return ErrNotConfigured
	}
	return nil
}
