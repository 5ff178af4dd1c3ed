// Package runner orchestrates a backup run for a profile.
package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/jshwi/borgini/internal/config"
	"github.com/jshwi/borgini/internal/models"
	"github.com/jshwi/borgini/internal/notice"
	"github.com/jshwi/borgini/internal/profile"
	"github.com/jshwi/borgini/internal/services/borg"
	"github.com/rs/zerolog"
)

// Service defines the interface for the backup runner.
type Service interface {
	Run(ctx context.Context, name string, paths profile.Paths, cfg *models.Settings) error
	ListArchives(ctx context.Context, name string, paths profile.Paths, cfg *models.Settings) error
}

// Impl implements the runner Service interface.
type Impl struct {
	logger  zerolog.Logger
	out     io.Writer
	newBorg func(passphrase string) borg.Service
}

// New creates a runner that invokes the real borg service. Notices are
// written to out.
func New(logger zerolog.Logger, out io.Writer, newBorg func(passphrase string) borg.Service) *Impl {
	return &Impl{logger: logger, out: out, newBorg: newBorg}
}

// Run executes a backup for the profile: validate the settings, read
// the include and exclude lists and the optional keyfile, then borg
// create followed by borg prune when pruning is enabled. Nothing is
// executed for an unconfigured repository.
func (s *Impl) Run(ctx context.Context, name string, paths profile.Paths, cfg *models.Settings) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}

	include, err := profile.ReadList(paths.Include)
	if err != nil {
		return err
	}
	exclude, err := profile.ReadList(paths.Exclude)
	if err != nil {
		return err
	}

	svc := s.newBorg(s.passphrase(name, cfg))

	s.logger.Info().
		Str("profile", name).
		Str("repository", borg.Repository(cfg)).
		Msg("starting backup run")

	if err := svc.Create(ctx, cfg, include, exclude); err != nil {
		return fmt.Errorf("create failed: %w", err)
	}

	if cfg.Default.Prune {
		if err := svc.Prune(ctx, cfg); err != nil {
			return fmt.Errorf("prune failed: %w", err)
		}
	}

	s.logger.Info().Str("profile", name).Msg("backup run completed")
	return nil
}

// ListArchives runs borg list over the profile's repository.
func (s *Impl) ListArchives(ctx context.Context, name string, paths profile.Paths, cfg *models.Settings) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	svc := s.newBorg(s.passphrase(name, cfg))
	return svc.List(ctx, cfg)
}

// passphrase resolves the keyfile secret, warning and continuing with
// an empty passphrase when the keyfile is missing or unreadable.
func (s *Impl) passphrase(name string, cfg *models.Settings) string {
	if !cfg.Environment.HasKeyfile() {
		return ""
	}

	path := cfg.Environment.Keyfile
	pass, err := config.ReadKeyfile(path)
	if err != nil {
		s.logger.Warn().Err(err).Str("keyfile", path).Msg("keyfile unusable")
		notice.MissingKeyfile(s.out, name)
		return ""
	}
	if config.LoosePermissions(path) {
		notice.LooseKeyfile(s.out, path)
	}
	if config.MultiLine(path) {
		s.logger.Debug().Str("keyfile", path).Msg("keyfile has more than one line, using only the first")
	}
	return pass
}
