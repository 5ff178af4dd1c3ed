package borg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/jshwi/borgini/internal/highlight"
	"github.com/jshwi/borgini/internal/models"
	"github.com/rs/zerolog"
)

// Service defines the interface for borg invocations.
type Service interface {
	Create(ctx context.Context, cfg *models.Settings, include, exclude []string) error
	Prune(ctx context.Context, cfg *models.Settings) error
	List(ctx context.Context, cfg *models.Settings) error
}

// CommandExecutor allows mocking exec.Command in tests.
type CommandExecutor interface {
	Run(ctx context.Context, env []string, name string, args ...string) error
}

// DefaultExecutor runs commands attached to the caller's terminal so
// borg's progress output reaches the user directly.
type DefaultExecutor struct{}

// Run executes a command with additional environment variables.
func (e *DefaultExecutor) Run(ctx context.Context, env []string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Impl implements the Service interface.
type Impl struct {
	executor   CommandExecutor
	logger     zerolog.Logger
	printer    *highlight.Printer
	bin        string
	passphrase string
	dry        bool
}

// New creates a borg service. When the borg binary cannot be found dry
// mode is forced so the assembled command can still be inspected. The
// passphrase, when non-empty, reaches borg as BORG_PASSPHRASE in the
// child environment only.
func New(logger zerolog.Logger, printer *highlight.Printer, passphrase string, dry bool) *Impl {
	bin, err := exec.LookPath("borg")
	if err != nil {
		bin = "borg"
		if !dry {
			logger.Warn().Msg("borg binary not found, forcing dry mode")
			dry = true
		}
	}
	return &Impl{
		executor:   &DefaultExecutor{},
		logger:     logger,
		printer:    printer,
		bin:        bin,
		passphrase: passphrase,
		dry:        dry,
	}
}

// NewWithExecutor creates a borg service with a custom executor (for
// testing).
func NewWithExecutor(
	logger zerolog.Logger,
	printer *highlight.Printer,
	executor CommandExecutor,
	passphrase string,
	dry bool,
) *Impl {
	return &Impl{
		executor:   executor,
		logger:     logger,
		printer:    printer,
		bin:        "borg",
		passphrase: passphrase,
		dry:        dry,
	}
}

func (s *Impl) env() []string {
	if s.passphrase == "" {
		return nil
	}
	return []string{fmt.Sprintf("BORG_PASSPHRASE=%s", s.passphrase)}
}

func (s *Impl) run(ctx context.Context, args []string) error {
	if s.dry {
		s.printer.Print(s.bin+" "+strings.Join(args, " "), highlight.LexerBash)
		return nil
	}
	if err := s.executor.Run(ctx, s.env(), s.bin, args...); err != nil {
		return fmt.Errorf("borg %s failed: %w", args[0], err)
	}
	return nil
}

// Create runs borg create for the given settings and path lists.
func (s *Impl) Create(ctx context.Context, cfg *models.Settings, include, exclude []string) error {
	s.logger.Info().
		Str("repository", Repository(cfg)).
		Int("include", len(include)).
		Int("exclude", len(exclude)).
		Msg("creating archive")
	return s.run(ctx, BuildCreate(cfg, include, exclude, time.Now()))
}

// Prune runs borg prune with the configured retention counts.
func (s *Impl) Prune(ctx context.Context, cfg *models.Settings) error {
	s.logger.Info().
		Int("keep_daily", cfg.Prune.KeepDaily).
		Int("keep_weekly", cfg.Prune.KeepWeekly).
		Int("keep_monthly", cfg.Prune.KeepMonthly).
		Msg("pruning archives")
	return s.run(ctx, BuildPrune(cfg))
}

// List runs borg list over the repository.
func (s *Impl) List(ctx context.Context, cfg *models.Settings) error {
	s.logger.Debug().Str("repository", Repository(cfg)).Msg("listing archives")
	return s.run(ctx, BuildList(cfg))
}
