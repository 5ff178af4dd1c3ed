// Package editor invokes an external text editor on a managed file.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/jshwi/borgini/internal/highlight"
	"github.com/rs/zerolog"
)

// ErrEditorNotFound is returned when the named editor is not on PATH.
var ErrEditorNotFound = errors.New("editor cannot be found")

// Service defines the interface for editor invocations.
type Service interface {
	Edit(ctx context.Context, editor, path string) error
}

// Impl implements the Service interface.
type Impl struct {
	logger  zerolog.Logger
	printer *highlight.Printer
	dry     bool
	lookup  func(string) (string, error)
	run     func(ctx context.Context, name string, args ...string) error
}

// New creates an editor service.
func New(logger zerolog.Logger, printer *highlight.Printer, dry bool) *Impl {
	return &Impl{
		logger:  logger,
		printer: printer,
		dry:     dry,
		lookup:  exec.LookPath,
		run:     runAttached,
	}
}

func runAttached(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Edit opens path in the named editor, blocking until it exits. In dry
// mode the command line is printed instead.
func (s *Impl) Edit(ctx context.Context, editor, path string) error {
	bin, err := s.lookup(editor)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrEditorNotFound, editor)
	}

	if s.dry {
		s.printer.Print(bin+" "+path, highlight.LexerBash)
		return nil
	}

	s.logger.Debug().Str("editor", bin).Str("file", path).Msg("opening editor")
	if err := s.run(ctx, bin, path); err != nil {
		return fmt.Errorf("editor %s failed: %w", editor, err)
	}
	return nil
}
