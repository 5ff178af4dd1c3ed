package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jshwi/borgini/internal/config"
	"github.com/jshwi/borgini/internal/highlight"
	"github.com/jshwi/borgini/internal/notice"
	"github.com/jshwi/borgini/internal/profile"
	"github.com/jshwi/borgini/internal/services/borg"
	"github.com/jshwi/borgini/internal/services/editor"
	"github.com/jshwi/borgini/internal/services/runner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// intent is the closed set of mutually exclusive top-level actions.
type intent int

const (
	intentRunBackup intent = iota
	intentRemoveProfiles
	intentListProfiles
	intentEditFile
	intentShowFile
	intentListArchives
)

// fileFlag returns the managed-file flag the user selected, if any.
// When several are set the first in flag order wins.
func fileFlag() (string, bool) {
	switch {
	case editConfig:
		return "config", true
	case editInclude:
		return "include", true
	case editExclude:
		return "exclude", true
	case editStyles:
		return "styles", true
	}
	return "", false
}

// resolveIntent maps the parsed flags onto a single intent. An editor
// argument without a file flag is a usage error.
func resolveIntent(editorArg string) (intent, error) {
	_, hasFile := fileFlag()
	switch {
	case len(removeProfiles) > 0:
		return intentRemoveProfiles, nil
	case listProfilesFlag:
		return intentListProfiles, nil
	case editorArg != "" && !hasFile:
		return 0, fmt.Errorf("EDITOR must be followed by a file to edit")
	case editorArg != "":
		return intentEditFile, nil
	case hasFile:
		return intentShowFile, nil
	case listArchivesFlag:
		return intentListArchives, nil
	}
	return intentRunBackup, nil
}

func dispatch(cmd *cobra.Command, args []string) error {
	editorArg := ""
	if len(args) > 0 {
		editorArg = args[0]
	}

	in, err := resolveIntent(editorArg)
	if err != nil {
		return usageError(cmd, err)
	}

	root, err := profile.ConfigRoot()
	if err != nil {
		log.Error().Err(err).Msg("cannot resolve configuration root")
		return err
	}
	store := profile.NewStore(root)

	// Profile housekeeping intents observe the filesystem without
	// initializing anything.
	switch in {
	case intentRemoveProfiles:
		return removeCmd(store)
	case intentListProfiles:
		return listCmd(store)
	}

	paths := store.Paths(selectProfile)
	firstRun, err := initialize(store, paths)
	if err != nil {
		log.Error().Err(err).Str("profile", selectProfile).Msg("cannot initialize profile")
		return err
	}
	if firstRun {
		notice.FirstRun(os.Stdout, selectProfile)
		return nil
	}

	printer := highlight.NewPrinter(os.Stdout, highlight.SelectStyle(paths.Styles))

	ctx, cancel := signalContext()
	defer cancel()

	switch in {
	case intentEditFile:
		return editCmd(ctx, cmd, printer, paths, editorArg)
	case intentShowFile:
		flag, _ := fileFlag()
		path, _ := paths.ForFlag(flag)
		if err := printer.PrintFile(path); err != nil {
			log.Error().Err(err).Str("file", path).Msg("cannot show file")
			return err
		}
		return nil
	case intentListArchives, intentRunBackup:
		return backupCmd(ctx, in, printer, paths)
	}
	return nil
}

// initialize makes sure the selected profile's directory and managed
// files exist, reporting whether this was the profile's first run.
// Files already present are never rewritten except for config.ini,
// which is repaired in place against the recognized keys.
func initialize(store *profile.Store, paths profile.Paths) (bool, error) {
	if err := store.Create(selectProfile); err != nil {
		if !errors.Is(err, profile.ErrAlreadyInitialized) {
			return false, err
		}
		// Populated profile: nothing to create, just repair drift.
		return false, config.Repair(paths.Config)
	}
	if _, err := profile.Initialize(paths); err != nil {
		return false, err
	}
	if _, err := os.Stat(paths.Config); os.IsNotExist(err) {
		if err := config.WriteDefault(paths.Config); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, config.Repair(paths.Config)
}

func removeCmd(store *profile.Store) error {
	if err := store.Remove(removeProfiles...); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			log.Warn().Err(err).Msg("nothing removed")
		} else {
			log.Error().Err(err).Msg("remove failed")
		}
		return err
	}
	notice.Removed(os.Stdout, removeProfiles)
	return nil
}

// listCmd prints each profile's DEFAULT summary in ini form, default
// profile first. Profiles whose config cannot be read are skipped.
func listCmd(store *profile.Store) error {
	names, err := store.List()
	if err != nil {
		log.Error().Err(err).Msg("cannot list profiles")
		return err
	}

	style := highlight.SelectStyle(store.Paths(selectProfile).Styles)
	printer := highlight.NewPrinter(os.Stdout, style)

	for _, name := range names {
		cfg, err := config.NewParser().LoadFile(store.Paths(name).Config)
		if err != nil {
			continue
		}
		out := fmt.Sprintf(
			"[%s]\nreponame = %s\nrepopath = %s\nssh = %t\nprune = %t\n",
			name,
			cfg.Default.RepoName, cfg.Default.RepoPath,
			cfg.Default.SSH, cfg.Default.Prune,
		)
		printer.Print(out, highlight.LexerINI)
	}
	return nil
}

func editCmd(
	ctx context.Context,
	cmd *cobra.Command,
	printer *highlight.Printer,
	paths profile.Paths,
	editorArg string,
) error {
	flag, _ := fileFlag()
	path, _ := paths.ForFlag(flag)

	svc := editor.New(log.Logger, printer, dry)
	if err := svc.Edit(ctx, editorArg, path); err != nil {
		if errors.Is(err, editor.ErrEditorNotFound) {
			fmt.Fprintf(os.Stderr, "EDITOR must be installed: `%s' cannot be found\n", editorArg)
			_ = cmd.Usage()
		} else {
			log.Error().Err(err).Str("editor", editorArg).Msg("editor invocation failed")
		}
		return err
	}
	return nil
}

func backupCmd(ctx context.Context, in intent, printer *highlight.Printer, paths profile.Paths) error {
	cfg, err := config.NewParser().LoadFile(paths.Config)
	if err != nil {
		log.Error().Err(err).Str("file", paths.Config).Msg("failed to load config")
		return err
	}

	svc := runner.New(log.Logger, os.Stdout, func(passphrase string) borg.Service {
		return borg.New(log.Logger, printer, passphrase, dry)
	})

	run := svc.Run
	if in == intentListArchives {
		run = svc.ListArchives
	}

	if err := run(ctx, selectProfile, paths, cfg); err != nil {
		if errors.Is(err, config.ErrNotConfigured) {
			notice.NotConfigured(os.Stderr, selectProfile)
		} else {
			log.Error().Err(err).Msg("backup failed")
		}
		return err
	}
	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM so the
// spawned borg or editor process is interrupted with the wrapper.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Warn().Str("signal", sig.String()).Msg("received signal, shutting down")
		cancel()
	}()

	return ctx, cancel
}
