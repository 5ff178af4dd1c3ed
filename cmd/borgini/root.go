package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "dev"

	// Managed file selection flags.
	editConfig  bool
	editInclude bool
	editExclude bool
	editStyles  bool

	// Top-level intent flags.
	listProfilesFlag bool
	listArchivesFlag bool
	removeProfiles   []string
	selectProfile    string
	dry              bool

	// Logging flags.
	verbose    bool
	quiet      bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "borgini [EDITOR]",
	Short: "A profile-based ini config manager for the borg backup program",
	Long: `borgini manages per-profile configuration for borgbackup:
  - initializes a profile's config.ini, include, exclude and styles files
  - shows or edits them with an editor of your choice
  - assembles and runs the borg create and prune command lines

Run without arguments to back up the selected profile. Pass an editor
name followed by a file flag to edit, or a file flag alone to view.

Action flags may be combined; the first of --remove, --list, a file
flag, then --archives takes effect.`,
	Args: maxOneArg,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	RunE:          dispatch,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetFlagErrorFunc(usageError)

	flags := rootCmd.Flags()
	flags.BoolVarP(&editConfig, "config", "c", false, "edit or view config")
	flags.BoolVarP(&editInclude, "include", "i", false, "edit or view list of files and directories to include")
	flags.BoolVarP(&editExclude, "exclude", "e", false, "edit or view list of files and directories to exclude")
	flags.BoolVarP(&editStyles, "styles", "s", false, "edit or view list of styles for syntax highlighting")
	flags.BoolVarP(&listProfilesFlag, "list", "l", false, "list existing profiles")
	flags.BoolVar(&listArchivesFlag, "archives", false, "list archives in the selected profile's repository")
	flags.StringVar(&selectProfile, "select", "default", "create or select an alternative settings profile")
	flags.StringArrayVar(&removeProfiles, "remove", nil, "remove profile or profiles")
	flags.BoolVarP(&dry, "dry", "d", false, "view the commandline arguments that would be run")

	persistent := rootCmd.PersistentFlags()
	persistent.BoolVarP(&verbose, "verbose", "v", false, "enable verbose (debug) output")
	persistent.BoolVarP(&quiet, "quiet", "q", false, "enable quiet mode (errors only)")
	persistent.BoolVar(&jsonOutput, "json", false, "output logs in JSON format")
}

func setupLogging() {
	if jsonOutput {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		output.FormatLevel = func(i interface{}) string {
			if s, ok := i.(string); ok {
				return strings.ToUpper(s)
			}
			return ""
		}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	switch {
	case quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// usageError echoes a command line mistake together with usage; the
// command itself stays silent on errors, so a bad invocation must be
// reported here before the error bubbles up.
func usageError(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err)
	_ = cmd.Usage()
	return err
}

// maxOneArg accepts at most the single optional EDITOR argument.
func maxOneArg(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return usageError(cmd, err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
