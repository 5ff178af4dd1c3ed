// Package notice prints user-facing guidance messages. These are part
// of the tool's interface, not diagnostics, so they bypass the logger.
package notice

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	warn    = color.New(color.FgYellow).SprintFunc()
	command = color.New(color.FgCyan).SprintFunc()
)

func editCommand(flag, profile string) string {
	return command(fmt.Sprintf(". borgini EDITOR --%s --select %s", flag, profile))
}

// FirstRun announces that a profile has just been initialized and names
// the commands to edit it before the next run.
func FirstRun(w io.Writer, profile string) {
	fmt.Fprintf(
		w,
		"%s: %s\n"+
			"Make all necessary changes to config before running this again\n"+
			"You can do this by running the command:\n\n%s\n\n"+
			"Default settings have been written to the `include' and `exclude' lists\n"+
			"These can be edited by running:\n\n%s\n%s\n",
		warn("First run detected for profile"), command(profile),
		editCommand("config", profile),
		editCommand("include", profile),
		editCommand("exclude", profile),
	)
}

// NotConfigured tells the user the repository path is missing and how
// to set it.
func NotConfigured(w io.Writer, profile string) {
	fmt.Fprintf(
		w,
		"%s\n"+
			"Make all necessary changes to config before running this again\n"+
			"You can do this by running the command:\n\n%s\n",
		warn("Path to repo not configured"),
		editCommand("config", profile),
	)
}

// MissingKeyfile warns that the configured keyfile is unusable and the
// backup will proceed without a passphrase.
func MissingKeyfile(w io.Writer, profile string) {
	fmt.Fprintf(
		w,
		"%s\n"+
			"attempting backup without keyfile\n\n"+
			"add a valid keyfile or \"None\" to the keyfile setting to stop "+
			"receiving this message\n"+
			"You can do this by running the command:\n\n%s\n",
		warn("BORG_PASSPHRASE keyfile cannot be found"),
		editCommand("config", profile),
	)
}

// LooseKeyfile warns that the keyfile is readable by users other than
// its owner.
func LooseKeyfile(w io.Writer, path string) {
	fmt.Fprintf(w, "%s: %s\n", warn("keyfile permissions are too open"), path)
}

// Removed reports the profiles deleted by --remove.
func Removed(w io.Writer, profiles []string) {
	plural := ""
	if len(profiles) > 1 {
		plural = "s"
	}
	var list strings.Builder
	for _, profile := range profiles {
		fmt.Fprintf(&list, "\n. %s", profile)
	}
	fmt.Fprintf(w, "removed profile%s:%s\n", plural, list.String())
}
