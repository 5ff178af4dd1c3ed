package profile

import (
	"fmt"
	"os"
)

var includeTemplate = []string{
	"# --- include ---",
	"# This is an auto-generated list which should suit most users",
	"# Remove any entries you do not want to include and add any that you do",
	"#",
	"# . ensure you always use the absolute path for directories and files",
	"# . line and inline comments with `#' are supported",
	"#",
	"/home",
	"/root",
	"/var",
	"/usr/local",
	"/srv",
}

var excludeTemplate = []string{
	"# --- exclude ---",
	"# This is an auto-generated list which should suit most users",
	"# Remove any entries you do not want to exclude and add any that you do",
	"#",
	"# . ensure you always use the absolute path for directories and files",
	"# . line and inline comments with `#' are supported",
	"#",
	"/home/*/.cache/*",
	"/var/cache/*",
	"/var/tmp/*",
	"/var/run",
}

var stylesTemplate = []string{
	"# --- styles ---",
	"# Uncomment a single line to select the style for syntax highlighting",
	"#",
	`# STYLE="default"`,
	`# STYLE="emacs"`,
	`# STYLE="friendly"`,
	`# STYLE="colorful"`,
	`# STYLE="autumn"`,
	`# STYLE="murphy"`,
	`# STYLE="manni"`,
	`STYLE="monokai"`,
	`# STYLE="perldoc"`,
	`# STYLE="pastie"`,
	`# STYLE="borland"`,
	`# STYLE="trac"`,
	`# STYLE="native"`,
	`# STYLE="fruity"`,
	`# STYLE="bw"`,
	`# STYLE="vim"`,
	`# STYLE="vs"`,
	`# STYLE="tango"`,
	`# STYLE="rrt"`,
	`# STYLE="xcode"`,
	`# STYLE="igor"`,
	`# STYLE="paraiso-light"`,
	`# STYLE="paraiso-dark"`,
	`# STYLE="lovelace"`,
	`# STYLE="algol"`,
	`# STYLE="algol_nu"`,
	`# STYLE="arduino"`,
	`# STYLE="rainbow_dash"`,
	`# STYLE="abap"`,
	`# STYLE="solarized-dark"`,
	`# STYLE="solarized-light"`,
	`# STYLE="dracula"`,
	`# STYLE="github"`,
	`# STYLE="monokailight"`,
}

// Initialize writes the default include, exclude and styles files for
// the profile at paths. Files that already exist are left untouched so
// re-running never clobbers user edits. It returns the basenames of the
// files it created. The config file itself is written by the config
// package, which owns its defaults.
func Initialize(paths Paths) ([]string, error) {
	templates := []struct {
		path  string
		name  string
		lines []string
	}{
		{paths.Include, FileInclude, includeTemplate},
		{paths.Exclude, FileExclude, excludeTemplate},
		{paths.Styles, FileStyles, stylesTemplate},
	}

	var created []string
	for _, tmpl := range templates {
		if _, err := os.Stat(tmpl.path); err == nil {
			continue
		}
		if err := writeLines(tmpl.path, tmpl.lines); err != nil {
			return created, err
		}
		created = append(created, tmpl.name)
	}
	return created, nil
}

func writeLines(path string, lines []string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
