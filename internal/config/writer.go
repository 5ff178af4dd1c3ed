// Package config provides reading, writing and in-place repair of the
// per-profile config.ini file.
package config

import (
	"fmt"
	"os"
	"os/user"
	"strconv"

	ini "gopkg.in/ini.v1"
)

// Placeholder written for values that have no usable default.
const placeholder = "None"

// DefaultTimestamp is the archive timestamp layout written on first
// run.
const DefaultTimestamp = "2006-01-02T15:04:05"

func init() {
	// configparser-style output: the DEFAULT section keeps its header.
	ini.DefaultHeader = true
}

type defaultKey struct {
	name  string
	value string
}

type defaultSection struct {
	name string
	keys []defaultKey
}

// defaultSections returns every recognized section and key with its
// default value. Anything not listed here is dropped on repair.
func defaultSections() []defaultSection {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	username := "root"
	if u, err := user.Current(); err == nil {
		username = u.Username
	}

	return []defaultSection{
		{ini.DefaultSection, []defaultKey{
			{"reponame", hostname},
			{"repopath", placeholder},
			{"timestamp", DefaultTimestamp},
			{"ssh", "true"},
			{"prune", "true"},
		}},
		{"SSH", []defaultKey{
			{"remoteuser", username},
			{"remotehost", hostname},
			{"port", strconv.Itoa(22)},
		}},
		{"BACKUP", []defaultKey{
			{"verbose", "true"},
			{"stats", "true"},
			{"list", "true"},
			{"show-rc", "true"},
			{"exclude-caches", "true"},
			{"filter", "AME"},
			{"compression", "lz4"},
		}},
		{"PRUNE", []defaultKey{
			{"verbose", "false"},
			{"stats", "true"},
			{"list", "true"},
			{"show-rc", "true"},
			{"keep-daily", "7"},
			{"keep-weekly", "4"},
			{"keep-monthly", "6"},
		}},
		{"ENVIRONMENT", []defaultKey{
			{"keyfile", placeholder},
		}},
	}
}

func defaultFile() (*ini.File, error) {
	file := ini.Empty()
	for _, section := range defaultSections() {
		sec, err := file.NewSection(section.name)
		if err != nil {
			return nil, fmt.Errorf("building defaults: %w", err)
		}
		for _, key := range section.keys {
			if _, err := sec.NewKey(key.name, key.value); err != nil {
				return nil, fmt.Errorf("building defaults: %w", err)
			}
		}
	}
	return file, nil
}

// WriteDefault writes a fresh config.ini populated with defaults.
func WriteDefault(path string) error {
	file, err := defaultFile()
	if err != nil {
		return err
	}
	return save(file, path)
}

// Repair reads config.ini, overlays every recognized key the user has
// set onto the defaults and writes the result back. Unknown sections
// and keys are dropped, missing ones are restored with their defaults,
// so a hand-edited file that has drifted never aborts the run. Keys
// new to this version are added on the next repair for free.
func Repair(path string) error {
	current, err := ini.LoadSources(ini.LoadOptions{
		Loose:                   true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		// A file too broken to parse at all starts over from defaults.
		current = ini.Empty()
	}

	merged, err := defaultFile()
	if err != nil {
		return err
	}

	for _, section := range defaultSections() {
		src := current.Section(section.name)
		dst := merged.Section(section.name)
		for _, key := range section.keys {
			if src.HasKey(key.name) {
				dst.Key(key.name).SetValue(src.Key(key.name).String())
			}
		}
	}

	return save(merged, path)
}

func save(file *ini.File, path string) error {
	if err := file.SaveTo(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	// The file may name a passphrase keyfile; keep it private.
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	return nil
}
