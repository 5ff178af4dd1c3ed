// Package profile resolves the on-disk layout of named profiles and
// handles their first-run initialization.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Managed file basenames inside a profile directory.
const (
	FileConfig  = "config.ini"
	FileInclude = "include"
	FileExclude = "exclude"
	FileStyles  = "styles"
)

// DefaultProfile is the profile used when --select is not given.
const DefaultProfile = "default"

// ErrProfileNotFound is returned when a named profile has no directory
// under the configuration root.
var ErrProfileNotFound = errors.New("profile does not exist")

// ErrAlreadyInitialized is returned when initialization is requested
// for a profile that already carries a config.ini.
var ErrAlreadyInitialized = errors.New("profile already initialized")

// Paths holds the canonical locations of a profile's directory and its
// four managed files.
type Paths struct {
	Dir     string
	Config  string
	Include string
	Exclude string
	Styles  string
}

// ForFlag maps a managed-file flag name to its path. The second return
// is false for anything that is not a managed file.
func (p Paths) ForFlag(name string) (string, bool) {
	switch name {
	case "config":
		return p.Config, true
	case "include":
		return p.Include, true
	case "exclude":
		return p.Exclude, true
	case "styles":
		return p.Styles, true
	}
	return "", false
}

// Store resolves profiles beneath a single configuration root.
type Store struct {
	root string
}

// ConfigRoot returns the configuration root for the effective user:
// the system-wide xdg directory when running as root, otherwise a
// directory under the user's config dir.
func ConfigRoot() (string, error) {
	if os.Geteuid() == 0 {
		return filepath.Join("/etc", "xdg", "borgini"), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(base, "borgini"), nil
}

// NewStore creates a store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the configuration root directory.
func (s *Store) Root() string {
	return s.root
}

// Paths returns the canonical paths for the named profile. It performs
// no I/O.
func (s *Store) Paths(name string) Paths {
	dir := filepath.Join(s.root, name)
	return Paths{
		Dir:     dir,
		Config:  filepath.Join(dir, FileConfig),
		Include: filepath.Join(dir, FileInclude),
		Exclude: filepath.Join(dir, FileExclude),
		Styles:  filepath.Join(dir, FileStyles),
	}
}

// Exists reports whether the named profile has a directory.
func (s *Store) Exists(name string) bool {
	info, err := os.Stat(filepath.Join(s.root, name))
	return err == nil && info.IsDir()
}

// Initialized reports whether the named profile has been fully set up.
// The config file is the marker: include, exclude and styles are only
// ever written alongside it.
func (s *Store) Initialized(name string) bool {
	info, err := os.Stat(s.Paths(name).Config)
	return err == nil && info.Mode().IsRegular()
}

// EnsureDir creates the profile directory, including the configuration
// root, if it does not already exist.
func (s *Store) EnsureDir(name string) error {
	if err := os.MkdirAll(s.Paths(name).Dir, 0o700); err != nil {
		return fmt.Errorf("creating profile dir: %w", err)
	}
	return nil
}

// Create prepares the named profile's directory for initialization. A
// profile that is already fully populated returns
// ErrAlreadyInitialized; callers treat that as a no-op, not a failure.
func (s *Store) Create(name string) error {
	if s.Initialized(name) {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, name)
	}
	return s.EnsureDir(name)
}

// List enumerates profile names under the configuration root. Stray
// non-directory entries are skipped. The default profile, when present,
// sorts first; the rest are alphabetical.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config root: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Slice(names, func(i, j int) bool {
		if names[i] == DefaultProfile {
			return true
		}
		if names[j] == DefaultProfile {
			return false
		}
		return names[i] < names[j]
	})

	return names, nil
}

// Remove deletes the named profile's directory tree. Unknown profiles
// are an error and nothing is deleted, not even for the names that
// precede the unknown one in the same call.
func (s *Store) Remove(names ...string) error {
	for _, name := range names {
		if !s.Exists(name) {
			return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
		}
	}
	for _, name := range names {
		if err := os.RemoveAll(s.Paths(name).Dir); err != nil {
			return fmt.Errorf("removing profile %s: %w", name, err)
		}
	}
	return nil
}
