// Package models contains the data structures used throughout borgini.
package models

// Settings holds the complete parsed configuration for a profile.
type Settings struct {
	Default     DefaultSettings
	SSH         SSHSettings
	Backup      BackupSettings
	Prune       PruneSettings
	Environment EnvironmentSettings
}

// DefaultSettings holds the DEFAULT section of config.ini.
type DefaultSettings struct {
	RepoName  string // archive prefix and repository directory name
	RepoPath  string // parent directory of the repository, local or remote
	Timestamp string // Go time layout appended to archive names
	SSH       bool
	Prune     bool
}

// Configured reports whether a repository path has been set. The
// initializer writes the placeholder "None" so a hand-cleared value and
// a never-edited one are treated the same.
func (d DefaultSettings) Configured() bool {
	return d.RepoPath != "" && d.RepoPath != "None"
}

// SSHSettings holds the SSH section of config.ini. Only consulted when
// DEFAULT.ssh is true.
type SSHSettings struct {
	RemoteUser string
	RemoteHost string
	Port       int
}

// BackupSettings holds the BACKUP section: switches and key-values
// passed to borg create.
type BackupSettings struct {
	Verbose       bool
	Stats         bool
	List          bool
	ShowRC        bool
	ExcludeCaches bool
	Filter        string
	Compression   string
}

// PruneSettings holds the PRUNE section: switches and the retention
// counts passed to borg prune.
type PruneSettings struct {
	Verbose     bool
	Stats       bool
	List        bool
	ShowRC      bool
	KeepDaily   int
	KeepWeekly  int
	KeepMonthly int
}

// EnvironmentSettings holds the ENVIRONMENT section.
type EnvironmentSettings struct {
	Keyfile string // path to a single-line BORG_PASSPHRASE keyfile
}

// HasKeyfile reports whether a keyfile path has been configured.
func (e EnvironmentSettings) HasKeyfile() bool {
	return e.Keyfile != "" && e.Keyfile != "None"
}
