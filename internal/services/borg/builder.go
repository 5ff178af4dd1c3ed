// Package borg builds argument lists for the borg backup program and
// invokes it.
package borg

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/jshwi/borgini/internal/models"
)

// sshPrefix matches a repository path already carrying an ssh scheme,
// up to but not including the path on the remote.
var sshPrefix = regexp.MustCompile(`^ssh://[^/]*`)

// RepositoryPath returns the repository parent directory as borg should
// address it. With ssh enabled the configured remote user, host and
// port are prefixed; with ssh disabled any stale ssh prefix left in the
// configured path is stripped rather than duplicated, so toggling ssh
// off restores the bare path.
func RepositoryPath(cfg *models.Settings) string {
	path := sshPrefix.ReplaceAllString(cfg.Default.RepoPath, "")
	if !cfg.Default.SSH {
		return path
	}
	return fmt.Sprintf(
		"ssh://%s@%s:%d%s",
		cfg.SSH.RemoteUser, cfg.SSH.RemoteHost, cfg.SSH.Port, path,
	)
}

// Repository returns the full repository location: the repository path
// with the repository name appended.
func Repository(cfg *models.Settings) string {
	return RepositoryPath(cfg) + "/" + cfg.Default.RepoName
}

// Archive returns the borg archive spec REPO::NAME-TIMESTAMP for a
// backup taken at now.
func Archive(cfg *models.Settings, now time.Time) string {
	return fmt.Sprintf(
		"%s::%s-%s",
		Repository(cfg), cfg.Default.RepoName, now.Format(cfg.Default.Timestamp),
	)
}

// BuildCreate assembles the argv for borg create: section switches,
// one --exclude pair per exclude entry, the archive spec, then one
// positional path per include entry. Anything excluded wins over its
// presence in include, borg applies exclusions to the recursed paths.
// Pure: same inputs, same argv.
func BuildCreate(cfg *models.Settings, include, exclude []string, now time.Time) []string {
	args := []string{"create"}
	args = append(args, backupFlags(cfg.Backup)...)
	for _, pattern := range exclude {
		args = append(args, "--exclude", pattern)
	}
	args = append(args, Archive(cfg, now))
	args = append(args, include...)
	return args
}

func backupFlags(b models.BackupSettings) []string {
	var args []string
	if b.Verbose {
		args = append(args, "--verbose")
	}
	if b.Stats {
		args = append(args, "--stats")
	}
	if b.List {
		args = append(args, "--list")
	}
	if b.ShowRC {
		args = append(args, "--show-rc")
	}
	if b.ExcludeCaches {
		args = append(args, "--exclude-caches")
	}
	if b.Filter != "" {
		args = append(args, "--filter", b.Filter)
	}
	if b.Compression != "" {
		args = append(args, "--compression", b.Compression)
	}
	return args
}

// BuildPrune assembles the argv for borg prune with the configured
// retention counts. The --keep-* arguments follow the repository,
// switches precede it. Counts of zero are omitted.
func BuildPrune(cfg *models.Settings) []string {
	args := []string{"prune"}
	p := cfg.Prune
	if p.Verbose {
		args = append(args, "--verbose")
	}
	if p.Stats {
		args = append(args, "--stats")
	}
	if p.List {
		args = append(args, "--list")
	}
	if p.ShowRC {
		args = append(args, "--show-rc")
	}
	args = append(args, Repository(cfg))
	if p.KeepDaily > 0 {
		args = append(args, "--keep-daily", strconv.Itoa(p.KeepDaily))
	}
	if p.KeepWeekly > 0 {
		args = append(args, "--keep-weekly", strconv.Itoa(p.KeepWeekly))
	}
	if p.KeepMonthly > 0 {
		args = append(args, "--keep-monthly", strconv.Itoa(p.KeepMonthly))
	}
	return args
}

// BuildList assembles the argv for borg list over the configured
// repository.
func BuildList(cfg *models.Settings) []string {
	return []string{"list", Repository(cfg)}
}
