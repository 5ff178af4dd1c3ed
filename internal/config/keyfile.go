package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrKeyfileEmpty is returned when a keyfile exists but holds no
// passphrase on its first line.
var ErrKeyfileEmpty = errors.New("keyfile is empty")

// ReadKeyfile reads the single-line passphrase from a keyfile. Only the
// first line counts; trailing whitespace is stripped. Callers treat any
// error as a warning and continue without a passphrase.
func ReadKeyfile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("reading keyfile: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if scanner.Scan() {
		passphrase := strings.TrimSpace(scanner.Text())
		if passphrase != "" {
			return passphrase, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading keyfile: %w", err)
	}
	return "", fmt.Errorf("%w: %s", ErrKeyfileEmpty, path)
}

// MultiLine reports whether the keyfile holds content beyond its first
// line. Only the first line ever counts as the passphrase, so callers
// may want to flag the discarded remainder.
func MultiLine(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return false
	}
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			return true
		}
	}
	return false
}

// LoosePermissions reports whether the keyfile is readable or writable
// by anyone other than its owner.
func LoosePermissions(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o077 != 0
}
