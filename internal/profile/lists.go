package profile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadList parses an include or exclude file into its path entries.
// Blank lines and lines starting with `#' are skipped; inline comments
// are stripped. A missing file yields an empty list, the exclude file
// in particular does not need to exist.
func ReadList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer file.Close()

	var paths []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return paths, nil
}
