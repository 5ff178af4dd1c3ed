// Package highlight prints configuration files with terminal syntax
// highlighting, styled per the profile's styles file.
package highlight

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// FallbackStyle is used when the styles file selects nothing.
const FallbackStyle = "default"

// Lexer names understood by the printer.
const (
	LexerINI  = "ini"
	LexerBash = "bash"
)

// SelectStyle scans the styles file top to bottom and returns the first
// uncommented entry. Entries may be bare names or shell-style
// assignments (STYLE="monokai"). If nothing qualifies, including when
// the file is missing, the fallback style is returned. Any name is
// accepted; unknown ones degrade to chroma's fallback at print time.
func SelectStyle(path string) string {
	file, err := os.Open(path)
	if err != nil {
		return FallbackStyle
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, "="); i >= 0 {
			line = line[i+1:]
		}
		line = strings.Trim(strings.TrimSpace(line), `"'`)
		if line != "" {
			return line
		}
	}
	return FallbackStyle
}

// Printer writes syntax-highlighted text to an output.
type Printer struct {
	out   io.Writer
	style string
}

// NewPrinter creates a printer for the given style writing to out.
func NewPrinter(out io.Writer, style string) *Printer {
	if style == "" {
		style = FallbackStyle
	}
	return &Printer{out: out, style: style}
}

// Print highlights text with the named lexer. If highlighting fails the
// text is printed plain, a missing terminal style never hides content.
func (p *Printer) Print(text, lexer string) {
	if text == "" {
		return
	}
	if err := quick.Highlight(p.out, text, lexer, "terminal256", p.style); err != nil {
		fmt.Fprint(p.out, text)
	}
	fmt.Fprintln(p.out)
}

// PrintFile reads and highlights a file, choosing the INI lexer for
// config.ini and the shell lexer for everything else.
func (p *Printer) PrintFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	lexer := LexerBash
	if strings.HasSuffix(path, ".ini") {
		lexer = LexerINI
	}
	p.Print(string(content), lexer)
	return nil
}
