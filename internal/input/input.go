// Package input reads free-text arguments that may come from stdin ("-") or
// a file ("@path").
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrStdinReused is returned when "-" appears more than once
var ErrStdinReused = errors.New("stdin can only be read once")

// ExpandText joins args into one text. An argument of "-" is replaced by the
// non-empty lines of stdin and "@path" by the lines of that file.
func ExpandText(args []string, stdin io.Reader) (string, error) {
	var parts []string
	stdinUsed := false
	for _, arg := range args {
		switch {
		case arg == "-":
			if stdinUsed {
				return "", ErrStdinReused
			}
			stdinUsed = true
			parts = append(parts, ReadLinesFromReader(stdin)...)
		case strings.HasPrefix(arg, "@") && len(arg) > 1:
			path := strings.TrimPrefix(arg, "@")
			file, err := os.Open(path)
			if err != nil {
				return "", fmt.Errorf("read %s: %w", path, err)
			}
			lines := ReadLinesFromReader(file)
			file.Close()
			parts = append(parts, lines...)
		default:
			parts = append(parts, arg)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " ")), nil
}

// ReadLinesFromReader reads non-empty lines from a reader.
func ReadLinesFromReader(r io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
