package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// levelTokens maps the level column written by the logging package.
var levelTokens = map[string]log.Level{
	"DEBU":  log.DebugLevel,
	"DEBUG": log.DebugLevel,
	"INFO":  log.InfoLevel,
	"WARN":  log.WarnLevel,
	"ERRO":  log.ErrorLevel,
	"ERROR": log.ErrorLevel,
	"FATA":  log.FatalLevel,
}

// LevelOf finds the level column of a log line. ok is false for lines with
// no recognizable level, such as continuation lines.
func LevelOf(line string) (log.Level, bool) {
	fields := strings.Fields(line)
	// Timestamp first, level second; tolerate a missing timestamp.
	for i := 0; i < len(fields) && i < 2; i++ {
		if lvl, ok := levelTokens[fields[i]]; ok {
			return lvl, true
		}
	}
	return log.InfoLevel, false
}

// Filter keeps lines at or above minLevel. Lines without a level inherit
// the level of the line before them.
func Filter(lines []string, minLevel log.Level) []string {
	if minLevel <= log.DebugLevel {
		return lines
	}
	out := make([]string, 0, len(lines))
	keep := false
	for _, line := range lines {
		if lvl, ok := LevelOf(line); ok {
			keep = lvl >= minLevel
		}
		if keep {
			out = append(out, line)
		}
	}
	return out
}
