// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/sasspipe/internal/core/ports"
)

// zerrError is the subset of *zerr.Error used to walk an error chain one layer at a time.
type zerrError interface {
	Message() string
	Metadata() map[string]any
}

// errorEntry is one layer of an error chain.
type errorEntry struct {
	message  string
	metadata map[string]any
}

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	level    *slog.LevelVar
	output   io.Writer
	jsonMode bool
}

// New creates a Logger writing pretty output to stderr.
func New() *Logger {
	l := &Logger{level: &slog.LevelVar{}, output: os.Stderr}
	l.rebuild()
	return l
}

// SetOutput redirects the logger. A nil w restores stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty output.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.jsonMode = enable
	l.rebuild()
}

// SetQuiet suppresses informational messages.
func (l *Logger) SetQuiet(quiet bool) {
	if quiet {
		l.level.Set(slog.LevelWarn)
		return
	}
	l.level.Set(slog.LevelInfo)
}

// rebuild recreates the handler. Callers hold l.mu or own l exclusively.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: l.level}
	if l.jsonMode {
		l.logger = slog.New(slog.NewJSONHandler(l.output, opts))
		return
	}
	l.logger = slog.New(NewPrettyHandler(l.output, opts))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err together with its chain of causes.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := collectErrorEntries(err)
	if l.jsonMode {
		args := []any{"error", err.Error()}
		for _, e := range entries {
			for _, k := range slices.Sorted(maps.Keys(e.metadata)) {
				args = append(args, k, e.metadata[k])
			}
		}
		l.logger.Error("operation failed", args...)
		return
	}
	l.logger.Error(formatErrorEntries(entries))
}

// collectErrorEntries walks err's chain. zerr layers contribute their own message and
// metadata; the first foreign error ends the walk with its full text.
// Layers with an empty message only carry metadata, which moves to the next layer.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	var carried map[string]any

	for current := err; current != nil; {
		z, ok := current.(zerrError)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error(), metadata: carried})
			break
		}

		meta := z.Metadata()
		if z.Message() == "" {
			if carried == nil {
				carried = make(map[string]any, len(meta))
			}
			maps.Copy(carried, meta)
			current = errors.Unwrap(current)
			continue
		}

		if len(carried) > 0 {
			maps.Copy(meta, carried)
			carried = nil
		}
		entries = append(entries, errorEntry{message: z.Message(), metadata: meta})
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders entries as a headline followed by an indented list of causes.
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, e := range entries {
		text := e.message
		if len(e.metadata) > 0 {
			pairs := make([]string, 0, len(e.metadata))
			for _, k := range slices.Sorted(maps.Keys(e.metadata)) {
				pairs = append(pairs, fmt.Sprintf("%s=%v", k, e.metadata[k]))
			}
			text += " (" + strings.Join(pairs, ", ") + ")"
		}

		msgLines := strings.Split(text, "\n")
		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			continue
		}
		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
	}

	return strings.Join(lines, "\n")
}
