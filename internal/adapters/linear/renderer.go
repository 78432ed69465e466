// Package linear renders build progress as plain, line-prefixed output suited to CI logs.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/sasspipe/internal/ui/output"
	"go.trai.ch/sasspipe/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer prints bundle output prefixed with the bundle route, one line at a time.
// Status lines go to stderr and bundle output to stdout.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output
	styles *lipgloss.Renderer

	mu    sync.Mutex
	tasks map[string]*task
}

type task struct {
	name    string
	started time.Time
	pending bytes.Buffer
}

// NewRenderer creates a Renderer. Nil writers default to the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: output.NewWithProfile(stderr, output.ColorProfileANSI),
		styles: lipgloss.NewRenderer(stderr),
		tasks:  make(map[string]*task),
	}
}

// Start does nothing; the renderer writes synchronously.
func (r *Renderer) Start(context.Context) error {
	return nil
}

// Stop prints any partial lines still buffered.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tasks {
		r.flushLocked(t)
	}
	return nil
}

// Wait does nothing.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the bundles about to be built.
func (r *Renderer) OnPlanEmit(bundles []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	routes := make([]string, len(bundles))
	for i, bundle := range bundles {
		routes[i] = style.Route(r.styles, bundle)
	}
	_, _ = fmt.Fprintf(r.stderr, "Building %d bundle(s): %s\n", len(bundles), strings.Join(routes, ", "))
}

// OnTaskStart prints a start line for a bundle.
func (r *Renderer) OnTaskStart(spanID, _, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[spanID] = &task{name: name, started: startTime}
	_, _ = fmt.Fprintf(r.stderr, "%s Compiling...\n", r.output.String(prefix(name)).Faint())
}

// OnTaskLog prints every complete line of data and keeps the remainder for later.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[spanID]
	if !ok {
		return
	}

	t.pending.Write(data)
	for {
		i := bytes.IndexByte(t.pending.Bytes(), '\n')
		if i < 0 {
			return
		}
		line := t.pending.Next(i + 1)
		r.printLocked(t.name, line)
	}
}

// OnTaskComplete flushes the bundle's output and prints how it finished.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[spanID]
	if !ok {
		return
	}
	delete(r.tasks, spanID)
	r.flushLocked(t)

	elapsed := endTime.Sub(t.started)
	if err != nil {
		icon := r.output.String(style.Cross).Foreground(termenv.ANSIRed)
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", prefix(t.name), icon, elapsed, err)
		return
	}
	icon := r.output.String(style.Check).Foreground(termenv.ANSIGreen)
	_, _ = fmt.Fprintf(r.stderr, "%s %s Done in %v\n", prefix(t.name), icon, elapsed)
}

func (r *Renderer) flushLocked(t *task) {
	if t.pending.Len() == 0 {
		return
	}
	r.printLocked(t.name, t.pending.Bytes())
	t.pending.Reset()
}

func (r *Renderer) printLocked(name string, line []byte) {
	line = bytes.TrimRight(line, "\r\n")
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.stdout, "%s %s\n", prefix(name), line)
}

func prefix(name string) string {
	return "[" + name + "]"
}
