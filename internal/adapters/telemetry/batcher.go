// Package telemetry turns build spans into renderer events through OpenTelemetry.
package telemetry

import (
	"bytes"
	"sync"
	"time"
)

const (
	// DefaultFlushSize is the buffered size that triggers an immediate flush.
	DefaultFlushSize = 4096
	// DefaultFlushInterval is how long output may sit in the buffer.
	DefaultFlushInterval = 50 * time.Millisecond
)

// Batcher coalesces small writes into larger chunks for a single consumer.
// Chunks are delivered in write order.
type Batcher struct {
	size     int
	interval time.Duration
	deliver  func([]byte)

	mu     sync.Mutex
	buf    bytes.Buffer
	timer  *time.Timer
	closed bool
}

// NewBatcher creates a Batcher. Non-positive limits fall back to the defaults.
func NewBatcher(size int, interval time.Duration, deliver func([]byte)) *Batcher {
	if size <= 0 {
		size = DefaultFlushSize
	}
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	return &Batcher{size: size, interval: interval, deliver: deliver}
}

// Write buffers p. Writes after Close are dropped.
func (b *Batcher) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return len(p), nil
	}

	b.buf.Write(p)
	switch {
	case b.buf.Len() >= b.size:
		b.flushLocked()
	case b.timer == nil:
		b.timer = time.AfterFunc(b.interval, b.Flush)
	}
	return len(p), nil
}

// Flush delivers whatever is buffered.
func (b *Batcher) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flushLocked()
}

// Close flushes the buffer and stops further delivery.
func (b *Batcher) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.flushLocked()
	b.closed = true
	return nil
}

// flushLocked must be called with mu held. deliver runs under the lock to keep order.
func (b *Batcher) flushLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	if b.buf.Len() == 0 || b.closed {
		return
	}
	chunk := bytes.Clone(b.buf.Bytes())
	b.buf.Reset()
	if b.deliver != nil {
		b.deliver(chunk)
	}
}
