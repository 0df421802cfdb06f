package runner

import (
	"sync"
	"sync/atomic"
)

// chunk is an element in the append-only output list. Appends link new
// chunks through an atomic pointer so readers never need a lock.
type chunk struct {
	data []byte
	next atomic.Pointer[chunk]
}

// Capture accumulates the output of a tool process as an append-only list of
// byte chunks. It is safe for one writer (the process pipes) and any number
// of concurrent readers; subscribers replay from the beginning and then
// follow live output until the capture is closed.
type Capture struct {
	head *chunk // sentinel, immutable
	tail *chunk

	mu      sync.Mutex
	waiters []chan struct{}
	closed  bool
}

// NewCapture creates an empty capture.
func NewCapture() *Capture {
	sentinel := &chunk{}
	return &Capture{head: sentinel, tail: sentinel}
}

// Write appends a copy of p, satisfying io.Writer so a Capture can be wired
// directly to exec.Cmd pipes (which reuse their buffers between calls).
func (c *Capture) Write(p []byte) (int, error) {
	data := append([]byte(nil), p...)

	next := &chunk{data: data}
	c.tail.next.Store(next)
	c.tail = next

	c.mu.Lock()
	for _, w := range c.waiters {
		select {
		case w <- struct{}{}:
		default:
		}
	}
	c.mu.Unlock()

	return len(p), nil
}

// Close marks the capture complete and releases live subscribers once they
// drain the remaining chunks.
func (c *Capture) Close() {
	c.mu.Lock()
	c.closed = true
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, w := range waiters {
		close(w)
	}
}

// Subscribe returns a channel that yields every chunk from the beginning of
// the capture and then follows live output. The channel closes when the
// capture is closed and fully drained.
func (c *Capture) Subscribe(capacity int) <-chan []byte {
	out := make(chan []byte, capacity)

	c.mu.Lock()
	var notify chan struct{}
	if !c.closed {
		notify = make(chan struct{}, 1)
		c.waiters = append(c.waiters, notify)
	}
	c.mu.Unlock()

	go func() {
		prev := c.head
		for {
			cur := prev.next.Load()
			if cur == nil {
				if notify == nil {
					close(out)
					return
				}
				if _, ok := <-notify; !ok {
					// Closed; drain whatever arrived before the close.
					notify = nil
				}
				continue
			}
			prev = cur
			out <- cur.data
		}
	}()

	return out
}

// Bytes concatenates every chunk captured so far.
func (c *Capture) Bytes() []byte {
	total := 0
	var chunks [][]byte
	for cur := c.head.next.Load(); cur != nil; cur = cur.next.Load() {
		chunks = append(chunks, cur.data)
		total += len(cur.data)
	}
	out := make([]byte, 0, total)
	for _, b := range chunks {
		out = append(out, b...)
	}
	return out
}

// String returns the captured output as a string.
func (c *Capture) String() string {
	return string(c.Bytes())
}
