package tui

import (
	"strings"
	"sync"
)

// Feed bridges a running session and the TUI model. The session writes
// narrative chunks into it as an io.Writer; the model drains Lines.
// Safe for one writer and one reader.
type Feed struct {
	lines chan string
	done  chan int

	mu      sync.Mutex
	partial string
	pkg     string
	test    string
}

// NewFeed creates a feed with room to buffer a burst of output.
func NewFeed() *Feed {
	return &Feed{
		lines: make(chan string, 256),
		done:  make(chan int, 1),
	}
}

// Write splits narrative chunks into lines for the model. Chunks arrive
// with a leading line break before each line and no trailing one, so the
// text after the last break is held until the next chunk completes it.
func (f *Feed) Write(p []byte) (int, error) {
	f.mu.Lock()
	buf := f.partial + string(p)
	f.mu.Unlock()

	parts := strings.Split(buf, "\n")
	for _, line := range parts[:len(parts)-1] {
		f.lines <- line
	}

	f.mu.Lock()
	f.partial = parts[len(parts)-1]
	f.mu.Unlock()
	return len(p), nil
}

// SetActive records the test currently running.
func (f *Feed) SetActive(pkg, test string) {
	f.mu.Lock()
	f.pkg, f.test = pkg, test
	f.mu.Unlock()
}

// Active returns the test currently running.
func (f *Feed) Active() (pkg, test string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pkg, f.test
}

// Finish flushes any held text and reports the session's exit code.
func (f *Feed) Finish(code int) {
	f.mu.Lock()
	rest := f.partial
	f.partial = ""
	f.mu.Unlock()

	if rest != "" {
		f.lines <- rest
	}
	close(f.lines)
	f.done <- code
}
