package gotestjson

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
)

// scanResult carries a scanned line or terminal error from the scanner goroutine.
type scanResult struct {
	line []byte
	err  error
}

// Stream parses go test -json events line by line and calls fn for each one.
// Stops on EOF or when ctx is cancelled. Returns the number of malformed
// lines skipped and any error.
//
// Cancellation: the scanner runs in a background goroutine. On context
// cancel, Stream closes r (if it implements io.Closer) to unblock the
// scanner. If r does not implement io.Closer, the caller must close the
// underlying reader externally to prevent a goroutine leak.
func Stream(ctx context.Context, r io.Reader, fn ProcessFunc) (int, error) {
	scanner := bufio.NewScanner(r)
	// Allow large lines for verbose test output.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lines := make(chan scanResult)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			// Copy the bytes; the scanner reuses its buffer.
			cp := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- scanResult{line: cp}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- scanResult{err: err}:
			case <-ctx.Done():
			}
		}
	}()

	var malformed int
	for {
		select {
		case <-ctx.Done():
			if c, ok := r.(io.Closer); ok {
				_ = c.Close()
			}
			return malformed, ctx.Err()
		case res, ok := <-lines:
			if !ok {
				return malformed, nil
			}
			if res.err != nil {
				return malformed, res.err
			}
			if len(res.line) == 0 {
				continue
			}
			var event TestEvent
			if err := json.Unmarshal(res.line, &event); err != nil {
				malformed++
				continue
			}
			fn(event)
		}
	}
}
