// Package stream drives a go test -json event stream through the tree
// builder and incremental renderer, writing the narrative as tests finish.
package stream

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

// termWriter is the single point of terminal output in live mode.
// No other code writes to the terminal while a session is running.
type termWriter struct {
	out         io.Writer
	width       int
	height      int
	footerLines int
}

func newTermWriter(out io.Writer, width, height int) *termWriter {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return &termWriter{out: out, width: width, height: height}
}

// PrintLine writes a line to the scrolling history region.
// Always appends \n.
func (w *termWriter) PrintLine(s string) {
	fmt.Fprintln(w.out, s)
}

// EraseFooter removes the current footer from the terminal.
// No-op if footerLines == 0.
func (w *termWriter) EraseFooter() {
	if w.footerLines == 0 {
		return
	}
	for i := 0; i < w.footerLines; i++ {
		fmt.Fprint(w.out, "\r\033[2K")
		if i < w.footerLines-1 {
			fmt.Fprint(w.out, "\033[1A")
		}
	}
	fmt.Fprint(w.out, "\r")
	w.footerLines = 0
}

// DrawFooter prints footer lines, truncated to display width.
func (w *termWriter) DrawFooter(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w.out, truncateToWidth(line, w.width))
	}
	w.footerLines = len(lines)
}

// truncateToWidth cuts s to the given display width, using cell widths so
// East Asian Wide characters and the status glyphs count correctly.
func truncateToWidth(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
