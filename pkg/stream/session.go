package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dkoosis/specview/pkg/describe"
	"github.com/dkoosis/specview/pkg/gotestjson"
	"github.com/dkoosis/specview/pkg/render"
	"github.com/dkoosis/specview/pkg/spec"
)

// Config configures a Session.
type Config struct {
	Out io.Writer
	// Err receives input-error diagnostics. Defaults to os.Stderr.
	Err io.Writer
	// Live enables the ANSI footer and line-by-line terminal output.
	// When false the narrative is written verbatim: each line preceded by a
	// line break, nothing else.
	Live   bool
	Width  int
	Height int

	Style       render.StyleFunc
	Glyphs      render.Glyphs
	Resolver    *describe.Resolver
	Annotations *spec.Annotations

	// Notify, when set, receives the package and test named by each run
	// event. Used by the TUI to show the in-flight test.
	Notify func(pkg, test string)
}

// Session consumes one ordered go test -json stream and renders the
// narrative incrementally. State is threaded explicitly: the builder cache
// and previous-test linkage live here, created per run, driven by a single
// goroutine.
type Session struct {
	arena    *gotestjson.Arena
	builder  *spec.Builder
	renderer *render.Renderer
	style    render.StyleFunc

	out    io.Writer
	errw   io.Writer
	tw     *termWriter
	live   bool
	notify func(pkg, test string)

	prev        *spec.Node
	currentPkg  string
	activePkg   string // package of the most recent run event, for the footer
	currentTest string

	passed      int
	failed      int
	skipped     int
	packages    int
	maxDuration float64
	hasFailed   bool
}

// NewSession creates a Session for one run.
func NewSession(cfg Config) *Session {
	s := &Session{
		arena:    gotestjson.NewArena(cfg.Annotations),
		builder:  spec.NewBuilder(cfg.Resolver),
		renderer: render.New(render.WithStyle(cfg.Style), render.WithGlyphs(cfg.Glyphs)),
		style:    cfg.Style,
		out:      cfg.Out,
		errw:     cfg.Err,
		live:     cfg.Live,
		notify:   cfg.Notify,
	}
	if s.errw == nil {
		s.errw = os.Stderr
	}
	if cfg.Live {
		s.tw = newTermWriter(cfg.Out, cfg.Width, cfg.Height)
	}
	return s
}

// Run reads go test -json events from r and renders them.
// Returns exit code: 0=all pass, 1=failures, 2=input error, 130=interrupted.
func (s *Session) Run(ctx context.Context, r io.Reader) int {
	malformed, err := gotestjson.Stream(ctx, r, s.handleEvent)
	if malformed > 0 {
		slog.Debug("skipped malformed input lines", "count", malformed)
	}

	// A broken stream gets no summary: the counts are not trustworthy and
	// a PASS line next to exit 2 would read as a green run.
	if err != nil {
		s.abort(err)
		if ctx.Err() != nil {
			return 130
		}
		return 2
	}

	s.finish()
	if s.hasFailed {
		return 1
	}
	return 0
}

// abort erases the footer and reports why the stream ended early.
func (s *Session) abort(err error) {
	if s.live {
		s.tw.EraseFooter()
		s.tw.PrintLine("")
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(s.errw, "specview: interrupted")
		return
	}
	fmt.Fprintf(s.errw, "specview: reading input: %v\n", err)
}

func (s *Session) handleEvent(e gotestjson.TestEvent) {
	switch e.Action {
	case "start":
		s.packages++
	case "run":
		s.activePkg = e.Package
		s.currentTest = e.Test
		if s.notify != nil {
			s.notify(e.Package, e.Test)
		}
	case "pass":
		s.finishTest(e, spec.OutcomePassed)
	case "fail":
		s.finishTest(e, spec.OutcomeFailed)
	case "skip":
		s.finishTest(e, spec.OutcomeSkipped)
	case "output", "bench", "pause", "cont":
		// ignored: the narrative shows structure and status, not output
	}

	s.redrawFooter()
}

func (s *Session) finishTest(e gotestjson.TestEvent, outcome spec.Outcome) {
	if e.Elapsed > s.maxDuration {
		s.maxDuration = e.Elapsed
	}
	if outcome == spec.OutcomeFailed {
		s.hasFailed = true
	}

	if e.Test == "" {
		// Package completed.
		return
	}
	if s.arena.IsContainer(e.Package, e.Test) {
		// Aggregate result for a subtest parent, not a test of its own.
		return
	}

	raw := s.arena.Node(e.Package, e.Test)
	test, err := s.builder.Build(raw)
	if err != nil {
		// The arena never yields nil or root-scope nodes here; a failure is
		// a broken host contract, surfaced loudly per the error design.
		panic(fmt.Sprintf("stream: build tree for %s.%s: %v", e.Package, e.Test, err))
	}
	test.SetOutcome(outcome)

	switch outcome {
	case spec.OutcomePassed:
		s.passed++
	case spec.OutcomeFailed:
		s.failed++
	case spec.OutcomeSkipped:
		s.skipped++
	}

	var chunk strings.Builder
	if e.Package != s.currentPkg {
		// New package: fresh narrative, headed by the import path.
		chunk.WriteString("\n")
		chunk.WriteString(s.styleLine(render.KindPackage, e.Package))
		s.currentPkg = e.Package
		s.prev = nil
	}
	chunk.WriteString(s.renderer.Transition(test, s.prev))
	chunk.WriteString(s.renderer.TestLine(test))
	s.prev = test

	s.write(chunk.String())
}

// finish erases the footer and prints the final summary line.
func (s *Session) finish() {
	total := s.passed + s.failed + s.skipped

	var summary string
	var kind render.LineKind
	if s.hasFailed {
		summary = fmt.Sprintf("FAIL (%.1fs) %d/%d tests, %d packages", s.maxDuration, s.failed, total, s.packages)
		kind = render.KindFail
	} else {
		summary = fmt.Sprintf("PASS (%.1fs) %d tests, %d packages", s.maxDuration, total, s.packages)
		kind = render.KindPass
	}

	s.write("\n\n" + s.styleLine(kind, summary))
	if s.live {
		s.tw.EraseFooter()
		s.tw.PrintLine("")
	}
}

// Summary returns the running totals.
func (s *Session) Summary() (passed, failed, skipped int) {
	return s.passed, s.failed, s.skipped
}

// write emits a narrative chunk. Chunks follow the leading-line-break
// protocol: in plain mode they pass through verbatim; in live mode they are
// re-split so the footer can be erased and redrawn around them.
func (s *Session) write(chunk string) {
	if !s.live {
		fmt.Fprint(s.out, chunk)
		return
	}

	s.tw.EraseFooter()
	for _, line := range strings.Split(strings.TrimPrefix(chunk, "\n"), "\n") {
		s.tw.PrintLine(line)
	}
}

func (s *Session) redrawFooter() {
	if !s.live || s.currentTest == "" {
		return
	}

	// Footer lines stay unstyled: width truncation counts display cells,
	// and ANSI sequences would skew the count.
	line := fmt.Sprintf("  %s · %s · %d passed, %d failed",
		shortPkg(s.activePkg), s.currentTest, s.passed, s.failed)
	s.tw.EraseFooter()
	s.tw.DrawFooter([]string{line})
}

func (s *Session) styleLine(kind render.LineKind, text string) string {
	if s.style != nil {
		return s.style(kind, text)
	}
	return text
}

// shortPkg returns the last path segment of a package name.
func shortPkg(pkg string) string {
	if i := strings.LastIndex(pkg, "/"); i >= 0 {
		return pkg[i+1:]
	}
	return pkg
}
