// Package render emits the RSpec-style narrative incrementally: container
// headers appear only when the active container path changes, and every test
// gets exactly one status line.
package render

import (
	"strings"

	"github.com/dkoosis/specview/pkg/spec"
)

// LineKind identifies the type of narrative line for styling.
type LineKind int

const (
	KindContainer LineKind = iota
	KindPass
	KindFail
	KindPending
	// KindPackage marks session-level package header and summary lines,
	// which sit outside the narrative tree itself.
	KindPackage
)

// StyleFunc formats a line with colors/transforms.
// If nil, lines pass through unchanged.
type StyleFunc func(kind LineKind, text string) string

// Glyphs overrides the status symbols on test lines. Empty fields keep the
// defaults (✓ ✗ »).
type Glyphs struct {
	Pass    string
	Fail    string
	Pending string
}

// Renderer computes the incremental narrative output for a stream of tests.
type Renderer struct {
	style  StyleFunc
	glyphs Glyphs
}

// Option customizes a Renderer.
type Option func(*Renderer)

// WithStyle sets the line styling hook.
func WithStyle(style StyleFunc) Option {
	return func(r *Renderer) { r.style = style }
}

// WithGlyphs overrides the status symbols.
func WithGlyphs(g Glyphs) Option {
	return func(r *Renderer) { r.glyphs = g }
}

// New creates a Renderer. With no options the output is the plain,
// unstyled narrative.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Transition returns the container header lines to emit before current's own
// line: the ancestors not shared with previous, root-to-leaf, each preceded
// by a line break. With no previous test the whole chain is new; identical
// chains emit nothing.
func (r *Renderer) Transition(current, previous *spec.Node) string {
	chain := current.Ancestors()

	start := 0
	if previous != nil {
		start = commonPrefixLen(chain, previous.Ancestors())
	}

	var b strings.Builder
	for _, n := range chain[start:] {
		b.WriteString("\n")
		b.WriteString(r.styleLine(KindContainer, n.RenderLine()))
	}
	return b.String()
}

// TestLine returns the test's own status line, preceded by a line break.
// Emitted for every test regardless of transition.
func (r *Renderer) TestLine(test *spec.Node) string {
	kind := lineKind(test.Outcome())
	line := test.RenderLine()
	if custom := r.glyphOverride(kind); custom != "" {
		line = strings.Replace(line, test.Glyph(), custom, 1)
	}
	return "\n" + r.styleLine(kind, line)
}

func (r *Renderer) styleLine(kind LineKind, text string) string {
	if r.style != nil {
		return r.style(kind, text)
	}
	return text
}

func (r *Renderer) glyphOverride(kind LineKind) string {
	switch kind {
	case KindPass:
		return r.glyphs.Pass
	case KindFail:
		return r.glyphs.Fail
	case KindPending:
		return r.glyphs.Pending
	}
	return ""
}

func lineKind(o spec.Outcome) LineKind {
	switch o {
	case spec.OutcomePassed:
		return KindPass
	case spec.OutcomeFailed:
		return KindFail
	default:
		return KindPending
	}
}

// commonPrefixLen is the length of the longest common prefix of two ancestor
// chains, compared by node identity, not by value.
func commonPrefixLen(a, b []*spec.Node) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
