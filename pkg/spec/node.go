// Package spec models a discovered test run as a tree of described objects,
// contexts, and tests, and renders each node as one line of an RSpec-style
// narrative.
//
// The package consumes RawNode records supplied by a host binding (see
// pkg/gotestjson for the go test -json binding) and owns the typed Node tree
// built from them. It performs no I/O.
package spec

import (
	"strings"

	"github.com/dkoosis/specview/pkg/describe"
)

// Handle is an opaque identity for a RawNode, assigned by the host at
// discovery time. Node caching is keyed by Handle, so two declarations with
// identical names remain distinct nodes.
type Handle int

// RawNode is one discovered container or test, as supplied by the host
// framework. Implementations must be immutable once discovered.
type RawNode interface {
	Handle() Handle
	Identifier() string
	// Docstring returns the attached documentation text, or "" when absent.
	Docstring() string
	// Annotation returns the explicit description override, or "" when absent.
	Annotation() string
	// Parent returns the enclosing raw node, or nil at the top.
	Parent() RawNode
	// IsRootScope reports whether this node is the root-scope sentinel
	// (module/package level). Root scopes are never materialized as Nodes.
	IsRootScope() bool
}

// Kind classifies a Node.
type Kind int

const (
	// KindTest is an individual test.
	KindTest Kind = iota
	// KindDescribedObject is a top-level grouping directly under the root scope.
	KindDescribedObject
	// KindContext is a nested grouping under a described object or another context.
	KindContext
)

func (k Kind) describeKind() describe.Kind {
	switch k {
	case KindDescribedObject:
		return describe.DescribedObject
	case KindContext:
		return describe.Context
	default:
		return describe.Test
	}
}

// Outcome is a test's reported result.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomePassed
	OutcomeFailed
	OutcomeSkipped
)

// Status glyphs for test lines.
const (
	GlyphPassed  = "✓"
	GlyphFailed  = "✗"
	GlyphPending = "»"
)

// Node is one element of the semantic tree. Containers own their children;
// children hold a non-owning reference to their parent.
type Node struct {
	kind     Kind
	raw      RawNode
	resolver *describe.Resolver

	parent   *Node
	contexts []*Node
	tests    []*Node

	outcome Outcome
}

// defaultResolver serves nodes created without an explicit resolver.
var defaultResolver = describe.New()

// NewNode wraps a RawNode. A nil resolver selects the default rule set.
func NewNode(kind Kind, raw RawNode, resolver *describe.Resolver) *Node {
	if resolver == nil {
		resolver = defaultResolver
	}
	return &Node{kind: kind, raw: raw, resolver: resolver}
}

// Kind returns the node's variant.
func (n *Node) Kind() Kind { return n.kind }

// Raw returns the underlying host record.
func (n *Node) Raw() RawNode { return n.raw }

// Parent returns the enclosing container node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Contexts returns the nested container children, in discovery order.
func (n *Node) Contexts() []*Node { return n.contexts }

// Tests returns the test children, in discovery order.
func (n *Node) Tests() []*Node { return n.tests }

// Outcome returns the reported result, OutcomeUnknown until the host reports.
func (n *Node) Outcome() Outcome { return n.outcome }

// SetOutcome records the host-reported result. The outcome transitions only
// once, from unknown; later writes are ignored so it never resets.
func (n *Node) SetOutcome(o Outcome) {
	if n.outcome == OutcomeUnknown {
		n.outcome = o
	}
}

// AddChild appends child to the typed child list and sets its parent
// reference. Call at most once per child: callers must check
// child.Parent() == nil before attaching, or the child is re-parented and
// duplicated in the list.
func (n *Node) AddChild(child *Node) {
	if child.kind == KindTest {
		n.tests = append(n.tests, child)
	} else {
		n.contexts = append(n.contexts, child)
	}
	child.parent = n
}

// Depth is the number of container ancestors. The root scope is never
// materialized, so walking to nil counts every hop that matters.
func (n *Node) Depth() int {
	depth := 0
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// Ancestors returns the container chain root-to-leaf, excluding n itself.
func (n *Node) Ancestors() []*Node {
	var chain []*Node
	for p := n.parent; p != nil; p = p.parent {
		chain = append([]*Node{p}, chain...)
	}
	return chain
}

// Description returns the node's base description. Recomputed on every call
// from the immutable raw fields, never cached.
func (n *Node) Description() string {
	return n.resolver.Resolve(n.kind.describeKind(), n.input())
}

// DescriptionWithPrefix returns the display description, including the
// variant's article or conjunction.
func (n *Node) DescriptionWithPrefix() string {
	return n.resolver.WithPrefix(n.kind.describeKind(), n.input())
}

func (n *Node) input() describe.Input {
	return describe.Input{
		Identifier: n.raw.Identifier(),
		Docstring:  n.raw.Docstring(),
		Annotation: n.raw.Annotation(),
	}
}

// Glyph returns the status symbol for a test line: ✓ passed, ✗ failed,
// » anything else.
func (n *Node) Glyph() string {
	switch n.outcome {
	case OutcomePassed:
		return GlyphPassed
	case OutcomeFailed:
		return GlyphFailed
	default:
		return GlyphPending
	}
}

// RenderLine formats the node as one narrative line: two spaces of indent
// per depth level, then the glyph and description for tests, or the
// description alone for containers.
func (n *Node) RenderLine() string {
	indent := strings.Repeat("  ", n.Depth())
	if n.kind == KindTest {
		return indent + n.Glyph() + " " + n.DescriptionWithPrefix()
	}
	return indent + n.DescriptionWithPrefix()
}
