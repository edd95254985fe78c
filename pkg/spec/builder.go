package spec

import (
	"fmt"

	"github.com/dkoosis/specview/pkg/describe"
)

// Builder constructs the semantic tree lazily, one test at a time, reusing
// already-built ancestors so shared containers appear exactly once.
//
// The node cache lives for the whole run and is append-only: once a RawNode
// has a Node it is never removed or replaced. Create one Builder per run and
// drive it from a single goroutine; the host guarantees sequential,
// non-reentrant invocation.
type Builder struct {
	resolver *describe.Resolver
	nodes    map[Handle]*Node
}

// NewBuilder creates a Builder. A nil resolver selects the default rule set.
func NewBuilder(resolver *describe.Resolver) *Builder {
	return &Builder{
		resolver: resolver,
		nodes:    make(map[Handle]*Node),
	}
}

// Build returns the Test node for raw, creating it and any missing ancestors
// on the way up. The walk stops at the root-scope sentinel, which is never
// materialized. Build(nil) fails with ErrInvalidNode.
func (b *Builder) Build(raw RawNode) (*Node, error) {
	if raw == nil {
		return nil, fmt.Errorf("build tree: %w", ErrInvalidNode)
	}
	if raw.IsRootScope() {
		return nil, fmt.Errorf("build tree for root scope %q: %w", raw.Identifier(), ErrInvalidNode)
	}

	test := b.fetchOrCreate(raw, KindTest)

	child := test
	for parent := raw.Parent(); parent != nil && !parent.IsRootScope(); parent = parent.Parent() {
		node := b.fetchOrCreate(parent, classify(parent))
		// Link only unattached children: an ancestor revisited through a
		// different descendant keeps its original parent edge.
		if child.Parent() == nil && child != node {
			node.AddChild(child)
		}
		child = node
	}

	return test, nil
}

// Node returns the cached node for h, if one has been built.
func (b *Builder) Node(h Handle) (*Node, bool) {
	n, ok := b.nodes[h]
	return n, ok
}

func (b *Builder) fetchOrCreate(raw RawNode, kind Kind) *Node {
	if n, ok := b.nodes[raw.Handle()]; ok {
		return n
	}
	n := NewNode(kind, raw, b.resolver)
	b.nodes[raw.Handle()] = n
	return n
}

// classify decides a fresh ancestor's variant: directly under the root scope
// it is a described object, nested any deeper it is a context.
func classify(raw RawNode) Kind {
	p := raw.Parent()
	if p == nil || p.IsRootScope() {
		return KindDescribedObject
	}
	return KindContext
}
