package gotestjson

import (
	"strings"

	"github.com/dkoosis/specview/pkg/spec"
)

// Arena assigns stable handles to discovered packages and test names and
// materializes spec.RawNode chains from them. Each package is a root-scope
// sentinel; the leading TestXxx segment sits directly under it, and each
// deeper subtest segment nests below.
//
// Names are identity: the same package/test name always yields the same raw
// node (and therefore the same handle), so the builder's cache reuses shared
// ancestors across sibling subtests.
type Arena struct {
	annotations *spec.Annotations
	next        spec.Handle
	nodes       map[string]*rawNode
	containers  map[string]bool
}

// NewArena creates an arena. The annotation store may be nil when the host
// has no explicit-description mechanism.
func NewArena(annotations *spec.Annotations) *Arena {
	return &Arena{
		annotations: annotations,
		nodes:       make(map[string]*rawNode),
		containers:  make(map[string]bool),
	}
}

type rawNode struct {
	handle      spec.Handle
	identifier  string
	parent      *rawNode
	root        bool
	annotations *spec.Annotations
}

func (n *rawNode) Handle() spec.Handle { return n.handle }
func (n *rawNode) Identifier() string  { return n.identifier }

// Docstring is always empty: go test names carry no documentation text.
func (n *rawNode) Docstring() string { return "" }

func (n *rawNode) Annotation() string {
	if n.annotations == nil {
		return ""
	}
	return n.annotations.Get(n.handle)
}

func (n *rawNode) Parent() spec.RawNode {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *rawNode) IsRootScope() bool { return n.root }

// Node returns the raw node for a test name within pkg, creating the whole
// chain on first sight. Subtest paths split on "/"; every non-leaf segment
// is marked as a container.
func (a *Arena) Node(pkg, test string) spec.RawNode {
	parent := a.packageRoot(pkg)

	segments := strings.Split(test, "/")
	path := ""
	for i, seg := range segments {
		if i > 0 {
			path += "/"
		}
		path += seg
		if i < len(segments)-1 {
			a.containers[key(pkg, path)] = true
		}
		parent = a.fetchOrCreate(key(pkg, path), seg, parent, false)
	}
	return parent
}

// IsContainer reports whether test has been seen as the parent of a deeper
// subtest. Containers' own pass/fail events are aggregates, not tests.
func (a *Arena) IsContainer(pkg, test string) bool {
	return a.containers[key(pkg, test)]
}

// packageRoot returns the root-scope sentinel for pkg.
func (a *Arena) packageRoot(pkg string) *rawNode {
	return a.fetchOrCreate(key(pkg, ""), pkg, nil, true)
}

func (a *Arena) fetchOrCreate(k, identifier string, parent *rawNode, root bool) *rawNode {
	if n, ok := a.nodes[k]; ok {
		return n
	}
	n := &rawNode{
		handle:      a.next,
		identifier:  identifier,
		parent:      parent,
		root:        root,
		annotations: a.annotations,
	}
	a.next++
	a.nodes[k] = n
	return n
}

func key(pkg, test string) string {
	return pkg + "\x00" + test
}
