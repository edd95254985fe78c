package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/specview/pkg/spec"
)

// fakeRaw implements spec.RawNode for renderer tests.
type fakeRaw struct {
	handle     spec.Handle
	identifier string
	parent     spec.RawNode
	root       bool
}

func (f *fakeRaw) Handle() spec.Handle  { return f.handle }
func (f *fakeRaw) Identifier() string   { return f.identifier }
func (f *fakeRaw) Docstring() string    { return "" }
func (f *fakeRaw) Annotation() string   { return "" }
func (f *fakeRaw) Parent() spec.RawNode { return f.parent }
func (f *fakeRaw) IsRootScope() bool    { return f.root }

func buildTest(t *testing.T, b *spec.Builder, raw spec.RawNode) *spec.Node {
	t.Helper()
	test, err := b.Build(raw)
	require.NoError(t, err)
	return test
}

func TestRenderer_Transition_EmitsFullChain_When_NoPreviousTest(t *testing.T) {
	t.Parallel()

	root := &fakeRaw{handle: 0, identifier: "test_module", root: true}
	class := &fakeRaw{handle: 1, identifier: "DescribeCar", parent: root}
	ctx := &fakeRaw{handle: 2, identifier: "WithoutFuel", parent: class}
	fn := &fakeRaw{handle: 3, identifier: "test_stalls", parent: ctx}

	b := spec.NewBuilder(nil)
	test := buildTest(t, b, fn)

	r := New()
	assert.Equal(t, "\na Car\n  without fuel", r.Transition(test, nil))
}

func TestRenderer_Transition_EmitsOnlyDivergence_When_SiblingContexts(t *testing.T) {
	t.Parallel()

	root := &fakeRaw{handle: 0, identifier: "test_module", root: true}
	class := &fakeRaw{handle: 1, identifier: "DescribeCar", parent: root}
	ctxB := &fakeRaw{handle: 2, identifier: "WithFuel", parent: class}
	ctxC := &fakeRaw{handle: 3, identifier: "WithoutFuel", parent: class}
	prevFn := &fakeRaw{handle: 4, identifier: "test_moves", parent: ctxB}
	currFn := &fakeRaw{handle: 5, identifier: "test_stalls", parent: ctxC}

	b := spec.NewBuilder(nil)
	prev := buildTest(t, b, prevFn)
	curr := buildTest(t, b, currFn)

	// Chains [A, B] then [A, C]: only C's line is emitted.
	r := New()
	assert.Equal(t, "\n  without fuel", r.Transition(curr, prev))
}

func TestRenderer_Transition_EmitsNothing_When_SameChain(t *testing.T) {
	t.Parallel()

	root := &fakeRaw{handle: 0, identifier: "test_module", root: true}
	class := &fakeRaw{handle: 1, identifier: "TestExample", parent: root}
	first := &fakeRaw{handle: 2, identifier: "test_first", parent: class}
	second := &fakeRaw{handle: 3, identifier: "test_second", parent: class}

	b := spec.NewBuilder(nil)
	prev := buildTest(t, b, first)
	curr := buildTest(t, b, second)

	r := New()
	assert.Empty(t, r.Transition(curr, prev))
}

func TestRenderer_RendersSequence_When_TwoTestsShareContainer(t *testing.T) {
	t.Parallel()

	root := &fakeRaw{handle: 0, identifier: "test_module", root: true}
	class := &fakeRaw{handle: 1, identifier: "TestExample", parent: root}
	first := &fakeRaw{handle: 2, identifier: "test_first", parent: class}
	second := &fakeRaw{handle: 3, identifier: "test_second", parent: class}

	b := spec.NewBuilder(nil)
	r := New()

	var out string
	var prev *spec.Node
	for _, raw := range []spec.RawNode{first, second} {
		test := buildTest(t, b, raw)
		out += r.Transition(test, prev)
		test.SetOutcome(spec.OutcomePassed)
		out += r.TestLine(test)
		prev = test
	}

	// The shared header appears once, each test line once.
	assert.Equal(t, "\nan Example\n  ✓ first\n  ✓ second", out)
}

func TestRenderer_TestLine_AlwaysEmits_When_Called(t *testing.T) {
	t.Parallel()

	root := &fakeRaw{handle: 0, identifier: "test_module", root: true}
	class := &fakeRaw{handle: 1, identifier: "DescribeThing", parent: root}
	fn := &fakeRaw{handle: 2, identifier: "test_breaks", parent: class}

	b := spec.NewBuilder(nil)
	test := buildTest(t, b, fn)
	test.SetOutcome(spec.OutcomeFailed)

	r := New()
	assert.Equal(t, "\n  ✗ breaks", r.TestLine(test))
	assert.Equal(t, "\n  ✗ breaks", r.TestLine(test))
}

func TestRenderer_TestLine_When_GlyphOverrides(t *testing.T) {
	t.Parallel()

	root := &fakeRaw{handle: 0, identifier: "test_module", root: true}
	fn := &fakeRaw{handle: 1, identifier: "test_shines", parent: root}

	b := spec.NewBuilder(nil)
	test := buildTest(t, b, fn)
	test.SetOutcome(spec.OutcomePassed)

	r := New(WithGlyphs(Glyphs{Pass: "PASS"}))
	assert.Equal(t, "\nPASS shines", r.TestLine(test))
}

func TestRenderer_StylesLines_When_StyleFuncSet(t *testing.T) {
	t.Parallel()

	root := &fakeRaw{handle: 0, identifier: "test_module", root: true}
	class := &fakeRaw{handle: 1, identifier: "DescribeBox", parent: root}
	fn := &fakeRaw{handle: 2, identifier: "test_opens", parent: class}

	b := spec.NewBuilder(nil)
	test := buildTest(t, b, fn)
	test.SetOutcome(spec.OutcomePassed)

	var kinds []LineKind
	r := New(WithStyle(func(kind LineKind, text string) string {
		kinds = append(kinds, kind)
		return "<" + text + ">"
	}))

	assert.Equal(t, "\n<a Box>", r.Transition(test, nil))
	assert.Equal(t, "\n<  ✓ opens>", r.TestLine(test))
	assert.Equal(t, []LineKind{KindContainer, KindPass}, kinds)
}
