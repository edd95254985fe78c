package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_RenderLine_When_TestOutcomes(t *testing.T) {
	t.Parallel()

	root := scope(0, "test_module")
	class := raw(1, "DescribeWidget", root)
	fn := raw(2, "test_do_something", class)

	b := NewBuilder(nil)
	test, err := b.Build(fn)
	require.NoError(t, err)

	assert.Equal(t, "  » do something", test.RenderLine())

	test.SetOutcome(OutcomePassed)
	assert.Equal(t, "  ✓ do something", test.RenderLine())
}

func TestNode_RenderLine_When_FailedAndSkipped(t *testing.T) {
	t.Parallel()

	root := scope(0, "test_module")
	failed := NewNode(KindTest, raw(1, "test_breaks", root), nil)
	failed.SetOutcome(OutcomeFailed)
	assert.Equal(t, "✗ breaks", failed.RenderLine())

	// Skipped renders the pending glyph, same as unknown.
	skipped := NewNode(KindTest, raw(2, "test_waits", root), nil)
	skipped.SetOutcome(OutcomeSkipped)
	assert.Equal(t, "» waits", skipped.RenderLine())
}

func TestNode_RenderLine_When_ContainerVariants(t *testing.T) {
	t.Parallel()

	root := scope(0, "test_module")
	class := raw(1, "DescribeCar", root)
	ctx := raw(2, "WithoutEnergySupply", class)
	fn := raw(3, "test_stalls", ctx)

	b := NewBuilder(nil)
	test, err := b.Build(fn)
	require.NoError(t, err)

	chain := test.Ancestors()
	require.Len(t, chain, 2)
	assert.Equal(t, "a Car", chain[0].RenderLine())
	assert.Equal(t, "  without energy supply", chain[1].RenderLine())
}

func TestNode_SetOutcome_NeverResets_When_WrittenAgain(t *testing.T) {
	t.Parallel()

	n := NewNode(KindTest, raw(1, "test_once", nil), nil)
	n.SetOutcome(OutcomePassed)
	n.SetOutcome(OutcomeFailed)
	assert.Equal(t, OutcomePassed, n.Outcome())
}

func TestNode_Description_UsesDocstring_When_Present(t *testing.T) {
	t.Parallel()

	fn := raw(1, "test_anything", nil)
	fn.docstring = "has third floor\nrest ignored"
	n := NewNode(KindTest, fn, nil)

	assert.Equal(t, "has third floor", n.Description())
}

func TestNode_Description_UsesAnnotation_When_Set(t *testing.T) {
	t.Parallel()

	ann := NewAnnotations()
	require.NoError(t, ann.Set(1, "Electric Car"))

	class := raw(1, "DescribeCombustionThing", nil)
	class.annotation = ann
	n := NewNode(KindDescribedObject, class, nil)

	assert.Equal(t, "Electric Car", n.Description())
	assert.Equal(t, "an Electric Car", n.DescriptionWithPrefix())
}

func TestNode_Depth_ExcludesRootScope_When_Walked(t *testing.T) {
	t.Parallel()

	root := scope(0, "test_module")
	class := raw(1, "DescribeTower", root)
	ctx := raw(2, "WithLift", class)
	fn := raw(3, "test_rises", ctx)

	b := NewBuilder(nil)
	test, err := b.Build(fn)
	require.NoError(t, err)

	assert.Equal(t, 2, test.Depth())
	assert.Equal(t, 1, test.Ancestors()[1].Depth())
	assert.Equal(t, 0, test.Ancestors()[0].Depth())
}
