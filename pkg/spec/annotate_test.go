package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotations_Set_When_ValidDescription(t *testing.T) {
	t.Parallel()

	ann := NewAnnotations()
	require.NoError(t, ann.Set(7, "  Electric Car  "))
	assert.Equal(t, "Electric Car", ann.Get(7))
}

func TestAnnotations_Set_Rejects_When_EmptyDescription(t *testing.T) {
	t.Parallel()

	ann := NewAnnotations()
	assert.ErrorIs(t, ann.Set(1, ""), ErrEmptyDescription)
	assert.ErrorIs(t, ann.Set(1, "   \t\n"), ErrEmptyDescription)
	assert.Empty(t, ann.Get(1))
}

func TestAnnotations_Get_When_Unset(t *testing.T) {
	t.Parallel()

	ann := NewAnnotations()
	assert.Empty(t, ann.Get(42))
}
