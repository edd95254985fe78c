package tui

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(f *Feed) []string {
	var lines []string
	for line := range f.lines {
		lines = append(lines, line)
	}
	return lines
}

func TestFeed_SplitsChunksIntoLines(t *testing.T) {
	t.Parallel()

	f := NewFeed()
	var w io.Writer = f
	_, err := w.Write([]byte("\na Car\n  without fuel\n    ✓ cannot move"))
	require.NoError(t, err)
	_, err = w.Write([]byte("\n    ✓ reports empty tank"))
	require.NoError(t, err)
	f.Finish(0)

	got := drain(f)
	assert.Equal(t, []string{
		"",
		"a Car",
		"  without fuel",
		"    ✓ cannot move",
		"    ✓ reports empty tank",
	}, got)
	assert.Equal(t, 0, <-f.done)
}

func TestFeed_HoldsPartialLine_Until_NextBreak(t *testing.T) {
	t.Parallel()

	f := NewFeed()
	_, err := f.Write([]byte("\n  ✓ first"))
	require.NoError(t, err)

	// Only the completed (empty) first segment is out so far.
	assert.Equal(t, "", <-f.lines)
	select {
	case line := <-f.lines:
		t.Fatalf("unexpected line before break: %q", line)
	default:
	}

	_, err = f.Write([]byte("\n  ✓ second"))
	require.NoError(t, err)
	assert.Equal(t, "  ✓ first", <-f.lines)
}

func TestFeed_TracksActiveTest(t *testing.T) {
	t.Parallel()

	f := NewFeed()
	f.SetActive("pkg/car", "TestCar/WithoutFuel/test_cannot_move")
	pkg, test := f.Active()
	assert.Equal(t, "pkg/car", pkg)
	assert.Equal(t, "TestCar/WithoutFuel/test_cannot_move", test)
}
