package match3

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionMachine(t *testing.T) {
	var s Selection
	assert.Equal(t, SelectNone, s.Phase())

	s.DragTo(C(1, 1))
	assert.Equal(t, SelectNone, s.Phase(), "drag without click")

	s.Click(C(1, 1))
	assert.Equal(t, SelectFirst, s.Phase())
	first, ok := s.First()
	assert.True(t, ok)
	assert.Equal(t, C(1, 1), first)

	s.Click(C(4, 4))
	first, _ = s.First()
	assert.Equal(t, C(1, 1), first, "second click ignored")

	s.DragTo(C(3, 1))
	assert.Equal(t, SelectFirst, s.Phase(), "non-adjacent drag ignored")

	s.DragTo(C(2, 1))
	assert.Equal(t, SelectSecond, s.Phase())
	s.DragTo(C(1, 2))
	second, ok := s.Second()
	assert.True(t, ok)
	assert.Equal(t, C(1, 2), second, "later adjacent drag retargets")

	sw, ok := s.Release()
	assert.True(t, ok)
	assert.Equal(t, Swap{A: C(1, 1), B: C(1, 2)}, sw)
	assert.Equal(t, SelectNone, s.Phase())
}

func TestSelectionReleaseWithoutTarget(t *testing.T) {
	var s Selection
	s.Click(C(0, 0))
	_, ok := s.Release()
	assert.False(t, ok)
	assert.Equal(t, SelectNone, s.Phase())

	_, ok = s.Release()
	assert.False(t, ok)
}

func TestControllerStartsSwap(t *testing.T) {
	b := layoutBoard(t, eightByEight...)
	done := make(chan CascadeReport, 1)
	r := newTestResolver(t, b, nil, 7)
	c := NewController(r, func(rep CascadeReport) { done <- rep })

	c.ClickTile(C(2, 3))
	c.DragToTile(C(2, 2))
	require.True(t, c.ReleaseTile())

	select {
	case rep := <-done:
		assert.True(t, rep.Matched)
		assert.Equal(t, Swap{A: C(2, 3), B: C(2, 2)}, rep.Swap)
	case <-time.After(5 * time.Second):
		t.Fatal("swap did not complete")
	}
	assert.Equal(t, SelectNone, c.Selection().Phase())
	requireStable(t, b)
}

func TestControllerIgnoresInputWhileBusy(t *testing.T) {
	b := layoutBoard(t, eightByEight...)
	pres := newGatedPresenter()
	r := newTestResolver(t, b, pres, 7)
	c := NewController(r, nil)

	require.True(t, r.SwapAsync(C(2, 2), C(2, 3), nil))
	<-pres.moves

	c.ClickTile(C(0, 0))
	c.DragToTile(C(1, 0))
	assert.Equal(t, SelectNone, c.Selection().Phase())
	assert.False(t, c.ReleaseTile())

	close(pres.gate)
	go func() {
		for range pres.moves {
		}
	}()
	require.Eventually(t, func() bool { return !r.Busy() }, 5*time.Second, 5*time.Millisecond)
}

func TestControllerRejectedSwap(t *testing.T) {
	b := layoutBoard(t, eightByEight...)
	r := newTestResolver(t, b, nil, 7)
	c := NewController(r, nil)

	c.ClickTile(C(0, 0))
	c.DragToTile(C(0, 0))
	assert.False(t, c.ReleaseTile(), "no target chosen")

	c.ClickTile(C(0, 0))
	c.Cancel()
	assert.Equal(t, SelectNone, c.Selection().Phase())
}
