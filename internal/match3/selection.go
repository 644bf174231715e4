package match3

// SelectionPhase is the state of a click/drag/release gesture.
type SelectionPhase int

const (
	SelectNone   SelectionPhase = iota // nothing held
	SelectFirst                        // a tile is clicked
	SelectSecond                       // an adjacent target is chosen
)

// Selection tracks one click/drag/release gesture. It knows nothing about
// pieces or input devices.
type Selection struct {
	phase  SelectionPhase
	first  Cell
	second Cell
}

// Phase returns the current phase.
func (s Selection) Phase() SelectionPhase {
	return s.phase
}

// First returns the clicked cell, if any.
func (s Selection) First() (Cell, bool) {
	return s.first, s.phase != SelectNone
}

// Second returns the drag target, if any.
func (s Selection) Second() (Cell, bool) {
	return s.second, s.phase == SelectSecond
}

// Click starts a gesture. It is ignored while one is already held.
func (s *Selection) Click(c Cell) {
	if s.phase != SelectNone {
		return
	}
	s.first = c
	s.phase = SelectFirst
}

// DragTo picks c as the target when it is adjacent to the clicked cell.
// A later adjacent drag replaces the target; a non-adjacent one is ignored.
func (s *Selection) DragTo(c Cell) {
	if s.phase == SelectNone || !IsAdjacent(s.first, c) {
		return
	}
	s.second = c
	s.phase = SelectSecond
}

// Release ends the gesture. It returns the pair to swap when a target was
// chosen. The selection is always cleared.
func (s *Selection) Release() (Swap, bool) {
	sw, ok := Swap{A: s.first, B: s.second}, s.phase == SelectSecond
	s.Reset()
	return sw, ok
}

// Reset drops any held gesture.
func (s *Selection) Reset() {
	*s = Selection{}
}

// Controller turns tile gestures into resolver swaps.
// It is driven from a single input goroutine.
type Controller struct {
	sel      Selection
	resolver *Resolver
	done     func(CascadeReport)
}

// NewController creates a controller for r. done is called when a started
// cycle finishes.
func NewController(r *Resolver, done func(CascadeReport)) *Controller {
	return &Controller{resolver: r, done: done}
}

// Selection returns the gesture currently held.
func (c *Controller) Selection() Selection {
	return c.sel
}

// ClickTile starts a gesture at cell. Input is ignored while a cycle runs.
func (c *Controller) ClickTile(cell Cell) {
	if c.resolver.Busy() {
		return
	}
	c.sel.Click(cell)
}

// DragToTile chooses the swap target.
func (c *Controller) DragToTile(cell Cell) {
	if c.resolver.Busy() {
		return
	}
	c.sel.DragTo(cell)
}

// ReleaseTile ends the gesture and starts the swap it describes.
// It reports whether a cycle was started.
func (c *Controller) ReleaseTile() bool {
	sw, ok := c.sel.Release()
	if !ok {
		return false
	}
	return c.resolver.SwapAsync(sw.A, sw.B, c.done)
}

// Cancel drops any held gesture without swapping.
func (c *Controller) Cancel() {
	c.sel.Reset()
}
