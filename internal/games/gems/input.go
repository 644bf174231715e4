package gems

import (
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/match3"
)

// handleInput applies one frame of input. Gestures reach the controller,
// which ignores them while a cycle runs; the cursor always moves.
func (g *Game) handleInput(in core.InputFrame, busy bool) {
	if in.Has(core.ActionHint) && !busy {
		g.showHint()
	}

	for _, ev := range in.Pointer {
		g.handlePointer(ev)
	}

	dx, dy := 0, 0
	switch {
	case in.Has(core.ActionLeft):
		dx = -1
	case in.Has(core.ActionRight):
		dx = 1
	case in.Has(core.ActionUp):
		dy = 1
	case in.Has(core.ActionDown):
		dy = -1
	}
	if dx != 0 || dy != 0 {
		g.moveCursor(dx, dy)
	}

	if in.Has(core.ActionSelect) {
		g.selectAtCursor()
	}
	if in.Has(core.ActionCancel) {
		g.ctrl.Cancel()
	}
}

func (g *Game) showHint() {
	swaps := g.resolver.Detector().FindSwaps()
	if len(swaps) == 0 {
		return
	}
	sw := swaps[int(g.tick)%len(swaps)]
	g.hint = &sw
	g.hintLeft = hintDuration
}

// moveCursor moves the keyboard cursor, dragging the held tile along.
func (g *Game) moveCursor(dx, dy int) {
	g.cursor = match3.C(
		core.Clamp(g.cursor.X+dx, 0, g.board.Width()-1),
		core.Clamp(g.cursor.Y+dy, 0, g.board.Height()-1),
	)
	if _, held := g.ctrl.Selection().First(); held {
		g.ctrl.DragToTile(g.cursor)
	}
}

// selectAtCursor is the keyboard form of click and release: the first
// press picks a tile, a press on a neighbour swaps with it, a press on the
// same tile drops it and a press elsewhere picks the new tile instead.
func (g *Game) selectAtCursor() {
	sel := g.ctrl.Selection()
	first, held := sel.First()
	switch {
	case !held:
		g.ctrl.ClickTile(g.cursor)
	case first == g.cursor:
		g.ctrl.Cancel()
	case match3.IsAdjacent(first, g.cursor):
		g.ctrl.DragToTile(g.cursor)
		g.release()
	default:
		g.ctrl.Cancel()
		g.ctrl.ClickTile(g.cursor)
	}
}

func (g *Game) handlePointer(ev core.PointerEvent) {
	cell, onBoard := g.cellAt(ev.X, ev.Y)
	switch ev.Kind {
	case core.PointerPress:
		g.ctrl.Cancel()
		if onBoard {
			g.cursor = cell
			g.ctrl.ClickTile(cell)
		}
	case core.PointerMotion:
		if onBoard {
			g.ctrl.DragToTile(cell)
		}
	case core.PointerRelease:
		g.release()
	}
}

// release ends the held gesture and starts the swap it describes.
func (g *Game) release() {
	sel := g.ctrl.Selection()
	first, _ := sel.First()
	target, targeted := sel.Second()
	if g.ctrl.ReleaseTile() {
		g.inFlight++
		g.hint = nil
		g.message = ""
		return
	}
	if targeted {
		g.log.Debug("swap refused", "a", first, "b", target)
		g.message = "Can't swap there"
	}
}
