package gems

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/match3"
)

const (
	cellWidth  = 4 // columns per board cell
	cellHeight = 2 // rows per board cell: piece row and tile row
	hudTop     = 2 // title and counters
	hudBottom  = 2 // message and the platform's help line
)

var valueColors = map[match3.MatchValue]core.Color{
	match3.Red:    core.ColorBrightRed,
	match3.Orange: core.ColorOrange,
	match3.Yellow: core.ColorBrightYellow,
	match3.Green:  core.ColorBrightGreen,
	match3.Blue:   core.ColorBrightBlue,
	match3.Purple: core.ColorBrightMagenta,
	match3.Cyan:   core.ColorBrightCyan,
	match3.White:  core.ColorBrightWhite,
	match3.Wild:   core.ColorWhite,
}

// frame returns the board outline on screen.
func (g *Game) frame() core.Rect {
	w := g.board.Width()*cellWidth + 2
	h := g.board.Height()*cellHeight + 2
	return core.NewRect(max((g.screenW-w)/2, 0), hudTop, w, h)
}

// inner returns the area covered by cells.
func (g *Game) inner() core.Rect {
	f := g.frame()
	return core.NewRect(f.X+1, f.Y+1, f.W-2, f.H-2)
}

func (g *Game) tooSmall() bool {
	if g.board == nil {
		return false
	}
	f := g.frame()
	return g.screenW < f.W || g.screenH < f.Bottom()+hudBottom
}

// cellAt maps a screen position to the board cell under it.
// Board rows grow upwards; screen rows grow downwards.
func (g *Game) cellAt(sx, sy int) (match3.Cell, bool) {
	in := g.inner()
	if !in.Contains(sx, sy) {
		return match3.Cell{}, false
	}
	col := (sx - in.X) / cellWidth
	row := (sy - in.Y) / cellHeight
	return match3.C(col, g.board.Height()-1-row), true
}

// origin returns the top-left screen position of a board position, which
// may be fractional while a piece is moving.
func (g *Game) origin(x, y float64) (int, int) {
	in := g.inner()
	sx := in.X + int(math.Round(x*cellWidth))
	sy := in.Y + int(math.Round((float64(g.board.Height()-1)-y)*cellHeight))
	return sx, sy
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.board == nil {
		return
	}
	if g.tooSmall() {
		g.renderTooSmall(dst)
		return
	}

	dst.DrawBox(g.frame(), core.ColorGray)
	g.renderTiles(dst)
	g.renderPieces(dst)
	g.renderFlashes(dst)
	g.renderMarkers(dst)
	g.renderHUD(dst)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	f := g.frame()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("need %dx%d", f.W, f.Bottom()+hudBottom), core.ColorGray)
}

func (g *Game) renderTiles(dst *core.Screen) {
	for _, c := range g.board.Cells() {
		t, ok := g.anim.Tile(c)
		if !ok {
			continue
		}
		sx, sy := g.origin(float64(c.X), float64(c.Y))
		switch t.Kind {
		case match3.TileObstacle:
			for dy := range cellHeight {
				for dx := range cellWidth {
					dst.SetColored(sx+dx, sy+dy, '▓', core.ColorGray)
				}
			}
		case match3.TileBreakable:
			dst.SetColored(sx, sy+1, '░', core.ColorCyan)
			dst.SetColored(sx+1, sy+1, lifeGlyph(t.BreakLife), core.ColorCyan)
			dst.SetColored(sx+2, sy+1, '░', core.ColorCyan)
		}
	}
}

func lifeGlyph(life int) rune {
	if life > 9 {
		return '+'
	}
	return rune('0' + life)
}

func (g *Game) renderPieces(dst *core.Screen) {
	in := g.inner()
	for _, s := range g.anim.Sprites() {
		sx, sy := g.origin(s.X, s.Y)
		// Refills start above the board and slide in through the top edge.
		if sy < in.Y || sy >= in.Bottom() {
			continue
		}
		dst.SetColored(sx+1, sy, rune(s.Value.Symbol()), valueColors[s.Value])
	}
}

func (g *Game) renderFlashes(dst *core.Screen) {
	for _, f := range g.anim.Flashes() {
		sx, sy := g.origin(float64(f.Cell.X), float64(f.Cell.Y))
		dst.SetColored(sx+1, sy, f.Glyph, f.Color)
	}
}

// renderMarkers brackets the hint, the cursor and the held tiles.
// Later markers win.
func (g *Game) renderMarkers(dst *core.Screen) {
	bracket := func(c match3.Cell, l, r rune, color core.Color) {
		sx, sy := g.origin(float64(c.X), float64(c.Y))
		dst.SetColored(sx, sy, l, color)
		dst.SetColored(sx+2, sy, r, color)
	}

	if g.hint != nil {
		bracket(g.hint.A, '<', '>', core.ColorBrightCyan)
		bracket(g.hint.B, '<', '>', core.ColorBrightCyan)
	}
	bracket(g.cursor, '[', ']', core.ColorBrightWhite)

	sel := g.ctrl.Selection()
	if c, ok := sel.First(); ok {
		bracket(c, '[', ']', core.ColorBrightYellow)
	}
	if c, ok := sel.Second(); ok {
		bracket(c, '{', '}', core.ColorBrightYellow)
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	f := g.frame()

	dst.DrawTextCentered(0, g.title, core.ColorBrightWhite)
	counters := fmt.Sprintf("Swaps %d  Cleared %d  Chain %d", g.stats.Swaps, g.stats.Cleared, g.stats.LongestChain)
	if g.stats.TilesBroken > 0 {
		counters += fmt.Sprintf("  Broken %d", g.stats.TilesBroken)
	}
	dst.DrawTextCentered(1, counters, core.ColorGray)

	var msg string
	color := core.ColorDefault
	switch {
	case g.gameOver:
		msg, color = "No moves left - press R for a new board", core.ColorBrightRed
	case g.paused:
		msg, color = "Paused", core.ColorBrightYellow
	case g.resolver.Busy():
		msg, color = g.resolver.State().String()+"...", core.ColorGray
	default:
		msg = g.message
	}
	if msg != "" {
		dst.DrawTextCentered(f.Bottom(), msg, color)
	}
}
