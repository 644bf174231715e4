package match3

import (
	"fmt"
	"strings"
)

// MatchValue is the category a piece is matched on.
type MatchValue int

const (
	ValueNone MatchValue = iota
	Red
	Orange
	Yellow
	Green
	Blue
	Purple
	Cyan
	White
	// Wild is declared for completeness but matches nothing, not even
	// another Wild.
	Wild
)

var valueNames = map[MatchValue]string{
	ValueNone: "none",
	Red:       "red",
	Orange:    "orange",
	Yellow:    "yellow",
	Green:     "green",
	Blue:      "blue",
	Purple:    "purple",
	Cyan:      "cyan",
	White:     "white",
	Wild:      "wild",
}

// String returns the lowercase name of the value.
func (v MatchValue) String() string {
	if name, ok := valueNames[v]; ok {
		return name
	}
	return fmt.Sprintf("value(%d)", int(v))
}

// Symbol returns the single-letter code used in ASCII layouts.
func (v MatchValue) Symbol() byte {
	switch v {
	case Red:
		return 'R'
	case Orange:
		return 'O'
	case Yellow:
		return 'Y'
	case Green:
		return 'G'
	case Blue:
		return 'B'
	case Purple:
		return 'P'
	case Cyan:
		return 'C'
	case White:
		return 'W'
	case Wild:
		return '*'
	default:
		return '.'
	}
}

// Matches reports whether two values form part of the same run.
func (v MatchValue) Matches(other MatchValue) bool {
	if v == ValueNone || v == Wild {
		return false
	}
	return v == other
}

// ParseMatchValue converts a name (case-insensitive) to a MatchValue.
func ParseMatchValue(name string) (MatchValue, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for v, n := range valueNames {
		if n == name && v != ValueNone {
			return v, true
		}
	}
	return ValueNone, false
}

// StandardValues lists the playable colors in palette order.
func StandardValues() []MatchValue {
	return []MatchValue{Red, Orange, Yellow, Green, Blue, Purple, Cyan, White}
}

// TileKind is the behavior of a board cell.
type TileKind int

const (
	TileNormal TileKind = iota
	TileObstacle
	TileBreakable
)

// String returns the name of the tile kind.
func (k TileKind) String() string {
	switch k {
	case TileNormal:
		return "normal"
	case TileObstacle:
		return "obstacle"
	case TileBreakable:
		return "breakable"
	default:
		return "unknown"
	}
}

// ParseTileKind converts a name to a TileKind.
func ParseTileKind(name string) (TileKind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "normal", "":
		return TileNormal, true
	case "obstacle":
		return TileObstacle, true
	case "breakable":
		return TileBreakable, true
	default:
		return TileNormal, false
	}
}

// Tile is the static layer of a cell. Only Kind and BreakLife change
// after construction.
type Tile struct {
	Cell      Cell
	Kind      TileKind
	BreakLife int
}

// Blocks reports whether the tile refuses pieces.
func (t Tile) Blocks() bool {
	return t.Kind == TileObstacle
}

// Piece is a movable game piece.
// While registered on a board, Cell always equals the slot holding it.
type Piece struct {
	ID    int
	Value MatchValue
	Cell  Cell
}

// String returns a short description of the piece.
func (p *Piece) String() string {
	if p == nil {
		return "<nil>"
	}
	return fmt.Sprintf("#%d %s@%s", p.ID, p.Value, p.Cell)
}

// TileOverride replaces the default tile at one cell during board setup.
type TileOverride struct {
	Cell      Cell
	Kind      TileKind
	BreakLife int
}
