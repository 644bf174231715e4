package match3

// DefaultMinLength is the shortest run that clears.
const DefaultMinLength = 3

// rayProbeLength is the length each half-ray must reach before it is
// merged with its opposite half.
const rayProbeLength = 2

// MatchSet is an insertion-ordered set of pieces.
type MatchSet struct {
	order []*Piece
	seen  map[*Piece]struct{}
}

// NewMatchSet creates a set holding the given pieces.
func NewMatchSet(pieces ...*Piece) MatchSet {
	var s MatchSet
	s.Add(pieces...)
	return s
}

// Add inserts pieces that are not already present. Nil pieces are ignored.
func (s *MatchSet) Add(pieces ...*Piece) {
	for _, p := range pieces {
		if p == nil {
			continue
		}
		if s.seen == nil {
			s.seen = make(map[*Piece]struct{})
		}
		if _, ok := s.seen[p]; ok {
			continue
		}
		s.seen[p] = struct{}{}
		s.order = append(s.order, p)
	}
}

// Union adds every piece of other.
func (s *MatchSet) Union(other MatchSet) {
	s.Add(other.order...)
}

// Contains reports whether p is in the set.
func (s MatchSet) Contains(p *Piece) bool {
	_, ok := s.seen[p]
	return ok
}

// Len returns the number of pieces.
func (s MatchSet) Len() int {
	return len(s.order)
}

// Empty reports whether the set has no pieces.
func (s MatchSet) Empty() bool {
	return len(s.order) == 0
}

// Pieces returns the pieces in insertion order.
func (s MatchSet) Pieces() []*Piece {
	out := make([]*Piece, len(s.order))
	copy(out, s.order)
	return out
}

// Detector finds runs of equal pieces on a board.
type Detector struct {
	board     *Board
	minLength int
}

// NewDetector creates a detector for b. WithMinLength changes the run
// length it accepts.
func NewDetector(b *Board, opts ...Option) *Detector {
	s := applyOptions(opts)
	return &Detector{board: b, minLength: s.minLength}
}

// MinLength returns the shortest run the detector accepts.
func (d *Detector) MinLength() int {
	return d.minLength
}

// RayMatch walks from origin in dir, collecting pieces equal to the origin
// piece. The walk stops at the board edge, an empty cell or a different
// value, and takes at most max(width, height)-1 steps. The run, origin
// included, is returned only when it is at least minLength long.
func (d *Detector) RayMatch(origin Cell, dir Direction, minLength int) []*Piece {
	start := d.board.PieceAt(origin.X, origin.Y)
	if start == nil {
		return nil
	}
	dir = dir.clamped()

	run := []*Piece{start}
	if dir != (Direction{}) {
		steps := max(d.board.Width(), d.board.Height()) - 1
		for i := 1; i <= steps; i++ {
			next := d.board.PieceAt(origin.X+dir.DX*i, origin.Y+dir.DY*i)
			if next == nil || !start.Value.Matches(next.Value) {
				break
			}
			run = append(run, next)
		}
	}

	if len(run) < minLength {
		return nil
	}
	return run
}

// MatchesAt returns the pieces in the horizontal and vertical runs through
// (x, y). Each axis merges its two half-rays and counts only when the merged
// run reaches the minimum length.
func (d *Detector) MatchesAt(x, y int) MatchSet {
	var out MatchSet
	p := d.board.PieceAt(x, y)
	if p == nil || !p.Value.Matches(p.Value) {
		return out
	}
	origin := C(x, y)
	out.Union(d.axis(origin, Left, Right))
	out.Union(d.axis(origin, Up, Down))
	return out
}

func (d *Detector) axis(origin Cell, a, b Direction) MatchSet {
	run := NewMatchSet(d.RayMatch(origin, a, rayProbeLength)...)
	run.Add(d.RayMatch(origin, b, rayProbeLength)...)
	if run.Len() < d.minLength {
		return MatchSet{}
	}
	return run
}

// MatchesAtPieces returns the union of MatchesAt over the cells of pieces.
func (d *Detector) MatchesAtPieces(pieces []*Piece) MatchSet {
	var out MatchSet
	for _, p := range pieces {
		if p == nil {
			continue
		}
		out.Union(d.MatchesAt(p.Cell.X, p.Cell.Y))
	}
	return out
}

// MatchesOnFill checks only the left and downward rays from (x, y): during
// a fill those are the neighbours already populated.
func (d *Detector) MatchesOnFill(x, y int) MatchSet {
	var out MatchSet
	p := d.board.PieceAt(x, y)
	if p == nil || !p.Value.Matches(p.Value) {
		return out
	}
	origin := C(x, y)
	out.Add(d.RayMatch(origin, Left, d.minLength)...)
	out.Add(d.RayMatch(origin, Down, d.minLength)...)
	return out
}

// AllMatches scans every cell of the board.
func (d *Detector) AllMatches() MatchSet {
	var out MatchSet
	for _, c := range d.board.Cells() {
		out.Union(d.MatchesAt(c.X, c.Y))
	}
	return out
}
