package model

import "fmt"

type Position struct {
	Row, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

func (p Position) Step(d Dir) Position {
	s := steps[d]
	return Position{Row: p.Row + s.Row, Col: p.Col + s.Col}
}

// Manhattan returns the grid distance between p and o ignoring walls.
func (p Position) Manhattan(o Position) int {
	return abs(p.Row-o.Row) + abs(p.Col-o.Col)
}

// Adjacent reports whether o is one orthogonal step away from p.
func (p Position) Adjacent(o Position) bool {
	return p.Manhattan(o) == 1
}

// Dir indexes follow the path order of a cell: right, down, left, up.
// (d+2)%4 is always the opposite direction.
type Dir int

const (
	RIGHT Dir = iota
	DOWN
	LEFT
	UP
)

var steps = [4]Position{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

var Dirs = [4]Dir{RIGHT, DOWN, LEFT, UP}

func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

func (d Dir) Horizontal() bool {
	return d == LEFT || d == RIGHT
}

func (d Dir) Name() string {
	switch d {
	case RIGHT:
		return "RIGHT"
	case DOWN:
		return "DOWN"
	case LEFT:
		return "LEFT"
	case UP:
		return "UP"
	default:
		return fmt.Sprintf("N/A(%d)", d)
	}
}

// Grid is a row-major wall map. Cells not marked as walls are open.
type Grid struct {
	Cols, Rows int
	Walls      []bool
}

// NewGrid returns a grid with every cell set to wall.
func NewGrid(cols, rows int) *Grid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	walls := make([]bool, cols*rows)
	for i := range walls {
		walls[i] = true
	}
	return &Grid{Cols: cols, Rows: rows, Walls: walls}
}

func (g *Grid) In(p Position) bool {
	return p.Row >= 0 && p.Row < g.Rows && p.Col >= 0 && p.Col < g.Cols
}

func (g *Grid) Index(p Position) int {
	return p.Row*g.Cols + p.Col
}

func (g *Grid) At(i int) Position {
	return Position{Row: i / g.Cols, Col: i % g.Cols}
}

// Open reports whether p is inside the grid and walkable.
func (g *Grid) Open(p Position) bool {
	return g.In(p) && !g.Walls[g.Index(p)]
}

func (g *Grid) Wall(p Position) bool {
	return !g.Open(p)
}

func (g *Grid) SetOpen(p Position, open bool) {
	g.Walls[g.Index(p)] = !open
}

// OpenCells lists every walkable cell in row-major order.
func (g *Grid) OpenCells() []Position {
	cells := make([]Position, 0, len(g.Walls)/2)
	for i, w := range g.Walls {
		if !w {
			cells = append(cells, g.At(i))
		}
	}
	return cells
}

// Neighbours appends the open cells orthogonally adjacent to p.
func (g *Grid) Neighbours(p Position, dst []Position) []Position {
	for _, d := range Dirs {
		n := p.Step(d)
		if g.Open(n) {
			dst = append(dst, n)
		}
	}
	return dst
}

type Player struct {
	Pos    Position
	Facing Dir
	// Transit counts the ticks left before the current move completes.
	Transit int
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
