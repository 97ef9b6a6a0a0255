package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Layout runes. Keys and doors pair up in reading order.
const (
	RuneWall   = '#'
	RuneOpen   = '.'
	RuneOrigin = '@'
	RuneKey    = 'K'
	RuneDoor   = 'D'
	RuneOpened = 'd'
	RuneDecoy  = 'X'
	RuneBoost  = 'B'
)

func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.Walls[r*g.Cols+c] {
				b.WriteRune(RuneWall)
			} else {
				b.WriteRune(RuneOpen)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render draws the world as text with the player at player. Collected
// keys, hidden decoys and consumed boosts are left out.
func (w *World) Render(player Position) string {
	g := w.Grid
	cells := []rune(strings.ReplaceAll(g.String(), "\n", ""))
	set := func(p Position, r rune) {
		if g.In(p) {
			cells[g.Index(p)] = r
		}
	}
	for _, b := range w.Boosts {
		if !b.Consumed {
			set(b.Pos, RuneBoost)
		}
	}
	for _, d := range w.Decoys {
		if d.Visible {
			set(d.Pos, RuneDecoy)
		}
	}
	for _, k := range w.Keys {
		if !k.Collected {
			set(k.Pos, RuneKey)
		}
	}
	for _, d := range w.Doors {
		if d.Unlocked {
			set(d.Pos, RuneOpened)
		} else {
			set(d.Pos, RuneDoor)
		}
	}
	set(player, RuneOrigin)

	var b strings.Builder
	for r := 0; r < g.Rows; r++ {
		b.WriteString(string(cells[r*g.Cols : (r+1)*g.Cols]))
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseLayout reads a world drawn with the layout runes. Blank lines are
// skipped, every other line is one row and all rows must be equally wide.
// Without an @ the origin is the top left cell.
func ParseLayout(reader io.Reader) (*World, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)

	var rows [][]rune
	var lines []int
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimRight(scanner.Text(), " \t\r")
		if s == "" {
			continue
		}
		row := []rune(s)
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("line %d: width %d, expected %d", line, len(row), len(rows[0]))
		}
		rows = append(rows, row)
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty layout")
	}

	grid := NewGrid(len(rows[0]), len(rows))
	w := &World{Grid: grid}
	for r, row := range rows {
		for c, char := range row {
			p := Position{Row: r, Col: c}
			if char != RuneWall {
				grid.SetOpen(p, true)
			}
			switch char {
			case RuneWall, RuneOpen:
			case RuneOrigin:
				w.Origin = p
			case RuneKey:
				w.Keys = append(w.Keys, Key{Pos: p})
			case RuneDoor:
				w.Doors = append(w.Doors, Door{Pos: p})
			case RuneOpened:
				w.Doors = append(w.Doors, Door{Pos: p, Unlocked: true})
			case RuneDecoy:
				w.Decoys = append(w.Decoys, Decoy{Pos: p, Visible: true})
			case RuneBoost:
				w.Boosts = append(w.Boosts, Boost{Pos: p})
			default:
				return nil, fmt.Errorf("line %d col %d: unknown rune %q", lines[r], c+1, char)
			}
		}
	}
	return w, nil
}

// LoadLayout reads a fixed maze from a layout file.
func LoadLayout(path string) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()
	world, err := ParseLayout(f)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return world, nil
}
