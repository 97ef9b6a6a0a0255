package model

// carve is one level of the backtracker: the cell being expanded, its
// directions in shuffled order and how many of them were tried already.
type carve struct {
	pos  Position
	dirs [4]Dir
	next int
}

// Generate carves a maze into a cols x rows grid of walls, starting at the
// origin and stepping two cells at a time so rooms sit on even coordinates.
// Every open cell is reachable from the origin.
func Generate(cols, rows int, rng Rand) *Grid {
	g := NewGrid(cols, rows)
	stack := []carve{enter(g, Position{}, rng)}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}
		d := top.dirs[top.next]
		top.next++

		between := top.pos.Step(d)
		target := between.Step(d)
		if !g.In(target) || !g.Walls[g.Index(target)] {
			continue
		}
		g.SetOpen(between, true)
		stack = append(stack, enter(g, target, rng))
	}
	return g
}

func enter(g *Grid, p Position, rng Rand) carve {
	g.SetOpen(p, true)
	c := carve{pos: p, dirs: Dirs}
	rng.Shuffle(len(c.dirs), func(i, j int) {
		c.dirs[i], c.dirs[j] = c.dirs[j], c.dirs[i]
	})
	return c
}
