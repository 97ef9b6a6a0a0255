package model

import (
	"container/heap"
	"fmt"

	"github.com/kamstrup/intmap"
)

// InvalidGridError is returned when a path query starts or ends outside the
// grid or inside a wall.
type InvalidGridError struct {
	Pos    Position
	Reason string
}

func (e *InvalidGridError) Error() string {
	return fmt.Sprintf("invalid path endpoint %v: %s", e.Pos, e.Reason)
}

func checkEndpoint(g *Grid, p Position) error {
	if !g.In(p) {
		return &InvalidGridError{Pos: p, Reason: "out of bounds"}
	}
	if g.Walls[g.Index(p)] {
		return &InvalidGridError{Pos: p, Reason: "wall"}
	}
	return nil
}

type frontierNode struct {
	idx  int
	f, h int
	seq  int
}

// frontier orders by f, then by h so nodes closer to the goal win, then by
// insertion order.
type frontier []frontierNode

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].h != q[j].h {
		return q[i].h < q[j].h
	}
	return q[i].seq < q[j].seq
}

func (q frontier) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x interface{}) { *q = append(*q, x.(frontierNode)) }

func (q *frontier) Pop() interface{} {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}

// ShortestPath runs A* with a Manhattan heuristic over open cells. The
// result starts at start and ends at goal. It is empty when goal cannot be
// reached.
func ShortestPath(g *Grid, start, goal Position) ([]Position, error) {
	if err := checkEndpoint(g, start); err != nil {
		return nil, err
	}
	if err := checkEndpoint(g, goal); err != nil {
		return nil, err
	}
	if start == goal {
		return []Position{start}, nil
	}

	startIdx, goalIdx := g.Index(start), g.Index(goal)
	score := intmap.New[int, int](64)
	from := intmap.New[int, int](64)
	closed := intmap.NewSet[int](64)

	open := &frontier{}
	h := start.Manhattan(goal)
	heap.Push(open, frontierNode{idx: startIdx, f: h, h: h})
	score.Put(startIdx, 0)
	seq := 0

	for open.Len() > 0 {
		cur := heap.Pop(open).(frontierNode)
		if cur.idx == goalIdx {
			return rebuild(g, from, startIdx, goalIdx), nil
		}
		if !closed.Add(cur.idx) {
			continue
		}
		pos := g.At(cur.idx)
		curScore, _ := score.Get(cur.idx)
		for _, d := range Dirs {
			n := pos.Step(d)
			if !g.Open(n) {
				continue
			}
			ni := g.Index(n)
			if closed.Has(ni) {
				continue
			}
			tentative := curScore + 1
			if old, ok := score.Get(ni); ok && old <= tentative {
				continue
			}
			score.Put(ni, tentative)
			from.Put(ni, cur.idx)
			seq++
			nh := n.Manhattan(goal)
			heap.Push(open, frontierNode{idx: ni, f: tentative + nh, h: nh, seq: seq})
		}
	}
	return nil, nil
}

func rebuild(g *Grid, from *intmap.Map[int, int], startIdx, goalIdx int) []Position {
	path := []Position{g.At(goalIdx)}
	for cur := goalIdx; cur != startIdx; {
		cur, _ = from.Get(cur)
		path = append(path, g.At(cur))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// CompositePath joins the shortest paths between consecutive waypoints into
// one walk. Each joint cell appears once. If any leg is unreachable the
// whole result is empty.
func CompositePath(g *Grid, waypoints []Position) ([]Position, error) {
	if len(waypoints) == 0 {
		return nil, nil
	}
	if len(waypoints) == 1 {
		if err := checkEndpoint(g, waypoints[0]); err != nil {
			return nil, err
		}
		return []Position{waypoints[0]}, nil
	}
	full := make([]Position, 0, len(waypoints)*g.Cols)
	for i := 1; i < len(waypoints); i++ {
		leg, err := ShortestPath(g, waypoints[i-1], waypoints[i])
		if err != nil {
			return nil, fmt.Errorf("leg %d %v->%v: %w", i, waypoints[i-1], waypoints[i], err)
		}
		if len(leg) == 0 {
			return nil, nil
		}
		if i > 1 {
			leg = leg[1:]
		}
		full = append(full, leg...)
	}
	return full, nil
}

// Distances floods the open region around from and returns the step count
// to every cell, -1 for cells that cannot be reached.
func Distances(g *Grid, from Position) []int {
	dist := make([]int, len(g.Walls))
	for i := range dist {
		dist[i] = -1
	}
	if !g.Open(from) {
		return dist
	}
	dist[g.Index(from)] = 0
	queue := []Position{from}
	var next []Position
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		next = g.Neighbours(cur, next[:0])
		for _, n := range next {
			ni := g.Index(n)
			if dist[ni] >= 0 {
				continue
			}
			dist[ni] = dist[g.Index(cur)] + 1
			queue = append(queue, n)
		}
	}
	return dist
}
