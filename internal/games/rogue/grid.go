package rogue

import (
	"sort"

	"github.com/vovakirdan/brickrogue/internal/config"
)

type fallRequest struct {
	col, row int
}

// Grid owns the bricks of the current wave. It lets bricks above a gap
// fall one row, merges equal neighbours once a fall batch lands and
// shifts everything down under time pressure.
//
// Fall batches are serialized: while one is in flight the grid is busy
// and further requests wait in order.
type Grid struct {
	cfg   config.BricksConfig
	sched *Scheduler

	bricks []*Brick
	nextID int
	offset float64 // time-pressure descent in pixels

	busy     bool
	inFlight int
	queue    []fallRequest
	gen      int

	// OnMerge is called after upper was merged into lower.
	OnMerge func(upper, lower *Brick)
	// OnSettle is called when the last queued fall batch has landed.
	OnSettle func()
}

// NewGrid creates an empty grid that schedules falls on sched.
func NewGrid(cfg config.BricksConfig, sched *Scheduler) *Grid {
	return &Grid{cfg: cfg, sched: sched}
}

// Load replaces the grid contents with a generated layout.
func (g *Grid) Load(layout []Placement) []*Brick {
	g.Clear()
	for _, p := range layout {
		g.Add(p.Kind, p.Col, p.Row)
	}
	return g.bricks
}

// Add places a single brick with its kind's base stats.
func (g *Grid) Add(kind BrickKind, col, row int) *Brick {
	g.nextID++
	b := NewBrick(g.nextID, kind, KindStats(g.cfg.Kinds, kind), col, row)
	g.bricks = append(g.bricks, b)
	g.place(b)
	return b
}

// Clear removes every brick and drops pending falls.
func (g *Grid) Clear() {
	g.bricks = g.bricks[:0]
	g.offset = 0
	g.busy = false
	g.inFlight = 0
	g.queue = g.queue[:0]
	g.gen++
}

// Bricks returns the active bricks in creation order.
func (g *Grid) Bricks() []*Brick {
	return g.bricks
}

// Get returns the active brick with the given id, or nil.
func (g *Grid) Get(id int) *Brick {
	for _, b := range g.bricks {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Remove takes a brick out of the grid.
func (g *Grid) Remove(b *Brick) {
	for i, other := range g.bricks {
		if other == b {
			g.bricks = append(g.bricks[:i], g.bricks[i+1:]...)
			return
		}
	}
}

// Busy reports whether a fall batch is in flight or queued.
func (g *Grid) Busy() bool {
	return g.busy || len(g.queue) > 0
}

// Offset returns the time-pressure descent applied to every brick.
func (g *Grid) Offset() float64 {
	return g.offset
}

// CellCenter returns the pixel centre of a grid cell before descent.
func (g *Grid) CellCenter(col, row int) (x, y float64) {
	x = g.cfg.Side + float64(col)*(g.cfg.Width+g.cfg.Padding) + g.cfg.Width/2
	y = g.cfg.Top + float64(row)*(g.cfg.Height+g.cfg.Padding) + g.cfg.Height/2
	return x, y
}

// GapRow returns the row a destroyed brick leaves empty. A brick that was
// mid-fall leaves the row it was heading for.
func GapRow(b *Brick) int {
	if b.Falling {
		return b.FallTo
	}
	return b.Row
}

// RequestFall lets every brick above (col, row) drop one row.
func (g *Grid) RequestFall(col, row int) {
	req := fallRequest{col: col, row: row}
	if g.busy {
		g.queue = append(g.queue, req)
		return
	}
	g.startFall(req)
	if !g.busy {
		g.drain()
	}
}

func (g *Grid) startFall(req fallRequest) {
	var above []*Brick
	for _, b := range g.bricks {
		if b.Col == req.col && b.Row < req.row {
			above = append(above, b)
		}
	}
	if len(above) == 0 {
		return
	}
	sort.SliceStable(above, func(i, j int) bool {
		return above[i].Row > above[j].Row
	})

	g.busy = true
	g.inFlight = len(above)
	gen := g.gen
	for _, b := range above {
		b.Falling = true
		b.FallTo = b.Row + 1
		b.fallStart = g.sched.Now()
		g.sched.After(g.cfg.FallDuration, func() {
			if gen == g.gen {
				g.land(b, req.col)
			}
		})
	}
}

func (g *Grid) land(b *Brick, col int) {
	b.Row = b.FallTo
	b.Falling = false
	g.place(b)

	g.inFlight--
	if g.inFlight > 0 {
		return
	}
	g.busy = false
	g.CheckMerges(col)
	g.drain()
	if !g.busy && g.OnSettle != nil {
		g.OnSettle()
	}
}

// drain starts queued batches until one is in flight or none remain.
func (g *Grid) drain() {
	for !g.busy && len(g.queue) > 0 {
		req := g.queue[0]
		g.queue = g.queue[1:]
		g.startFall(req)
	}
}

// CheckMerges scans one column top to bottom and merges each upper brick
// into an adjacent lower brick of the same kind. A merged brick can merge
// again with the next one down in the same scan. It returns the number
// of merges.
func (g *Grid) CheckMerges(col int) int {
	var column []*Brick
	for _, b := range g.bricks {
		if b.Col == col && !b.Falling {
			column = append(column, b)
		}
	}
	sort.SliceStable(column, func(i, j int) bool {
		return column[i].Row < column[j].Row
	})

	merged := 0
	for i := 0; i+1 < len(column); i++ {
		upper, lower := column[i], column[i+1]
		if lower.Row != upper.Row+1 || upper.Kind != lower.Kind {
			continue
		}
		if upper.Kind.IsExplosive() || upper.Indestructible() {
			continue
		}
		g.Remove(upper)
		lower.SetMergeLevel(upper.Level+lower.Level+1, g.cfg.MergeBonus)
		merged++
		if g.OnMerge != nil {
			g.OnMerge(upper, lower)
		}
	}
	return merged
}

// Descend shifts every brick down by dy pixels.
func (g *Grid) Descend(dy float64) {
	if dy <= 0 {
		return
	}
	g.offset += dy
	g.Refresh()
}

// LowestEdge returns the largest bottom edge of any brick, or zero when
// the grid is empty.
func (g *Grid) LowestEdge() float64 {
	lowest := 0.0
	for _, b := range g.bricks {
		lowest = max(lowest, b.Y+g.cfg.Height/2)
	}
	return lowest
}

// Refresh recomputes pixel positions, including bricks mid-fall.
func (g *Grid) Refresh() {
	for _, b := range g.bricks {
		g.place(b)
	}
}

func (g *Grid) place(b *Brick) {
	x, y := g.CellCenter(b.Col, b.Row)
	if b.Falling {
		p := 1.0
		if g.cfg.FallDuration > 0 {
			p = min(float64(g.sched.Now()-b.fallStart)/float64(g.cfg.FallDuration), 1)
		}
		eased := 1 - (1-p)*(1-p)
		y += eased * (g.cfg.Height + g.cfg.Padding)
	}
	b.X = x
	b.Y = y + g.offset
}
