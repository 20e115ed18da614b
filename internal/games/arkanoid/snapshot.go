package arkanoid

import "math"

// Snapshot is a flat copy of the simulation state, used to compare runs.
// Floats are stored as their bit patterns so equal snapshots hash equally.
type Snapshot struct {
	Tick       uint64
	State      string
	Score      int
	Lives      int
	LevelIndex int
	NowNanos   int64

	PaddleX, PaddleW uint64

	// Each ball is 4 values: X, Y, VX, VY.
	BallData []uint64

	// Each drop is 3 values: Kind, X, Y.
	DropData []uint64

	// Each bullet is 2 values: X, Y.
	BulletData []uint64

	// One value per slot: remaining HP, 0 for an empty slot.
	BrickData []int
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       g.tick,
		State:      g.state.String(),
		Score:      g.score,
		Lives:      g.lives,
		LevelIndex: g.levelIndex,
		NowNanos:   int64(g.now),
		PaddleX:    math.Float64bits(g.paddle.X),
		PaddleW:    math.Float64bits(g.paddle.W),
	}
	for _, b := range g.balls {
		snap.BallData = append(snap.BallData,
			math.Float64bits(b.X), math.Float64bits(b.Y),
			math.Float64bits(b.VX), math.Float64bits(b.VY))
	}
	for _, d := range g.drops.Drops() {
		snap.DropData = append(snap.DropData,
			uint64(d.Kind), math.Float64bits(d.X), math.Float64bits(d.Y)) //#nosec G115 -- small enum
	}
	for _, b := range g.shots.Bullets() {
		snap.BulletData = append(snap.BulletData, math.Float64bits(b.X), math.Float64bits(b.Y))
	}
	if g.level != nil {
		snap.BrickData = make([]int, g.level.Len())
		for i := range snap.BrickData {
			if b := g.level.Brick(i); b != nil {
				snap.BrickData[i] = b.HP()
			}
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.Score)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LevelIndex) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.NowNanos)   //#nosec G115 -- hash computation
	h = h*31 + snap.PaddleX
	h = h*31 + snap.PaddleW

	for _, v := range snap.BallData {
		h = h*31 + v
	}
	for _, v := range snap.DropData {
		h = h*31 + v
	}
	for _, v := range snap.BulletData {
		h = h*31 + v
	}
	for _, v := range snap.BrickData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
