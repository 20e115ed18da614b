package arkanoid

import (
	"errors"
	"fmt"
	"image"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/assets"
	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// Level load errors.
var (
	ErrRaggedRows  = errors.New("level: rows have different lengths")
	ErrEmptyLayout = errors.New("level: layout has no rows")
	ErrTooWide     = errors.New("level: columns do not fit the playfield")
)

// LineSource loads a text file as trimmed, non-empty lines.
type LineSource interface {
	LoadLines(path string) ([]string, error)
}

// ImageSource loads decoded images, optionally resized.
type ImageSource interface {
	LoadImage(path string) (image.Image, error)
	LoadScaled(path string, w, h int) (image.Image, error)
}

// Rand is the random source used for brick classes.
type Rand interface {
	Float64() float64
}

// presets are the built-in layouts, roughly in order of difficulty.
var presets = [][]string{
	{"1010101010", "0101010101", "1111111111", "0101010101", "1010101010"},
	{"1111111111", "1111111111", "1111111111", "0011111100", "0000000000"},
	{"1110011110", "1100000011", "1001111001", "1100000011", "0111111110"},
	{"1111111111", "1000000001", "1011111101", "1010000101", "1111111111"},
	{"0001111000", "0011111100", "0111111110", "0011111100", "0001111000"},
}

// DefaultLayout returns a copy of the built-in layout for a level index.
func DefaultLayout(index int) []string {
	if index < 0 {
		index = -index
	}
	p := presets[index%len(presets)]
	return append([]string(nil), p...)
}

// LevelPath is the logical path of a level's layout file.
func LevelPath(index int) string {
	return fmt.Sprintf("levels/level%d.txt", index+1)
}

// backgroundCandidates lists the files tried for a level background.
func backgroundCandidates(index int) []string {
	n := index + 1
	var out []string
	for _, base := range []string{"Map", "level"} {
		for _, ext := range []string{"png", "jpg", "jpeg"} {
			out = append(out, fmt.Sprintf("backgrounds/%s%d.%s", base, n, ext))
		}
	}
	return out
}

// Level is the brick arena for one level. Bricks live in a flat row-major
// slice; a destroyed brick leaves a nil slot.
type Level struct {
	Index      int
	Rows, Cols int
	Source     string // "file" or "preset"
	HardRate   float64
	UnbRate    float64
	Background image.Image

	bricks []*Brick
}

// BrickHit describes the outcome of one hit on a brick slot.
type BrickHit struct {
	Index       int
	Destroyed   bool
	Unbreakable bool
	PowerUp     PowerUp // set only when Destroyed
	X, Y        float64 // brick center
}

// Len returns the number of slots, empty ones included.
func (l *Level) Len() int { return len(l.bricks) }

// Brick returns the brick in slot i, or nil for an empty slot.
// The pointer must not be kept across ticks.
func (l *Level) Brick(i int) *Brick {
	if i < 0 || i >= len(l.bricks) {
		return nil
	}
	return l.bricks[i]
}

// Hit applies one hit to slot i. A destroyed brick is removed from the arena.
func (l *Level) Hit(i int) (BrickHit, bool) {
	b := l.Brick(i)
	if b == nil {
		return BrickHit{}, false
	}
	cx, cy := b.Rect().Center()
	h := BrickHit{Index: i, Unbreakable: b.IsUnbreakable(), X: cx, Y: cy}
	if b.OnHit() {
		h.Destroyed = true
		h.PowerUp = b.PowerUp()
		l.bricks[i] = nil
	}
	return h, true
}

// FirstIntersecting returns the first slot in scan order whose brick
// overlaps r.
func (l *Level) FirstIntersecting(r core.Rect) (int, bool) {
	for i, b := range l.bricks {
		if b != nil && b.Rect().Intersects(r) {
			return i, true
		}
	}
	return -1, false
}

// Column returns the slots whose brick overlaps the horizontal span [x0, x1].
func (l *Level) Column(x0, x1 float64) []int {
	var out []int
	for i, b := range l.bricks {
		if b == nil {
			continue
		}
		r := b.Rect()
		if r.X < x1 && r.Right() > x0 {
			out = append(out, i)
		}
	}
	return out
}

// Cleared reports whether every breakable brick is gone.
func (l *Level) Cleared() bool {
	for _, b := range l.bricks {
		if b != nil && !b.IsUnbreakable() && !b.IsDestroyed() {
			return false
		}
	}
	return true
}

// Remaining counts the breakable bricks still standing.
func (l *Level) Remaining() int {
	n := 0
	for _, b := range l.bricks {
		if b != nil && !b.IsUnbreakable() && !b.IsDestroyed() {
			n++
		}
	}
	return n
}

// LevelBuilder turns layouts into levels.
type LevelBuilder struct {
	Lines      LineSource
	Images     ImageSource
	Rand       Rand
	Difficulty *config.DifficultyManager
	Bricks     config.BrickConfig
	Width      float64
	Height     float64
	Logger     *log.Logger
}

// Load reads the layout of level index and builds it. A missing or
// unreadable file falls back to the built-in preset; a malformed file is
// returned as an error.
func (b *LevelBuilder) Load(index int) (*Level, error) {
	if b.Lines == nil {
		return b.preset(index)
	}
	path := LevelPath(index)
	lines, err := b.Lines.LoadLines(path)
	if err == nil && len(lines) == 0 {
		err = ErrEmptyLayout
	}
	if err != nil {
		logMiss(b.logger(), "level", path, err)
		return b.preset(index)
	}
	lvl, err := b.Build(index, lines)
	if err != nil {
		return nil, fmt.Errorf("level %d: %s: %w", index+1, path, err)
	}
	lvl.Source = "file"
	return lvl, nil
}

func (b *LevelBuilder) preset(index int) (*Level, error) {
	lvl, err := b.Build(index, DefaultLayout(index))
	if err != nil {
		return nil, err
	}
	lvl.Source = "preset"
	return lvl, nil
}

func (b *LevelBuilder) logger() *log.Logger {
	if b.Logger == nil {
		return discardLogger
	}
	return b.Logger
}

// Build creates the level from a layout. One random draw is consumed per
// filled cell, in row-major order.
func (b *LevelBuilder) Build(index int, lines []string) (*Level, error) {
	if err := ValidateLayout(lines); err != nil {
		return nil, err
	}
	grid := make([][]rune, len(lines))
	for r, line := range lines {
		grid[r] = []rune(line)
	}
	rows, cols := len(grid), len(grid[0])
	bw := b.Bricks.BrickWidth(b.Width, cols)
	if bw <= 0 {
		return nil, fmt.Errorf("%w: %d columns", ErrTooWide, cols)
	}

	diff := b.Difficulty
	if diff == nil {
		diff = config.NewDifficultyManager(config.DefaultArkanoidConfig().Difficulty)
	}
	hardRate, unbRate := diff.BrickRates(index)
	lvl := &Level{
		Index:    index,
		Rows:     rows,
		Cols:     cols,
		Source:   "preset",
		HardRate: hardRate,
		UnbRate:  unbRate,
		bricks:   make([]*Brick, rows*cols),
	}

	rng := b.Rand
	if rng == nil {
		rng = NewRand(0)
	}

	width := int(b.Width)
	gap, bh := b.Bricks.Gap, b.Bricks.Height
	startX := (width - (cols*bw + (cols-1)*gap)) / 2

	for r := range rows {
		y := b.Bricks.Top + r*(bh+gap)
		for c := range cols {
			ch := grid[r][c]
			if ch == '0' || ch == ' ' {
				continue
			}
			x := startX + c*(bw+gap)
			pu, forced := mapLetters[ch]
			if !forced {
				pu = b.autoPowerUp(r, c, index)
			}

			kind := BrickNormal
			rnd := rng.Float64()
			switch {
			case rnd < unbRate:
				kind = BrickUnbreakable
			case rnd < unbRate+hardRate:
				kind = BrickHard
			}
			rect := core.NewRect(float64(x), float64(y), float64(bw), float64(bh))
			lvl.bricks[r*cols+c] = NewBrick(kind, rect, pu)
		}
	}

	lvl.Background = b.background(index)
	return lvl, nil
}

// autoPowerUp hashes the cell position so about one cell in N carries a
// power-up and types spread over the grid.
func (b *LevelBuilder) autoPowerUp(r, c, index int) PowerUp {
	every := b.Bricks.PowerUpEvery
	if every <= 0 {
		return PowerUpNone
	}
	if (31*r+17*c+13*index)%every != 0 {
		return PowerUpNone
	}
	return autoPowerUps[(3*r+5*c+index)%len(autoPowerUps)]
}

func (b *LevelBuilder) background(index int) image.Image {
	if b.Images == nil {
		return nil
	}
	for _, path := range backgroundCandidates(index) {
		img, err := b.Images.LoadScaled(path, int(b.Width), int(b.Height))
		if err == nil {
			return img
		}
		if !errors.Is(err, assets.ErrNotFound) {
			logMiss(b.logger(), "background", path, err)
		}
	}
	b.logger().Debug("no background, using gradient", "level", index+1)
	return nil
}

// ValidateLayout checks that a layout has rows and that all rows have the
// same number of cells.
func ValidateLayout(lines []string) error {
	if len(lines) == 0 {
		return ErrEmptyLayout
	}
	want := len([]rune(lines[0]))
	if want == 0 {
		return ErrEmptyLayout
	}
	for i, line := range lines[1:] {
		if n := len([]rune(line)); n != want {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedRows, i+2, n, want)
		}
	}
	return nil
}

// LevelInfo summarizes a level file for listings.
type LevelInfo struct {
	Number     int
	Source     string
	Rows, Cols int
	Err        error
}

// Describe reports where a level's layout comes from without building it.
func Describe(lines LineSource, index int) LevelInfo {
	info := LevelInfo{Number: index + 1, Source: "file"}
	layout, err := lines.LoadLines(LevelPath(index))
	if err != nil || len(layout) == 0 {
		info.Source = "preset"
		layout = DefaultLayout(index)
	} else if err := ValidateLayout(layout); err != nil {
		info.Err = err
	}
	info.Rows = len(layout)
	if len(layout) > 0 {
		info.Cols = len([]rune(layout[0]))
	}
	return info
}

// logMiss logs an asset fallback. Missing files are routine, anything else
// is worth a warning.
func logMiss(logger *log.Logger, what, path string, err error) {
	if errors.Is(err, assets.ErrNotFound) || errors.Is(err, ErrEmptyLayout) {
		logger.Debug("asset fallback", "kind", what, "path", path, "reason", "not_found")
		return
	}
	logger.Warn("asset fallback", "kind", what, "path", path, "reason", "io", "error", err)
}
