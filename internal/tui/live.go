package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/san-kum/rocketsim/internal/dynamics"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws the ascent profile to the terminal while a flight is
// running. It implements the runner's Observer interface and throttles
// itself to a fixed frame rate so the simulation loop is not slowed down.
type LiveRenderer struct {
	mission   string
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	trail     []struct{ x, y int }
	maxAlt    float64
	maxRange  float64
}

func NewLiveRenderer(mission string, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		mission:   mission,
		frameRate: frameRate,
		canvas:    canvas,
		trail:     make([]struct{ x, y int }, 0, 200),
		maxAlt:    100,
		maxRange:  100,
	}
}

func (r *LiveRenderer) OnStep(state dynamics.State, cmd dynamics.Command) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.clear()
	r.drawAscent(state)
	r.render(state, cmd)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) drawAscent(state dynamics.State) {
	downrange := math.Hypot(state.Pos.X, state.Pos.Y)
	alt := state.Altitude()

	// Grow the plot scale as the rocket climbs, never shrink it.
	if alt > r.maxAlt {
		r.maxAlt = alt * 1.2
	}
	if downrange > r.maxRange {
		r.maxRange = downrange * 1.2
	}

	ground := height - 2
	for i := 0; i < width; i++ {
		r.set(i, ground+1, '=')
	}

	px := 4 + int(downrange/r.maxRange*float64(width-10))
	py := ground - int(alt/r.maxAlt*float64(ground-1))

	r.trail = append(r.trail, struct{ x, y int }{px, py})
	if len(r.trail) > 200 {
		r.trail = r.trail[1:]
	}
	for _, pt := range r.trail {
		r.set(pt.x, pt.y, '.')
	}

	// Draw the vehicle as a short stick along its body axis.
	bz := state.BodyZ()
	tipX := px + int(2*bz.Y)
	tipY := py - int(2*bz.Z)
	r.set(px, py, '#')
	r.set(tipX, tipY, '^')
}

func (r *LiveRenderer) render(state dynamics.State, cmd dynamics.Command) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.1fs  stage=%d\n", r.mission, state.Time, state.StageIdx))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  alt=%.0fm  speed=%.0fm/s  mass=%.1fkg  pitch=%.1f°  gimbal=(%.2f, %.2f)\n",
		state.Altitude(), state.Speed(), state.Mass,
		state.Pitch()*180/math.Pi, cmd.GimbalY, cmd.GimbalZ))

	fmt.Print(b.String())
}

func (r *LiveRenderer) Start() { fmt.Print(hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Print(showCursor) }
