package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rocketsim/internal/sim"
)

const (
	canvasWidth  = 60
	canvasHeight = 22
	chartSamples = 120
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model replays a completed flight in the terminal: a braille canvas of
// the ascent profile, an altitude chart, and a scrubable timeline.
type Model struct {
	mission  string
	result   *sim.Result
	canvas   *Canvas
	playHead int
	running  bool
	speed    int
	maxAlt   float64
	maxRange float64
}

// NewModel prepares a replay of a finished run. The result must hold at
// least one trajectory sample.
func NewModel(mission string, result *sim.Result) Model {
	maxAlt, maxRange := 1.0, 1.0
	for _, s := range result.Trajectory {
		if alt := s.Altitude(); alt > maxAlt {
			maxAlt = alt
		}
		if dr := math.Hypot(s.Pos.X, s.Pos.Y); dr > maxRange {
			maxRange = dr
		}
	}

	return Model{
		mission:  mission,
		result:   result,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		playHead: 0,
		running:  true,
		speed:    40,
		maxAlt:   maxAlt * 1.05,
		maxRange: maxRange * 1.05,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.playHead = 0
			m.running = true
		case "[":
			m.running = false
			m.scrub(-m.speed)
		case "]":
			m.running = false
			m.scrub(m.speed)
		case "up", "k", "+", "=":
			m.speed *= 2
		case "down", "j", "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
	case TickMsg:
		if m.running {
			m.playHead += m.speed
			if m.playHead >= len(m.result.Trajectory) {
				m.playHead = len(m.result.Trajectory) - 1
				m.running = false
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) scrub(delta int) {
	m.playHead += delta
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.result.Trajectory) {
		m.playHead = len(m.result.Trajectory) - 1
	}
}

// project maps downrange distance and altitude to canvas sub-pixels.
func (m *Model) project(downrange, alt float64) (int, int) {
	cw, ch := canvasWidth*2, canvasHeight*4
	x := 4 + int(downrange/m.maxRange*float64(cw-8))
	y := (ch - 2) - int(alt/m.maxAlt*float64(ch-4))
	return x, y
}

func (m *Model) draw() {
	m.canvas.Clear()

	cw := canvasWidth * 2
	ch := canvasHeight * 4
	for x := 0; x < cw; x++ {
		m.canvas.Set(x, ch-1)
	}

	prevX, prevY := m.project(0, 0)
	for i := 0; i <= m.playHead && i < len(m.result.Trajectory); i++ {
		s := m.result.Trajectory[i]
		x, y := m.project(math.Hypot(s.Pos.X, s.Pos.Y), s.Altitude())
		m.canvas.DrawLine(prevX, prevY, x, y)
		prevX, prevY = x, y
	}
}

func (m Model) View() string {
	if len(m.result.Trajectory) == 0 {
		return "no trajectory to replay\n"
	}

	m.draw()
	current := m.result.Trajectory[m.playHead]

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.mission)) + "\n")

	status := "REPLAYING"
	if !m.running {
		if m.playHead == len(m.result.Trajectory)-1 {
			status = "DONE"
		} else {
			status = "PAUSED"
		}
	}
	s.WriteString(fmt.Sprintf("%s  %dx\n\n", status, m.speed))

	altHist := m.altitudeHistory()
	if len(altHist) > 1 {
		chart := asciigraph.Plot(altHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Altitude [m]"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", current.Time)) + "\n")
	s.WriteString(labelStyle.Render("Altitude") + valueStyle.Render(fmt.Sprintf("%.0f m", current.Altitude())) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.1f m/s", current.Speed())) + "\n")
	s.WriteString(labelStyle.Render("Mass") + valueStyle.Render(fmt.Sprintf("%.1f kg", current.Mass)) + "\n")
	s.WriteString(labelStyle.Render("Stage") + valueStyle.Render(fmt.Sprintf("%d", current.StageIdx)) + "\n")
	s.WriteString(labelStyle.Render("Pitch") + valueStyle.Render(fmt.Sprintf("%.1f°", current.Pitch()*180/math.Pi)) + "\n")

	s.WriteString("\nEVENTS\n")
	shown := 0
	for i := len(m.result.Events) - 1; i >= 0 && shown < 5; i-- {
		ev := m.result.Events[i]
		if ev.Time > current.Time {
			continue
		}
		s.WriteString(eventStyle.Render("  "+ev.String()) + "\n")
		shown++
	}
	if shown == 0 {
		s.WriteString(labelStyle.Render("  (none yet)") + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Restart Q:Quit\n[ ]:Scrub ↑↓:Speed"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.String()), statsStyle.Render(s.String()))
}

// altitudeHistory downsamples the flown portion of the trajectory for the
// sidebar chart.
func (m Model) altitudeHistory() []float64 {
	n := m.playHead + 1
	stride := n / chartSamples
	if stride < 1 {
		stride = 1
	}
	hist := make([]float64, 0, chartSamples+1)
	for i := 0; i < n; i += stride {
		hist = append(hist, m.result.Trajectory[i].Altitude())
	}
	return hist
}
