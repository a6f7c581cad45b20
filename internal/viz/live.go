package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/shakerbed/internal/clock"
	"github.com/san-kum/shakerbed/internal/motion"
	"github.com/san-kum/shakerbed/internal/sim"
	"github.com/san-kum/shakerbed/internal/tilt"
)

const (
	canvasCols = 72
	canvasRows = 30

	tickRate  = 60
	sparkSpan = 240 // four seconds of agitation history
)

// The lift bars and the drawn tilt chase the sequencer's discrete jumps
// through a critically damped spring so they read as motion.
const (
	springFrequency = 8.0
	springDamping   = 1.0
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the live TUI: it owns the simulation controller and drives
// one controller tick per frame. Pausing freezes the sim but the view
// keeps redrawing.
type Model struct {
	ctrl   *sim.Controller
	canvas *Canvas
	theme  Theme
	styles Styles

	spring   harmonica.Spring
	liftPos  [tilt.ActuatorCount]float64
	liftVel  [tilt.ActuatorCount]float64
	agitHist []float64

	snap      sim.Snapshot
	positions []tilt.Vec2
	started   time.Time
}

// NewModel builds the live view around a wall-clock driven controller.
func NewModel(cfg sim.Config, themeName string) Model {
	theme := GetTheme(themeName)
	return Model{
		ctrl:     sim.NewController(cfg, clock.NewSystem()),
		canvas:   NewCanvas(canvasCols, canvasRows),
		theme:    theme,
		styles:   theme.Styles(),
		spring:   harmonica.NewSpring(harmonica.FPS(tickRate), springFrequency, springDamping),
		agitHist: make([]float64, 0, sparkSpan),
		started:  time.Now(),
	}
}

// Run starts the Bubble Tea program and blocks until quit.
func Run(cfg sim.Config, themeName string) error {
	p := tea.NewProgram(NewModel(cfg, themeName))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.ctrl.Push(sim.CmdQuit)
		case "1":
			m.ctrl.Push(sim.CmdFlatten)
		case "2":
			m.ctrl.Push(sim.CmdScramble)
		case "3":
			m.ctrl.Push(sim.CmdDump)
		case " ":
			m.ctrl.Push(sim.CmdTogglePause)
		case "l":
			m.ctrl.Push(sim.CmdToggleLoop)
		case "r":
			// re-roll: fresh world and sequence for the same gesture
			if cmd, err := sim.GestureCommand(m.snap.Gesture); err == nil {
				m.ctrl.Push(cmd)
			}
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = m.theme.Styles()
		}
	case TickMsg:
		m.snap = m.ctrl.Tick()
		if m.ctrl.Done() {
			return m, tea.Quit
		}

		// snapshot positions alias the controller's buffer; copy so the
		// view owns what it draws
		m.positions = append(m.positions[:0], m.snap.Positions...)

		for i := 0; i < tilt.ActuatorCount; i++ {
			m.liftPos[i], m.liftVel[i] = m.spring.Update(m.liftPos[i], m.liftVel[i], m.snap.Lifts[i])
		}
		m.agitHist = append(m.agitHist, m.snap.Agitation)
		if len(m.agitHist) > sparkSpan {
			m.agitHist = m.agitHist[1:]
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	smooth := tilt.Lifts{m.liftPos[0], m.liftPos[1], m.liftPos[2]}
	DrawScene(m.canvas, m.positions, smooth)

	left := m.styles.Canvas.Render(m.canvas.String())
	right := m.styles.Panel.Render(m.hud())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) hud() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Header.Render("SHAKER BED") + "\n")
	b.WriteString(m.statusLine() + "\n\n")

	gesture := string(m.snap.Gesture)
	if gesture == "" {
		gesture = "-"
	}
	b.WriteString(s.Label.Render("gesture") + s.Value.Render(gesture) + "\n")
	b.WriteString(s.Label.Render("step") + s.Value.Render(m.stepLine()) + "\n")
	b.WriteString(s.Label.Render("loop") + s.Value.Render(onOff(m.snap.Loop)) + "\n")
	b.WriteString(s.Label.Render("impulse") + s.Value.Render(fmt.Sprintf("%.1fx", m.snap.Impulse)) + "\n")
	b.WriteString(s.Label.Render("pellets") + s.Value.Render(fmt.Sprintf("%d", len(m.positions))) + "\n")
	b.WriteString(s.Label.Render("elapsed") + s.Value.Render(fmt.Sprintf("%.1fs", time.Since(m.started).Seconds())) + "\n\n")

	b.WriteString(s.Header.Render("LIFTS") + "\n")
	for i := 0; i < tilt.ActuatorCount; i++ {
		bar := Bar(m.liftPos[i]/motion.LiftHeight, 16)
		b.WriteString(fmt.Sprintf("%d %s %.2f\n", i+1, s.Bar.Render(bar), m.liftPos[i]))
	}

	if len(m.agitHist) > 1 {
		chart := asciigraph.Plot(m.agitHist,
			asciigraph.Height(4),
			asciigraph.Width(26),
			asciigraph.Caption("agitation"),
		)
		b.WriteString("\n" + s.Spark.Render(chart) + "\n")
	}

	b.WriteString(s.Help.Render("\n1:flatten 2:scramble 3:dump\nspace:pause l:loop r:re-roll\nt:theme q:quit"))
	return b.String()
}

func (m Model) statusLine() string {
	switch m.snap.State {
	case motion.Running:
		return m.styles.Running.Render("RUNNING")
	case motion.Paused:
		return m.styles.Paused.Render("PAUSED")
	}
	return m.styles.Idle.Render("IDLE")
}

func (m Model) stepLine() string {
	if m.snap.State == motion.Idle || m.snap.StepIndex < 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d", m.snap.StepIndex+1, m.snap.StepCount)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
