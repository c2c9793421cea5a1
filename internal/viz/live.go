package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gassim/internal/engine"
	"github.com/san-kum/gassim/internal/metrics"
	"github.com/san-kum/gassim/internal/particle"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	tracerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

// Frame is one tick delivered by the engine to the UI.
type Frame struct {
	Time        float64
	Particles   []particle.Snapshot
	Temperature float64
}

type frameMsg Frame
type pullMsg struct{}
type doneMsg struct{}

// Model renders frames from a running engine.
type Model struct {
	frames      <-chan Frame
	stop        func()
	canvas      *Canvas
	frame       Frame
	haveFrame   bool
	tempHistory []float64
	interval    time.Duration
	paused      bool
	done        bool
}

// RunLive drives eng under a live terminal view until the horizon, a quit
// key, or an engine error. fps limits the wall-clock frame rate; simulated
// time between ticks is unrelated to wall time.
func RunLive(eng *engine.Engine, fps int) error {
	if fps <= 0 {
		fps = 30
	}

	frames := make(chan Frame)
	result := make(chan error, 1)
	stop := make(chan struct{})

	eng.SetTickFunc(func(t float64, ps []particle.Snapshot) (engine.Decision, error) {
		f := Frame{Time: t, Particles: ps, Temperature: metrics.System(ps)}
		select {
		case frames <- f:
			return engine.Continue, nil
		case <-stop:
			return engine.Stop, nil
		}
	})

	go func() {
		result <- eng.Run(context.Background())
		close(frames)
	}()

	var once sync.Once
	m := Model{
		frames:   frames,
		stop:     func() { once.Do(func() { close(stop) }) },
		canvas:   NewCanvas(width, height),
		interval: time.Second / time.Duration(fps),
	}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		m.stop()
		<-result
		return err
	}
	m.stop()
	return <-result
}

func waitForFrame(frames <-chan Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return doneMsg{}
		}
		return frameMsg(f)
	}
}

func (m Model) Init() tea.Cmd {
	return waitForFrame(m.frames)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stop()
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if !m.paused && !m.done {
				return m, waitForFrame(m.frames)
			}
		}
	case frameMsg:
		m.frame = Frame(msg)
		m.haveFrame = true
		m.tempHistory = append(m.tempHistory, m.frame.Temperature)
		if len(m.tempHistory) > historyCapacity {
			m.tempHistory = m.tempHistory[1:]
		}
		if m.paused {
			return m, nil
		}
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg { return pullMsg{} })
	case pullMsg:
		if m.paused || m.done {
			return m, nil
		}
		return m, waitForFrame(m.frames)
	case doneMsg:
		m.done = true
	}
	return m, nil
}

// draw renders the box and every disc into the canvas.
func (m *Model) draw() {
	m.canvas.Clear()

	cw, ch := width*2, height*4
	m.canvas.DrawRect(0, 0, cw-1, ch-1)

	for _, p := range m.frame.Particles {
		cx := int(p.X * float64(cw-1))
		cy := int((1 - p.Y) * float64(ch-1)) // canvas y grows downward
		rx := int(p.Radius * float64(cw-1))
		ry := int(p.Radius * float64(ch-1))
		m.canvas.FillEllipse(cx, cy, rx, ry)
	}
}

func (m Model) View() string {
	if !m.haveFrame {
		return canvasStyle.Render("waiting for first tick...")
	}
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("HARD-SPHERE GAS") + "\n")

	status := "RUNNING"
	if m.done {
		status = "FINISHED"
	} else if m.paused {
		status = "PAUSED"
	}
	s.WriteString(fmt.Sprintf("%s\n\n", status))

	if len(m.tempHistory) > 1 {
		chart := asciigraph.Plot(m.tempHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Temperature"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f", m.frame.Time)) + "\n")
	s.WriteString(labelStyle.Render("Temperature") + valueStyle.Render(fmt.Sprintf("%.4e", m.frame.Temperature)) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", len(m.frame.Particles))) + "\n")

	var collisions uint64
	for _, p := range m.frame.Particles {
		collisions += p.Collisions
	}
	s.WriteString(labelStyle.Render("Collisions") + valueStyle.Render(fmt.Sprintf("%d", collisions)) + "\n")

	if tracer := heaviest(m.frame.Particles); tracer != nil {
		s.WriteString("\nTRACER\n")
		s.WriteString(labelStyle.Render("Position") + tracerStyle.Render(fmt.Sprintf("(%.3f, %.3f)", tracer.X, tracer.Y)) + "\n")
		s.WriteString(labelStyle.Render("Speed") + tracerStyle.Render(fmt.Sprintf("%.5f", speed(*tracer))) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause  Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// heaviest picks the tracer when one is present: the disc with by far the
// largest mass. Returns nil for a uniform gas.
func heaviest(ps []particle.Snapshot) *particle.Snapshot {
	if len(ps) < 2 {
		return nil
	}
	best := 0
	for i := range ps {
		if ps[i].Mass > ps[best].Mass {
			best = i
		}
	}
	for i := range ps {
		if i != best && ps[i].Mass == ps[best].Mass {
			return nil
		}
	}
	return &ps[best]
}

func speed(p particle.Snapshot) float64 {
	return math.Hypot(p.VX, p.VY)
}
