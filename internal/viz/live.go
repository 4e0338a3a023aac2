package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/KevinDehulsters/tudat/internal/sim"
)

const historyCapacity = 600

// Sample is one step of the running simulation as shown by the live view.
type Sample struct {
	Time     float64
	Altitude float64
	Speed    float64
	Mach     float64
}

// LiveFeed forwards loop steps into a live view. It implements sim.Observer
// on the simulation side; the Bubble Tea program drains the channel on the
// UI side. A slow UI drops samples rather than stalling the loop.
type LiveFeed struct {
	shape        sim.Shape
	speedOfSound float64
	ch           chan Sample
}

func NewLiveFeed(shape sim.Shape, speedOfSound float64) *LiveFeed {
	return &LiveFeed{
		shape:        shape,
		speedOfSound: speedOfSound,
		ch:           make(chan Sample, 64),
	}
}

func (f *LiveFeed) OnStep(x sim.State, t float64) {
	s := Sample{
		Time:     t,
		Altitude: f.shape.Altitude(x.Position()),
		Speed:    speed(x),
	}
	s.Mach = s.Speed / f.speedOfSound
	select {
	case f.ch <- s:
	default:
	}
}

// Close signals the view that the run finished.
func (f *LiveFeed) Close() { close(f.ch) }

type sampleMsg struct {
	sample Sample
	ok     bool
}

// LiveModel is the Bubble Tea model of the live run view.
type LiveModel struct {
	feed     *LiveFeed
	name     string
	latest   Sample
	altHist  []float64
	done     bool
	quitting bool
}

func NewLiveModel(feed *LiveFeed, name string) *LiveModel {
	return &LiveModel{feed: feed, name: name}
}

func (m *LiveModel) waitForSample() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.feed.ch
		return sampleMsg{sample: s, ok: ok}
	}
}

func (m *LiveModel) Init() tea.Cmd {
	return m.waitForSample()
}

func (m *LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	case sampleMsg:
		if !msg.ok {
			m.done = true
			return m, tea.Quit
		}
		m.latest = msg.sample
		m.altHist = append(m.altHist, msg.sample.Altitude/1000)
		if len(m.altHist) > historyCapacity {
			m.altHist = m.altHist[1:]
		}
		return m, m.waitForSample()
	}
	return m, nil
}

func (m *LiveModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.name))
	b.WriteString("\n")

	if len(m.altHist) > 1 {
		b.WriteString(graphStyle.Render(asciigraph.Plot(m.altHist,
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption("Altitude [km]"),
		)))
		b.WriteString("\n")
	}

	stats := []string{
		fmt.Sprintf("%s %s", labelStyle.Render("t"), valueStyle.Render(fmt.Sprintf("%.1f s", m.latest.Time))),
		fmt.Sprintf("%s %s", labelStyle.Render("Altitude"), valueStyle.Render(fmt.Sprintf("%.1f km", m.latest.Altitude/1000))),
		fmt.Sprintf("%s %s", labelStyle.Render("Speed"), valueStyle.Render(fmt.Sprintf("%.0f m/s", m.latest.Speed))),
		fmt.Sprintf("%s %s", labelStyle.Render("Mach"), valueStyle.Render(fmt.Sprintf("%.2f", m.latest.Mach))),
	}
	if m.latest.Altitude < 0 {
		stats = append(stats, warnStyle.Render("below surface"))
	}
	b.WriteString(panelStyle.Render(strings.Join(stats, "\n")))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q quit"))
	return b.String()
}
