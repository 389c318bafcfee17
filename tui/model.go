// package tui is the terminal front end: a live meter display that also
// takes keyboard control of the synth.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfcm/groove"
	"github.com/pfcm/groove/hid"
	"github.com/pfcm/groove/internal/buffer"
	"github.com/pfcm/groove/internal/num"
)

const (
	barWidth     = 32
	historyWidth = 48
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle  = lipgloss.NewStyle().Width(7).Foreground(lipgloss.Color("245"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	offStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type tickMsg time.Time

type Model struct {
	host     *groove.Host
	controls *hid.Controls
	interval time.Duration
	history  *buffer.History
	meters   groove.MeterValues
	params   groove.Params
	quitting bool
}

// NewModel returns a model redrawing fps times a second.
func NewModel(h *groove.Host, c *hid.Controls, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	p, _ := h.Params()
	return Model{
		host:     h,
		controls: c,
		interval: time.Second / time.Duration(fps),
		history:  buffer.NewHistory(historyWidth),
		params:   p,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		default:
			m.controls.HandleKey(msg.String())
			if p, ok := m.host.Params(); ok {
				m.params = p
			}
		}
	case tickMsg:
		m.meters = m.host.Meters().Load()
		m.history.Push(m.meters.RMS)
		if p, ok := m.host.Params(); ok {
			m.params = p
		}
		return m, m.tick()
	}
	return m, nil
}

// Bar draws v, clamped to [0, 1], as a bar width cells wide.
func Bar(v float64, width int) string {
	n := int(num.Unit(v)*float64(width) + 0.5)
	return strings.Repeat("█", n) + strings.Repeat("·", width-n)
}

var sparks = []rune(" ▁▂▃▄▅▆▇█")

// Sparkline draws each value, clamped to [0, 1], as one block character.
func Sparkline(vs []float64) string {
	out := make([]rune, len(vs))
	for i, v := range vs {
		out[i] = sparks[int(num.Unit(v)*float64(len(sparks)-1)+0.5)]
	}
	return string(out)
}

func onOff(name string, on bool) string {
	if on {
		return barStyle.Render(name)
	}
	return offStyle.Render(name)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	p, v := m.params, m.meters

	header := headerStyle.Render(fmt.Sprintf("groove  %5.1fbpm  root %d  %s  seed %d",
		p.BPM, p.Root, p.Scale, p.Seed))
	controls := fmt.Sprintf("density %.2f  brightness %.2f  motion %.2f   %s %s %s",
		p.Density, p.Brightness, p.Motion,
		onOff("arp", p.Arp), onOff("pad", p.Pad), onOff("perc", p.Perc))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n")
	out.WriteString(controls)
	out.WriteString("\n\n")
	for _, row := range []struct {
		name string
		v    float64
	}{
		{"rms", v.RMS},
		{"arp", v.Arp},
		{"pad", v.Pad},
		{"perc", v.Perc},
		{"bass", v.Bass},
		{"mid", v.Mid},
		{"treble", v.Treble},
	} {
		out.WriteString(labelStyle.Render(row.name))
		out.WriteString(barStyle.Render(Bar(row.v, barWidth)))
		out.WriteString(fmt.Sprintf(" %.3f\n", row.v))
	}
	out.WriteString("\n")
	out.WriteString(labelStyle.Render("level"))
	out.WriteString(barStyle.Render(Sparkline(m.history.Values(nil))))
	out.WriteString("\n\n")

	var help []string
	for _, k := range hid.Keys {
		help = append(help, k.Key+":"+k.Help)
	}
	help = append(help, "q:quit")
	out.WriteString(dimStyle.Render(strings.Join(help, "  ")))
	out.WriteString("\n")
	return out.String()
}
