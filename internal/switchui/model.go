// Package switchui provides the Bubble Tea output pin switch interface.
package switchui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/stepai/internal/gpio"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	onStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#2196F3")).Padding(0, 1)
	offStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Background(lipgloss.Color("#3A3A3A")).Padding(0, 1)
	knobStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#DADADA"))
	stateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	stateOn     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	pinStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	switchFrame = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
)

type keyMap struct {
	Toggle key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Model implements the Bubble Tea switch UI.
type Model struct {
	pin     gpio.Pin
	log     *zap.Logger
	checked bool
	errMsg  string

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewModel constructs a switch screen driving pin.
func NewModel(pin gpio.Pin, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	return &Model{
		pin:     pin,
		log:     log,
		checked: pin.Level(),
		keys: keyMap{
			Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
			Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		},
		help: help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.toggle()
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{
		titleStyle.Render("StepAI Test"),
		"",
		switchFrame.Render(m.renderSwitch()),
	}
	if n := m.pin.Number(); n != gpio.NotConnected {
		lines = append(lines, pinStyle.Render(fmt.Sprintf("Pin: GPIO%d", n)))
	}
	lines = append(lines, m.renderState())
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	lines = append(lines, "", m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) toggle() {
	next := !m.checked
	m.log.Info("switch clicked", zap.String("state", stateLabel(next)))
	if err := m.pin.Set(next); err != nil {
		m.log.Error("failed to set pin", zap.Int("pin", m.pin.Number()), zap.Error(err))
		m.errMsg = fmt.Sprintf("failed to set pin: %v", err)
		return
	}
	m.errMsg = ""
	m.checked = next
}

func (m *Model) renderSwitch() string {
	knob := knobStyle.Render("  ")
	if m.checked {
		return lipgloss.JoinHorizontal(lipgloss.Center, onStyle.Render("ON "), knob)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, knob, offStyle.Render("OFF"))
}

func (m *Model) renderState() string {
	if m.checked {
		return stateOn.Render(stateLabel(true))
	}
	return stateStyle.Render(stateLabel(false))
}

func stateLabel(checked bool) string {
	if checked {
		return "ON"
	}
	return "OFF"
}
