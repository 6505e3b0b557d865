// Package tui provides the Bubble Tea step exchange interface.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/stepai/internal/ledger"
)

type status int

const (
	statusReady status = iota
	statusSuccess
	statusNoPower
)

// StepsMsg adds activity units to the ledger. Programs embedding the exchange screen
// deliver it with tea.Program.Send; the walk key takes the same path.
type StepsMsg struct {
	Units uint32
}

type keyMap struct {
	Exchange key.Binding
	Walk     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Exchange, k.Walk, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeys = keyMap{
	Exchange: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "exchange")),
	Walk:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "walk")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model implements the Bubble Tea step exchange UI.
type Model struct {
	ledger *ledger.Ledger
	log    *zap.Logger
	walk   uint32

	keys   keyMap
	help   help.Model
	status status

	width  int
	height int
}

// NewModel constructs an exchange screen over l. walk is the number of steps
// added by each walk action.
func NewModel(l *ledger.Ledger, walk uint32, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Model{
		ledger: l,
		log:    log,
		walk:   walk,
		keys:   defaultKeys,
		help:   help.New(),
	}
	m.ledger.Recompute()
	return m
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
	case StepsMsg:
		m.addSteps(msg.Units)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Exchange):
			m.exchange()
		case key.Matches(msg, m.keys.Walk):
			m.addSteps(m.walk)
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.ledger.Snapshot()
	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Step Exchange"),
		"",
		renderExchangeBox(snap),
		"",
		buttonStyle.Render("Exchange"),
		"",
		infoStyle.Render(infoRow(snap, panelWidth)),
		m.renderStatus(),
		"",
		m.help.View(m.keys),
	)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) exchange() {
	amount := m.ledger.RedeemAll()
	if amount == 0 {
		m.status = statusNoPower
		m.log.Info("nothing to exchange", zap.Uint32("total_steps", m.ledger.Snapshot().TotalUnits))
		return
	}
	m.status = statusSuccess
	snap := m.ledger.Snapshot()
	m.log.Info("exchanged minutes",
		zap.Uint32("minutes", amount),
		zap.Uint32("exchanged_total", snap.RedeemedMinutes),
		zap.Uint32("total_steps", snap.TotalUnits),
	)
}

func (m *Model) addSteps(n uint32) {
	if n == 0 {
		return
	}
	total := m.ledger.AddUnits(n)
	m.status = statusReady
	m.log.Debug("steps recorded", zap.Uint32("steps", n), zap.Uint32("total_steps", total))
}

func (m *Model) renderStatus() string {
	switch m.status {
	case statusSuccess:
		return successStyle.Render("Success")
	case statusNoPower:
		return noPowerStyle.Render("No Power")
	default:
		return readyStyle.Render("Ready")
	}
}

func renderExchangeBox(snap ledger.Snapshot) string {
	value := lipgloss.JoinHorizontal(lipgloss.Center,
		valueStyle.Render(fmt.Sprintf("%d", snap.RedeemableMinutes)),
		" ",
		unitStyle.Render("min"),
	)
	body := lipgloss.JoinVertical(lipgloss.Center, labelStyle.Render("Exchangeable"), value)
	return boxStyle.Render(body)
}
