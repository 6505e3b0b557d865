package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/stepai/internal/ledger"
)

const panelWidth = 40

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E9D5FF")).Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Width(panelWidth-6).
			Align(lipgloss.Center).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#A855F7"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C4B5FD"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A855F7")).Bold(true)
	unitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A855F7"))
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#8B5CF6")).
			Padding(0, 6)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))
	readyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C4B5FD"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	noPowerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// infoRow places the step total on the left and the exchanged minutes on the right
// of a row width cells wide.
func infoRow(snap ledger.Snapshot, width int) string {
	left := fmt.Sprintf("Total: %d steps", snap.TotalUnits)
	right := fmt.Sprintf("Exchanged: %d min", snap.RedeemedMinutes)
	gap := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
