package root

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	cPrimary = lipgloss.Color("63")
	cAccent  = lipgloss.Color("205")
	cGood    = lipgloss.Color("42")
	cBad     = lipgloss.Color("196")
	cMuted   = lipgloss.Color("244")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
)

func labelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}
