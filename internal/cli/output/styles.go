package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header    lipgloss.Style
	SubHeader lipgloss.Style
	Key       lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Muted     lipgloss.Style
}

// NewStyles creates styles bound to a lipgloss renderer, so color support is
// detected for the actual output stream.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:    lr.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		SubHeader: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		Key:       lr.NewStyle().Foreground(lipgloss.Color("245")),
		Success:   lr.NewStyle().Foreground(lipgloss.Color("42")),
		Warning:   lr.NewStyle().Foreground(lipgloss.Color("214")),
		Muted:     lr.NewStyle().Faint(true),
	}
}
