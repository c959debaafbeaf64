package ci

import "github.com/charmbracelet/lipgloss"

// Severity selects the style for the leading word of a plain line.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNotice
	SeveritySuccess
	SeverityMuted
)

// Styles colours the prefixes of plain output on a terminal.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Notice  lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the terminal palette for the default renderer.
func DefaultStyles() *Styles {
	return NewStyles(lipgloss.DefaultRenderer())
}

// NewStyles returns the terminal palette bound to r, whose colour profile
// decides the escape sequences emitted.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Error:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // red
		Warning: r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // orange
		Notice:  r.NewStyle().Foreground(lipgloss.Color("39")),             // blue
		Success: r.NewStyle().Foreground(lipgloss.Color("34")),             // green
		Muted:   r.NewStyle().Foreground(lipgloss.Color("242")),            // gray
	}
}

// Paint styles prefix for sev. Without styles it returns prefix unchanged.
func (p Plain) Paint(sev Severity, prefix string) string {
	if p.Styles == nil || prefix == "" {
		return prefix
	}
	var st lipgloss.Style
	switch sev {
	case SeverityError:
		st = p.Styles.Error
	case SeverityWarning:
		st = p.Styles.Warning
	case SeverityNotice:
		st = p.Styles.Notice
	case SeveritySuccess:
		st = p.Styles.Success
	default:
		st = p.Styles.Muted
	}
	return st.Render(prefix)
}
