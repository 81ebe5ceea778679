package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	// Severity level styles
	Debug lipgloss.Style
	Info  lipgloss.Style
	Warn  lipgloss.Style
	Error lipgloss.Style
	Fatal lipgloss.Style

	// Component styles
	Node   lipgloss.Style
	Logger lipgloss.Style

	// Result styles
	Header    lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style
	Unchanged lipgloss.Style

	// TUI styles
	Title     lipgloss.Style
	StatusBar lipgloss.Style
	Selected  lipgloss.Style
	Help      lipgloss.Style
}{
	Debug: lipgloss.NewStyle().Foreground(lipgloss.Color("243")),            // Gray
	Info:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),             // Cyan
	Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),            // Orange
	Error: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red bold
	Fatal: lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true).Underline(true),

	Node:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // Blue
	Logger: lipgloss.NewStyle().Foreground(lipgloss.Color("142")), // Yellow-green

	Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	Danger:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	Unchanged: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),

	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1),
	StatusBar: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")).Padding(0, 1),
	Selected:  lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("39")),
	Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
}

// LevelStyle returns the appropriate style for a severity label
func LevelStyle(level string) lipgloss.Style {
	switch level {
	case "DEBUG":
		return Styles.Debug
	case "INFO":
		return Styles.Info
	case "WARN":
		return Styles.Warn
	case "ERROR":
		return Styles.Error
	case "FATAL":
		return Styles.Fatal
	default:
		return Styles.Unchanged
	}
}
