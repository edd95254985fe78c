package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Theme defines colors and the optional header transform for narrative lines.
type Theme struct {
	Name      string
	Container lipgloss.Style
	Pass      lipgloss.Style
	Fail      lipgloss.Style
	Pending   lipgloss.Style
	Muted     lipgloss.Style
	// Transform is applied to container header text: "", "upper", or "title".
	Transform string
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:      "default",
		Container: lipgloss.NewStyle().Bold(true),
		Pass:      lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Fail:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
	}
}

// OrcaTheme returns a muted, professional theme.
func OrcaTheme() Theme {
	return Theme{
		Name:      "orca",
		Container: lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true), // pale blue
		Pass:      lipgloss.NewStyle().Foreground(lipgloss.Color("108")),           // sage green
		Fail:      lipgloss.NewStyle().Foreground(lipgloss.Color("167")),           // muted red
		Pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("179")),           // muted gold
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),           // lighter gray
	}
}

// MonoTheme returns an uncolored theme for dumb terminals and pipes.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:      "mono",
		Container: plain,
		Pass:      plain,
		Fail:      plain,
		Pending:   plain,
		Muted:     plain,
	}
}

// ThemeByName selects a theme, falling back to the default.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}

var titleCaser = cases.Title(language.English)

// Style returns a StyleFunc applying the theme's colors and header transform.
func (t Theme) Style() StyleFunc {
	return func(kind LineKind, text string) string {
		switch kind {
		case KindContainer:
			return t.Container.Render(t.transformHeader(text))
		case KindPass:
			return t.Pass.Render(text)
		case KindFail:
			return t.Fail.Render(text)
		case KindPackage:
			return t.Muted.Render(text)
		default:
			return t.Pending.Render(text)
		}
	}
}

// transformHeader rewrites the text portion of a container line, preserving
// the leading indent.
func (t Theme) transformHeader(line string) string {
	indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
	text := line[len(indent):]
	switch t.Transform {
	case "upper":
		text = strings.ToUpper(text)
	case "title":
		text = titleCaser.String(text)
	}
	return indent + text
}
