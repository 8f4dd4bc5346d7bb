package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TimesheetPill renders a colored timesheet status such as "● APPROVED".
func TimesheetPill(status domain.TimesheetStatus) string {
	label := "● " + strings.ToUpper(string(status))
	switch status {
	case domain.TimesheetApproved:
		return StyleGreen.Render(label)
	case domain.TimesheetSubmitted:
		return StyleYellow.Render(label)
	case domain.TimesheetDenied:
		return StyleRed.Render(label)
	default:
		return StyleDim.Render(label)
	}
}

func UserStatusPill(status domain.UserStatus) string {
	if status == domain.UserActive {
		return StyleGreen.Render("● active")
	}
	return StyleDim.Render("○ " + string(status))
}

func RoleBadge(role domain.Role) string {
	if role == domain.RoleAdmin {
		return StyleBlue.Render("admin")
	}
	return StyleFg.Render(string(role))
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
