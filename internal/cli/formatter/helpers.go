package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Clock formats seconds as H:MM:SS. Negative values keep their sign.
func Clock(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%d:%02d:%02d", sign, seconds/3600, seconds/60%60, seconds%60)
}

// Hours formats a two-decimal hour total, e.g. "1.84h".
func Hours(h float64) string {
	return fmt.Sprintf("%.2fh", h)
}

// Timestamp renders t in local time for terminal output.
func Timestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func OptionalTimestamp(t *time.Time) string {
	if t == nil {
		return Dim("—")
	}
	return Timestamp(*t)
}

func Optional(s *string) string {
	if s == nil || *s == "" {
		return Dim("—")
	}
	return *s
}

// ShortID returns the first segment of a UUID for compact tables.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
