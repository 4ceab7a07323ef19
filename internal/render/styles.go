package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	TMDBTeal  = lipgloss.Color("#01B4E4")
	TMDBGreen = lipgloss.Color("#90CEA1")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Red       = lipgloss.Color("#EF4444")
	Amber     = lipgloss.Color("#F59E0B")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(TMDBTeal).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(TMDBTeal)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(TMDBGreen)
)

// Badge styles, one per media kind
var (
	MovieBadge = lipgloss.NewStyle().
			Foreground(White).
			Background(TMDBTeal).
			Padding(0, 1)

	TVBadge = lipgloss.NewStyle().
			Foreground(White).
			Background(lipgloss.Color("#0D253F")).
			Padding(0, 1)

	PersonBadge = lipgloss.NewStyle().
			Foreground(White).
			Background(DimGray).
			Padding(0, 1)
)

// Rating bar styles
var (
	RatingFullStyle = lipgloss.NewStyle().
			Foreground(Amber)

	RatingEmptyStyle = lipgloss.NewStyle().
				Foreground(DimGray)
)

// Raw rated indicator characters (unstyled)
const (
	RatedChar   = "★"
	UnratedChar = "☆"
)

// SpinnerFrames are the braille frames shown while waiting on the network
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Truncate truncates a string to the given width (in runes) with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// RenderRatingBar renders a 0-10 rating as a bar of width cells
func RenderRatingBar(rating float64, width int) string {
	if width < 3 {
		return ""
	}

	filled := int(float64(width) * rating / 10)
	filled = max(0, min(filled, width))

	var b strings.Builder
	b.WriteString(RatingFullStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(RatingEmptyStyle.Render(strings.Repeat("░", width-filled)))
	return b.String()
}
