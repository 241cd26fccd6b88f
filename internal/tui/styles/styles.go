package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	NightBlue  = lipgloss.Color("#0B1026")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Amber      = lipgloss.Color("#F59E0B")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// Chart colors
var (
	GridColor     = SlateLight // Elevation rings and spokes
	GridTextColor = DimGray    // Ring labels
	LimitColor    = Red        // Visibility band
	PathColor     = lipgloss.Color("#00A000")
	CardinalColor = lipgloss.Color("#A0A0A0")
	LabelColor    = Blue // Source names
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Amber)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Menu row characters
const (
	CheckedChar   = "[x]"
	UncheckedChar = "[ ]"
	CursorChar    = "›"
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	MatchStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Amber).
			Padding(1, 2).
			Background(SlateDark)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Amber)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Time panel styles
var (
	TimeLabelStyle = lipgloss.NewStyle().
			Foreground(DimGray).
			Width(6)

	TimeValueStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	EditingStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)
)

// Swatch renders a color sample in the given fill color
func Swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}
