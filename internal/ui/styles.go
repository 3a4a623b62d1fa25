package ui

import "github.com/charmbracelet/lipgloss"

// Phosphor colour palette
var (
	ColorPhosphor     = lipgloss.Color("#00FF88")
	ColorGreen        = lipgloss.Color("#00CC6A")
	ColorMidGreen     = lipgloss.Color("#00884A")
	ColorDimGreen     = lipgloss.Color("#0A4A2E")
	ColorBackground   = lipgloss.Color("#0A0E1A")
	ColorBarBg        = lipgloss.Color("#0F1A24")
	ColorEcho         = lipgloss.Color("#FF3B5C")
	ColorBorderBright = lipgloss.Color("#00FF88")
	ColorBorderNorm   = lipgloss.Color("#00AA5A")
	ColorError        = lipgloss.Color("#FF3300")
	ColorWarning      = lipgloss.Color("#FFAA00")
	ColorSimulating   = lipgloss.Color("#33CCFF")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(ColorBarBg).
			Foreground(ColorPhosphor).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorPhosphor).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleStatusBar = lipgloss.NewStyle().
			Background(ColorBarBg).
			Foreground(ColorGreen).
			Padding(0, 1)

	StyleStatusLive = lipgloss.NewStyle().
			Foreground(ColorPhosphor).
			Bold(true)

	StyleStatusPaused = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StyleStatusError = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderBright)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorPhosphor).
			Bold(true).
			Padding(0, 1)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleValue = lipgloss.NewStyle().
			Foreground(ColorPhosphor).
			Bold(true)

	StyleEcho = lipgloss.NewStyle().
			Foreground(ColorEcho).
			Bold(true)

	StyleRing = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleLegend = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleModeSimulating = lipgloss.NewStyle().
				Foreground(ColorSimulating).
				Bold(true)

	StyleModeConnected = lipgloss.NewStyle().
				Foreground(ColorPhosphor).
				Bold(true)

	StyleModeDisconnected = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)
