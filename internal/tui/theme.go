package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette helpers. The TUI must stay readable on both light and dark
// terminal backgrounds, so everything routes through AdaptiveColor.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      = ac("240", "243")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorAccent     = ac("28", "42")  // success green
	colorWarn       = ac("130", "214") // warnings / pending delete
	colorError      = ac("124", "203")
	colorControlBg  = ac("252", "238")
	colorSurfaceFg  = ac("235", "252")
)

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func styleSelectedRow() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
}

func styleFlashOK() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent)
}

func styleFlashWarn() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorWarn)
}

func styleFlashErr() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

func stylePendingDelete() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
}
