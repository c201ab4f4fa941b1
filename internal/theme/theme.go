// Package theme holds the light/dark display mode of the viewer.
//
// A single Controller owned by the root TUI model is the only writer. Child
// renderers receive a Palette value and never change the mode themselves.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Mode is the display mode.
type Mode int

const (
	Light Mode = iota
	Dark
)

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// ParseMode parses "light" or "dark". The empty string means Light.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Light, fmt.Errorf("invalid theme %q, must be: light or dark", s)
	}
}

// Palette is the set of colors used to render one mode.
type Palette struct {
	Mode      Mode
	Primary   lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Surface   lipgloss.Color
	Border    lipgloss.Color
	Badge     lipgloss.Color
	BadgeText lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
}

var palettes = map[Mode]Palette{
	Light: {
		Mode:      Light,
		Primary:   lipgloss.Color("#2563EB"),
		Text:      lipgloss.Color("#111827"),
		Muted:     lipgloss.Color("#6B7280"),
		Surface:   lipgloss.Color("#F3F4F6"),
		Border:    lipgloss.Color("#D1D5DB"),
		Badge:     lipgloss.Color("#DBEAFE"),
		BadgeText: lipgloss.Color("#1E40AF"),
		Success:   lipgloss.Color("#16A34A"),
		Error:     lipgloss.Color("#DC2626"),
	},
	Dark: {
		Mode:      Dark,
		Primary:   lipgloss.Color("#7C3AED"),
		Text:      lipgloss.Color("#F9FAFB"),
		Muted:     lipgloss.Color("#9CA3AF"),
		Surface:   lipgloss.Color("#1F2937"),
		Border:    lipgloss.Color("#4B5563"),
		Badge:     lipgloss.Color("#1E3A8A"),
		BadgeText: lipgloss.Color("#BFDBFE"),
		Success:   lipgloss.Color("#6EE7B7"),
		Error:     lipgloss.Color("#F87171"),
	},
}

// PaletteFor returns the palette of mode.
func PaletteFor(mode Mode) Palette {
	return palettes[mode]
}

// Controller owns the current mode.
type Controller struct {
	mode Mode
}

// NewController starts in the given mode.
func NewController(initial Mode) *Controller {
	return &Controller{mode: initial}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Toggle flips between light and dark and returns the new mode.
func (c *Controller) Toggle() Mode {
	if c.mode == Dark {
		c.mode = Light
	} else {
		c.mode = Dark
	}
	return c.mode
}

// Palette returns the palette for the current mode.
func (c *Controller) Palette() Palette { return PaletteFor(c.mode) }
