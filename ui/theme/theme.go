package theme

// Theming for the overlay window: a light and a dark palette plus the named
// ttk styles used by the root view.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette holds the resolved colors for one mode.
type Palette struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

var (
	light = Palette{
		AppBg:     "#f7f9fb",
		Surface:   "#ffffff",
		Border:    "#d0d7de",
		Primary:   "#2563eb",
		Danger:    "#dc2626",
		Accent:    "#10b981",
		Text:      "#1e293b",
		TextMuted: "#64748b",
	}
	dark = Palette{
		AppBg:     "#0f172a",
		Surface:   "#1e293b",
		Border:    "#334155",
		Primary:   "#3b82f6",
		Danger:    "#ef4444",
		Accent:    "#10b981",
		Text:      "#f1f5f9",
		TextMuted: "#94a3b8",
	}
)

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStateLabel    = "state.TLabel"
)

var darkMode bool

// Current returns the palette for the active mode.
func Current() Palette {
	if darkMode {
		return dark
	}
	return light
}

// InitStyles (re)applies styles for the current mode.
func InitStyles() { applyStyles(Current()) }

// SetDark switches mode and reapplies styles.
func SetDark(on bool) {
	darkMode = on
	InitStyles()
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles(p Palette) {
	_ = ActivateTheme("azure light")
	App.Configure(Background(p.AppBg))

	button := func(name, bg string) {
		StyleConfigure(name,
			Background(bg),
			Foreground("white"),
			Padding("4p 3p"),
			Borderwidth(1),
			Relief("ridge"),
		)
	}
	button(StylePrimaryButton, p.Primary)
	button(StyleDangerButton, p.Danger)

	StyleConfigure(StyleStateLabel,
		Foreground(p.Surface),
		Background(p.Accent),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
