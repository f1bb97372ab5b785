package theme

// Centralized theming and styling initialization for the waste console UI.
// Provides palette constants, semantic tone resolution and InitStyles to
// activate a base theme and configure widget styles.

import (
	"github.com/platewatch/waste-console/domain/detection"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // panels, cards
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb" // buttons, accents
	ColorDanger    = "#dc2626"
	ColorWarning   = "#f59e0b"
	ColorSuccess   = "#10b981"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// ToneColor resolves a semantic status tone to its palette color.
func ToneColor(t detection.Tone) string {
	switch t {
	case detection.ToneWarning:
		return ColorWarning
	case detection.ToneSuccess:
		return ColorSuccess
	case detection.ToneDanger:
		return ColorDanger
	case detection.ToneMuted:
		return ColorTextMuted
	default:
		return ColorPrimary
	}
}

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStatusLabel   = "status.TLabel"
)

// InitStyles applies the base theme and the semantic widget styles.
func InitStyles() {
	_ = ActivateTheme("azure light") // baseline metrics
	App.Configure(Background(ColorBg))

	StyleConfigure(StylePrimaryButton,
		Background(ColorPrimary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(ColorDanger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground("white"),
		Background(ColorPrimary),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
