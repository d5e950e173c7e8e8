package envpanel

import (
	"github.com/charmbracelet/lipgloss"

	"envmanager/internal/view"
)

// StylesheetName is the name the panel's stylesheet is injected under.
const StylesheetName = "envmanager.panel"

func fg(hex string) view.Rule {
	return func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color(hex)) }
}

// Stylesheet returns the panel's class rules.
func Stylesheet() view.Stylesheet {
	return view.Stylesheet{
		"em-dialog": func(s lipgloss.Style) lipgloss.Style {
			return s.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
		},
		"em-header": func(s lipgloss.Style) lipgloss.Style {
			return s.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("#333333"))
		},
		"em-header-title": func(s lipgloss.Style) lipgloss.Style {
			return s.Bold(true).Foreground(lipgloss.Color("#ffffff")).PaddingRight(2)
		},
		"em-header-icon": func(s lipgloss.Style) lipgloss.Style { return s.PaddingRight(1) },
		"em-header-btn": func(s lipgloss.Style) lipgloss.Style {
			return s.Foreground(lipgloss.Color("#aaaaaa")).PaddingLeft(2)
		},
		"em-body":    func(s lipgloss.Style) lipgloss.Style { return s.PaddingTop(1) },
		"em-section": func(s lipgloss.Style) lipgloss.Style { return s.MarginBottom(1) },
		"em-section-title": func(s lipgloss.Style) lipgloss.Style {
			return s.Bold(true).Foreground(lipgloss.Color("#8bb4e0"))
		},
		"em-kv-label": func(s lipgloss.Style) lipgloss.Style {
			return s.Foreground(lipgloss.Color("#888888")).Width(14)
		},
		"em-kv-value": fg("#e0e0e0"),
		"em-gpu-card": func(s lipgloss.Style) lipgloss.Style {
			return s.Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#333333")).Padding(0, 1)
		},
		"em-gpu-name":        func(s lipgloss.Style) lipgloss.Style { return s.Bold(true).Foreground(lipgloss.Color("#ffffff")) },
		"em-vram-label":      fg("#888888"),
		"em-vram-track":      fg("#333333"),
		"em-vram-fill":       fg("#4caf50"),
		"green":              fg("#4caf50"),
		"yellow":             fg("#ff9800"),
		"red":                fg("#f44336"),
		"em-precision-label": func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color("#888888")).PaddingRight(1) },
		"em-badge":           func(s lipgloss.Style) lipgloss.Style { return s.Padding(0, 1).MarginRight(1) },
		"em-badge-on": func(s lipgloss.Style) lipgloss.Style {
			return s.Background(lipgloss.Color("#1b5e20")).Foreground(lipgloss.Color("#a5d6a7"))
		},
		"em-badge-off": func(s lipgloss.Style) lipgloss.Style {
			return s.Background(lipgloss.Color("#2a2a2a")).Foreground(lipgloss.Color("#555555"))
		},
		"em-node-entry":  func(s lipgloss.Style) lipgloss.Style { return s.MarginTop(1) },
		"em-node-name":   func(s lipgloss.Style) lipgloss.Style { return s.Bold(true).Foreground(lipgloss.Color("#ffffff")) },
		"em-node-detail": func(s lipgloss.Style) lipgloss.Style { return s.PaddingLeft(2).Foreground(lipgloss.Color("#aaaaaa")) },
		"em-node-sub":    func(s lipgloss.Style) lipgloss.Style { return s.PaddingLeft(2) },
		"em-check":       func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color("#4caf50")).PaddingRight(1) },
		"em-cross":       func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color("#555555")).PaddingRight(1) },
		"em-toggle":      func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color("#6a9fd4")).MarginTop(1) },
		"em-cache":       func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color("#666666")).MarginTop(1) },
		"em-muted":       fg("#888888"),
		"em-loading":     fg("#888888"),
		"em-error":       fg("#f44336"),
		"em-hint":        fg("#5f5f5f"),
	}
}
