package host

import tea "github.com/charmbracelet/bubbletea"

// Button is a menu entry contributed by an extension.
type Button struct {
	Icon    string
	Label   string
	Tooltip string
	// Key is the shortcut that activates the button from the menu.
	Key    string
	Action func() tea.Cmd
}

// ButtonGroupAPI is the current menu API: grouped buttons placed before the
// settings entries.
type ButtonGroupAPI interface {
	InsertButtonGroup(buttons ...Button)
}

// LegacyMenuAPI is the older menu API that appends buttons to the end.
type LegacyMenuAPI interface {
	AppendMenuButton(b Button)
}

// MenuKind tags which API a Menu resolved to.
type MenuKind int

const (
	// NoMenu means the target exposes no menu API.
	NoMenu MenuKind = iota
	// LegacyMenu means only AppendMenuButton is available.
	LegacyMenu
	// ModernMenu means InsertButtonGroup is available.
	ModernMenu
)

func (k MenuKind) String() string {
	switch k {
	case ModernMenu:
		return "modern"
	case LegacyMenu:
		return "legacy"
	default:
		return "none"
	}
}

// Menu is the resolved placement target for extension buttons.
type Menu struct {
	Kind   MenuKind
	modern ButtonGroupAPI
	legacy LegacyMenuAPI
}

// DetectMenu resolves the menu API target supports, preferring the modern one.
func DetectMenu(target any) Menu {
	if m, ok := target.(ButtonGroupAPI); ok {
		return Menu{Kind: ModernMenu, modern: m}
	}
	if m, ok := target.(LegacyMenuAPI); ok {
		return Menu{Kind: LegacyMenu, legacy: m}
	}
	return Menu{Kind: NoMenu}
}

// AddButton places b with whichever API was detected.
// It returns false for NoMenu.
func (m Menu) AddButton(b Button) bool {
	switch m.Kind {
	case ModernMenu:
		m.modern.InsertButtonGroup(b)
		return true
	case LegacyMenu:
		m.legacy.AppendMenuButton(b)
		return true
	default:
		return false
	}
}
