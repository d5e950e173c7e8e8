// Package tui is the interactive shell: a main menu that extensions add
// buttons to, with overlays composited on top.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"envmanager/internal/host"
	"envmanager/internal/logging"
	"envmanager/internal/view"
)

// Options configures the shell.
type Options struct {
	// StateDir holds ui_state.json. Empty disables persistence.
	StateDir string
	// Subtitle is shown under the title, typically the backend address.
	Subtitle string
}

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k")),
		Down:      key.NewBinding(key.WithKeys("down", "j")),
		Select:    key.NewBinding(key.WithKeys("enter", " ")),
		Quit:      key.NewBinding(key.WithKeys("q")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// Model is the shell's bubbletea model. It implements host.ButtonGroupAPI and
// host.StyleInjector, and owns the document that overlays mount on.
type Model struct {
	logger     *logging.Logger
	doc        *view.Document
	styles     *view.Registry
	painter    *view.Painter
	extensions *host.Registry
	keys       keyMap
	help       *helpOverlay

	items     []MenuItem
	selection int
	subtitle  string

	width    int
	height   int
	quitting bool

	stateManager *UIStateManager
}

// NewModel creates the shell and starts its extensions: every Init runs,
// then every Setup against this model's menu.
func NewModel(doc *view.Document, extensions *host.Registry, logger *logging.Logger, opts Options) *Model {
	if extensions == nil {
		extensions = &host.Registry{}
	}

	styles := view.NewRegistry()
	m := &Model{
		logger:       logger,
		doc:          doc,
		styles:       styles,
		painter:      view.NewPainter(styles),
		extensions:   extensions,
		keys:         defaultKeyMap(),
		items:        DefaultMenuItems(),
		subtitle:     opts.Subtitle,
		stateManager: NewUIStateManager(opts.StateDir, logger),
	}
	m.help = &helpOverlay{model: m}

	extensions.Start(m, m)

	// Load persisted UI state
	if state, err := m.stateManager.Load(); err == nil {
		m.restoreSelection(state.LastItem, state.Selection)
	} else {
		logger.Warn("tui.state.load_failed", "Failed to load UI state", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("tui.start", "Shell started", map[string]interface{}{
		"extensions": len(extensions.Extensions()),
		"items":      len(m.items),
	})

	return m
}

// InjectStylesheet registers an extension stylesheet with the shell's painter.
func (m *Model) InjectStylesheet(name string, sheet view.Stylesheet) bool {
	injected := m.styles.Inject(name, sheet)
	if injected {
		m.logger.Debug("tui.stylesheet.injected", "Stylesheet injected", map[string]interface{}{
			"name":  name,
			"rules": len(sheet),
		})
	}
	return injected
}

// Items returns the menu items in display order.
func (m *Model) Items() []MenuItem {
	return append([]MenuItem(nil), m.items...)
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update routes keys to the topmost overlay, or the menu when none is
// mounted. Every other message goes to the extensions.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, m.quit()
		}
		if top := m.doc.Top(); top != nil {
			return m, top.HandleKey(msg)
		}
		return m, m.handleMenuKeys(msg)
	}
	return m, m.extensions.Dispatch(msg)
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.navigateUp()
		return nil
	case key.Matches(msg, m.keys.Down):
		m.navigateDown()
		return nil
	case key.Matches(msg, m.keys.Select):
		return m.activate(m.selection)
	}

	if i, ok := m.itemByKey(msg.String()); ok {
		m.selection = i
		return m.activate(i)
	}
	return nil
}

func (m *Model) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.items) {
		return nil
	}
	item := m.items[i]

	switch item.ID {
	case itemHelp:
		m.doc.Attach(m.help)
		return nil
	case itemQuit:
		return m.quit()
	}

	m.logger.Debug("tui.menu.activate", "Menu item activated", map[string]interface{}{
		"item": item.Label,
	})
	if item.Action == nil {
		return nil
	}
	return item.Action()
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.saveState()
	return tea.Quit
}

// View renders the menu with every mounted overlay composited on top.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	out := m.renderMenu()
	for _, o := range m.doc.Overlays() {
		out = centerOverlay(out, o.View(m.painter, m.width, m.height), m.width, m.height)
	}
	return out
}

// saveState persists the current UI state
func (m *Model) saveState() {
	state := &UIState{Selection: m.selection}
	if m.selection >= 0 && m.selection < len(m.items) {
		state.LastItem = m.items[m.selection].Label
	}
	if err := m.stateManager.Save(state); err != nil {
		m.logger.Warn("tui.state.save_failed", "Failed to save UI state", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
