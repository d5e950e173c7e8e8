package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envmanager/internal/host"
	"envmanager/internal/view"
)

type boxOverlay struct {
	doc  *view.Document
	keys []string
}

func (b *boxOverlay) HandleKey(msg tea.KeyMsg) tea.Cmd {
	b.keys = append(b.keys, msg.String())
	if msg.String() == "esc" {
		b.doc.Detach(b)
	}
	return nil
}

func (b *boxOverlay) View(*view.Painter, int, int) string {
	return "+----+\n|BOX |\n+----+"
}

func labels(items []MenuItem) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

func TestInsertButtonGroup_BeforeHelp(t *testing.T) {
	ext := host.Extension{
		Name: "demo",
		Setup: func(menu host.Menu) {
			assert.Equal(t, host.ModernMenu, menu.Kind)
			menu.AddButton(host.Button{Icon: "▣", Label: "Env", Key: "e", Tooltip: "Environment Manager"})
		},
	}
	m := newTestModel(t, ext)

	assert.Equal(t, []string{"▣ Env", "Help", "Quit"}, labels(m.Items()))
	assert.Equal(t, "Environment Manager", m.Items()[0].Description)
}

func TestExtensionLifecycle(t *testing.T) {
	var order []string
	ext := host.Extension{
		Name: "styled",
		Init: func(s host.StyleInjector) {
			order = append(order, "init")
			assert.True(t, s.InjectStylesheet("styled", view.Stylesheet{}))
			assert.False(t, s.InjectStylesheet("styled", view.Stylesheet{}))
		},
		Setup: func(host.Menu) { order = append(order, "setup") },
	}
	m := newTestModel(t, ext)

	assert.Equal(t, []string{"init", "setup"}, order)
	assert.Equal(t, 1, m.styles.Len())
}

func TestShortcutRunsAction(t *testing.T) {
	doc := view.NewDocument()
	box := &boxOverlay{doc: doc}
	ext := host.Extension{
		Name: "box",
		Setup: func(menu host.Menu) {
			menu.AddButton(host.Button{Label: "Box", Key: "b", Action: func() tea.Cmd {
				doc.Attach(box)
				return nil
			}})
		},
	}
	reg := &host.Registry{}
	reg.Register(ext)
	m := NewModel(doc, reg, nil, Options{})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	require.Same(t, box, doc.Top())
	assert.Equal(t, 0, m.selection)

	// Keys go to the overlay while it is mounted, including q.
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.False(t, m.quitting)
	assert.Equal(t, []string{"q"}, box.keys)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, doc.Top())
}

func TestExtensionsReceiveMessages(t *testing.T) {
	type resultMsg struct{ n int }
	var got []int
	ext := host.Extension{
		Name: "listener",
		Update: func(msg tea.Msg) tea.Cmd {
			if r, ok := msg.(resultMsg); ok {
				got = append(got, r.n)
			}
			return nil
		},
	}
	m := newTestModel(t, ext)

	m.Update(resultMsg{n: 7})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})

	assert.Equal(t, []int{7}, got, "keys are not forwarded to extensions")
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	require.NotNil(t, m.doc.Top())
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.doc.Top())
	assert.False(t, m.quitting)
}

func TestViewCompositesOverlayCentered(t *testing.T) {
	doc := view.NewDocument()
	m := NewModel(doc, nil, nil, Options{})
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	doc.Attach(&boxOverlay{doc: doc})

	out := m.View()
	lines := strings.Split(out, "\n")

	require.GreaterOrEqual(t, len(lines), 12)
	row := -1
	for i, line := range lines {
		if strings.Contains(line, "|BOX |") {
			row = i
		}
	}
	require.NotEqual(t, -1, row)
	assert.Equal(t, 5, row, "overlay is vertically centered")
	assert.Equal(t, 17, strings.Index(lines[row], "|BOX |"), "overlay is horizontally centered")
	assert.LessOrEqual(t, lipgloss.Width(lines[row]), 40)
}

func TestOverlayAt_KeepsSurroundings(t *testing.T) {
	base := "abcdefghij\n0123456789\nABCDEFGHIJ"

	out := overlayAt(base, "XY", 3, 1, 10, 3)

	assert.Equal(t, "abcdefghij\n012XY56789\nABCDEFGHIJ", out)
}
