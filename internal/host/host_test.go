package host

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envmanager/internal/view"
)

type modernTarget struct{ groups [][]Button }

func (m *modernTarget) InsertButtonGroup(buttons ...Button) {
	m.groups = append(m.groups, buttons)
}

type legacyTarget struct{ buttons []Button }

func (l *legacyTarget) AppendMenuButton(b Button) {
	l.buttons = append(l.buttons, b)
}

type bothTarget struct {
	modernTarget
	legacyTarget
}

type registryInjector struct{ reg *view.Registry }

func (r registryInjector) InjectStylesheet(name string, sheet view.Stylesheet) bool {
	return r.reg.Inject(name, sheet)
}

func TestDetectMenu(t *testing.T) {
	tests := []struct {
		name   string
		target any
		want   MenuKind
	}{
		{"modern", &modernTarget{}, ModernMenu},
		{"legacy", &legacyTarget{}, LegacyMenu},
		{"prefers modern", &bothTarget{}, ModernMenu},
		{"none", struct{}{}, NoMenu},
		{"nil", nil, NoMenu},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMenu(tt.target).Kind)
		})
	}
}

func TestMenu_AddButton(t *testing.T) {
	btn := Button{Label: "Env", Key: "e"}

	modern := &modernTarget{}
	assert.True(t, DetectMenu(modern).AddButton(btn))
	require.Len(t, modern.groups, 1)
	assert.Equal(t, "Env", modern.groups[0][0].Label)

	legacy := &legacyTarget{}
	assert.True(t, DetectMenu(legacy).AddButton(btn))
	require.Len(t, legacy.buttons, 1)

	assert.False(t, DetectMenu(nil).AddButton(btn))
}

func TestRegistry_StartOrderAndOnce(t *testing.T) {
	var calls []string
	var reg Registry
	for _, name := range []string{"a", "b"} {
		name := name
		reg.Register(Extension{
			Name:  name,
			Init:  func(StyleInjector) { calls = append(calls, "init "+name) },
			Setup: func(Menu) { calls = append(calls, "setup "+name) },
		})
	}

	styles := registryInjector{view.NewRegistry()}
	assert.True(t, reg.Start(styles, &modernTarget{}))
	assert.False(t, reg.Start(styles, &modernTarget{}))
	assert.False(t, reg.Register(Extension{Name: "late"}))

	assert.Equal(t, []string{"init a", "init b", "setup a", "setup b"}, calls)
}

func TestRegistry_InitInjectsOnce(t *testing.T) {
	styles := registryInjector{view.NewRegistry()}
	ext := Extension{
		Name: "styled",
		Init: func(s StyleInjector) { s.InjectStylesheet("styled", view.Stylesheet{}) },
	}

	ext.Init(styles)
	ext.Init(styles)
	assert.Equal(t, 1, styles.reg.Len())
}

type pingMsg struct{}

func TestRegistry_Dispatch(t *testing.T) {
	var reg Registry
	var seen int
	reg.Register(Extension{Name: "quiet"})
	reg.Register(Extension{
		Name: "listener",
		Update: func(msg tea.Msg) tea.Cmd {
			if _, ok := msg.(pingMsg); ok {
				seen++
				return func() tea.Msg { return "pong" }
			}
			return nil
		},
	})

	cmd := reg.Dispatch(pingMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, "pong", cmd())
	assert.Equal(t, 1, seen)

	assert.Nil(t, reg.Dispatch("other"))
}
