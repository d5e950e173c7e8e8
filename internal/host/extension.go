// Package host defines how extensions plug into the shell: lifecycle hooks,
// stylesheet injection and menu placement.
package host

import (
	tea "github.com/charmbracelet/bubbletea"

	"envmanager/internal/view"
)

// StyleInjector registers a named stylesheet. Injecting a name twice is a no-op
// that returns false.
type StyleInjector interface {
	InjectStylesheet(name string, sheet view.Stylesheet) bool
}

// Extension is a unit registered with the shell.
//
// The shell calls every Init exactly once, then every Setup with the menu
// resolved for it. Update receives messages that are not keys, so an
// extension can react to the results of its own commands.
type Extension struct {
	Name   string
	Init   func(styles StyleInjector)
	Setup  func(menu Menu)
	Update func(msg tea.Msg) tea.Cmd
}

// Registry holds extensions in registration order.
type Registry struct {
	extensions []Extension
	started    bool
}

// Register adds ext. Extensions registered after Start are ignored.
func (r *Registry) Register(ext Extension) bool {
	if r.started {
		return false
	}
	r.extensions = append(r.extensions, ext)
	return true
}

// Extensions returns the registered extensions.
func (r *Registry) Extensions() []Extension {
	return append([]Extension(nil), r.extensions...)
}

// Start runs every Init, then every Setup against target's menu.
// It runs once; later calls do nothing and return false.
func (r *Registry) Start(styles StyleInjector, target any) bool {
	if r.started {
		return false
	}
	r.started = true

	for _, ext := range r.extensions {
		if ext.Init != nil {
			ext.Init(styles)
		}
	}

	menu := DetectMenu(target)
	for _, ext := range r.extensions {
		if ext.Setup != nil {
			ext.Setup(menu)
		}
	}
	return true
}

// Dispatch forwards msg to every extension's Update and batches the results.
func (r *Registry) Dispatch(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, ext := range r.extensions {
		if ext.Update == nil {
			continue
		}
		if cmd := ext.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}
