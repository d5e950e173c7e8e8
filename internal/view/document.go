package view

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Overlay is a modal layer mounted on a Document.
type Overlay interface {
	// HandleKey receives keys while the overlay is topmost.
	HandleKey(msg tea.KeyMsg) tea.Cmd
	// View renders the overlay for a screen of the given size.
	View(p *Painter, width, height int) string
}

// Document is the mount point for overlays, bottom to top.
type Document struct {
	mu       sync.Mutex
	overlays []Overlay
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Attach mounts o on top. Attaching an overlay that is already mounted moves it to the top.
func (d *Document) Attach(o Overlay) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.overlays = remove(d.overlays, o)
	d.overlays = append(d.overlays, o)
}

// Detach unmounts o and reports whether it was mounted.
func (d *Document) Detach(o Overlay) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	before := len(d.overlays)
	d.overlays = remove(d.overlays, o)
	return len(d.overlays) != before
}

// Attached reports whether o is mounted.
func (d *Document) Attached(o Overlay) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, cur := range d.overlays {
		if cur == o {
			return true
		}
	}
	return false
}

// Overlays returns the mounted overlays, bottom to top.
func (d *Document) Overlays() []Overlay {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Overlay(nil), d.overlays...)
}

// Top returns the topmost overlay or nil.
func (d *Document) Top() Overlay {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.overlays) == 0 {
		return nil
	}
	return d.overlays[len(d.overlays)-1]
}

func remove(list []Overlay, o Overlay) []Overlay {
	out := list[:0]
	for _, cur := range list {
		if cur != o {
			out = append(out, cur)
		}
	}
	return out
}
