package view

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Rule adjusts a style for one class. Rules for a node's classes apply in
// class order, so later classes override earlier ones the way a cascade does.
type Rule func(lipgloss.Style) lipgloss.Style

// Stylesheet maps class names to rules.
type Stylesheet map[string]Rule

// Registry collects stylesheets injected by name. Each name is injected once.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	sheets map[string]Stylesheet
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sheets: map[string]Stylesheet{}}
}

// Inject registers sheet under name. It returns false if name was already injected.
func (r *Registry) Inject(name string, sheet Stylesheet) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sheets[name]; ok {
		return false
	}
	r.sheets[name] = sheet
	r.order = append(r.order, name)
	return true
}

// Len returns the number of injected stylesheets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func (r *Registry) rule(cls string) Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found Rule
	for _, name := range r.order {
		if rule, ok := r.sheets[name][cls]; ok {
			found = rule
		}
	}
	return found
}

// inlineTags are laid out left to right; every other tag stacks vertically.
var inlineTags = map[string]bool{"span": true, "button": true}

// Painter renders trees with the styles of a Registry.
type Painter struct {
	styles *Registry
	plain  bool
}

// NewPainter creates a painter. A nil registry paints unstyled.
func NewPainter(styles *Registry) *Painter {
	if styles == nil {
		styles = NewRegistry()
	}
	return &Painter{styles: styles}
}

// NewPlainPainter paints with layout rules but strips colors and attributes,
// for output that is not a terminal.
func NewPlainPainter(styles *Registry) *Painter {
	p := NewPainter(styles)
	p.plain = true
	return p
}

// Paint renders n within width columns. Hidden subtrees render nothing.
func (p *Painter) Paint(n *Node, width int) string {
	out, _ := p.paint(n, width)
	if p.plain {
		out = ansi.Strip(out)
	}
	return out
}

// Style returns the cascaded style for a list of classes.
func (p *Painter) Style(classes []string) lipgloss.Style {
	style := lipgloss.NewStyle()
	for _, cls := range classes {
		if rule := p.styles.rule(cls); rule != nil {
			style = rule(style)
		}
	}
	return style
}

func (p *Painter) paint(n *Node, width int) (string, bool) {
	if n == nil || n.Hidden {
		return "", false
	}
	if n.IsText() {
		if width > 0 && ansi.StringWidth(n.Text) > width {
			return lipgloss.NewStyle().Width(width).Render(n.Text), true
		}
		return n.Text, true
	}

	style := p.Style(n.Classes)
	inner := width
	if w := style.GetWidth(); w > 0 {
		inner = w - style.GetHorizontalPadding() - style.GetHorizontalBorderSize()
	} else if width > 0 {
		inner = width - style.GetHorizontalFrameSize()
	}
	if inner < 1 && width > 0 {
		inner = 1
	}

	var blocks []string
	var row []string
	flush := func() {
		if len(row) > 0 {
			blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}

	for _, child := range n.Children {
		out, ok := p.paint(child, inner)
		if !ok {
			continue
		}
		if child.IsText() || inlineTags[child.Tag] {
			row = append(row, out)
			continue
		}
		flush()
		blocks = append(blocks, out)
	}
	flush()

	return style.Render(strings.Join(blocks, "\n")), true
}
