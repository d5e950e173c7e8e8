// Package view builds element trees and paints them with lipgloss.
//
// Trees are built with El, which takes a "tag.class1.class2#id" selector
// followed by attributes and children, and are painted by a Painter using a
// Stylesheet keyed by class name. Overlays are mounted on a Document.
package view

import (
	"fmt"
	"strings"
)

// Node is one element of a tree. A Node with an empty Tag is a text node.
type Node struct {
	Tag      string
	ID       string
	Classes  []string
	Attrs    Attrs
	Hidden   bool
	Text     string
	Children []*Node
}

// Attrs holds element attributes such as "title".
type Attrs map[string]string

// El builds an element from a selector and a list of arguments.
// Accepted arguments: Attrs, string (text child), *Node, []*Node, nil.
func El(selector string, args ...any) *Node {
	n := parseSelector(selector)
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case Attrs:
			if n.Attrs == nil {
				n.Attrs = Attrs{}
			}
			for k, val := range v {
				n.Attrs[k] = val
			}
		case string:
			n.Children = append(n.Children, Text(v))
		case *Node:
			if v != nil {
				n.Children = append(n.Children, v)
			}
		case []*Node:
			for _, child := range v {
				if child != nil {
					n.Children = append(n.Children, child)
				}
			}
		default:
			panic(fmt.Sprintf("view.El: unsupported argument %T", arg))
		}
	}
	return n
}

// Text creates a text node.
func Text(s string) *Node {
	return &Node{Text: s}
}

func parseSelector(selector string) *Node {
	n := &Node{}
	if i := strings.IndexByte(selector, '#'); i >= 0 {
		n.ID = selector[i+1:]
		selector = selector[:i]
	}
	parts := strings.Split(selector, ".")
	n.Tag = parts[0]
	if n.Tag == "" {
		n.Tag = "div"
	}
	for _, cls := range parts[1:] {
		if cls != "" {
			n.Classes = append(n.Classes, cls)
		}
	}
	return n
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// HasClass reports whether n carries class cls.
func (n *Node) HasClass(cls string) bool {
	for _, c := range n.Classes {
		if c == cls {
			return true
		}
	}
	return false
}

// TextContent concatenates the text of n and all descendants, hidden ones included.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var b strings.Builder
	for _, child := range n.Children {
		b.WriteString(child.TextContent())
	}
	return b.String()
}

// SetText replaces every child of n with a single text node.
func (n *Node) SetText(s string) {
	n.Children = []*Node{Text(s)}
}

// Walk visits n and its descendants depth-first until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// FindByID returns the first descendant (or n itself) with the given id.
func (n *Node) FindByID(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node in the subtree carrying class cls.
func (n *Node) FindAll(cls string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.HasClass(cls) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Find returns the first node in the subtree carrying class cls.
func (n *Node) Find(cls string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c.HasClass(cls) {
			found = c
			return false
		}
		return true
	})
	return found
}
