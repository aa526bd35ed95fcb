// Package console renders overlay panels as box-drawn text for terminals and logs.
package console

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/pthm-cable/minifps/overlay"
)

const (
	clearScreen = "\033[H\033[2J"

	// Approximate glyph width relative to font size, used to turn pixel
	// margins and minimum widths into columns.
	glyphAspect = 0.5
)

type panel struct {
	layout overlay.Layout
	labels [overlay.SlotCount]overlay.Handle
	values [overlay.SlotCount]overlay.Handle
}

// Tree implements overlay.Tree on top of plain text output.
type Tree struct {
	// Width is the terminal width in columns used for right anchoring.
	// 0 disables anchoring.
	Width int

	// Interactive enables a screen clear before each Render.
	Interactive bool

	nodes  overlay.NodeSet
	panels []*panel
	buf    strings.Builder
}

// NewTree creates a tree for the terminal behind fd. When fd is not a
// terminal, output is unanchored and never clears the screen.
func NewTree(fd int) *Tree {
	t := &Tree{}
	if term.IsTerminal(fd) {
		t.Interactive = true
		if w, _, err := term.GetSize(fd); err == nil {
			t.Width = w
		}
	}
	return t
}

// Build creates a panel and returns its value handles.
func (t *Tree) Build(layout overlay.Layout) [overlay.SlotCount]overlay.Handle {
	p := &panel{layout: layout}
	for i, label := range layout.Labels {
		p.labels[i] = t.nodes.Add(label)
		p.values[i] = t.nodes.Add("")
	}
	t.panels = append(t.panels, p)
	return p.values
}

// SetText replaces the text of a node.
func (t *Tree) SetText(h overlay.Handle, text string) error {
	return t.nodes.SetText(h, text)
}

// Text returns the text of a node.
func (t *Tree) Text(h overlay.Handle) (string, bool) {
	return t.nodes.Text(h)
}

// Clear tears down every panel.
func (t *Tree) Clear() {
	for _, p := range t.panels {
		for i := range p.labels {
			t.nodes.Release(p.labels[i])
			t.nodes.Release(p.values[i])
		}
	}
	t.panels = t.panels[:0]
}

// Render writes every panel to w.
func (t *Tree) Render(w io.Writer) error {
	t.buf.Reset()
	if t.Interactive {
		t.buf.WriteString(clearScreen)
	}
	for _, p := range t.panels {
		t.renderPanel(p)
	}
	if _, err := io.WriteString(w, t.buf.String()); err != nil {
		return fmt.Errorf("writing panel: %w", err)
	}
	return nil
}

func columns(px, fontSize float32) int {
	if fontSize <= 0 {
		return int(px)
	}
	return int(px/(fontSize*glyphAspect) + 0.5)
}

func (t *Tree) renderPanel(p *panel) {
	l := p.layout
	inner := max(1, columns(l.InnerMargin, l.FontSize))
	outer := columns(l.OuterMargin, l.FontSize)

	var labels, values [overlay.SlotCount]string
	labelW := 0
	valueW := columns(l.ValueMinWidth, l.FontSize)
	for i := range p.labels {
		labels[i], _ = t.nodes.Text(p.labels[i])
		values[i], _ = t.nodes.Text(p.values[i])
		labelW = max(labelW, utf8.RuneCountInString(labels[i]))
		valueW = max(valueW, utf8.RuneCountInString(values[i]))
	}

	// Border plus an inner margin on both sides of each column.
	innerW := labelW + valueW + 4*inner
	indent := ""
	if t.Width > 0 && (l.Anchor == overlay.AnchorTopRight || l.Anchor == overlay.AnchorBottomRight) {
		indent = strings.Repeat(" ", max(0, t.Width-outer-innerW-2))
	}

	rule := strings.Repeat("─", innerW)
	pad := strings.Repeat(" ", inner)

	t.buf.WriteString(indent + "┌" + rule + "┐\n")
	for i := range labels {
		t.buf.WriteString(indent + "│" + pad)
		t.buf.WriteString(labels[i])
		t.buf.WriteString(strings.Repeat(" ", labelW-utf8.RuneCountInString(labels[i])))
		t.buf.WriteString(pad + pad)
		t.buf.WriteString(strings.Repeat(" ", valueW-utf8.RuneCountInString(values[i])))
		t.buf.WriteString(values[i])
		t.buf.WriteString(pad + "│\n")
	}
	t.buf.WriteString(indent + "└" + rule + "┘\n")
}
