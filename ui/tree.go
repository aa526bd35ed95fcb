package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/minifps/overlay"
)

// measureFunc returns the pixel width of text at fontSize.
type measureFunc func(text string, fontSize int32) int32

// panel is one built label/value box.
type panel struct {
	layout overlay.Layout
	labels [overlay.SlotCount]overlay.Handle
	values [overlay.SlotCount]overlay.Handle
}

// geometry is a panel's resolved screen placement.
type geometry struct {
	X, Y, Width, Height int32
	LabelX              int32 // left edge of the label column
	ValueRight          int32 // right edge of the value column
	RowHeight           int32
	FirstRowY           int32
}

// Tree is a retained set of text panels drawn with raylib.
// It is not safe for concurrent use; build, update and draw from the render loop.
type Tree struct {
	renderer *Renderer
	nodes    overlay.NodeSet
	panels   []*panel
	measure  measureFunc
}

// NewTree creates an empty tree measuring text with raylib's default font.
func NewTree() *Tree {
	return &Tree{
		renderer: NewRenderer(),
		measure:  rl.MeasureText,
	}
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

// Clear tears down every panel. Handles returned by Build become stale.
func (t *Tree) Clear() {
	for _, p := range t.panels {
		for i := range p.labels {
			t.nodes.Release(p.labels[i])
			t.nodes.Release(p.values[i])
		}
	}
	t.panels = t.panels[:0]
}

// Panels returns the number of live panels.
func (t *Tree) Panels() int {
	return len(t.panels)
}

// layoutPanel places p on a screenW x screenH screen.
func (t *Tree) layoutPanel(p *panel, screenW, screenH int32) geometry {
	l := p.layout
	fontSize := int32(l.FontSize)
	inner := int32(l.InnerMargin)
	outer := int32(l.OuterMargin)

	var labelW int32
	valueW := int32(l.ValueMinWidth)
	for i := range p.labels {
		text, _ := t.nodes.Text(p.labels[i])
		labelW = max(labelW, t.measure(text, fontSize))
		text, _ = t.nodes.Text(p.values[i])
		valueW = max(valueW, t.measure(text, fontSize))
	}

	g := geometry{
		RowHeight: fontSize + t.renderer.Theme.LineSpacing,
	}
	// Each column carries an inner margin on both sides.
	g.Width = labelW + valueW + 4*inner
	g.Height = int32(len(p.labels))*g.RowHeight + 2*inner

	switch l.Anchor {
	case overlay.AnchorTopLeft, overlay.AnchorBottomLeft:
		g.X = outer
	default:
		g.X = screenW - outer - g.Width
	}
	switch l.Anchor {
	case overlay.AnchorBottomLeft, overlay.AnchorBottomRight:
		g.Y = screenH - outer - g.Height
	default:
		g.Y = outer
	}

	g.LabelX = g.X + inner
	g.ValueRight = g.X + g.Width - inner
	g.FirstRowY = g.Y + inner
	return g
}

// Draw renders all panels. Call between rl.BeginDrawing and rl.EndDrawing.
func (t *Tree) Draw(screenW, screenH int32) {
	r := t.renderer
	for _, p := range t.panels {
		g := t.layoutPanel(p, screenW, screenH)
		fontSize := int32(p.layout.FontSize)

		r.DrawPanel(g.X, g.Y, g.Width, g.Height, toRaylib(p.layout.Background))

		y := g.FirstRowY
		for i := range p.labels {
			label, _ := t.nodes.Text(p.labels[i])
			r.DrawLabel(g.LabelX, y, label, fontSize)

			value, _ := t.nodes.Text(p.values[i])
			r.DrawValue(g.ValueRight, y, value, fontSize, t.measure(value, fontSize))
			y += g.RowHeight
		}
	}
}
