// Package drawing is the Drawing collaborator (C9): it accumulates shape
// commands into an SVG element tree and serializes it to an SVG document
// string. It is hand-rolled on the standard library (html.EscapeString for
// text content) rather than a third-party SVG library — DESIGN.md records that
// no library in the example pack covers SVG tree-building, and the shape
// set the data model needs (line/rect/circle/text plus a style attribute
// bag) is small enough that a dependency would buy little over direct
// string assembly.
package drawing

import (
	"fmt"
	"html"
	"strings"
)

// Element is one accumulated shape or style directive.
type Element struct {
	Tag   string
	Attrs map[string]string
	Text  string
}

// Canvas accumulates Elements plus the bounding box they imply.
type Canvas struct {
	Elements []Element
	width    float64
	height   float64
	style    map[string]string
}

// New returns an empty Canvas.
func New() *Canvas {
	return &Canvas{style: map[string]string{}}
}

func (c *Canvas) grow(x, y float64) {
	if x > c.width {
		c.width = x
	}
	if y > c.height {
		c.height = y
	}
}

// Line adds a line element from (x1,y1) to (x2,y2).
func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	c.grow(x1, y1)
	c.grow(x2, y2)
	c.Elements = append(c.Elements, Element{Tag: "line", Attrs: c.attrs(map[string]string{
		"x1": fnum(x1), "y1": fnum(y1), "x2": fnum(x2), "y2": fnum(y2),
	})})
}

// Rect adds a rectangle at (x,y) with the given width/height.
func (c *Canvas) Rect(x, y, w, h float64) {
	c.grow(x+w, y+h)
	c.Elements = append(c.Elements, Element{Tag: "rect", Attrs: c.attrs(map[string]string{
		"x": fnum(x), "y": fnum(y), "width": fnum(w), "height": fnum(h),
	})})
}

// Circle adds a circle centered at (cx,cy) with the given radius.
func (c *Canvas) Circle(cx, cy, r float64) {
	c.grow(cx+r, cy+r)
	c.Elements = append(c.Elements, Element{Tag: "circle", Attrs: c.attrs(map[string]string{
		"cx": fnum(cx), "cy": fnum(cy), "r": fnum(r),
	})})
}

// Text adds a text label anchored at (x,y).
func (c *Canvas) Text(x, y float64, text string) {
	c.grow(x, y)
	c.Elements = append(c.Elements, Element{
		Tag:  "text",
		Attrs: c.attrs(map[string]string{"x": fnum(x), "y": fnum(y)}),
		Text: text,
	})
}

// Style sets a persistent SVG presentation attribute (fill, stroke,
// stroke-width, etc.) applied to every Element added afterward.
func (c *Canvas) Style(name, value string) {
	c.style[name] = value
}

func (c *Canvas) attrs(specific map[string]string) map[string]string {
	out := make(map[string]string, len(specific)+len(c.style))
	for k, v := range c.style {
		out[k] = v
	}
	for k, v := range specific {
		out[k] = v
	}
	return out
}

// Width and Height return the current bounding box, grown by every shape
// added so far.
func (c *Canvas) Width() float64  { return c.width }
func (c *Canvas) Height() float64 { return c.height }

// Save serializes the accumulated elements into a complete SVG document.
func (c *Canvas) Save() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%s\" height=\"%s\">\n",
		fnum(c.width), fnum(c.height))
	for _, el := range c.Elements {
		b.WriteString("  <")
		b.WriteString(el.Tag)
		for _, k := range sortedKeys(el.Attrs) {
			fmt.Fprintf(&b, " %s=%q", k, el.Attrs[k])
		}
		if el.Text != "" {
			b.WriteString(">")
			b.WriteString(html.EscapeString(el.Text))
			b.WriteString("</")
			b.WriteString(el.Tag)
			b.WriteString(">\n")
		} else {
			b.WriteString(" />\n")
		}
	}
	b.WriteString("</svg>\n")
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func fnum(f float64) string {
	return fmt.Sprintf("%g", f)
}
