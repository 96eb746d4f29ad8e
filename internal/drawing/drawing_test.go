package drawing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCanvasIsEmpty(t *testing.T) {
	c := New()
	assert.Equal(t, float64(0), c.Width())
	assert.Equal(t, float64(0), c.Height())
	assert.Empty(t, c.Elements)
}

func TestLineGrowsBoundingBox(t *testing.T) {
	c := New()
	c.Line(0, 0, 10, 20)
	assert.Equal(t, float64(10), c.Width())
	assert.Equal(t, float64(20), c.Height())
}

func TestRectGrowsByWidthAndHeight(t *testing.T) {
	c := New()
	c.Rect(5, 5, 10, 10)
	assert.Equal(t, float64(15), c.Width())
	assert.Equal(t, float64(15), c.Height())
}

func TestCircleGrowsByRadius(t *testing.T) {
	c := New()
	c.Circle(10, 10, 5)
	assert.Equal(t, float64(15), c.Width())
	assert.Equal(t, float64(15), c.Height())
}

func TestStyleAppliesToSubsequentElements(t *testing.T) {
	c := New()
	c.Style("fill", "red")
	c.Line(0, 0, 1, 1)
	el := c.Elements[0]
	assert.Equal(t, "red", el.Attrs["fill"])
}

func TestSaveProducesWellFormedSVGWithSortedAttributes(t *testing.T) {
	c := New()
	c.Style("stroke", "black")
	c.Rect(1, 2, 3, 4)
	out := c.Save()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "<rect")
	// attribute order must be deterministic (sorted): height before stroke
	// before width before x before y.
	heightIdx := indexOf(out, "height=")
	strokeIdx := indexOf(out, "stroke=")
	assert.Less(t, heightIdx, strokeIdx)
}

func TestSaveEscapesTextContent(t *testing.T) {
	c := New()
	c.Text(0, 0, "<tag> & \"quote\"")
	out := c.Save()
	assert.Contains(t, out, "&lt;tag&gt;")
	assert.Contains(t, out, "&amp;")
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
