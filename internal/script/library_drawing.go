package script

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dekarrin/barescript/internal/drawing"
)

// file library_drawing.go implements the drawing* builtin family (C9).
// Since Value has exactly the nine cases the data model allows, a Canvas
// cannot be its own Value case; instead drawingNew hands back an Object
// carrying an opaque handle (a uuid), and every other drawing* builtin
// resolves that handle against a process-wide registry to reach the actual
// *drawing.Canvas. This keeps the script-visible shape of a "drawing" a
// plain Object (inspectable, JSON-stringifiable) while the live mutable
// state lives on the Go side.

const drawingHandleKey = "__drawingHandle"

var (
	drawingRegistryMu sync.Mutex
	drawingRegistry   = map[string]*drawing.Canvas{}
)

func init() {
	registerBuiltin("drawingNew", false, biDrawingNew)
	registerBuiltin("drawingLine", false, biDrawingLine)
	registerBuiltin("drawingRect", false, biDrawingRect)
	registerBuiltin("drawingCircle", false, biDrawingCircle)
	registerBuiltin("drawingText", false, biDrawingText)
	registerBuiltin("drawingStyle", false, biDrawingStyle)
	registerBuiltin("drawingSave", false, biDrawingSave)
	registerBuiltin("drawingWidth", false, biDrawingWidth)
	registerBuiltin("drawingHeight", false, biDrawingHeight)
}

func resolveCanvas(v Value) *drawing.Canvas {
	if v.Type() != Object {
		return nil
	}
	handle, ok := v.Obj().Get(drawingHandleKey)
	if !ok || handle.Type() != String {
		return nil
	}
	drawingRegistryMu.Lock()
	defer drawingRegistryMu.Unlock()
	return drawingRegistry[handle.Str()]
}

func biDrawingNew(args []Value, host HostRef) (Value, error) {
	id := uuid.NewString()
	drawingRegistryMu.Lock()
	drawingRegistry[id] = drawing.New()
	drawingRegistryMu.Unlock()

	out := NewObject()
	out.Obj().Set(drawingHandleKey, NewString(id))
	return out, nil
}

func biDrawingLine(args []Value, host HostRef) (Value, error) {
	c := resolveCanvas(arg(args, 0))
	x1, ok1 := numArg(args, 1)
	y1, ok2 := numArg(args, 2)
	x2, ok3 := numArg(args, 3)
	y2, ok4 := numArg(args, 4)
	if c == nil || !ok1 || !ok2 || !ok3 || !ok4 {
		return NewNull(), nil
	}
	c.Line(x1, y1, x2, y2)
	return arg(args, 0), nil
}

func biDrawingRect(args []Value, host HostRef) (Value, error) {
	c := resolveCanvas(arg(args, 0))
	x, ok1 := numArg(args, 1)
	y, ok2 := numArg(args, 2)
	w, ok3 := numArg(args, 3)
	h, ok4 := numArg(args, 4)
	if c == nil || !ok1 || !ok2 || !ok3 || !ok4 {
		return NewNull(), nil
	}
	c.Rect(x, y, w, h)
	return arg(args, 0), nil
}

func biDrawingCircle(args []Value, host HostRef) (Value, error) {
	c := resolveCanvas(arg(args, 0))
	cx, ok1 := numArg(args, 1)
	cy, ok2 := numArg(args, 2)
	r, ok3 := numArg(args, 3)
	if c == nil || !ok1 || !ok2 || !ok3 {
		return NewNull(), nil
	}
	c.Circle(cx, cy, r)
	return arg(args, 0), nil
}

func biDrawingText(args []Value, host HostRef) (Value, error) {
	c := resolveCanvas(arg(args, 0))
	x, ok1 := numArg(args, 1)
	y, ok2 := numArg(args, 2)
	text, ok3 := strArg(args, 3)
	if c == nil || !ok1 || !ok2 || !ok3 {
		return NewNull(), nil
	}
	c.Text(x, y, text)
	return arg(args, 0), nil
}

func biDrawingStyle(args []Value, host HostRef) (Value, error) {
	c := resolveCanvas(arg(args, 0))
	name, ok1 := strArg(args, 1)
	value, ok2 := strArg(args, 2)
	if c == nil || !ok1 || !ok2 {
		return NewNull(), nil
	}
	c.Style(name, value)
	return arg(args, 0), nil
}

// biDrawingSave serializes the canvas to an SVG string and releases its
// registry entry; the handle Object remains script-visible but no longer
// resolves to a live canvas afterward.
func biDrawingSave(args []Value, host HostRef) (Value, error) {
	v := arg(args, 0)
	c := resolveCanvas(v)
	if c == nil {
		return NewNull(), nil
	}
	svg := c.Save()
	if handle, ok := v.Obj().Get(drawingHandleKey); ok {
		drawingRegistryMu.Lock()
		delete(drawingRegistry, handle.Str())
		drawingRegistryMu.Unlock()
	}
	return NewString(svg), nil
}

func biDrawingWidth(args []Value, host HostRef) (Value, error) {
	c := resolveCanvas(arg(args, 0))
	if c == nil {
		return NewNull(), nil
	}
	return NewNumber(c.Width()), nil
}

func biDrawingHeight(args []Value, host HostRef) (Value, error) {
	c := resolveCanvas(arg(args, 0))
	if c == nil {
		return NewNull(), nil
	}
	return NewNumber(c.Height()), nil
}
