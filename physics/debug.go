package physics

// DrawFunc receives each live collider's shape and an RGBA color when debug
// visualization runs. It is purely observational and never affects
// StepPhysics results.
type DrawFunc func(shape *Shape, color uint32)

// Debug colors per shape kind (0xRRGGBBAA).
const (
	DebugColorBox     uint32 = 0x00FF00FF
	DebugColorSphere  uint32 = 0x00A0FFFF
	DebugColorCapsule uint32 = 0xFFA000FF
)

// SetDebugDraw installs the draw callback; nil disables debug drawing.
func (w *World) SetDebugDraw(fn DrawFunc) {
	w.drawFn = fn
}

// DebugDraw invokes the installed callback once per live collider, in
// ascending id order. No-op when no callback is set.
func (w *World) DebugDraw() {
	if w.drawFn == nil {
		return
	}
	w.arena.forEachLive(func(c *Collider) {
		var color uint32
		switch c.Shape.Kind {
		case KindSphere:
			color = DebugColorSphere
		case KindCapsule:
			color = DebugColorCapsule
		default:
			color = DebugColorBox
		}
		w.drawFn(&c.Shape, color)
	})
}
