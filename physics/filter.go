package physics

// Filter declares a collider's collision category and the categories it
// collides with. It is consulted before any geometric test, in both broad
// and narrow phase. A collider's filter is fixed at creation; changing it
// means removing and re-creating the collider.
type Filter struct {
	// Layer is the bitmask of categories this collider belongs to.
	Layer uint32
	// Mask is the bitmask of categories this collider collides with.
	Mask uint32
}

// CanCollide reports whether the two filters allow a collision test. Both
// sides must name the other's layer in their mask, which makes the predicate
// symmetric by construction: f.CanCollide(o) == o.CanCollide(f).
func (f Filter) CanCollide(o Filter) bool {
	return f.Mask&o.Layer != 0 && o.Mask&f.Layer != 0
}

// DefaultFilter collides with everything.
var DefaultFilter = Filter{Layer: 0xFFFFFFFF, Mask: 0xFFFFFFFF}
