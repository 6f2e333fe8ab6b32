package physics

// StepStats are diagnostic counters accumulated across StepPhysics calls.
// They are observational only and never feed back into simulation results,
// so resetting or ignoring them cannot cause a desync.
type StepStats struct {
	// Steps is the number of StepPhysics calls.
	Steps uint64
	// Movers is the total number of movers processed.
	Movers uint64
	// Candidates is the total number of broad-phase candidates returned.
	Candidates uint64
	// NarrowTests is the number of swept narrow-phase tests run.
	NarrowTests uint64
	// IterationCapHits counts movers still resolving a collision in their
	// final slide iteration; the residual motion was discarded. Not an
	// error, a profiling signal for wedged corner cases.
	IterationCapHits uint64
	// DegenerateInputs counts movers rejected for NaN/Inf position or
	// velocity. Those movers report no movement for the tick.
	DegenerateInputs uint64
}

// Stats returns a copy of the accumulated counters.
func (w *World) Stats() StepStats {
	return w.stats
}

// ResetStats zeroes the counters.
func (w *World) ResetStats() {
	w.stats = StepStats{}
}
