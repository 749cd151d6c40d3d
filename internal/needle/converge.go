package needle

// DefaultCheckpointStep is the spacing between convergence checkpoints.
const DefaultCheckpointStep = 1000

// Converge estimates pi at checkpoints step, 2·step, … over growing prefixes
// of a single pool of drops. The pool is never resampled, so each checkpoint
// extends the previous one. Pools shorter than step produce no checkpoints.
func Converge(p Params, drops []Drop, step int) []Estimate {
	if step <= 0 {
		step = DefaultCheckpointStep
	}
	checkpoints := len(drops) / step
	if checkpoints == 0 {
		return nil
	}

	rule := HalfAngleRule{NeedleLength: p.NeedleLength}
	seq := make([]Estimate, 0, checkpoints)

	// Hits over drops[:n] equals hits over drops[:n-step] plus the new block.
	hits := 0
	for k := 1; k <= checkpoints; k++ {
		n := k * step
		hits += CountHits[Drop](rule, drops[n-step:n])
		seq = append(seq, NewEstimate(hits, n, p.NeedleLength, p.LineDistance))
	}
	return seq
}
