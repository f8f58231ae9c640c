package engine

// Longest stretch of time simulated in one frame. Anything beyond it is
// dropped so a stall does not snowball into more and more updates.
const maxFrameCatchUp = 0.25

// fixedStep turns variable frame deltas into whole update steps.
type fixedStep struct {
	accumulator float64
}

// Advance adds delta seconds and returns how many updates of stepSize to run.
// A rate of zero disables fixed stepping: one update of delta per frame.
func (f *fixedStep) Advance(delta float64, rate uint32) (steps int, stepSize float64) {
	if delta < 0 {
		delta = 0
	}
	if rate == 0 {
		f.accumulator = 0
		return 1, delta
	}
	stepSize = 1 / float64(rate)
	f.accumulator += delta
	if f.accumulator > maxFrameCatchUp {
		f.accumulator = maxFrameCatchUp
	}
	for f.accumulator >= stepSize {
		f.accumulator -= stepSize
		steps++
	}
	return steps, stepSize
}
