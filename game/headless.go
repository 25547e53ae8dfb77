package game

// RunHeadless steps b until it is done or maxTicks ticks have run
// (0 means no limit) and returns the outcome.
func RunHeadless(b *Battle, maxTicks int64) Result {
	for !b.Done() {
		if maxTicks > 0 && b.Sim().Tick() >= maxTicks {
			break
		}
		b.Step()
	}
	return b.Outcome()
}
