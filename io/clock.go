package io

const (
	CLOCK_RATE = 60 // Timer decrements per second.
)

// Clock decrements the delay and sound timers. The host calls Tick at
// CLOCK_RATE; the clock has no time source of its own.
type Clock struct {
	Ticks int // Ticks since reset.
}

// Reset the tick counter.
func (ck *Clock) Reset() {
	ck.Ticks = 0
}

// Tick decrements each non-zero timer by one, and reports if the sound
// timer is still running afterwards.
func (ck *Clock) Tick(timers Timers) (tone bool) {
	ck.Ticks++

	if dt := timers.DelayTimer(); dt > 0 {
		timers.SetDelayTimer(dt - 1)
	}

	if st := timers.SoundTimer(); st > 0 {
		timers.SetSoundTimer(st - 1)
	}

	tone = timers.SoundTimer() > 0

	return
}
