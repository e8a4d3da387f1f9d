package sim

// PowerMode tracks the timed power-up and its wall-break charges.
// The two budgets are independent: spending the last charge leaves the
// timer running.
type PowerMode struct {
	duration  int
	budget    int
	remaining int
	charges   int
}

// NewPowerMode returns an inactive power mode.
func NewPowerMode(durationTicks, charges int) *PowerMode {
	return &PowerMode{duration: durationTicks, budget: charges}
}

// Activate starts or refreshes power mode with a full timer and charge budget.
func (p *PowerMode) Activate() {
	p.remaining = p.duration
	p.charges = p.budget
}

// Tick counts down one tick. It reports true on the tick power mode ends.
func (p *PowerMode) Tick() bool {
	if p.remaining <= 0 {
		return false
	}
	p.remaining--
	if p.remaining == 0 {
		p.charges = 0
		return true
	}
	return false
}

// Reset ends power mode immediately without signaling expiry.
func (p *PowerMode) Reset() {
	p.remaining = 0
	p.charges = 0
}

// IsActive reports whether the power timer is running.
func (p *PowerMode) IsActive() bool { return p.remaining > 0 }

// TicksRemaining returns the ticks left on the power timer.
func (p *PowerMode) TicksRemaining() int { return p.remaining }

// ChargesRemaining returns the wall-break charges left.
func (p *PowerMode) ChargesRemaining() int { return p.charges }

// CanPhase reports whether the player may pass through breakable walls.
func (p *PowerMode) CanPhase() bool { return p.IsActive() && p.charges > 0 }

// ConsumeCharge spends one charge if power is active and one remains.
func (p *PowerMode) ConsumeCharge() bool {
	if !p.CanPhase() {
		return false
	}
	p.charges--
	return true
}
