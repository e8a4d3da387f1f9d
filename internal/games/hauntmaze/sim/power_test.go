package sim

import "testing"

func TestPowerModeExpires(t *testing.T) {
	p := NewPowerMode(3, 2)
	if p.IsActive() {
		t.Fatal("Expected a new power mode to be inactive")
	}

	p.Activate()
	for i := 0; i < 2; i++ {
		if p.Tick() {
			t.Fatalf("Expected no expiry on tick %d", i+1)
		}
	}
	if !p.Tick() {
		t.Fatal("Expected expiry on the third tick")
	}
	if p.IsActive() || p.ChargesRemaining() != 0 {
		t.Errorf("Expected inactive with no charges, got active=%v charges=%d", p.IsActive(), p.ChargesRemaining())
	}
	if p.Tick() {
		t.Error("Expected an idle power mode not to expire again")
	}
}

func TestPowerModeCharges(t *testing.T) {
	p := NewPowerMode(100, 2)

	if p.ConsumeCharge() {
		t.Error("Expected no charge use while inactive")
	}

	p.Activate()
	if !p.ConsumeCharge() || !p.ConsumeCharge() {
		t.Fatal("Expected two charges")
	}
	if p.ConsumeCharge() {
		t.Error("Expected charges to floor at zero")
	}
	if p.ChargesRemaining() != 0 {
		t.Errorf("Expected 0 charges, got %d", p.ChargesRemaining())
	}
	if !p.IsActive() {
		t.Error("Expected power to outlast its charges")
	}
	if p.CanPhase() {
		t.Error("Expected no phasing without charges")
	}
}

func TestPowerModeRefresh(t *testing.T) {
	p := NewPowerMode(10, 5)
	p.Activate()
	for i := 0; i < 6; i++ {
		p.Tick()
	}
	p.ConsumeCharge()

	p.Activate()

	if p.TicksRemaining() != 10 || p.ChargesRemaining() != 5 {
		t.Errorf("Expected full refresh, got ticks=%d charges=%d", p.TicksRemaining(), p.ChargesRemaining())
	}

	p.Reset()
	if p.IsActive() || p.ChargesRemaining() != 0 {
		t.Error("Expected Reset to clear power mode")
	}
}
