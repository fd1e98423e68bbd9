package risk

import "testing"

func TestNewTradingActivity_BuyPressure(t *testing.T) {
	a := NewTradingActivity(80, 20, 100_000, 500_000, 2.5)
	if a.BuyPressure != 80 {
		t.Errorf("expected buy pressure 80, got %d", a.BuyPressure)
	}
	if a.IsSuspiciousVolume {
		t.Error("healthy volume/liquidity should not be suspicious")
	}
	if a.IsHighActivity {
		t.Error("100 txns is not high activity")
	}
}

func TestNewTradingActivity_NoTransactionsNeutral(t *testing.T) {
	a := NewTradingActivity(0, 0, 0, 0, 0)
	if a.BuyPressure != 50 {
		t.Errorf("expected neutral pressure 50, got %d", a.BuyPressure)
	}
}

func TestNewTradingActivity_SuspiciousVolume(t *testing.T) {
	// $2M volume against $50K liquidity.
	a := NewTradingActivity(300, 300, 2_000_000, 50_000, 0)
	if !a.IsSuspiciousVolume {
		t.Error("expected suspicious volume")
	}
	if !a.IsHighActivity {
		t.Error("600 txns should be high activity")
	}
}

func TestNewTradingActivity_ZeroLiquidityNotSuspicious(t *testing.T) {
	a := NewTradingActivity(10, 10, 2_000_000, 0, 0)
	if a.IsSuspiciousVolume {
		t.Error("unreported liquidity must not trip the volume check")
	}
}

func TestWashTradingPct(t *testing.T) {
	tests := []struct {
		buys, sells, want int
	}{
		{100, 100, 60}, // perfectly balanced
		{100, 0, 0},    // one-sided
		{0, 100, 0},
		{50, 100, 30},
		{100, 50, 30}, // symmetric in its arguments
	}
	for _, tt := range tests {
		if got := WashTradingPct(tt.buys, tt.sells); got != tt.want {
			t.Errorf("WashTradingPct(%d, %d) = %d, want %d", tt.buys, tt.sells, got, tt.want)
		}
	}
}
