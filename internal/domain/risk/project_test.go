package risk

import (
	"testing"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

func equalHolders(n int, balance float64) []ProjectHolder {
	holders := make([]ProjectHolder, n)
	for i := range holders {
		holders[i] = ProjectHolder{Address: "w", Balance: balance}
	}
	return holders
}

func TestScoreProject_SingleHolderFullConcentration(t *testing.T) {
	a := ScoreProject(ProjectInput{
		Holders: []ProjectHolder{{Address: "only", Balance: 1000}},
	})

	if a.Concentration != 100 {
		t.Errorf("expected concentration 100, got %f", a.Concentration)
	}
	// Few holders (+20) plus critical concentration (+30).
	if a.Score != 50 {
		t.Errorf("expected score 50, got %d", a.Score)
	}
	if a.Level != entities.RiskHigh {
		t.Errorf("expected high, got %s", a.Level)
	}
	if len(a.TopHolders) != 1 || a.TopHolders[0].Percentage != 100 {
		t.Errorf("unexpected top holders %v", a.TopHolders)
	}
}

func TestScoreProject_HealthyDistribution(t *testing.T) {
	a := ScoreProject(ProjectInput{Holders: equalHolders(30, 100)})

	if a.Score != 0 {
		t.Errorf("expected score 0, got %d (%v)", a.Score, a.Flags)
	}
	if a.Level != entities.RiskLow {
		t.Errorf("expected low, got %s", a.Level)
	}
	if len(a.TopHolders) != 10 {
		t.Errorf("expected 10 top holders, got %d", len(a.TopHolders))
	}
	if a.Confidence != 50 {
		t.Errorf("expected confidence 50, got %d", a.Confidence)
	}
}

func TestScoreProject_WhalesScalePerWhale(t *testing.T) {
	holders := equalHolders(30, 100)
	for i := 0; i < 3; i++ {
		holders[i].StoredPercentage = floatPtr(6.0)
	}
	a := ScoreProject(ProjectInput{Holders: holders})

	if a.WhaleCount != 3 {
		t.Fatalf("expected 3 whales, got %d", a.WhaleCount)
	}
	// 3 whales above the trigger add 10 each.
	if a.Score != 30 {
		t.Errorf("expected score 30, got %d", a.Score)
	}
}

func TestScoreProject_ElevatedVsCriticalConcentration(t *testing.T) {
	// 18 equal holders: top 10 hold 55.6%.
	elevated := ScoreProject(ProjectInput{Holders: equalHolders(18, 100)})
	if elevated.Score != 10 {
		t.Errorf("expected warning weight 10, got %d (%v)", elevated.Score, elevated.Flags)
	}

	// 12 equal holders: top 10 hold 83.3%.
	critical := ScoreProject(ProjectInput{Holders: equalHolders(12, 100)})
	if critical.Score != 30 {
		t.Errorf("expected critical weight 30, got %d (%v)", critical.Score, critical.Flags)
	}
}

func TestScoreProject_TradingSignals(t *testing.T) {
	selling := NewTradingActivity(10, 90, 100_000, 400_000, -5)
	a := ScoreProject(ProjectInput{
		Holders: equalHolders(30, 100),
		Trading: &selling,
	})
	if a.Score != 20 {
		t.Errorf("heavy selling should add 20, got %d (%v)", a.Score, a.Flags)
	}

	pumping := NewTradingActivity(95, 5, 100_000, 400_000, 40)
	b := ScoreProject(ProjectInput{
		Holders: equalHolders(30, 100),
		Trading: &pumping,
	})
	// Strong buy pressure flags without scoring.
	if b.Score != 0 {
		t.Errorf("buy pressure alone should not score, got %d", b.Score)
	}
	if len(b.Flags) != 1 {
		t.Errorf("expected 1 flag, got %v", b.Flags)
	}

	suspicious := NewTradingActivity(300, 300, 2_000_000, 50_000, 0)
	c := ScoreProject(ProjectInput{
		Holders: equalHolders(30, 100),
		Trading: &suspicious,
	})
	if c.Score != 25 {
		t.Errorf("suspicious volume should add 25, got %d (%v)", c.Score, c.Flags)
	}
}

func TestScoreProject_BotSocialActivity(t *testing.T) {
	bots := Sentiment(make([]Mention, 12))
	a := ScoreProject(ProjectInput{
		Holders: equalHolders(30, 100),
		Social:  &bots,
	})
	if a.Score != 15 {
		t.Errorf("bot activity should add 15, got %d (%v)", a.Score, a.Flags)
	}
}

func TestScoreProject_AbsentMetricsContributeNothing(t *testing.T) {
	a := ScoreProject(ProjectInput{Holders: equalHolders(30, 100)})
	b := ScoreProject(ProjectInput{Holders: equalHolders(30, 100), Trading: nil, Social: nil})
	if a.Score != b.Score || len(a.Flags) != len(b.Flags) {
		t.Error("nil trading/social must behave like absent data")
	}
}
