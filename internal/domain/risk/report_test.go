package risk

import (
	"strings"
	"testing"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

func TestScoreManipulation_CleanToken(t *testing.T) {
	a := ScoreManipulation(ReportInput{TopHolderPct: 2, Top10Pct: 15})

	if a.Score != 0 {
		t.Errorf("expected score 0, got %d (%v)", a.Score, a.Flags)
	}
	if a.Level != entities.RiskLow {
		t.Errorf("expected low, got %s", a.Level)
	}
	if !strings.HasPrefix(a.Verdict, "No significant manipulation signals") {
		t.Errorf("unexpected verdict %q", a.Verdict)
	}
	if a.Confidence != 50 {
		t.Errorf("expected confidence 50, got %d", a.Confidence)
	}
}

func TestScoreManipulation_ReportBands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, entities.RiskLow},
		{19, entities.RiskLow},
		{20, entities.RiskMedium},
		{44, entities.RiskMedium},
		{45, entities.RiskHigh},
		{69, entities.RiskHigh},
		{70, entities.RiskCritical},
	}
	for _, tt := range tests {
		if got := reportLevel(tt.score); got != tt.want {
			t.Errorf("reportLevel(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestScoreManipulation_ConcentrationTiers(t *testing.T) {
	extreme := ScoreManipulation(ReportInput{Top10Pct: 75})
	if extreme.Score != 35 {
		t.Errorf("extreme concentration should score 35, got %d", extreme.Score)
	}

	high := ScoreManipulation(ReportInput{Top10Pct: 55})
	if high.Score != 20 {
		t.Errorf("high concentration should score 20, got %d", high.Score)
	}
}

func TestScoreManipulation_WashTrading(t *testing.T) {
	balanced := NewTradingActivity(100, 100, 500_000, 400_000, 0)
	a := ScoreManipulation(ReportInput{Top10Pct: 10, Trading: &balanced})

	if a.WashTradingPct != 60 {
		t.Errorf("expected wash pct 60, got %d", a.WashTradingPct)
	}
	if a.Score != 25 {
		t.Errorf("wash trading should score 25, got %d (%v)", a.Score, a.Flags)
	}
	if a.Level != entities.RiskMedium {
		t.Errorf("expected medium, got %s", a.Level)
	}
}

func TestScoreManipulation_CriticalCombination(t *testing.T) {
	wash := NewTradingActivity(100, 100, 2_000_000, 50_000, 0)
	a := ScoreManipulation(ReportInput{
		Top10Pct:   80,
		WhaleCount: 5,
		Trading:    &wash,
	})

	// Extreme concentration (+35), whales (+15), wash trading (+25),
	// volume inflation (+20).
	if a.Score != 95 {
		t.Errorf("expected score 95, got %d (%v)", a.Score, a.Flags)
	}
	if a.Level != entities.RiskCritical {
		t.Errorf("expected critical, got %s", a.Level)
	}
	if !strings.Contains(a.Verdict, "pump-and-dump") {
		t.Errorf("critical verdict should name the scheme, got %q", a.Verdict)
	}
	if !strings.HasPrefix(a.Recommendation, "DO NOT BUY") {
		t.Errorf("unexpected recommendation %q", a.Recommendation)
	}
	if a.Confidence != 74 {
		t.Errorf("expected confidence 74, got %d", a.Confidence)
	}
}

func TestScoreManipulation_CoordinatedPumpFlag(t *testing.T) {
	pump := NewTradingActivity(95, 5, 500_000, 400_000, 30)
	a := ScoreManipulation(ReportInput{Top10Pct: 10, Trading: &pump})

	// 95% buy pressure adds the pump weight.
	if a.Score != 15 {
		t.Errorf("expected score 15, got %d (%v)", a.Score, a.Flags)
	}
}

func TestScoreManipulation_UniformHypeAndInfluencers(t *testing.T) {
	social := SocialSentiment{
		MentionCount:       150,
		SentimentScore:     90,
		InfluencerMentions: 8,
	}
	a := ScoreManipulation(ReportInput{Top10Pct: 10, Social: &social})

	// Uniform hype (+10) plus influencer push (+5).
	if a.Score != 15 {
		t.Errorf("expected score 15, got %d (%v)", a.Score, a.Flags)
	}
}

func TestScoreManipulation_ViralNeedsOnChainAnomalies(t *testing.T) {
	viral := SocialSentiment{MentionCount: 5, IsViral: true}

	quiet := ScoreManipulation(ReportInput{Top10Pct: 10, Social: &viral})
	if quiet.Score != 0 {
		t.Errorf("viral alone should not score, got %d", quiet.Score)
	}

	anomalous := ScoreManipulation(ReportInput{Top10Pct: 75, Social: &viral})
	// Extreme concentration (+35) pushes past 30, so the viral anomaly
	// weight (+10) applies.
	if anomalous.Score != 45 {
		t.Errorf("expected score 45, got %d (%v)", anomalous.Score, anomalous.Flags)
	}
}

func TestScoreManipulation_LowRiskRecommendationTracksPressure(t *testing.T) {
	buying := NewTradingActivity(70, 30, 100_000, 400_000, 5)
	a := ScoreManipulation(ReportInput{Top10Pct: 10, Trading: &buying})
	if !strings.HasPrefix(a.Recommendation, "Relatively safe") {
		t.Errorf("unexpected recommendation %q", a.Recommendation)
	}

	b := ScoreManipulation(ReportInput{Top10Pct: 10})
	if !strings.HasPrefix(b.Recommendation, "Low risk") {
		t.Errorf("unexpected recommendation %q", b.Recommendation)
	}
}
