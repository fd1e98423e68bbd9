package risk

import (
	"testing"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

func TestLevelForScore_Bands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, entities.RiskLow},
		{19, entities.RiskLow},
		{20, entities.RiskMedium},
		{39, entities.RiskMedium},
		{40, entities.RiskHigh},
		{69, entities.RiskHigh},
		{70, entities.RiskCritical},
		{100, entities.RiskCritical},
	}
	for _, tt := range tests {
		if got := LevelForScore(tt.score); got != tt.want {
			t.Errorf("LevelForScore(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 0},
		{0, 0},
		{55, 55},
		{100, 100},
		{135, 100},
	}
	for _, tt := range tests {
		if got := ClampScore(tt.in); got != tt.want {
			t.Errorf("ClampScore(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestConfidence_CappedAt95(t *testing.T) {
	if got := Confidence(60, 8, 2); got != 76 {
		t.Errorf("Confidence(60,8,2) = %d, want 76", got)
	}
	if got := Confidence(60, 8, 10); got != 95 {
		t.Errorf("Confidence(60,8,10) = %d, want 95", got)
	}
	if got := Confidence(50, 5, 0); got != 50 {
		t.Errorf("Confidence(50,5,0) = %d, want 50", got)
	}
}
