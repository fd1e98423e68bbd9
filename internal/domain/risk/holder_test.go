package risk

import (
	"testing"
	"time"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

var testNow = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func floatPtr(f float64) *float64 { return &f }

func TestScoreHolder_CleanWallet(t *testing.T) {
	a := ScoreHolder(HolderInput{
		WalletAddress: "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
		Chain:         entities.ChainSolana,
		Balance:       1000,
		Percentage:    floatPtr(0.01),
		FirstSeen:     daysAgo(90),
		Now:           testNow,
	})

	if a.Score != 0 {
		t.Errorf("expected score 0, got %d", a.Score)
	}
	if a.Level != entities.RiskLow {
		t.Errorf("expected low, got %s", a.Level)
	}
	if len(a.Flags) != 0 {
		t.Errorf("expected no flags, got %v", a.Flags)
	}
	if a.IsInsider || a.IsWhale {
		t.Error("clean wallet should be neither insider nor whale")
	}
	if a.Confidence != 60 {
		t.Errorf("expected confidence 60, got %d", a.Confidence)
	}
}

func TestScoreHolder_DominantInsider(t *testing.T) {
	// 26.7% share, 25B balance, 31 days old. Whale (+30), dominant
	// (+25), high balance (+15) and the implied insider (+20) stack to
	// 90.
	a := ScoreHolder(HolderInput{
		WalletAddress: "HN7cABqLq46Es1jh92dQQisAq662SmxELLLsHHe4YWrH",
		Chain:         entities.ChainSolana,
		Balance:       25_000_000_000,
		Percentage:    floatPtr(26.7),
		FirstSeen:     daysAgo(31),
		Now:           testNow,
	})

	if a.Score != 90 {
		t.Errorf("expected score 90, got %d", a.Score)
	}
	if a.Level != entities.RiskCritical {
		t.Errorf("expected critical, got %s", a.Level)
	}
	if !a.IsInsider {
		t.Error("expected insider")
	}
	if !a.IsWhale {
		t.Error("expected whale")
	}
	if len(a.Flags) != 4 {
		t.Errorf("expected 4 flags, got %d: %v", len(a.Flags), a.Flags)
	}
	if a.Confidence != 92 {
		t.Errorf("expected confidence 92, got %d", a.Confidence)
	}
}

func TestScoreHolder_AccumulatedScoreImpliesInsider(t *testing.T) {
	// No dominant share, but high balance (+15), fresh wallet (+10),
	// rapid accumulation (+20) and a malformed EVM address (+5) reach
	// the insider floor; the insider weight then lands at 70.
	a := ScoreHolder(HolderInput{
		WalletAddress: "0xdeadbeef",
		Chain:         entities.ChainEthereum,
		Balance:       2_000_000_000,
		Percentage:    floatPtr(1.0),
		FirstSeen:     daysAgo(2),
		Transfers:     &TransferSample{Total: 12, Inbound: 9},
		Now:           testNow,
	})

	if !a.IsInsider {
		t.Fatalf("expected insider, score %d flags %v", a.Score, a.Flags)
	}
	if a.Score != 70 {
		t.Errorf("expected score 70, got %d", a.Score)
	}
	if a.Level != entities.RiskCritical {
		t.Errorf("expected critical, got %s", a.Level)
	}
}

func TestScoreHolder_NewHolderOnly(t *testing.T) {
	a := ScoreHolder(HolderInput{
		WalletAddress: "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
		Chain:         entities.ChainSolana,
		Balance:       500,
		Percentage:    floatPtr(0.1),
		FirstSeen:     daysAgo(2),
		Now:           testNow,
	})

	if a.Score != 10 {
		t.Errorf("expected score 10, got %d", a.Score)
	}
	if a.Level != entities.RiskLow {
		t.Errorf("expected low, got %s", a.Level)
	}
}

func TestScoreHolder_WhaleBoolUsesLooserThresholds(t *testing.T) {
	// 6% is below the 10% scoring flag but above the 5% dashboard
	// threshold.
	byPct := ScoreHolder(HolderInput{
		WalletAddress: "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
		Chain:         entities.ChainSolana,
		Balance:       100,
		Percentage:    floatPtr(6.0),
		FirstSeen:     daysAgo(60),
		Now:           testNow,
	})
	if !byPct.IsWhale {
		t.Error("6% holder should be a whale")
	}

	byBalance := ScoreHolder(HolderInput{
		WalletAddress: "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
		Chain:         entities.ChainSolana,
		Balance:       600_000_000,
		Percentage:    floatPtr(0.5),
		FirstSeen:     daysAgo(60),
		Now:           testNow,
	})
	if !byBalance.IsWhale {
		t.Error("600M balance should be a whale")
	}
}

func TestScoreHolder_UnknownPercentageSkipsShareFlags(t *testing.T) {
	a := ScoreHolder(HolderInput{
		WalletAddress: "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
		Chain:         entities.ChainSolana,
		Balance:       100,
		Percentage:    nil,
		FirstSeen:     daysAgo(60),
		Now:           testNow,
	})
	if a.Score != 0 {
		t.Errorf("expected score 0 without share data, got %d", a.Score)
	}
}

func TestScoreHolder_AddressFormatChecks(t *testing.T) {
	short := ScoreHolder(HolderInput{
		WalletAddress: "tooShort",
		Chain:         entities.ChainSolana,
		Balance:       100,
		FirstSeen:     daysAgo(60),
		Now:           testNow,
	})
	if short.Score != 5 {
		t.Errorf("expected score 5 for short solana address, got %d", short.Score)
	}

	evm := ScoreHolder(HolderInput{
		WalletAddress: "0x47173B170C64d16393a52e6C480b3Ad8c302ba1e",
		Chain:         entities.ChainEthereum,
		Balance:       100,
		FirstSeen:     daysAgo(60),
		Now:           testNow,
	})
	if evm.Score != 0 {
		t.Errorf("well-formed EVM address should not score, got %d", evm.Score)
	}
}
