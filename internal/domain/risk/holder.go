package risk

import (
	"fmt"
	"strings"
	"time"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

// Holder scoring thresholds.
const (
	whaleFlagPct      = 10.0 // supply share that flags a whale
	dominantPct       = 25.0 // supply share that flags a dominant holder
	highBalance       = 1_000_000_000
	newHolderDays     = 7
	insiderScoreFloor = 50   // accumulated score that implies insider
	insiderPct        = 20.0 // supply share that implies insider
	evmAddressLen     = 42
	solanaMinAddrLen  = 32
	rapidSampleMin    = 10 // transfers needed before the inbound check
	rapidInboundMin   = 8

	// isWhale uses its own, looser thresholds than the whale scoring
	// flag above; the dashboard always marks these wallets.
	whaleBoolPct     = 5.0
	whaleBoolBalance = 500_000_000
)

// Holder scoring weights.
const (
	weightWhale       = 30
	weightDominant    = 25
	weightHighBalance = 15
	weightNewHolder   = 10
	weightInsider     = 20
	weightBadAddress  = 5
	weightRapidAccum  = 20
)

// TransferSample summarizes a holder's recent token transfers as reported
// by a chain explorer. Total is the number of transfers in the sample,
// Inbound how many of them were received by the holder.
type TransferSample struct {
	Total   int
	Inbound int
}

// HolderInput carries everything the holder heuristic reads. Percentage is
// nil when the supply share is unknown. Now defaults to time.Now.
type HolderInput struct {
	WalletAddress string
	Chain         string
	Balance       float64
	Percentage    *float64
	FirstSeen     time.Time
	Transfers     *TransferSample
	Now           time.Time
}

// HolderAssessment is the bounded result of scoring one holder.
type HolderAssessment struct {
	Score          int
	Level          string
	IsInsider      bool
	IsWhale        bool
	Flags          []string
	Confidence     int
	Recommendation string
}

// ScoreHolder runs the holder risk heuristic. It accumulates weighted
// penalties under named conditions, clamps the sum to [0,100] and bands
// the result into a risk level.
func ScoreHolder(in HolderInput) HolderAssessment {
	chain := in.Chain
	if chain == "" {
		chain = entities.ChainSolana
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	pct := 0.0
	if in.Percentage != nil {
		pct = *in.Percentage
	}

	var flags []string
	score := 0

	if in.Percentage != nil && pct > whaleFlagPct {
		flags = append(flags, fmt.Sprintf("whale: holds %.2f%% of supply", pct))
		score += weightWhale
	}
	if in.Percentage != nil && pct > dominantPct {
		flags = append(flags, "dominant holder: controls >25% of supply")
		score += weightDominant
	}

	if in.Balance > highBalance {
		flags = append(flags, fmt.Sprintf("extremely high balance: %.2fB tokens", in.Balance/1e9))
		score += weightHighBalance
	}

	if daysSince(in.FirstSeen, now) < newHolderDays {
		flags = append(flags, "new holder: first seen within last 7 days")
		score += weightNewHolder
	}

	// Insider check runs after the base signals so a dominant share alone
	// is enough to trip it.
	isInsider := score >= insiderScoreFloor || pct > insiderPct
	if isInsider {
		flags = append(flags, "potential insider: matches accumulation pattern")
		score += weightInsider
	}

	switch chain {
	case entities.ChainSolana:
		if len(in.WalletAddress) < solanaMinAddrLen {
			flags = append(flags, "unusual Solana address format")
			score += weightBadAddress
		}
	case entities.ChainEthereum, entities.ChainBNB:
		if !strings.HasPrefix(in.WalletAddress, "0x") || len(in.WalletAddress) != evmAddressLen {
			flags = append(flags, "non-standard EVM address format")
			score += weightBadAddress
		}
	}

	if s := in.Transfers; s != nil && s.Total > rapidSampleMin && s.Inbound > rapidInboundMin {
		flags = append(flags, fmt.Sprintf("rapid accumulation: %d inbound transfers recently", s.Inbound))
		score += weightRapidAccum
	}

	score = ClampScore(score)
	level := LevelForScore(score)

	return HolderAssessment{
		Score:          score,
		Level:          level,
		IsInsider:      isInsider,
		IsWhale:        pct > whaleBoolPct || in.Balance > whaleBoolBalance,
		Flags:          flags,
		Confidence:     Confidence(60, 8, len(flags)),
		Recommendation: holderRecommendation(level),
	}
}

func holderRecommendation(level string) string {
	switch level {
	case entities.RiskCritical:
		return "Immediate investigation. Strong insider trading signals detected."
	case entities.RiskHigh:
		return "Monitor closely. Track wallet for unusual activity."
	case entities.RiskMedium:
		return "Standard monitoring. Some risk factors present."
	default:
		return "No immediate concerns. Normal holder behavior."
	}
}

func daysSince(t, now time.Time) int {
	if t.After(now) {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}
