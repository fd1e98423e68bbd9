package risk

import "fmt"

// Project scoring thresholds.
const (
	fewHoldersFloor        = 5
	whaleCountTrigger      = 2    // more than this many whales adds score
	concentrationCritical  = 60.0 // primary top-10 concentration threshold
	concentrationElevated  = 50.0 // secondary warning band
	projectWhalePct        = 5.0
	lowBuyPressure         = 20
	highBuyPressure        = 80
	topHolderWindow        = 10
)

// Project scoring weights.
const (
	weightFewHolders         = 20
	weightPerWhale           = 10
	weightConcentration      = 30
	weightConcentrationWarn  = 10
	weightSuspiciousVolume   = 25
	weightBotActivity        = 15
	weightHeavySelling       = 20
)

// ProjectHolder is one holder row as the project heuristic sees it:
// ordered by balance descending, with the stored supply share when known.
type ProjectHolder struct {
	Address          string
	Balance          float64
	StoredPercentage *float64
}

// ProjectInput carries everything the project heuristic reads. Trading and
// Social are nil when the corresponding external source was unavailable;
// absent metrics contribute no flags and no score.
type ProjectInput struct {
	Holders []ProjectHolder
	Trading *TradingActivity
	Social  *SocialSentiment
}

// TopHolder is a top-10 holder with its share recomputed from raw
// balances rather than the stored percentage field.
type TopHolder struct {
	Address    string  `json:"address"`
	Percentage float64 `json:"percentage"`
}

// ProjectAssessment is the bounded result of scoring one project.
type ProjectAssessment struct {
	Score         int
	Level         string
	Flags         []string
	HolderCount   int
	WhaleCount    int
	TopHolders    []TopHolder
	Concentration float64
	Confidence    int
}

// ScoreProject runs the project risk heuristic over the tracked holder set
// plus externally fetched trading and social metrics.
func ScoreProject(in ProjectInput) ProjectAssessment {
	holderCount := len(in.Holders)

	var totalBalance float64
	for _, h := range in.Holders {
		totalBalance += h.Balance
	}

	top := in.Holders
	if len(top) > topHolderWindow {
		top = top[:topHolderWindow]
	}
	topHolders := make([]TopHolder, len(top))
	concentration := 0.0
	for i, h := range top {
		pct := 0.0
		if totalBalance > 0 {
			pct = h.Balance / totalBalance * 100
		}
		topHolders[i] = TopHolder{Address: h.Address, Percentage: pct}
		concentration += pct
	}

	whaleCount := 0
	for _, h := range in.Holders {
		if h.StoredPercentage != nil && *h.StoredPercentage > projectWhalePct {
			whaleCount++
		}
	}

	var flags []string
	score := 0

	if holderCount < fewHoldersFloor {
		flags = append(flags, fmt.Sprintf("very few tracked holders: %d", holderCount))
		score += weightFewHolders
	}
	if whaleCount > whaleCountTrigger {
		flags = append(flags, fmt.Sprintf("%d whales holding >5%% each", whaleCount))
		score += whaleCount * weightPerWhale
	}
	switch {
	case concentration > concentrationCritical:
		flags = append(flags, fmt.Sprintf("top 10 holders control %.1f%% of supply", concentration))
		score += weightConcentration
	case concentration > concentrationElevated:
		flags = append(flags, fmt.Sprintf("elevated concentration: top 10 holders at %.1f%%", concentration))
		score += weightConcentrationWarn
	}

	if t := in.Trading; t != nil {
		if t.IsSuspiciousVolume {
			flags = append(flags, "suspicious: high volume with low liquidity")
			score += weightSuspiciousVolume
		}
		if t.BuyPressure > highBuyPressure {
			flags = append(flags, fmt.Sprintf("strong buy pressure: %d%% buys", t.BuyPressure))
		}
		if t.BuyPressure < lowBuyPressure {
			flags = append(flags, fmt.Sprintf("heavy selling: only %d%% buys", t.BuyPressure))
			score += weightHeavySelling
		}
	}

	if s := in.Social; s != nil {
		if s.IsSuspiciousActivity {
			flags = append(flags, "suspicious social: possible bot activity detected")
			score += weightBotActivity
		}
		if s.IsViral {
			flags = append(flags, "viral: trending on social media")
		}
	}

	score = ClampScore(score)

	return ProjectAssessment{
		Score:         score,
		Level:         LevelForScore(score),
		Flags:         flags,
		HolderCount:   holderCount,
		WhaleCount:    whaleCount,
		TopHolders:    topHolders,
		Concentration: concentration,
		Confidence:    Confidence(50, 5, len(flags)),
	}
}
