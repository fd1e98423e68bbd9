package risk

import (
	"fmt"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

// Manipulation report thresholds. The report uses wider medium/high bands
// than the holder and project heuristics.
const (
	reportBandMedium   = 20
	reportBandHigh     = 45
	reportBandCritical = 70

	extremeConcentration = 70.0
	highConcentration    = 50.0
	reportWhaleTrigger   = 3
	washTradingTrigger   = 40
	pumpBuyPressure      = 90
	uniformSentimentMin  = 80
	uniformMentionsMin   = 100
	influencerTrigger    = 5
)

// Manipulation report weights.
const (
	weightExtremeConc     = 35
	weightHighConc        = 20
	weightReportWhales    = 15
	weightWashTrading     = 25
	weightVolumeInflation = 20
	weightCoordSelling    = 20
	weightCoordPump       = 15
	weightReportBots      = 15
	weightViralAnomaly    = 10
	weightUniformHype     = 10
	weightInfluencerPush  = 5
)

// ReportInput carries the cross-referenced on-chain and social data the
// manipulation report scores. Trading and Social are nil when the
// corresponding source was unavailable.
type ReportInput struct {
	TopHolderPct float64
	Top10Pct     float64
	WhaleCount   int
	Trading      *TradingActivity
	Social       *SocialSentiment
}

// ReportAssessment is the composite manipulation verdict.
type ReportAssessment struct {
	Score          int
	Level          string
	Flags          []string
	WashTradingPct int
	Verdict        string
	Recommendation string
	Confidence     int
}

// ScoreManipulation runs the composite manipulation heuristic over the
// merged on-chain, trading and social metrics and produces a
// natural-language verdict.
func ScoreManipulation(in ReportInput) ReportAssessment {
	var flags []string
	score := 0

	switch {
	case in.Top10Pct > extremeConcentration:
		flags = append(flags, fmt.Sprintf("top 10 wallets control %.0f%% of supply: extreme concentration", in.Top10Pct))
		score += weightExtremeConc
	case in.Top10Pct > highConcentration:
		flags = append(flags, fmt.Sprintf("top 10 wallets control %.0f%% of supply: high concentration", in.Top10Pct))
		score += weightHighConc
	}
	if in.WhaleCount > reportWhaleTrigger {
		flags = append(flags, fmt.Sprintf("%d whale wallets detected holding >5%% each", in.WhaleCount))
		score += weightReportWhales
	}

	washPct := 0
	if t := in.Trading; t != nil {
		washPct = WashTradingPct(t.Buys24h, t.Sells24h)
		if washPct > washTradingTrigger {
			flags = append(flags, fmt.Sprintf("%d%% of volume appears circular: wash trading pattern", washPct))
			score += weightWashTrading
		}
		if t.IsSuspiciousVolume {
			flags = append(flags, "high volume relative to liquidity: artificial volume inflation suspected")
			score += weightVolumeInflation
		}
		if t.BuyPressure < lowBuyPressure {
			flags = append(flags, fmt.Sprintf("only %d%% buy pressure: coordinated selling detected", t.BuyPressure))
			score += weightCoordSelling
		}
		if t.BuyPressure > pumpBuyPressure {
			flags = append(flags, fmt.Sprintf("%d%% buy pressure: possible coordinated pump", t.BuyPressure))
			score += weightCoordPump
		}
	}

	if s := in.Social; s != nil {
		if s.IsSuspiciousActivity {
			flags = append(flags, "bot activity detected in social mentions: artificial hype suspected")
			score += weightReportBots
		}
		if s.IsViral && score > 30 {
			flags = append(flags, "viral social activity coincides with on-chain anomalies: coordinated campaign likely")
			score += weightViralAnomaly
		}
		if s.MentionCount > uniformMentionsMin && s.SentimentScore > uniformSentimentMin {
			flags = append(flags, fmt.Sprintf("%d mentions with %d%% positive sentiment: suspiciously uniform", s.MentionCount, s.SentimentScore))
			score += weightUniformHype
		}
		if s.InfluencerMentions > influencerTrigger {
			flags = append(flags, fmt.Sprintf("%d high-engagement accounts promoting token", s.InfluencerMentions))
			score += weightInfluencerPush
		}
	}

	score = ClampScore(score)
	level := reportLevel(score)

	buyPressure := -1
	if in.Trading != nil {
		buyPressure = in.Trading.BuyPressure
	}

	return ReportAssessment{
		Score:          score,
		Level:          level,
		Flags:          flags,
		WashTradingPct: washPct,
		Verdict:        reportVerdict(level, len(flags), in, washPct),
		Recommendation: reportRecommendation(level, buyPressure),
		Confidence:     Confidence(50, 6, len(flags)),
	}
}

func reportLevel(score int) string {
	switch {
	case score < reportBandMedium:
		return entities.RiskLow
	case score < reportBandHigh:
		return entities.RiskMedium
	case score < reportBandCritical:
		return entities.RiskHigh
	default:
		return entities.RiskCritical
	}
}

func reportVerdict(level string, flagCount int, in ReportInput, washPct int) string {
	botActivity := in.Social != nil && in.Social.IsSuspiciousActivity

	switch level {
	case entities.RiskCritical:
		v := "This token exhibits multiple simultaneous manipulation signals that are highly consistent with a coordinated market manipulation scheme. "
		if in.Top10Pct > 60 {
			v += fmt.Sprintf("Supply concentration is extreme: the top 10 wallets control %.0f%% of all tokens, giving them full price control. ", in.Top10Pct)
		}
		if washPct > washTradingTrigger {
			v += fmt.Sprintf("Approximately %d%% of trading volume appears circular, indicating artificial volume inflation to attract retail buyers. ", washPct)
		}
		if botActivity {
			v += "Social media activity shows bot-like patterns, so the positive sentiment is likely manufactured. "
		}
		return v + "The combination of on-chain concentration and off-chain hype is a textbook pump-and-dump setup."

	case entities.RiskHigh:
		v := "This token shows significant risk indicators that warrant serious caution. "
		if in.WhaleCount > 2 {
			v += fmt.Sprintf("%d large wallets hold disproportionate supply, creating dump risk. ", in.WhaleCount)
		}
		if in.Trading != nil && in.Trading.BuyPressure < 30 {
			v += fmt.Sprintf("Buy pressure is only %d%%, suggesting active distribution by insiders. ", in.Trading.BuyPressure)
		}
		if flagCount > 0 {
			v += fmt.Sprintf("%d anomalies were detected across on-chain and social data. ", flagCount)
		}
		return v + "This does not necessarily mean manipulation is occurring, but the risk profile is elevated."

	case entities.RiskMedium:
		v := "This token has some risk factors worth monitoring, but no definitive manipulation signals were detected. "
		if in.Top10Pct > 40 {
			v += fmt.Sprintf("Supply concentration is moderate: top 10 wallets hold %.0f%%. ", in.Top10Pct)
		}
		return v + "Standard due diligence is recommended before any significant position."

	default:
		return "No significant manipulation signals detected. On-chain distribution appears healthy, trading patterns are within normal ranges, and social activity does not show coordinated bot behavior. This does not guarantee the token is safe; always do your own research."
	}
}

func reportRecommendation(level string, buyPressure int) string {
	switch level {
	case entities.RiskCritical:
		return "DO NOT BUY. If holding, consider immediate exit. High probability of coordinated dump."
	case entities.RiskHigh:
		return "Extreme caution. Small position only if any. Set tight stop-loss. Monitor whale wallets."
	case entities.RiskMedium:
		return "Proceed with caution. Verify team identity, audit status, and lock status before investing."
	default:
		if buyPressure > 60 {
			return "Relatively safe profile. Normal risk management applies."
		}
		return "Low risk detected. Standard position sizing recommended."
	}
}
