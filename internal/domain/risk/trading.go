package risk

import "math"

// Trading activity thresholds.
const (
	suspiciousVolumeUSD   = 1_000_000
	suspiciousLiquidityUSD = 100_000
	highActivityTxns      = 500
	neutralBuyPressure    = 50
)

// TradingActivity summarizes the last 24h of a DEX pair. BuyPressure is
// the percentage of transactions that were buys, rounded to the nearest
// integer, 50 when the pair saw no transactions at all.
type TradingActivity struct {
	Buys24h            int     `json:"buys_24h"`
	Sells24h           int     `json:"sells_24h"`
	Volume24h          float64 `json:"volume_24h"`
	BuyPressure        int     `json:"buy_pressure"`
	PriceChange24h     float64 `json:"price_change_24h"`
	Liquidity          float64 `json:"liquidity"`
	IsHighActivity     bool    `json:"is_high_activity"`
	IsSuspiciousVolume bool    `json:"is_suspicious_volume"`
}

// NewTradingActivity derives the trading metrics from a pair's 24h buy and
// sell counts, USD volume, USD liquidity and price change.
func NewTradingActivity(buys, sells int, volume24h, liquidityUSD, priceChange24h float64) TradingActivity {
	total := buys + sells
	pressure := neutralBuyPressure
	if total > 0 {
		pressure = int(math.Round(float64(buys) / float64(total) * 100))
	}

	return TradingActivity{
		Buys24h:            buys,
		Sells24h:           sells,
		Volume24h:          volume24h,
		BuyPressure:        pressure,
		PriceChange24h:     priceChange24h,
		Liquidity:          liquidityUSD,
		IsHighActivity:     total > highActivityTxns,
		IsSuspiciousVolume: volume24h > suspiciousVolumeUSD && liquidityUSD > 0 && liquidityUSD < suspiciousLiquidityUSD,
	}
}

// WashTradingPct estimates how much of the pair's volume is circular from
// the symmetry of its buy and sell counts. Perfectly balanced flow maps to
// 60%, one-sided flow to 0%.
func WashTradingPct(buys, sells int) int {
	if buys == 0 || sells == 0 {
		return 0
	}
	lo, hi := buys, sells
	if lo > hi {
		lo, hi = hi, lo
	}
	pct := math.Min(100, float64(lo)/float64(hi)*60)
	return int(math.Round(pct))
}
