package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zotalabs/tokenwatch/internal/application/bus"
	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/domain/repositories"
	"github.com/zotalabs/tokenwatch/internal/domain/risk"
	"github.com/zotalabs/tokenwatch/internal/infrastructure/markets"
)

// ReportService builds the on-demand manipulation report for an arbitrary
// contract address. Unlike the analysis runs it needs no tracked project;
// everything is fetched live and cross-referenced.
type ReportService struct {
	analysisRepo repositories.AnalysisRepository
	dex          DexProvider
	explorer     ExplorerProvider
	solana       SolanaProvider
	social       SocialProvider
	bus          *bus.Bus
	logger       *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(
	analysisRepo repositories.AnalysisRepository,
	dex DexProvider,
	explorer ExplorerProvider,
	solana SolanaProvider,
	social SocialProvider,
	bus *bus.Bus,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		analysisRepo: analysisRepo,
		dex:          dex,
		explorer:     explorer,
		solana:       solana,
		social:       social,
		bus:          bus,
		logger:       logger,
	}
}

// ReportToken identifies the token a report covers.
type ReportToken struct {
	ContractAddress string  `json:"contract_address"`
	Chain           string  `json:"chain"`
	Name            string  `json:"name,omitempty"`
	Symbol          string  `json:"symbol,omitempty"`
	PriceUSD        string  `json:"price_usd,omitempty"`
	LiquidityUSD    float64 `json:"liquidity_usd"`
	MarketCap       float64 `json:"market_cap"`
	PairURL         string  `json:"pair_url,omitempty"`
}

// ReportOnChain carries the holder-distribution and trading metrics.
type ReportOnChain struct {
	HolderSample int                   `json:"holder_sample"`
	TopHolderPct float64               `json:"top_holder_pct"`
	Top10Pct     float64               `json:"top_10_pct"`
	WhaleCount   int                   `json:"whale_count"`
	Trading      *risk.TradingActivity `json:"trading,omitempty"`
}

// ReportOffChain carries the social metrics.
type ReportOffChain struct {
	Social *risk.SocialSentiment `json:"social,omitempty"`
}

// ReportFindings is the composite verdict section.
type ReportFindings struct {
	Score          int      `json:"score"`
	Level          string   `json:"level"`
	Flags          []string `json:"flags"`
	WashTradingPct int      `json:"wash_trading_pct"`
	Verdict        string   `json:"verdict"`
	Recommendation string   `json:"recommendation"`
	Confidence     int      `json:"confidence"`
}

// ManipulationReport is the full report payload.
type ManipulationReport struct {
	Token       ReportToken    `json:"token"`
	OnChain     ReportOnChain  `json:"on_chain"`
	OffChain    ReportOffChain `json:"off_chain"`
	Findings    ReportFindings `json:"findings"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// holderShare is one holder's supply share, used to fold explorer and
// Solscan holder lists into the same numbers.
type holderShare struct {
	pct float64
}

// BuildReport fetches DEX, explorer and social data for a contract address
// concurrently and scores the combined picture. Individual source failures
// degrade; a contract no source knows anything about is not found.
func (s *ReportService) BuildReport(ctx context.Context, chain, contractAddress, symbol string) (*ManipulationReport, error) {
	if contractAddress == "" {
		return nil, fmt.Errorf("%w: contract address is required", ErrValidation)
	}
	if chain == "" {
		chain = entities.ChainSolana
	}
	if !entities.IsSupportedChain(chain) {
		return nil, fmt.Errorf("%w: unsupported chain %q", ErrValidation, chain)
	}

	var (
		pair   *markets.DexPair
		shares []holderShare
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pairs, err := s.dex.PairsByToken(gctx, contractAddress)
		if err != nil {
			s.logger.Warn("Pair lookup failed",
				zap.String("contract", contractAddress), zap.Error(err))
			return nil
		}
		pair = markets.BestPair(pairs)
		return nil
	})
	g.Go(func() error {
		shares = s.fetchHolderShares(gctx, chain, contractAddress)
		return nil
	})
	_ = g.Wait()

	if pair == nil && len(shares) == 0 {
		return nil, fmt.Errorf("%w: no data for contract %s on %s", ErrNotFound, contractAddress, chain)
	}

	token := ReportToken{ContractAddress: contractAddress, Chain: chain, Symbol: symbol}
	var trading *risk.TradingActivity
	if pair != nil {
		token.Name = pair.BaseToken.Name
		if token.Symbol == "" {
			token.Symbol = pair.BaseToken.Symbol
		}
		token.PriceUSD = pair.PriceUSD
		token.LiquidityUSD = pair.LiquidityUSD()
		token.MarketCap = pair.MarketCap
		token.PairURL = pair.URL

		t := risk.NewTradingActivity(
			pair.Txns.H24.Buys, pair.Txns.H24.Sells,
			pair.Volume.H24, pair.LiquidityUSD(), pair.PriceChange.H24,
		)
		trading = &t
	}

	// Social search only works with a symbol to query by.
	var social *risk.SocialSentiment
	if token.Symbol != "" {
		if tweets, err := s.social.SearchMentions(ctx, token.Symbol, token.Name); err != nil {
			s.logger.Warn("Mention search failed",
				zap.String("symbol", token.Symbol), zap.Error(err))
		} else if tweets != nil {
			sentiment := risk.Sentiment(markets.Mentions(tweets))
			social = &sentiment
		}
	}

	onChain := summarizeShares(shares)
	onChain.Trading = trading

	assessment := risk.ScoreManipulation(risk.ReportInput{
		TopHolderPct: onChain.TopHolderPct,
		Top10Pct:     onChain.Top10Pct,
		WhaleCount:   onChain.WhaleCount,
		Trading:      trading,
		Social:       social,
	})

	report := &ManipulationReport{
		Token:    token,
		OnChain:  onChain,
		OffChain: ReportOffChain{Social: social},
		Findings: ReportFindings{
			Score:          assessment.Score,
			Level:          assessment.Level,
			Flags:          assessment.Flags,
			WashTradingPct: assessment.WashTradingPct,
			Verdict:        assessment.Verdict,
			Recommendation: assessment.Recommendation,
			Confidence:     assessment.Confidence,
		},
		GeneratedAt: time.Now().UTC(),
	}

	s.persist(ctx, contractAddress, report, assessment.Confidence)
	analysesTotal.WithLabelValues(entities.AnalysisTypeManipulation, assessment.Level).Inc()

	if assessment.Level == entities.RiskHigh || assessment.Level == entities.RiskCritical {
		severity := entities.SeverityWarning
		if assessment.Level == entities.RiskCritical {
			severity = entities.SeverityError
		}
		s.bus.Publish(ctx, bus.Notification{
			Type:     entities.EventAIAnalysis,
			Severity: severity,
			Message:  fmt.Sprintf("Manipulation report for %s: %s risk (score %d)", shortAddress(contractAddress), assessment.Level, assessment.Score),
		})
	}

	return report, nil
}

// fetchHolderShares turns the chain's holder list into supply shares.
// Explorer-reported shares are trusted when present; otherwise shares are
// computed against the reported supply or, failing that, the sample sum.
func (s *ReportService) fetchHolderShares(ctx context.Context, chain, contractAddress string) []holderShare {
	if chain == entities.ChainSolana {
		holders, err := s.solana.TokenHolders(ctx, contractAddress)
		if err != nil {
			s.logger.Warn("Holder lookup failed",
				zap.String("contract", contractAddress), zap.Error(err))
			return nil
		}
		var supply float64
		if meta, err := s.solana.TokenMeta(ctx, contractAddress); err == nil && meta != nil {
			supply = meta.Supply
		}
		if supply <= 0 {
			for _, h := range holders {
				supply += h.Amount
			}
		}
		if supply <= 0 {
			return nil
		}
		shares := make([]holderShare, len(holders))
		for i, h := range holders {
			shares[i] = holderShare{pct: h.Amount / supply * 100}
		}
		return shares
	}

	holders, err := s.explorer.TokenHolders(ctx, chain, contractAddress)
	if err != nil {
		s.logger.Warn("Holder lookup failed",
			zap.String("contract", contractAddress), zap.Error(err))
		return nil
	}

	balances := make([]float64, len(holders))
	var total float64
	for i, h := range holders {
		if h.Share > 0 {
			balances[i] = -1
			continue
		}
		b, err := strconv.ParseFloat(h.Balance, 64)
		if err != nil {
			continue
		}
		balances[i] = b
		total += b
	}

	shares := make([]holderShare, 0, len(holders))
	for i, h := range holders {
		switch {
		case h.Share > 0:
			shares = append(shares, holderShare{pct: h.Share})
		case total > 0 && balances[i] > 0:
			shares = append(shares, holderShare{pct: balances[i] / total * 100})
		}
	}
	return shares
}

// summarizeShares folds the share list into the distribution metrics the
// manipulation heuristic reads.
func summarizeShares(shares []holderShare) ReportOnChain {
	out := ReportOnChain{HolderSample: len(shares)}
	if len(shares) == 0 {
		return out
	}

	sorted := make([]holderShare, len(shares))
	copy(sorted, shares)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].pct > sorted[j].pct })

	out.TopHolderPct = sorted[0].pct
	for i, h := range sorted {
		if i < 10 {
			out.Top10Pct += h.pct
		}
		if h.pct > 5 {
			out.WhaleCount++
		}
	}
	return out
}

func (s *ReportService) persist(ctx context.Context, contractAddress string, report *ManipulationReport, confidence int) {
	payload, err := json.Marshal(report)
	if err != nil {
		s.logger.Error("Failed to marshal report", zap.Error(err))
		return
	}
	analysis := &entities.Analysis{
		ID:           uuid.NewString(),
		EntityType:   entities.AnalysisEntityToken,
		EntityID:     contractAddress,
		AnalysisType: entities.AnalysisTypeManipulation,
		Result:       payload,
		Confidence:   confidence,
	}
	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		s.logger.Error("Failed to persist report", zap.Error(err))
	}
}
