package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
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

// IntelligenceService orchestrates the risk analysis runs. It gathers
// on-chain and social context from the external providers, feeds the risk
// heuristics and persists the outcome. Provider failures degrade the
// corresponding metric; only a missing subject entity is fatal.
type IntelligenceService struct {
	holderRepo   repositories.HolderRepository
	projectRepo  repositories.ProjectRepository
	analysisRepo repositories.AnalysisRepository
	dex          DexProvider
	prices       PriceProvider
	explorer     ExplorerProvider
	solana       SolanaProvider
	social       SocialProvider
	bus          *bus.Bus
	logger       *zap.Logger
}

// NewIntelligenceService creates a new intelligence service
func NewIntelligenceService(
	holderRepo repositories.HolderRepository,
	projectRepo repositories.ProjectRepository,
	analysisRepo repositories.AnalysisRepository,
	dex DexProvider,
	prices PriceProvider,
	explorer ExplorerProvider,
	solana SolanaProvider,
	social SocialProvider,
	bus *bus.Bus,
	logger *zap.Logger,
) *IntelligenceService {
	return &IntelligenceService{
		holderRepo:   holderRepo,
		projectRepo:  projectRepo,
		analysisRepo: analysisRepo,
		dex:          dex,
		prices:       prices,
		explorer:     explorer,
		solana:       solana,
		social:       social,
		bus:          bus,
		logger:       logger,
	}
}

// HolderIntelligence is the persisted outcome of one holder analysis.
type HolderIntelligence struct {
	HolderID       string    `json:"holder_id"`
	WalletAddress  string    `json:"wallet_address"`
	Chain          string    `json:"chain"`
	Score          int       `json:"score"`
	Level          string    `json:"level"`
	IsInsider      bool      `json:"is_insider"`
	IsWhale        bool      `json:"is_whale"`
	Flags          []string  `json:"flags"`
	Confidence     int       `json:"confidence"`
	Recommendation string    `json:"recommendation"`
	TransfersSeen  int       `json:"transfers_seen"`
	AnalyzedAt     time.Time `json:"analyzed_at"`
}

// AnalyzeHolder scores one tracked holder wallet. Recent transfer history
// is pulled from the wallet's chain explorer when available; the updated
// risk fields are written back onto the holder row.
func (s *IntelligenceService) AnalyzeHolder(ctx context.Context, holderID string) (*HolderIntelligence, error) {
	holder, err := s.holderRepo.GetByID(ctx, holderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get holder: %w", err)
	}
	if holder == nil {
		return nil, fmt.Errorf("%w: holder %s", ErrNotFound, holderID)
	}

	project, err := s.projectRepo.GetByID(ctx, holder.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, holder.ProjectID)
	}

	transfers := s.fetchTransferSample(ctx, holder, project)

	var pct *float64
	if holder.Percentage.Valid {
		v := holder.Percentage.Decimal.InexactFloat64()
		pct = &v
	}

	assessment := risk.ScoreHolder(risk.HolderInput{
		WalletAddress: holder.WalletAddress,
		Chain:         holder.Chain,
		Balance:       holder.Balance.InexactFloat64(),
		Percentage:    pct,
		FirstSeen:     holder.FirstSeen,
		Transfers:     transfers,
	})

	notes := assessment.Recommendation
	if len(assessment.Flags) > 0 {
		notes += " Signals: " + strings.Join(assessment.Flags, "; ")
	}
	if err := s.holderRepo.UpdateRisk(ctx, holder.ID, assessment.IsWhale, assessment.Level, notes); err != nil {
		return nil, fmt.Errorf("failed to store holder risk: %w", err)
	}

	out := &HolderIntelligence{
		HolderID:       holder.ID,
		WalletAddress:  holder.WalletAddress,
		Chain:          holder.Chain,
		Score:          assessment.Score,
		Level:          assessment.Level,
		IsInsider:      assessment.IsInsider,
		IsWhale:        assessment.IsWhale,
		Flags:          assessment.Flags,
		Confidence:     assessment.Confidence,
		Recommendation: assessment.Recommendation,
		AnalyzedAt:     time.Now().UTC(),
	}
	if transfers != nil {
		out.TransfersSeen = transfers.Total
	}

	s.record(ctx, entities.AnalysisEntityHolder, holder.ID, entities.AnalysisTypeHolderRisk, out, assessment.Confidence)
	analysesTotal.WithLabelValues(entities.AnalysisTypeHolderRisk, assessment.Level).Inc()

	if assessment.Level == entities.RiskHigh || assessment.Level == entities.RiskCritical {
		severity := entities.SeverityWarning
		if assessment.Level == entities.RiskCritical {
			severity = entities.SeverityError
		}
		s.bus.Publish(ctx, bus.Notification{
			ProjectID: &holder.ProjectID,
			Type:      entities.EventAIAnalysis,
			Severity:  severity,
			Message:   fmt.Sprintf("Holder %s flagged %s risk (score %d)", shortAddress(holder.WalletAddress), assessment.Level, assessment.Score),
		})
	}

	return out, nil
}

// ProjectIntelligence is the persisted outcome of one project analysis.
type ProjectIntelligence struct {
	ProjectID     string                `json:"project_id"`
	Name          string                `json:"name"`
	Symbol        string                `json:"symbol"`
	Score         int                   `json:"score"`
	Level         string                `json:"level"`
	Flags         []string              `json:"flags"`
	Confidence    int                   `json:"confidence"`
	HolderCount   int                   `json:"holder_count"`
	WhaleCount    int                   `json:"whale_count"`
	TopHolders    []risk.TopHolder      `json:"top_holders"`
	Concentration float64               `json:"concentration"`
	Trading       *risk.TradingActivity `json:"trading,omitempty"`
	Social        *risk.SocialSentiment `json:"social,omitempty"`
	Market        *ProjectMarket        `json:"market,omitempty"`
	AnalyzedAt    time.Time             `json:"analyzed_at"`
}

// ProjectMarket is the live market snapshot attached to a project
// analysis when at least one source knew the token.
type ProjectMarket struct {
	PriceUSD         string              `json:"price_usd,omitempty"`
	OraclePrice      *float64            `json:"oracle_price,omitempty"`
	LiquidityUSD     float64             `json:"liquidity_usd"`
	MarketCap        float64             `json:"market_cap"`
	MarketCapRank    int                 `json:"market_cap_rank,omitempty"`
	Change24hPct     float64             `json:"change_24h_pct"`
	TwitterFollowers int                 `json:"twitter_followers,omitempty"`
	PairURL          string              `json:"pair_url,omitempty"`
	Socials          markets.SocialLinks `json:"socials"`
}

// AnalyzeProject scores one project from its tracked holder set plus live
// DEX trading and social sentiment data fetched concurrently.
func (s *IntelligenceService) AnalyzeProject(ctx context.Context, projectID string) (*ProjectIntelligence, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, projectID)
	}

	holders, err := s.holderRepo.GetByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get holders: %w", err)
	}

	var (
		pair   *markets.DexPair
		social *risk.SocialSentiment
		oracle *float64
		coin   *markets.CoinDetail
		rank   int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pair = s.fetchBestPair(gctx, project.ContractAddress, project.Symbol)
		return nil
	})
	g.Go(func() error {
		coin, rank = s.fetchListing(gctx, project.Symbol)
		return nil
	})
	g.Go(func() error {
		social = s.fetchSocial(gctx, project.Symbol, project.Name)
		return nil
	})
	g.Go(func() error {
		if project.ContractAddress == "" {
			return nil
		}
		price, ok, err := s.prices.TokenPriceByContract(gctx, project.Chain, project.ContractAddress)
		if err != nil {
			s.logger.Warn("Contract price lookup failed",
				zap.String("contract", project.ContractAddress), zap.Error(err))
			return nil
		}
		if ok {
			oracle = &price
		}
		return nil
	})
	_ = g.Wait()

	var trading *risk.TradingActivity
	var market *ProjectMarket
	if pair != nil {
		t := risk.NewTradingActivity(
			pair.Txns.H24.Buys, pair.Txns.H24.Sells,
			pair.Volume.H24, pair.LiquidityUSD(), pair.PriceChange.H24,
		)
		trading = &t
		market = &ProjectMarket{
			PriceUSD:     pair.PriceUSD,
			LiquidityUSD: pair.LiquidityUSD(),
			MarketCap:    pair.MarketCap,
			PairURL:      pair.URL,
			Socials:      pair.ExtractSocialLinks(),
		}
	}
	if oracle != nil {
		if market == nil {
			market = &ProjectMarket{}
		}
		market.OraclePrice = oracle
	}
	if coin != nil {
		if market == nil {
			market = &ProjectMarket{}
		}
		market.MarketCapRank = rank
		market.Change24hPct = coin.MarketData.PriceChangePercentage24h
		market.TwitterFollowers = coin.CommunityData.TwitterFollowers
	}

	in := risk.ProjectInput{
		Holders: make([]risk.ProjectHolder, len(holders)),
		Trading: trading,
		Social:  social,
	}
	for i, h := range holders {
		var stored *float64
		if h.Percentage.Valid {
			v := h.Percentage.Decimal.InexactFloat64()
			stored = &v
		}
		in.Holders[i] = risk.ProjectHolder{
			Address:          h.WalletAddress,
			Balance:          h.Balance.InexactFloat64(),
			StoredPercentage: stored,
		}
	}

	assessment := risk.ScoreProject(in)

	out := &ProjectIntelligence{
		ProjectID:     project.ID,
		Name:          project.Name,
		Symbol:        project.Symbol,
		Score:         assessment.Score,
		Level:         assessment.Level,
		Flags:         assessment.Flags,
		Confidence:    assessment.Confidence,
		HolderCount:   assessment.HolderCount,
		WhaleCount:    assessment.WhaleCount,
		TopHolders:    assessment.TopHolders,
		Concentration: assessment.Concentration,
		Trading:       trading,
		Social:        social,
		Market:        market,
		AnalyzedAt:    time.Now().UTC(),
	}

	s.record(ctx, entities.AnalysisEntityProject, project.ID, entities.AnalysisTypeProjectRisk, out, assessment.Confidence)
	analysesTotal.WithLabelValues(entities.AnalysisTypeProjectRisk, assessment.Level).Inc()

	if assessment.Level == entities.RiskHigh || assessment.Level == entities.RiskCritical {
		severity := entities.SeverityWarning
		if assessment.Level == entities.RiskCritical {
			severity = entities.SeverityError
		}
		s.bus.Publish(ctx, bus.Notification{
			ProjectID: &project.ID,
			Type:      entities.EventAIAnalysis,
			Severity:  severity,
			Message:   fmt.Sprintf("Project %q flagged %s risk (score %d)", project.Name, assessment.Level, assessment.Score),
		})
	}

	return out, nil
}

// TrendingDiscovery pairs a trending coin with its most liquid DEX pair
// when one exists.
type TrendingDiscovery struct {
	Coin markets.TrendingCoin `json:"coin"`
	Pair *markets.DexPair     `json:"pair,omitempty"`
}

// DiscoverTrending cross-references the aggregator's trending list against
// the DEX pair index. Coins without a matching pair are still returned.
func (s *IntelligenceService) DiscoverTrending(ctx context.Context) ([]TrendingDiscovery, error) {
	coins, err := s.prices.Trending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending coins: %w", err)
	}
	if len(coins) > 7 {
		coins = coins[:7]
	}

	out := make([]TrendingDiscovery, len(coins))
	g, gctx := errgroup.WithContext(ctx)
	for i, coin := range coins {
		i, coin := i, coin
		out[i] = TrendingDiscovery{Coin: coin}
		g.Go(func() error {
			pairs, err := s.dex.SearchPairs(gctx, coin.Symbol)
			if err != nil {
				s.logger.Warn("Pair search failed during discovery",
					zap.String("symbol", coin.Symbol), zap.Error(err))
				return nil
			}
			out[i].Pair = markets.BestPair(pairs)
			return nil
		})
	}
	_ = g.Wait()

	return out, nil
}

// History returns past analysis runs for one entity, newest first
func (s *IntelligenceService) History(ctx context.Context, entityType, entityID string, limit int) ([]entities.Analysis, error) {
	switch entityType {
	case entities.AnalysisEntityHolder, entities.AnalysisEntityProject, entities.AnalysisEntityToken:
	default:
		return nil, fmt.Errorf("%w: unknown entity type %q", ErrValidation, entityType)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	runs, err := s.analysisRepo.GetByEntity(ctx, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis history: %w", err)
	}
	if runs == nil {
		runs = []entities.Analysis{}
	}
	return runs, nil
}

// fetchTransferSample pulls a holder's recent transfer activity from its
// chain explorer. Returns nil when the source is unavailable.
func (s *IntelligenceService) fetchTransferSample(ctx context.Context, holder *entities.Holder, project *entities.Project) *risk.TransferSample {
	if entities.IsEVMChain(holder.Chain) {
		transfers, err := s.explorer.TokenTransfers(ctx, holder.Chain, project.ContractAddress, holder.WalletAddress)
		if err != nil {
			s.logger.Warn("Transfer lookup failed",
				zap.String("wallet", holder.WalletAddress), zap.Error(err))
			return nil
		}
		return &risk.TransferSample{
			Total:   len(transfers),
			Inbound: markets.InboundCount(transfers, holder.WalletAddress),
		}
	}

	if holder.Chain == entities.ChainSolana {
		// Solscan account transactions carry no direction, so only the
		// sample size feeds the heuristic.
		txns, err := s.solana.AccountTransactions(ctx, holder.WalletAddress)
		if err != nil {
			s.logger.Warn("Transaction lookup failed",
				zap.String("wallet", holder.WalletAddress), zap.Error(err))
			return nil
		}
		return &risk.TransferSample{Total: len(txns)}
	}

	return nil
}

// fetchBestPair resolves the most liquid DEX pair for a project, by
// contract address first and by symbol search when the contract yields
// nothing. Returns nil when no pair is found or the source fails.
func (s *IntelligenceService) fetchBestPair(ctx context.Context, contractAddress, symbol string) *markets.DexPair {
	if contractAddress != "" {
		pairs, err := s.dex.PairsByToken(ctx, contractAddress)
		if err != nil {
			s.logger.Warn("Pair lookup failed",
				zap.String("contract", contractAddress), zap.Error(err))
		} else if best := markets.BestPair(pairs); best != nil {
			return best
		}
	}
	if symbol == "" {
		return nil
	}
	pairs, err := s.dex.SearchPairs(ctx, symbol)
	if err != nil {
		s.logger.Warn("Pair search failed",
			zap.String("symbol", symbol), zap.Error(err))
		return nil
	}
	return markets.BestPair(pairs)
}

// fetchListing resolves a token symbol to its CoinGecko listing. Returns
// a nil detail when the coin is unlisted or the source fails.
func (s *IntelligenceService) fetchListing(ctx context.Context, symbol string) (*markets.CoinDetail, int) {
	if symbol == "" {
		return nil, 0
	}
	hits, err := s.prices.Search(ctx, symbol)
	if err != nil {
		s.logger.Warn("Coin search failed",
			zap.String("symbol", symbol), zap.Error(err))
		return nil, 0
	}
	var hit *markets.CoinSearchResult
	for i := range hits {
		if strings.EqualFold(hits[i].Symbol, symbol) {
			hit = &hits[i]
			break
		}
	}
	if hit == nil {
		return nil, 0
	}
	detail, err := s.prices.CoinDetail(ctx, hit.ID)
	if err != nil {
		s.logger.Warn("Coin detail lookup failed",
			zap.String("coin", hit.ID), zap.Error(err))
		return nil, 0
	}
	return detail, hit.MarketCapRank
}

// fetchSocial derives the sentiment metrics from recent social mentions.
// Returns nil when the source fails or is unconfigured.
func (s *IntelligenceService) fetchSocial(ctx context.Context, symbol, name string) *risk.SocialSentiment {
	tweets, err := s.social.SearchMentions(ctx, symbol, name)
	if err != nil {
		s.logger.Warn("Mention search failed",
			zap.String("symbol", symbol), zap.Error(err))
		return nil
	}
	if tweets == nil {
		return nil
	}
	sentiment := risk.Sentiment(markets.Mentions(tweets))
	return &sentiment
}

// record appends one analysis row. Persistence failures are logged, not
// returned; the analysis result itself is already in hand.
func (s *IntelligenceService) record(ctx context.Context, entityType, entityID, analysisType string, result interface{}, confidence int) {
	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("Failed to marshal analysis result", zap.Error(err))
		return
	}
	analysis := &entities.Analysis{
		ID:           uuid.NewString(),
		EntityType:   entityType,
		EntityID:     entityID,
		AnalysisType: analysisType,
		Result:       payload,
		Confidence:   confidence,
	}
	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		s.logger.Error("Failed to persist analysis",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
			zap.Error(err))
	}
}
