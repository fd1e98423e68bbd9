package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/application/bus"
	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/infrastructure/markets"
	"github.com/zotalabs/tokenwatch/internal/testutil"
)

type intelligenceFixture struct {
	service      *IntelligenceService
	holderRepo   *testutil.MockHolderRepository
	projectRepo  *testutil.MockProjectRepository
	analysisRepo *testutil.MockAnalysisRepository
	eventRepo    *testutil.MockEventRepository
	dex          *testutil.StubDexProvider
	prices       *testutil.StubPriceProvider
	explorer     *testutil.StubExplorerProvider
	solana       *testutil.StubSolanaProvider
	social       *testutil.StubSocialProvider
}

func setupIntelligenceTest() *intelligenceFixture {
	f := &intelligenceFixture{
		holderRepo:   testutil.NewMockHolderRepository(),
		projectRepo:  testutil.NewMockProjectRepository(),
		analysisRepo: testutil.NewMockAnalysisRepository(),
		eventRepo:    testutil.NewMockEventRepository(),
		dex:          &testutil.StubDexProvider{},
		prices:       &testutil.StubPriceProvider{},
		explorer:     &testutil.StubExplorerProvider{},
		solana:       &testutil.StubSolanaProvider{},
		social:       &testutil.StubSocialProvider{},
	}
	logger := zap.NewNop()
	notifications := bus.New(logger)
	notifications.Subscribe(bus.NewRecorder(f.eventRepo, logger))
	f.service = NewIntelligenceService(
		f.holderRepo, f.projectRepo, f.analysisRepo,
		f.dex, f.prices, f.explorer, f.solana, f.social,
		notifications, logger,
	)
	return f
}

func TestIntelligenceService_AnalyzeHolderCritical(t *testing.T) {
	f := setupIntelligenceTest()
	ctx := context.Background()

	p := testutil.CreateTestProject()
	f.projectRepo.Projects[p.ID] = p

	h := testutil.CreateTestHolder(
		testutil.WithHolderProject(p.ID),
		testutil.WithHolderBalance(25_000_000_000, 26.7),
	)
	f.holderRepo.Holders[h.ID] = h

	out, err := f.service.AnalyzeHolder(ctx, h.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Score != 90 {
		t.Errorf("expected score 90, got %d", out.Score)
	}
	if out.Level != entities.RiskCritical {
		t.Errorf("expected critical, got %s", out.Level)
	}
	if !out.IsInsider {
		t.Error("dominant holder should read as insider")
	}

	stored := f.holderRepo.Holders[h.ID]
	if stored.RiskScore == nil || *stored.RiskScore != entities.RiskCritical {
		t.Error("risk level not written back to the holder row")
	}
	if stored.AINotes == nil || !strings.Contains(*stored.AINotes, "Signals:") {
		t.Error("notes should carry the triggered signals")
	}

	if len(f.analysisRepo.Analyses) != 1 {
		t.Fatalf("expected 1 analysis row, got %d", len(f.analysisRepo.Analyses))
	}
	row := f.analysisRepo.Analyses[0]
	if row.EntityType != entities.AnalysisEntityHolder || row.EntityID != h.ID {
		t.Errorf("analysis row mislabeled: %s/%s", row.EntityType, row.EntityID)
	}
	if row.AnalysisType != entities.AnalysisTypeHolderRisk {
		t.Errorf("expected %s, got %s", entities.AnalysisTypeHolderRisk, row.AnalysisType)
	}

	if len(f.eventRepo.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(f.eventRepo.Events))
	}
	if f.eventRepo.Events[0].Severity != entities.SeverityError {
		t.Errorf("critical result should publish with error severity, got %s", f.eventRepo.Events[0].Severity)
	}
}

func TestIntelligenceService_AnalyzeHolderQuietWhenLowRisk(t *testing.T) {
	f := setupIntelligenceTest()
	ctx := context.Background()

	p := testutil.CreateTestProject()
	f.projectRepo.Projects[p.ID] = p

	h := testutil.CreateTestHolder(
		testutil.WithHolderProject(p.ID),
		testutil.WithHolderBalance(1_000_000, 0.01),
	)
	f.holderRepo.Holders[h.ID] = h

	out, err := f.service.AnalyzeHolder(ctx, h.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Level != entities.RiskLow {
		t.Errorf("expected low, got %s", out.Level)
	}
	if len(f.eventRepo.Events) != 0 {
		t.Errorf("low risk should not publish, got %d events", len(f.eventRepo.Events))
	}
	if len(f.analysisRepo.Analyses) != 1 {
		t.Errorf("analysis row should be recorded regardless of level")
	}
}

func TestIntelligenceService_AnalyzeHolderSurvivesExplorerFailure(t *testing.T) {
	f := setupIntelligenceTest()
	ctx := context.Background()

	p := testutil.CreateTestProject(testutil.WithProjectChain(entities.ChainEthereum))
	f.projectRepo.Projects[p.ID] = p

	h := testutil.CreateTestHolder(
		testutil.WithHolderProject(p.ID),
		testutil.WithHolderWallet(testutil.EVMWallet, entities.ChainEthereum),
	)
	f.holderRepo.Holders[h.ID] = h

	f.explorer.TokenTransfersFunc = func(ctx context.Context, chain, contract, wallet string) ([]markets.TokenTransfer, error) {
		return nil, fmt.Errorf("explorer rate limited")
	}

	out, err := f.service.AnalyzeHolder(ctx, h.ID)
	if err != nil {
		t.Fatalf("transfer lookup failure must not fail the run: %v", err)
	}
	if out.TransfersSeen != 0 {
		t.Errorf("expected no transfers counted, got %d", out.TransfersSeen)
	}
}

func TestIntelligenceService_AnalyzeHolderNotFound(t *testing.T) {
	f := setupIntelligenceTest()

	_, err := f.service.AnalyzeHolder(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIntelligenceService_AnalyzeProjectDegradesWithoutProviders(t *testing.T) {
	f := setupIntelligenceTest()
	ctx := context.Background()

	p := testutil.CreateTestProject()
	f.projectRepo.Projects[p.ID] = p

	h := testutil.CreateTestHolder(testutil.WithHolderProject(p.ID))
	f.holderRepo.Holders[h.ID] = h

	f.dex.PairsByTokenFunc = func(ctx context.Context, contract string) ([]markets.DexPair, error) {
		return nil, fmt.Errorf("dex unavailable")
	}
	f.social.SearchMentionsFunc = func(ctx context.Context, symbol, name string) ([]markets.Tweet, error) {
		return nil, fmt.Errorf("social unavailable")
	}

	out, err := f.service.AnalyzeProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("provider failures must not fail the run: %v", err)
	}

	if out.Trading != nil || out.Social != nil || out.Market != nil {
		t.Error("failed sources should leave their metrics absent")
	}
	// A single tracked holder owns the whole sample.
	if out.Concentration != 100 {
		t.Errorf("expected concentration 100, got %.1f", out.Concentration)
	}
	if out.Level != entities.RiskHigh {
		t.Errorf("expected high, got %s", out.Level)
	}
	if len(f.analysisRepo.Analyses) != 1 {
		t.Errorf("expected 1 analysis row, got %d", len(f.analysisRepo.Analyses))
	}
	if len(f.eventRepo.Events) != 1 {
		t.Fatalf("high risk should publish an event")
	}
	if f.eventRepo.Events[0].ProjectID == nil || *f.eventRepo.Events[0].ProjectID != p.ID {
		t.Error("event should reference the analyzed project")
	}
}

func TestIntelligenceService_AnalyzeProjectFallsBackToSymbolSearch(t *testing.T) {
	f := setupIntelligenceTest()
	ctx := context.Background()

	p := testutil.CreateTestProject()
	f.projectRepo.Projects[p.ID] = p
	h := testutil.CreateTestHolder(testutil.WithHolderProject(p.ID))
	f.holderRepo.Holders[h.ID] = h

	// Contract lookup comes back empty; the symbol search knows the pair.
	f.dex.SearchPairsFunc = func(ctx context.Context, query string) ([]markets.DexPair, error) {
		if query != p.Symbol {
			return nil, nil
		}
		pair := markets.DexPair{ChainID: "solana", PairAddress: "pair1", PriceUSD: "0.000021", URL: "https://dexscreener.com/solana/pair1"}
		pair.Txns.H24.Buys = 40
		pair.Txns.H24.Sells = 60
		return []markets.DexPair{pair}, nil
	}
	f.prices.TokenPriceByContractFunc = func(ctx context.Context, chain, contract string) (float64, bool, error) {
		return 0.000022, true, nil
	}
	f.prices.SearchFunc = func(ctx context.Context, query string) ([]markets.CoinSearchResult, error) {
		return []markets.CoinSearchResult{
			{ID: "bonk-classic", Symbol: "BONKC", Name: "Bonk Classic", MarketCapRank: 900},
			{ID: "bonk", Symbol: "bonk", Name: "Bonk", MarketCapRank: 71},
		}, nil
	}
	f.prices.CoinDetailFunc = func(ctx context.Context, coinID string) (*markets.CoinDetail, error) {
		detail := &markets.CoinDetail{ID: coinID, Symbol: "bonk", Name: "Bonk"}
		detail.MarketData.PriceChangePercentage24h = -3.2
		detail.CommunityData.TwitterFollowers = 420_000
		return detail, nil
	}

	out, err := f.service.AnalyzeProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Trading == nil || out.Trading.BuyPressure != 40 {
		t.Error("trading metrics should come from the searched pair")
	}
	if out.Market == nil {
		t.Fatal("expected a market snapshot")
	}
	if out.Market.PriceUSD != "0.000021" {
		t.Errorf("expected pair price, got %q", out.Market.PriceUSD)
	}
	if out.Market.OraclePrice == nil || *out.Market.OraclePrice != 0.000022 {
		t.Error("expected the aggregator price to be attached")
	}
	// The exact symbol match wins over the first search hit.
	if out.Market.MarketCapRank != 71 {
		t.Errorf("expected rank 71, got %d", out.Market.MarketCapRank)
	}
	if out.Market.TwitterFollowers != 420_000 {
		t.Errorf("expected follower count from the listing, got %d", out.Market.TwitterFollowers)
	}
}

func TestIntelligenceService_AnalyzeProjectNotFound(t *testing.T) {
	f := setupIntelligenceTest()

	_, err := f.service.AnalyzeProject(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIntelligenceService_DiscoverTrending(t *testing.T) {
	f := setupIntelligenceTest()

	f.prices.TrendingFunc = func(ctx context.Context) ([]markets.TrendingCoin, error) {
		return []markets.TrendingCoin{
			{ID: "bonk", Symbol: "BONK", Name: "Bonk"},
			{ID: "pepe", Symbol: "PEPE", Name: "Pepe"},
		}, nil
	}
	f.dex.SearchPairsFunc = func(ctx context.Context, query string) ([]markets.DexPair, error) {
		if query != "BONK" {
			return nil, nil
		}
		pair := markets.DexPair{ChainID: "solana", PairAddress: "pair1"}
		pair.Liquidity = &struct {
			USD   float64 `json:"usd"`
			Base  float64 `json:"base"`
			Quote float64 `json:"quote"`
		}{USD: 250_000}
		return []markets.DexPair{pair}, nil
	}

	out, err := f.service.DiscoverTrending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 discoveries, got %d", len(out))
	}
	if out[0].Pair == nil || out[0].Pair.PairAddress != "pair1" {
		t.Error("BONK should resolve to its DEX pair")
	}
	if out[1].Pair != nil {
		t.Error("PEPE has no pair and should stay bare")
	}
}

func TestIntelligenceService_HistoryRejectsUnknownEntityType(t *testing.T) {
	f := setupIntelligenceTest()

	_, err := f.service.History(context.Background(), "wallet", "abc", 10)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
