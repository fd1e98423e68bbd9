package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/config"
	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/infrastructure/database"
)

// Seeds the database with a small multi-chain demo dataset.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	db, err := database.NewPostgresDB(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	projects := database.NewProjectRepo(db.DB())
	tokens := database.NewTokenRepo(db.DB())
	holders := database.NewHolderRepo(db.DB())
	events := database.NewEventRepo(db.DB())

	type projectSeed struct {
		name, symbol, chain, contract, description, website string
		totalSupply                                         int64
	}
	seeds := []projectSeed{
		{"Bonk", "BONK", entities.ChainSolana, "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", "The first Solana dog coin.", "https://bonkcoin.com", 93_526_183_890_996},
		{"Jupiter", "JUP", entities.ChainSolana, "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN", "Solana liquidity aggregator.", "https://jup.ag", 10_000_000_000},
		{"Uniswap", "UNI", entities.ChainEthereum, "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", "Decentralized exchange protocol.", "https://uniswap.org", 1_000_000_000},
		{"Pepe", "PEPE", entities.ChainEthereum, "0x6982508145454Ce325dDbE47a25d4ec3d2311933", "The memecoin of Ethereum.", "https://pepe.vip", 420_690_000_000_000},
		{"PancakeSwap", "CAKE", entities.ChainBNB, "0x0E09FaBB73Bd3Ade0a17ECC321fD13a19e81cE82", "BNB Chain DEX & yield farming.", "https://pancakeswap.finance", 750_000_000},
	}

	ids := make(map[string]string, len(seeds))
	for _, s := range seeds {
		p := &entities.Project{
			ID:              uuid.NewString(),
			Name:            s.name,
			Symbol:          s.symbol,
			Chain:           s.chain,
			ContractAddress: s.contract,
			Network:         "mainnet",
			Description:     ptr(s.description),
			Website:         ptr(s.website),
			TotalSupply:     decimal.NewNullDecimal(decimal.NewFromInt(s.totalSupply)),
			Status:          entities.ProjectStatusActive,
		}
		if err := projects.Create(ctx, p); err != nil {
			logger.Fatal("Failed to seed project", zap.String("name", s.name), zap.Error(err))
		}
		ids[s.symbol] = p.ID
	}
	logger.Info("Seeded projects", zap.Int("count", len(seeds)))

	type tokenSeed struct {
		symbol, name, chain, contract string
		decimals                      int
		supply                        int64
		price, marketCap              float64
	}
	tokenSeeds := []tokenSeed{
		{"BONK", "Bonk", entities.ChainSolana, "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", 5, 93_526_183_890_996, 0.0000234, 2_188_512},
		{"JUP", "Jupiter", entities.ChainSolana, "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN", 6, 10_000_000_000, 0.82, 8_200_000_000},
		{"UNI", "Uniswap", entities.ChainEthereum, "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", 18, 1_000_000_000, 7.42, 7_420_000_000},
		{"PEPE", "Pepe", entities.ChainEthereum, "0x6982508145454Ce325dDbE47a25d4ec3d2311933", 18, 420_690_000_000_000, 0.00001234, 5_191_314_600},
		{"CAKE", "PancakeSwap", entities.ChainBNB, "0x0E09FaBB73Bd3Ade0a17ECC321fD13a19e81cE82", 18, 750_000_000, 2.34, 1_755_000_000},
	}
	for _, s := range tokenSeeds {
		t := &entities.Token{
			ID:              uuid.NewString(),
			ProjectID:       ids[s.symbol],
			Name:            s.name,
			Symbol:          s.symbol,
			Chain:           s.chain,
			ContractAddress: s.contract,
			Decimals:        s.decimals,
			Supply:          decimal.NewNullDecimal(decimal.NewFromInt(s.supply)),
			Price:           decimal.NewNullDecimal(decimal.NewFromFloat(s.price)),
			MarketCap:       decimal.NewNullDecimal(decimal.NewFromFloat(s.marketCap)),
		}
		if err := tokens.Create(ctx, t); err != nil {
			logger.Fatal("Failed to seed token", zap.String("symbol", s.symbol), zap.Error(err))
		}
	}
	logger.Info("Seeded tokens", zap.Int("count", len(tokenSeeds)))

	type holderSeed struct {
		symbol, wallet, chain string
		balance               int64
		percentage            float64
		isWhale               bool
		riskScore, aiNotes    string
	}
	holderSeeds := []holderSeed{
		{"BONK", "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM", entities.ChainSolana, 5_000_000_000, 5.34, true, "", ""},
		{"BONK", "BonkF6M3Na3GpTwBb8jY5oGGnoBJfLfSHs4Y9oU7VCL1", entities.ChainSolana, 3_200_000_000, 3.42, false, "", ""},
		{"BONK", "HN7cABqLq46Es1jh92dQQisAq662SmxELLLsHHe4YWrH", entities.ChainSolana, 25_000_000_000, 26.7, true, entities.RiskHigh, "Possible insider: 26.7% concentration"},
		{"JUP", "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4", entities.ChainSolana, 2_500_000_000, 25.0, true, "", ""},
		{"UNI", "0x47173B170C64d16393a52e6C480b3Ad8c302ba1e", entities.ChainEthereum, 15_000_000, 1.5, false, "", ""},
		{"UNI", "0x1a9C8182C09F50C8318d769245beA52c32BE35BC", entities.ChainEthereum, 85_000_000, 8.5, true, entities.RiskMedium, ""},
		{"PEPE", "0xF977814e90dA44bFA03b6295A0616a897441aceC", entities.ChainEthereum, 50_000_000_000_000, 11.88, true, "", ""},
		{"CAKE", "0x73feaa1eE314F8c655E354234017bE2193C9E24E", entities.ChainBNB, 120_000_000, 16.0, true, entities.RiskHigh, "MasterChef contract: highest CAKE holder"},
		{"CAKE", "0x000000000000000000000000000000000000dEaD", entities.ChainBNB, 50_000_000, 6.67, true, "", ""},
	}
	for _, s := range holderSeeds {
		h := &entities.Holder{
			ID:            uuid.NewString(),
			ProjectID:     ids[s.symbol],
			WalletAddress: s.wallet,
			Chain:         s.chain,
			Balance:       decimal.NewFromInt(s.balance),
			Percentage:    decimal.NewNullDecimal(decimal.NewFromFloat(s.percentage)),
			IsWhale:       s.isWhale,
			FirstSeen:     time.Now().UTC().AddDate(0, 0, -30),
		}
		if s.riskScore != "" {
			h.RiskScore = ptr(s.riskScore)
		}
		if s.aiNotes != "" {
			h.AINotes = ptr(s.aiNotes)
		}
		if err := holders.Create(ctx, h); err != nil {
			logger.Fatal("Failed to seed holder", zap.String("wallet", s.wallet), zap.Error(err))
		}
	}
	logger.Info("Seeded holders", zap.Int("count", len(holderSeeds)))

	type eventSeed struct {
		symbol, typ, severity, message string
	}
	eventSeeds := []eventSeed{
		{"BONK", "parse_completed", entities.SeveritySuccess, "Parsed 3 holders for Bonk (Solana)"},
		{"UNI", "parse_completed", entities.SeveritySuccess, "Parsed 2 holders for Uniswap (Ethereum)"},
		{"CAKE", "parse_completed", entities.SeveritySuccess, "Parsed 2 holders for PancakeSwap (BNB)"},
		{"BONK", entities.EventAIAnalysis, entities.SeverityWarning, "Potential insider wallet: HN7cABq... holds 26.7% of BONK"},
		{"PEPE", entities.EventTokenCreated, entities.SeveritySuccess, `Token "Pepe" (PEPE) on ethereum registered`},
		{"", entities.EventSystemStart, entities.SeverityInfo, "tokenwatch multi-chain engine initialized"},
		{"CAKE", entities.EventAIAnalysis, entities.SeverityInfo, "PancakeSwap MasterChef contract identified as top holder"},
	}
	for _, s := range eventSeeds {
		e := &entities.Event{
			ID:       uuid.NewString(),
			Type:     s.typ,
			Severity: s.severity,
			Message:  s.message,
		}
		if s.symbol != "" {
			id := ids[s.symbol]
			e.ProjectID = &id
		}
		if err := events.Create(ctx, e); err != nil {
			logger.Fatal("Failed to seed event", zap.String("type", s.typ), zap.Error(err))
		}
	}
	logger.Info("Seeded events", zap.Int("count", len(eventSeeds)))

	logger.Info("Seed complete")
}

func ptr(s string) *string {
	return &s
}
