package services

import (
	"context"

	"github.com/zotalabs/tokenwatch/internal/infrastructure/markets"
)

// The services depend on the external data sources through these
// interfaces; the markets package provides the real clients and the tests
// substitute stubs. Every provider error is the non-fatal class: the
// caller degrades the corresponding metric to absent.

// DexProvider looks up DEX trading pairs.
type DexProvider interface {
	PairsByToken(ctx context.Context, contractAddress string) ([]markets.DexPair, error)
	SearchPairs(ctx context.Context, query string) ([]markets.DexPair, error)
}

// PriceProvider looks up market data from the price aggregator.
type PriceProvider interface {
	TopCoins(ctx context.Context, limit int) ([]markets.Coin, error)
	CoinDetail(ctx context.Context, coinID string) (*markets.CoinDetail, error)
	Search(ctx context.Context, query string) ([]markets.CoinSearchResult, error)
	TokenPriceByContract(ctx context.Context, chain, contractAddress string) (float64, bool, error)
	Trending(ctx context.Context) ([]markets.TrendingCoin, error)
}

// ExplorerProvider looks up EVM chain data from the per-chain explorers.
type ExplorerProvider interface {
	TokenHolders(ctx context.Context, chain, contractAddress string) ([]markets.ExplorerHolder, error)
	TokenTransfers(ctx context.Context, chain, contractAddress, walletAddress string) ([]markets.TokenTransfer, error)
}

// SolanaProvider looks up Solana chain data.
type SolanaProvider interface {
	TokenHolders(ctx context.Context, mintAddress string) ([]markets.SolanaHolder, error)
	TokenMeta(ctx context.Context, mintAddress string) (*markets.SolanaTokenMeta, error)
	AccountTransactions(ctx context.Context, address string) ([]markets.SolanaTransaction, error)
}

// SocialProvider searches recent social mentions of a token.
type SocialProvider interface {
	SearchMentions(ctx context.Context, symbol, name string) ([]markets.Tweet, error)
}
