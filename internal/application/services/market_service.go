package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/infrastructure/cache"
	"github.com/zotalabs/tokenwatch/internal/infrastructure/markets"
)

// MarketService exposes live market lookups to the API layer. Responses
// are cached briefly so the dashboard does not burn through upstream rate
// limits while a user is refreshing.
type MarketService struct {
	dex    DexProvider
	prices PriceProvider
	social SocialProvider
	cache  *cache.RedisCache
	logger *zap.Logger
}

// NewMarketService creates a new market service
func NewMarketService(
	dex DexProvider,
	prices PriceProvider,
	social SocialProvider,
	cache *cache.RedisCache,
	logger *zap.Logger,
) *MarketService {
	return &MarketService{
		dex:    dex,
		prices: prices,
		social: social,
		cache:  cache,
		logger: logger,
	}
}

// TopCoins returns the top coins by market cap
func (s *MarketService) TopCoins(ctx context.Context, limit int) ([]markets.Coin, error) {
	if limit <= 0 || limit > 250 {
		limit = 50
	}
	cacheKey := fmt.Sprintf("market:top:%d", limit)

	var cached []markets.Coin
	if s.hitCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	coins, err := s.prices.TopCoins(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top coins: %w", err)
	}
	s.store(ctx, cacheKey, coins, time.Minute)
	return coins, nil
}

// Trending returns the coins trending on the price aggregator
func (s *MarketService) Trending(ctx context.Context) ([]markets.TrendingCoin, error) {
	cacheKey := "market:trending"

	var cached []markets.TrendingCoin
	if s.hitCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	coins, err := s.prices.Trending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending coins: %w", err)
	}
	s.store(ctx, cacheKey, coins, 2*time.Minute)
	return coins, nil
}

// SearchResults combines coin-listing and DEX-pair hits for one query.
type SearchResults struct {
	Coins []markets.CoinSearchResult `json:"coins"`
	Pairs []markets.DexPair          `json:"pairs"`
}

// Search looks a free-text query up against both the coin listing and the
// DEX pair index. A failure of either source degrades to an empty slice.
func (s *MarketService) Search(ctx context.Context, query string) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}
	cacheKey := "market:search:" + strings.ToLower(query)

	var cached SearchResults
	if s.hitCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	out := SearchResults{
		Coins: []markets.CoinSearchResult{},
		Pairs: []markets.DexPair{},
	}

	if coins, err := s.prices.Search(ctx, query); err != nil {
		s.logger.Warn("Coin search failed", zap.String("query", query), zap.Error(err))
	} else if coins != nil {
		out.Coins = coins
	}

	if pairs, err := s.dex.SearchPairs(ctx, query); err != nil {
		s.logger.Warn("Pair search failed", zap.String("query", query), zap.Error(err))
	} else if pairs != nil {
		out.Pairs = pairs
	}

	s.store(ctx, cacheKey, out, time.Minute)
	return &out, nil
}

// TokenLookup is the market snapshot for one contract address.
type TokenLookup struct {
	Pair    *markets.DexPair    `json:"pair,omitempty"`
	Socials markets.SocialLinks `json:"socials"`
	Price   *float64            `json:"price,omitempty"`
}

// LookupToken resolves a contract address to its most liquid pair and,
// when the aggregator knows the contract, a reference price.
func (s *MarketService) LookupToken(ctx context.Context, chain, contractAddress string) (*TokenLookup, error) {
	if contractAddress == "" {
		return nil, fmt.Errorf("%w: contract address is required", ErrValidation)
	}
	cacheKey := "market:token:" + strings.ToLower(contractAddress)

	var cached TokenLookup
	if s.hitCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var out TokenLookup

	pairs, err := s.dex.PairsByToken(ctx, contractAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pairs: %w", err)
	}
	if best := markets.BestPair(pairs); best != nil {
		out.Pair = best
		out.Socials = best.ExtractSocialLinks()
	}

	if price, ok, err := s.prices.TokenPriceByContract(ctx, chain, contractAddress); err != nil {
		s.logger.Warn("Contract price lookup failed",
			zap.String("contract", contractAddress), zap.Error(err))
	} else if ok {
		out.Price = &price
	}

	s.store(ctx, cacheKey, out, time.Minute)
	return &out, nil
}

// Mentions returns recent social mentions for a token symbol
func (s *MarketService) Mentions(ctx context.Context, symbol, name string) ([]markets.Tweet, error) {
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrValidation)
	}

	tweets, err := s.social.SearchMentions(ctx, symbol, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search mentions: %w", err)
	}
	if tweets == nil {
		tweets = []markets.Tweet{}
	}
	return tweets, nil
}

func (s *MarketService) hitCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	if err := s.cache.Get(ctx, key, dest); err != nil {
		return false
	}
	s.logger.Debug("Cache hit", zap.String("key", key))
	return true
}

func (s *MarketService) store(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetWithTTL(ctx, key, value, ttl); err != nil {
		s.logger.Warn("Failed to cache response", zap.Error(err))
	}
}
