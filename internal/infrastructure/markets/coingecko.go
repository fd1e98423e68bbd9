package markets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/config"
	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

// Coin is one market row from the CoinGecko markets endpoint.
type Coin struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCap                float64 `json:"market_cap"`
	MarketCapRank            int     `json:"market_cap_rank"`
	TotalVolume              float64 `json:"total_volume"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	CirculatingSupply        float64 `json:"circulating_supply"`
	TotalSupply              float64 `json:"total_supply"`
	Image                    string  `json:"image"`
}

// CoinDetail is the detailed CoinGecko record for one coin.
type CoinDetail struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Links  struct {
		Homepage                  []string `json:"homepage"`
		TwitterScreenName         string   `json:"twitter_screen_name"`
		TelegramChannelIdentifier string   `json:"telegram_channel_identifier"`
	} `json:"links"`
	MarketData struct {
		CurrentPrice             map[string]float64 `json:"current_price"`
		MarketCap                map[string]float64 `json:"market_cap"`
		PriceChangePercentage24h float64            `json:"price_change_percentage_24h"`
		PriceChangePercentage7d  float64            `json:"price_change_percentage_7d"`
	} `json:"market_data"`
	CommunityData struct {
		TwitterFollowers int `json:"twitter_followers"`
	} `json:"community_data"`
}

// CoinSearchResult is one hit from the CoinGecko search endpoint.
type CoinSearchResult struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	MarketCapRank int    `json:"market_cap_rank"`
}

// TrendingCoin is one entry from the CoinGecko trending endpoint.
type TrendingCoin struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank int    `json:"market_cap_rank"`
}

// geckoPlatforms maps dashboard chain identifiers to CoinGecko platform
// ids for the contract-price endpoint.
var geckoPlatforms = map[string]string{
	entities.ChainEthereum:  "ethereum",
	entities.ChainBNB:       "binance-smart-chain",
	entities.ChainPolygon:   "polygon-pos",
	entities.ChainArbitrum:  "arbitrum-one",
	entities.ChainBase:      "base",
	entities.ChainOptimism:  "optimistic-ethereum",
	entities.ChainAvalanche: "avalanche",
	entities.ChainFantom:    "fantom",
	entities.ChainSolana:    "solana",
}

// CoinGeckoClient queries the CoinGecko demo API.
type CoinGeckoClient struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewCoinGeckoClient creates a new CoinGecko client
func NewCoinGeckoClient(cfg config.ProvidersConfig, logger *zap.Logger) *CoinGeckoClient {
	client := newRestClient(cfg.CoinGeckoBaseURL, cfg.RequestTimeout)
	if cfg.CoinGeckoAPIKey != "" {
		client.SetHeader("x-cg-demo-api-key", cfg.CoinGeckoAPIKey)
	}
	return &CoinGeckoClient{
		http:    client,
		breaker: newBreaker("coingecko", logger),
		logger:  logger,
	}
}

// TopCoins returns the top coins by market cap.
func (c *CoinGeckoClient) TopCoins(ctx context.Context, limit int) ([]Coin, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var coins []Coin
		resp, err := c.http.R().SetContext(ctx).
			SetQueryParams(map[string]string{
				"vs_currency": "usd",
				"order":       "market_cap_desc",
				"per_page":    strconv.Itoa(limit),
				"page":        "1",
				"sparkline":   "false",
			}).
			SetResult(&coins).
			Get("/coins/markets")
		if err != nil {
			return nil, fmt.Errorf("coingecko markets: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}
		return coins, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Coin), nil
}

// CoinDetail returns the full CoinGecko record for a coin id.
func (c *CoinGeckoClient) CoinDetail(ctx context.Context, coinID string) (*CoinDetail, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var detail CoinDetail
		resp, err := c.http.R().SetContext(ctx).
			SetQueryParams(map[string]string{
				"localization":   "false",
				"tickers":        "false",
				"market_data":    "true",
				"community_data": "true",
			}).
			SetResult(&detail).
			Get("/coins/" + coinID)
		if err != nil {
			return nil, fmt.Errorf("coingecko coin detail: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}
		return &detail, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*CoinDetail), nil
}

// Search returns up to five coins matching a symbol or name.
func (c *CoinGeckoClient) Search(ctx context.Context, query string) ([]CoinSearchResult, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var body struct {
			Coins []CoinSearchResult `json:"coins"`
		}
		resp, err := c.http.R().SetContext(ctx).
			SetQueryParam("query", query).
			SetResult(&body).
			Get("/search")
		if err != nil {
			return nil, fmt.Errorf("coingecko search: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}
		coins := body.Coins
		if len(coins) > 5 {
			coins = coins[:5]
		}
		return coins, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]CoinSearchResult), nil
}

// TokenPriceByContract returns the USD price for a contract address on a
// chain, or zero with ok=false when the chain or contract is unknown.
func (c *CoinGeckoClient) TokenPriceByContract(ctx context.Context, chain, contractAddress string) (float64, bool, error) {
	platform, known := geckoPlatforms[chain]
	if !known {
		return 0, false, nil
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		var body map[string]struct {
			USD float64 `json:"usd"`
		}
		resp, err := c.http.R().SetContext(ctx).
			SetQueryParams(map[string]string{
				"contract_addresses": contractAddress,
				"vs_currencies":      "usd",
			}).
			SetResult(&body).
			Get("/simple/token_price/" + platform)
		if err != nil {
			return nil, fmt.Errorf("coingecko token price: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}
		return body, nil
	})
	if err != nil {
		return 0, false, err
	}

	body := result.(map[string]struct {
		USD float64 `json:"usd"`
	})
	entry, ok := body[strings.ToLower(contractAddress)]
	if !ok {
		return 0, false, nil
	}
	return entry.USD, true, nil
}

// Trending returns the currently trending coins.
func (c *CoinGeckoClient) Trending(ctx context.Context) ([]TrendingCoin, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var body struct {
			Coins []struct {
				Item TrendingCoin `json:"item"`
			} `json:"coins"`
		}
		resp, err := c.http.R().SetContext(ctx).
			SetResult(&body).
			Get("/search/trending")
		if err != nil {
			return nil, fmt.Errorf("coingecko trending: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}
		coins := make([]TrendingCoin, len(body.Coins))
		for i, c := range body.Coins {
			coins[i] = c.Item
		}
		return coins, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]TrendingCoin), nil
}
