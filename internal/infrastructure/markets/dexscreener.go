package markets

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/config"
)

// DexPair is one trading pair as returned by the DexScreener API.
type DexPair struct {
	ChainID     string `json:"chainId"`
	DexID       string `json:"dexId"`
	URL         string `json:"url"`
	PairAddress string `json:"pairAddress"`
	BaseToken   struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	QuoteToken struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"quoteToken"`
	PriceNative string `json:"priceNative"`
	PriceUSD    string `json:"priceUsd"`
	Txns        struct {
		H24 struct {
			Buys  int `json:"buys"`
			Sells int `json:"sells"`
		} `json:"h24"`
	} `json:"txns"`
	Volume struct {
		H24 float64 `json:"h24"`
	} `json:"volume"`
	PriceChange struct {
		H24 float64 `json:"h24"`
	} `json:"priceChange"`
	Liquidity *struct {
		USD   float64 `json:"usd"`
		Base  float64 `json:"base"`
		Quote float64 `json:"quote"`
	} `json:"liquidity"`
	FDV       float64 `json:"fdv"`
	MarketCap float64 `json:"marketCap"`
	Info      *struct {
		ImageURL string `json:"imageUrl"`
		Websites []struct {
			URL string `json:"url"`
		} `json:"websites"`
		Socials []struct {
			Type string `json:"type"`
			URL  string `json:"url"`
		} `json:"socials"`
	} `json:"info"`
}

// LiquidityUSD returns the pair's USD liquidity, zero when unreported.
func (p *DexPair) LiquidityUSD() float64 {
	if p.Liquidity == nil {
		return 0
	}
	return p.Liquidity.USD
}

// SocialLinks are the website/social URLs DexScreener knows for a pair.
type SocialLinks struct {
	Website  string `json:"website,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Telegram string `json:"telegram,omitempty"`
}

// ExtractSocialLinks pulls the known social links out of a pair's info
// block.
func (p *DexPair) ExtractSocialLinks() SocialLinks {
	var links SocialLinks
	if p.Info == nil {
		return links
	}
	if len(p.Info.Websites) > 0 {
		links.Website = p.Info.Websites[0].URL
	}
	for _, s := range p.Info.Socials {
		switch s.Type {
		case "twitter":
			links.Twitter = s.URL
		case "telegram":
			links.Telegram = s.URL
		}
	}
	return links
}

// DexScreenerClient queries the DexScreener pair API. The API is free and
// needs no key.
type DexScreenerClient struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewDexScreenerClient creates a new DexScreener client
func NewDexScreenerClient(cfg config.ProvidersConfig, logger *zap.Logger) *DexScreenerClient {
	return &DexScreenerClient{
		http:    newRestClient(cfg.DexScreenerBaseURL, cfg.RequestTimeout),
		breaker: newBreaker("dexscreener", logger),
		logger:  logger,
	}
}

type dexPairsResponse struct {
	Pairs []DexPair `json:"pairs"`
}

// PairsByToken returns every pair DexScreener lists for a contract address.
func (c *DexScreenerClient) PairsByToken(ctx context.Context, contractAddress string) ([]DexPair, error) {
	return c.fetchPairs(ctx, "/latest/dex/tokens/"+contractAddress, nil, 0)
}

// SearchPairs returns up to ten pairs matching a free-text query.
func (c *DexScreenerClient) SearchPairs(ctx context.Context, query string) ([]DexPair, error) {
	return c.fetchPairs(ctx, "/latest/dex/search", map[string]string{"q": query}, 10)
}

// BestPair returns the pair with the highest USD liquidity, preserving
// source order on ties. Returns nil for an empty slice.
func BestPair(pairs []DexPair) *DexPair {
	if len(pairs) == 0 {
		return nil
	}
	sorted := make([]DexPair, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LiquidityUSD() > sorted[j].LiquidityUSD()
	})
	return &sorted[0]
}

func (c *DexScreenerClient) fetchPairs(ctx context.Context, path string, params map[string]string, limit int) ([]DexPair, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var body dexPairsResponse
		req := c.http.R().SetContext(ctx).SetResult(&body)
		if params != nil {
			req.SetQueryParams(params)
		}
		resp, err := req.Get(path)
		if err != nil {
			return nil, fmt.Errorf("dexscreener request: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}
		return body.Pairs, nil
	})
	if err != nil {
		return nil, err
	}

	pairs := result.([]DexPair)
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs, nil
}
