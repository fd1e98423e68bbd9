package markets

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/config"
)

// SolanaHolder is one row of a Solana token's holder list.
type SolanaHolder struct {
	Address  string  `json:"address"`
	Amount   float64 `json:"amount"`
	Decimals int     `json:"decimals"`
	Owner    string  `json:"owner"`
	Rank     int     `json:"rank"`
}

// SolanaTokenMeta is the metadata Solscan reports for a mint address.
type SolanaTokenMeta struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Decimals int     `json:"decimals"`
	Supply   float64 `json:"supply"`
	Address  string  `json:"address"`
	Icon     string  `json:"icon,omitempty"`
	Website  string  `json:"website,omitempty"`
	Twitter  string  `json:"twitter,omitempty"`
}

// SolanaTransaction is one account transaction from Solscan.
type SolanaTransaction struct {
	TxHash    string   `json:"txHash"`
	BlockTime int64    `json:"blockTime"`
	Status    string   `json:"status"`
	Fee       int64    `json:"fee"`
	Signer    []string `json:"signer"`
}

// SolscanClient queries the Solscan Pro API for Solana chain data.
type SolscanClient struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewSolscanClient creates a new Solscan client
func NewSolscanClient(cfg config.ProvidersConfig, logger *zap.Logger) *SolscanClient {
	client := newRestClient(cfg.SolscanBaseURL, cfg.RequestTimeout)
	if cfg.SolscanAPIKey != "" {
		client.SetHeader("token", cfg.SolscanAPIKey)
	}
	return &SolscanClient{
		http:    client,
		breaker: newBreaker("solscan", logger),
		logger:  logger,
	}
}

// TokenHolders returns the top holders of a Solana token.
func (c *SolscanClient) TokenHolders(ctx context.Context, mintAddress string) ([]SolanaHolder, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var body struct {
			Data struct {
				Items []SolanaHolder `json:"items"`
			} `json:"data"`
		}
		resp, err := c.http.R().SetContext(ctx).
			SetQueryParams(map[string]string{
				"address":   mintAddress,
				"page":      "1",
				"page_size": "40",
			}).
			SetResult(&body).
			Get("/token/holders")
		if err != nil {
			return nil, fmt.Errorf("solscan holders: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}
		return body.Data.Items, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]SolanaHolder), nil
}

// TokenMeta returns the metadata for a mint address.
func (c *SolscanClient) TokenMeta(ctx context.Context, mintAddress string) (*SolanaTokenMeta, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var body struct {
			Data SolanaTokenMeta `json:"data"`
		}
		resp, err := c.http.R().SetContext(ctx).
			SetQueryParam("address", mintAddress).
			SetResult(&body).
			Get("/token/meta")
		if err != nil {
			return nil, fmt.Errorf("solscan meta: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}
		return &body.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*SolanaTokenMeta), nil
}

// AccountTransactions returns recent transactions for a Solana account.
func (c *SolscanClient) AccountTransactions(ctx context.Context, address string) ([]SolanaTransaction, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var body struct {
			Data []SolanaTransaction `json:"data"`
		}
		resp, err := c.http.R().SetContext(ctx).
			SetQueryParams(map[string]string{
				"address":   address,
				"page_size": "40",
			}).
			SetResult(&body).
			Get("/account/transactions")
		if err != nil {
			return nil, fmt.Errorf("solscan transactions: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}
		return body.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]SolanaTransaction), nil
}
