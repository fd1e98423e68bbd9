package markets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/config"
	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

// evmExplorers maps EVM chain identifiers to their Etherscan-family
// explorer endpoints. One Etherscan API key works across all of them.
var evmExplorers = map[string]string{
	entities.ChainEthereum:  "https://api.etherscan.io/api",
	entities.ChainBNB:       "https://api.bscscan.com/api",
	entities.ChainPolygon:   "https://api.polygonscan.com/api",
	entities.ChainArbitrum:  "https://api.arbiscan.io/api",
	entities.ChainBase:      "https://api.basescan.org/api",
	entities.ChainOptimism:  "https://api-optimistic.etherscan.io/api",
	entities.ChainFantom:    "https://api.ftmscan.com/api",
	entities.ChainAvalanche: "https://api.snowtrace.io/api",
}

// TokenTransfer is one token transfer event from an EVM explorer.
type TokenTransfer struct {
	Hash         string `json:"hash"`
	From         string `json:"from"`
	To           string `json:"to"`
	Value        string `json:"value"`
	TimeStamp    string `json:"timeStamp"`
	TokenSymbol  string `json:"tokenSymbol"`
	TokenDecimal string `json:"tokenDecimal"`
}

// ExplorerHolder is one row of an explorer's token holder list. Share is
// the percentage of supply when the explorer reports it.
type ExplorerHolder struct {
	Address string  `json:"TokenHolderAddress"`
	Balance string  `json:"TokenHolderQuantity"`
	Share   float64 `json:"share,omitempty"`
}

// ExplorerClient queries the Etherscan-family explorer of each EVM chain.
type ExplorerClient struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	apiKey  string
	logger  *zap.Logger
}

// NewExplorerClient creates a new EVM explorer client
func NewExplorerClient(cfg config.ProvidersConfig, logger *zap.Logger) *ExplorerClient {
	return &ExplorerClient{
		http:    newRestClient("", cfg.RequestTimeout),
		breaker: newBreaker("evm-explorer", logger),
		apiKey:  cfg.EtherscanAPIKey,
		logger:  logger,
	}
}

type explorerResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// TokenHolders returns the holder list an explorer reports for a
// contract. Most free explorer tiers reject this endpoint; callers treat
// an error as an absent metric.
func (c *ExplorerClient) TokenHolders(ctx context.Context, chain, contractAddress string) ([]ExplorerHolder, error) {
	raw, err := c.call(ctx, chain, map[string]string{
		"module":          "token",
		"action":          "tokenholderlist",
		"contractaddress": contractAddress,
		"page":            "1",
		"offset":          "100",
	})
	if err != nil {
		return nil, err
	}

	var holders []ExplorerHolder
	if err := json.Unmarshal(raw, &holders); err != nil {
		return nil, fmt.Errorf("parse holder list: %w", err)
	}
	return holders, nil
}

// TokenTransfers returns recent token transfer events for a contract,
// optionally restricted to one wallet address.
func (c *ExplorerClient) TokenTransfers(ctx context.Context, chain, contractAddress, walletAddress string) ([]TokenTransfer, error) {
	params := map[string]string{
		"module":          "account",
		"action":          "tokentx",
		"contractaddress": contractAddress,
		"page":            "1",
		"offset":          "50",
		"sort":            "desc",
	}
	if walletAddress != "" {
		params["address"] = walletAddress
	}

	raw, err := c.call(ctx, chain, params)
	if err != nil {
		return nil, err
	}

	var transfers []TokenTransfer
	if err := json.Unmarshal(raw, &transfers); err != nil {
		return nil, fmt.Errorf("parse transfers: %w", err)
	}
	return transfers, nil
}

// TokenSupply returns the reported total supply for a contract as a raw
// decimal string.
func (c *ExplorerClient) TokenSupply(ctx context.Context, chain, contractAddress string) (string, error) {
	raw, err := c.call(ctx, chain, map[string]string{
		"module":          "stats",
		"action":          "tokensupply",
		"contractaddress": contractAddress,
	})
	if err != nil {
		return "", err
	}

	var supply string
	if err := json.Unmarshal(raw, &supply); err != nil {
		return "", fmt.Errorf("parse supply: %w", err)
	}
	return supply, nil
}

// InboundCount counts transfers received by a wallet within a sample.
func InboundCount(transfers []TokenTransfer, walletAddress string) int {
	wallet := strings.ToLower(walletAddress)
	count := 0
	for _, t := range transfers {
		if strings.ToLower(t.To) == wallet {
			count++
		}
	}
	return count
}

func (c *ExplorerClient) call(ctx context.Context, chain string, params map[string]string) (json.RawMessage, error) {
	endpoint, ok := evmExplorers[chain]
	if !ok {
		return nil, fmt.Errorf("no explorer for chain %q", chain)
	}
	params["apikey"] = c.apiKey

	result, err := c.breaker.Execute(func() (interface{}, error) {
		var body explorerResponse
		resp, err := c.http.R().SetContext(ctx).
			SetQueryParams(params).
			SetResult(&body).
			Get(endpoint)
		if err != nil {
			return nil, fmt.Errorf("explorer request: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}
		// The explorers signal failure in-band with status "0"; an empty
		// result set is reported the same way and is not an error.
		if body.Status == "0" && body.Message != "No transactions found" {
			return nil, fmt.Errorf("explorer error: %s", body.Message)
		}
		return body.Result, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(json.RawMessage), nil
}
