// Package markets contains the clients for the external market and social
// data sources: DexScreener (DEX pairs), CoinGecko (prices), the
// Etherscan-family EVM explorers, Solscan (Solana) and Twitter/X (social).
// Every client degrades to an error the caller treats as a missing metric;
// none of them retries.
package markets

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// newRestClient builds the resty client shared by all providers. Retries
// are deliberately disabled; a failed fetch is reported to the caller so
// scoring can proceed with the metric absent.
func newRestClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
}

// newBreaker builds the per-provider circuit breaker. After five
// consecutive failures the provider is shed for thirty seconds.
func newBreaker(name string, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Provider breaker state change",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// checkStatus converts a non-2xx resty response into an error.
func checkStatus(resp *resty.Response) error {
	if resp.IsError() {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode(), resp.Request.URL)
	}
	return nil
}
