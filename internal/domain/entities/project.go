package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Chain identifiers supported by the dashboard. EVM chains share the
// Etherscan-family explorer API; solana goes through Solscan.
const (
	ChainSolana    = "solana"
	ChainEthereum  = "ethereum"
	ChainBNB       = "bnb"
	ChainPolygon   = "polygon"
	ChainArbitrum  = "arbitrum"
	ChainBase      = "base"
	ChainOptimism  = "optimism"
	ChainFantom    = "fantom"
	ChainAvalanche = "avalanche"
)

// SupportedChains lists every chain a project may be registered on.
var SupportedChains = []string{
	ChainSolana, ChainEthereum, ChainBNB, ChainPolygon, ChainArbitrum,
	ChainBase, ChainOptimism, ChainFantom, ChainAvalanche,
}

// IsSupportedChain reports whether chain is one of the known identifiers.
func IsSupportedChain(chain string) bool {
	for _, c := range SupportedChains {
		if c == chain {
			return true
		}
	}
	return false
}

// IsEVMChain reports whether chain uses an Etherscan-family explorer.
func IsEVMChain(chain string) bool {
	return chain != ChainSolana && IsSupportedChain(chain)
}

// Project statuses.
const (
	ProjectStatusActive   = "active"
	ProjectStatusInactive = "inactive"
)

// Project is a tracked token project. ContractAddress is the canonical
// on-chain identifier (a mint address on Solana).
type Project struct {
	ID              string              `db:"id" json:"id"`
	Name            string              `db:"name" json:"name"`
	Symbol          string              `db:"symbol" json:"symbol"`
	Chain           string              `db:"chain" json:"chain"`
	ContractAddress string              `db:"contract_address" json:"contract_address"`
	Network         string              `db:"network" json:"network"`
	Description     *string             `db:"description" json:"description,omitempty"`
	Website         *string             `db:"website" json:"website,omitempty"`
	ImageURL        *string             `db:"image_url" json:"image_url,omitempty"`
	TotalSupply     decimal.NullDecimal `db:"total_supply" json:"total_supply,omitempty"`
	Status          string              `db:"status" json:"status"`
	CreatedAt       time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `db:"updated_at" json:"updated_at"`
}

// ProjectFilter contains filters for querying projects
type ProjectFilter struct {
	Search string // matches name, symbol or contract address
	Status string
	Chain  string
}
