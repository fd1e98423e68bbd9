package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Token is a concrete on-chain token belonging to a project
type Token struct {
	ID              string              `db:"id" json:"id"`
	ProjectID       string              `db:"project_id" json:"project_id"`
	Name            string              `db:"name" json:"name"`
	Symbol          string              `db:"symbol" json:"symbol"`
	Chain           string              `db:"chain" json:"chain"`
	ContractAddress string              `db:"contract_address" json:"contract_address"`
	Decimals        int                 `db:"decimals" json:"decimals"`
	Supply          decimal.NullDecimal `db:"supply" json:"supply,omitempty"`
	Price           decimal.NullDecimal `db:"price" json:"price,omitempty"`
	MarketCap       decimal.NullDecimal `db:"market_cap" json:"market_cap,omitempty"`
	CreatedAt       time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `db:"updated_at" json:"updated_at"`
}
