package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Risk levels assigned by the scoring heuristics.
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// Holder is a wallet holding a project's token. Balance is the raw token
// amount; Percentage is the stored share of total supply in [0,100] when
// known. RiskScore and AINotes are filled in by analysis runs.
type Holder struct {
	ID            string              `db:"id" json:"id"`
	ProjectID     string              `db:"project_id" json:"project_id"`
	WalletAddress string              `db:"wallet_address" json:"wallet_address"`
	Chain         string              `db:"chain" json:"chain"`
	Balance       decimal.Decimal     `db:"balance" json:"balance"`
	Percentage    decimal.NullDecimal `db:"percentage" json:"percentage,omitempty"`
	IsWhale       bool                `db:"is_whale" json:"is_whale"`
	RiskScore     *string             `db:"risk_score" json:"risk_score,omitempty"`
	AINotes       *string             `db:"ai_notes" json:"ai_notes,omitempty"`
	FirstSeen     time.Time           `db:"first_seen" json:"first_seen"`
	UpdatedAt     time.Time           `db:"updated_at" json:"updated_at"`
}
