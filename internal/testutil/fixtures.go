package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

// Common test addresses
const (
	BonkMint     = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
	PepeContract = "0x6982508145454Ce325dDbE47a25d4ec3d2311933"
	SolanaWallet = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"
	EVMWallet    = "0x47173B170C64d16393a52e6C480b3Ad8c302ba1e"
)

// CreateTestProject creates a test project with default values
func CreateTestProject(opts ...ProjectOption) entities.Project {
	p := entities.Project{
		ID:              "11111111-1111-1111-1111-111111111111",
		Name:            "Bonk",
		Symbol:          "BONK",
		Chain:           entities.ChainSolana,
		ContractAddress: BonkMint,
		Network:         "mainnet",
		TotalSupply:     decimal.NewNullDecimal(decimal.NewFromInt(93_526_183_890_996)),
		Status:          entities.ProjectStatusActive,
		CreatedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

type ProjectOption func(*entities.Project)

func WithProjectID(id string) ProjectOption {
	return func(p *entities.Project) { p.ID = id }
}

func WithProjectChain(chain string) ProjectOption {
	return func(p *entities.Project) { p.Chain = chain }
}

func WithProjectContract(address string) ProjectOption {
	return func(p *entities.Project) { p.ContractAddress = address }
}

func WithProjectName(name, symbol string) ProjectOption {
	return func(p *entities.Project) {
		p.Name = name
		p.Symbol = symbol
	}
}

// CreateTestHolder creates a test holder with default values
func CreateTestHolder(opts ...HolderOption) entities.Holder {
	h := entities.Holder{
		ID:            "22222222-2222-2222-2222-222222222222",
		ProjectID:     "11111111-1111-1111-1111-111111111111",
		WalletAddress: SolanaWallet,
		Chain:         entities.ChainSolana,
		Balance:       decimal.NewFromInt(5_000_000_000),
		Percentage:    decimal.NewNullDecimal(decimal.NewFromFloat(5.34)),
		IsWhale:       true,
		FirstSeen:     time.Now().UTC().AddDate(0, 0, -30),
		UpdatedAt:     time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

type HolderOption func(*entities.Holder)

func WithHolderID(id string) HolderOption {
	return func(h *entities.Holder) { h.ID = id }
}

func WithHolderProject(projectID string) HolderOption {
	return func(h *entities.Holder) { h.ProjectID = projectID }
}

func WithHolderWallet(address, chain string) HolderOption {
	return func(h *entities.Holder) {
		h.WalletAddress = address
		h.Chain = chain
	}
}

func WithHolderBalance(balance int64, percentage float64) HolderOption {
	return func(h *entities.Holder) {
		h.Balance = decimal.NewFromInt(balance)
		h.Percentage = decimal.NewNullDecimal(decimal.NewFromFloat(percentage))
	}
}

func WithHolderFirstSeen(t time.Time) HolderOption {
	return func(h *entities.Holder) { h.FirstSeen = t }
}
