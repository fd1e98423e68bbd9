package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/infrastructure/markets"
)

// MockProjectRepository is a map-backed mock of ProjectRepository
type MockProjectRepository struct {
	mu       sync.RWMutex
	Projects map[string]entities.Project

	// Function hooks for custom behavior
	GetByIDFunc     func(ctx context.Context, id string) (*entities.Project, error)
	GetByFilterFunc func(ctx context.Context, filter entities.ProjectFilter) ([]entities.Project, error)
	CountFunc       func(ctx context.Context) (int64, error)
	CreateFunc      func(ctx context.Context, project *entities.Project) error
	UpdateFunc      func(ctx context.Context, project *entities.Project) error
	DeleteFunc      func(ctx context.Context, id string) error
}

func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{Projects: make(map[string]entities.Project)}
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id string) (*entities.Project, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.Projects[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *MockProjectRepository) GetByFilter(ctx context.Context, filter entities.ProjectFilter) ([]entities.Project, error) {
	if m.GetByFilterFunc != nil {
		return m.GetByFilterFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]entities.Project, 0)
	for _, p := range m.Projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Chain != "" && p.Chain != filter.Chain {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Name), s) &&
				!strings.Contains(strings.ToLower(p.Symbol), s) &&
				!strings.Contains(strings.ToLower(p.ContractAddress), s) {
				continue
			}
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockProjectRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.Projects)), nil
}

func (m *MockProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, project)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Projects[project.ID] = *project
	return nil
}

func (m *MockProjectRepository) Update(ctx context.Context, project *entities.Project) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, project)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Projects[project.ID] = *project
	return nil
}

func (m *MockProjectRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Projects, id)
	return nil
}

// MockTokenRepository is a map-backed mock of TokenRepository
type MockTokenRepository struct {
	mu     sync.RWMutex
	Tokens map[string]entities.Token

	GetByIDFunc              func(ctx context.Context, id string) (*entities.Token, error)
	GetByContractAddressFunc func(ctx context.Context, address string) (*entities.Token, error)
	GetAllFunc               func(ctx context.Context) ([]entities.Token, error)
	GetByProjectFunc         func(ctx context.Context, projectID string) ([]entities.Token, error)
	CountFunc                func(ctx context.Context) (int64, error)
	CreateFunc               func(ctx context.Context, token *entities.Token) error
	UpdateFunc               func(ctx context.Context, token *entities.Token) error
	DeleteFunc               func(ctx context.Context, id string) error
}

func NewMockTokenRepository() *MockTokenRepository {
	return &MockTokenRepository{Tokens: make(map[string]entities.Token)}
}

func (m *MockTokenRepository) GetByID(ctx context.Context, id string) (*entities.Token, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.Tokens[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (m *MockTokenRepository) GetByContractAddress(ctx context.Context, address string) (*entities.Token, error) {
	if m.GetByContractAddressFunc != nil {
		return m.GetByContractAddressFunc(ctx, address)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.Tokens {
		if t.ContractAddress == address {
			return &t, nil
		}
	}
	return nil, nil
}

func (m *MockTokenRepository) GetAll(ctx context.Context) ([]entities.Token, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]entities.Token, 0, len(m.Tokens))
	for _, t := range m.Tokens {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockTokenRepository) GetByProject(ctx context.Context, projectID string) ([]entities.Token, error) {
	if m.GetByProjectFunc != nil {
		return m.GetByProjectFunc(ctx, projectID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]entities.Token, 0)
	for _, t := range m.Tokens {
		if t.ProjectID == projectID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *MockTokenRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.Tokens)), nil
}

func (m *MockTokenRepository) Create(ctx context.Context, token *entities.Token) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tokens[token.ID] = *token
	return nil
}

func (m *MockTokenRepository) Update(ctx context.Context, token *entities.Token) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tokens[token.ID] = *token
	return nil
}

func (m *MockTokenRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Tokens, id)
	return nil
}

// MockHolderRepository is a map-backed mock of HolderRepository
type MockHolderRepository struct {
	mu      sync.RWMutex
	Holders map[string]entities.Holder

	GetByIDFunc      func(ctx context.Context, id string) (*entities.Holder, error)
	GetByProjectFunc func(ctx context.Context, projectID string) ([]entities.Holder, error)
	GetAllFunc       func(ctx context.Context, limit, offset int) ([]entities.Holder, error)
	CountFunc        func(ctx context.Context) (int64, error)
	CreateFunc       func(ctx context.Context, holder *entities.Holder) error
	UpdateFunc       func(ctx context.Context, holder *entities.Holder) error
	UpdateRiskFunc   func(ctx context.Context, id string, isWhale bool, riskScore, aiNotes string) error
	DeleteFunc       func(ctx context.Context, id string) error
}

func NewMockHolderRepository() *MockHolderRepository {
	return &MockHolderRepository{Holders: make(map[string]entities.Holder)}
}

func (m *MockHolderRepository) GetByID(ctx context.Context, id string) (*entities.Holder, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if h, ok := m.Holders[id]; ok {
		return &h, nil
	}
	return nil, nil
}

func (m *MockHolderRepository) GetByProject(ctx context.Context, projectID string) ([]entities.Holder, error) {
	if m.GetByProjectFunc != nil {
		return m.GetByProjectFunc(ctx, projectID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]entities.Holder, 0)
	for _, h := range m.Holders {
		if h.ProjectID == projectID {
			result = append(result, h)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Balance.GreaterThan(result[j].Balance)
	})
	return result, nil
}

func (m *MockHolderRepository) GetAll(ctx context.Context, limit, offset int) ([]entities.Holder, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]entities.Holder, 0, len(m.Holders))
	for _, h := range m.Holders {
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Balance.GreaterThan(result[j].Balance)
	})
	if offset >= len(result) {
		return []entities.Holder{}, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockHolderRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.Holders)), nil
}

func (m *MockHolderRepository) Create(ctx context.Context, holder *entities.Holder) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, holder)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Holders[holder.ID] = *holder
	return nil
}

func (m *MockHolderRepository) Update(ctx context.Context, holder *entities.Holder) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, holder)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Holders[holder.ID] = *holder
	return nil
}

func (m *MockHolderRepository) UpdateRisk(ctx context.Context, id string, isWhale bool, riskScore, aiNotes string) error {
	if m.UpdateRiskFunc != nil {
		return m.UpdateRiskFunc(ctx, id, isWhale, riskScore, aiNotes)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.Holders[id]
	if !ok {
		return nil
	}
	h.IsWhale = isWhale
	h.RiskScore = &riskScore
	h.AINotes = &aiNotes
	m.Holders[id] = h
	return nil
}

func (m *MockHolderRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Holders, id)
	return nil
}

// MockEventRepository is a slice-backed mock of EventRepository
type MockEventRepository struct {
	mu     sync.RWMutex
	Events []entities.Event

	GetByFilterFunc func(ctx context.Context, filter entities.EventFilter) ([]entities.Event, error)
	GetRecentFunc   func(ctx context.Context, limit int) ([]entities.Event, error)
	CountFunc       func(ctx context.Context) (int64, error)
	CreateFunc      func(ctx context.Context, event *entities.Event) error
	DeleteFunc      func(ctx context.Context, id string) error
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{Events: make([]entities.Event, 0)}
}

func (m *MockEventRepository) GetByFilter(ctx context.Context, filter entities.EventFilter) ([]entities.Event, error) {
	if m.GetByFilterFunc != nil {
		return m.GetByFilterFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]entities.Event, 0)
	for _, e := range m.Events {
		if filter.ProjectID != nil && (e.ProjectID == nil || *e.ProjectID != *filter.ProjectID) {
			continue
		}
		if filter.Type != nil && e.Type != *filter.Type {
			continue
		}
		if filter.Severity != nil && e.Severity != *filter.Severity {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (m *MockEventRepository) GetRecent(ctx context.Context, limit int) ([]entities.Event, error) {
	if m.GetRecentFunc != nil {
		return m.GetRecentFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]entities.Event, 0, limit)
	for i := len(m.Events) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.Events[i])
	}
	return result, nil
}

func (m *MockEventRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.Events)), nil
}

func (m *MockEventRepository) Create(ctx context.Context, event *entities.Event) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, *event)
	return nil
}

func (m *MockEventRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.Events {
		if e.ID == id {
			m.Events = append(m.Events[:i], m.Events[i+1:]...)
			break
		}
	}
	return nil
}

// MockAnalysisRepository is a slice-backed mock of AnalysisRepository
type MockAnalysisRepository struct {
	mu       sync.RWMutex
	Analyses []entities.Analysis

	CreateFunc      func(ctx context.Context, analysis *entities.Analysis) error
	GetByEntityFunc func(ctx context.Context, entityType, entityID string, limit int) ([]entities.Analysis, error)
}

func NewMockAnalysisRepository() *MockAnalysisRepository {
	return &MockAnalysisRepository{Analyses: make([]entities.Analysis, 0)}
}

func (m *MockAnalysisRepository) Create(ctx context.Context, analysis *entities.Analysis) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, analysis)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Analyses = append(m.Analyses, *analysis)
	return nil
}

func (m *MockAnalysisRepository) GetByEntity(ctx context.Context, entityType, entityID string, limit int) ([]entities.Analysis, error) {
	if m.GetByEntityFunc != nil {
		return m.GetByEntityFunc(ctx, entityType, entityID, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]entities.Analysis, 0)
	for i := len(m.Analyses) - 1; i >= 0 && len(result) < limit; i-- {
		a := m.Analyses[i]
		if a.EntityType == entityType && a.EntityID == entityID {
			result = append(result, a)
		}
	}
	return result, nil
}

// StubDexProvider is a hook-based stand-in for the DexScreener client
type StubDexProvider struct {
	PairsByTokenFunc func(ctx context.Context, contractAddress string) ([]markets.DexPair, error)
	SearchPairsFunc  func(ctx context.Context, query string) ([]markets.DexPair, error)
}

func (s *StubDexProvider) PairsByToken(ctx context.Context, contractAddress string) ([]markets.DexPair, error) {
	if s.PairsByTokenFunc != nil {
		return s.PairsByTokenFunc(ctx, contractAddress)
	}
	return nil, nil
}

func (s *StubDexProvider) SearchPairs(ctx context.Context, query string) ([]markets.DexPair, error) {
	if s.SearchPairsFunc != nil {
		return s.SearchPairsFunc(ctx, query)
	}
	return nil, nil
}

// StubPriceProvider is a hook-based stand-in for the CoinGecko client
type StubPriceProvider struct {
	TopCoinsFunc             func(ctx context.Context, limit int) ([]markets.Coin, error)
	CoinDetailFunc           func(ctx context.Context, coinID string) (*markets.CoinDetail, error)
	SearchFunc               func(ctx context.Context, query string) ([]markets.CoinSearchResult, error)
	TokenPriceByContractFunc func(ctx context.Context, chain, contractAddress string) (float64, bool, error)
	TrendingFunc             func(ctx context.Context) ([]markets.TrendingCoin, error)
}

func (s *StubPriceProvider) TopCoins(ctx context.Context, limit int) ([]markets.Coin, error) {
	if s.TopCoinsFunc != nil {
		return s.TopCoinsFunc(ctx, limit)
	}
	return nil, nil
}

func (s *StubPriceProvider) CoinDetail(ctx context.Context, coinID string) (*markets.CoinDetail, error) {
	if s.CoinDetailFunc != nil {
		return s.CoinDetailFunc(ctx, coinID)
	}
	return nil, nil
}

func (s *StubPriceProvider) Search(ctx context.Context, query string) ([]markets.CoinSearchResult, error) {
	if s.SearchFunc != nil {
		return s.SearchFunc(ctx, query)
	}
	return nil, nil
}

func (s *StubPriceProvider) TokenPriceByContract(ctx context.Context, chain, contractAddress string) (float64, bool, error) {
	if s.TokenPriceByContractFunc != nil {
		return s.TokenPriceByContractFunc(ctx, chain, contractAddress)
	}
	return 0, false, nil
}

func (s *StubPriceProvider) Trending(ctx context.Context) ([]markets.TrendingCoin, error) {
	if s.TrendingFunc != nil {
		return s.TrendingFunc(ctx)
	}
	return nil, nil
}

// StubExplorerProvider is a hook-based stand-in for the EVM explorer client
type StubExplorerProvider struct {
	TokenHoldersFunc   func(ctx context.Context, chain, contractAddress string) ([]markets.ExplorerHolder, error)
	TokenTransfersFunc func(ctx context.Context, chain, contractAddress, walletAddress string) ([]markets.TokenTransfer, error)
}

func (s *StubExplorerProvider) TokenHolders(ctx context.Context, chain, contractAddress string) ([]markets.ExplorerHolder, error) {
	if s.TokenHoldersFunc != nil {
		return s.TokenHoldersFunc(ctx, chain, contractAddress)
	}
	return nil, nil
}

func (s *StubExplorerProvider) TokenTransfers(ctx context.Context, chain, contractAddress, walletAddress string) ([]markets.TokenTransfer, error) {
	if s.TokenTransfersFunc != nil {
		return s.TokenTransfersFunc(ctx, chain, contractAddress, walletAddress)
	}
	return nil, nil
}

// StubSolanaProvider is a hook-based stand-in for the Solscan client
type StubSolanaProvider struct {
	TokenHoldersFunc        func(ctx context.Context, mintAddress string) ([]markets.SolanaHolder, error)
	TokenMetaFunc           func(ctx context.Context, mintAddress string) (*markets.SolanaTokenMeta, error)
	AccountTransactionsFunc func(ctx context.Context, address string) ([]markets.SolanaTransaction, error)
}

func (s *StubSolanaProvider) TokenHolders(ctx context.Context, mintAddress string) ([]markets.SolanaHolder, error) {
	if s.TokenHoldersFunc != nil {
		return s.TokenHoldersFunc(ctx, mintAddress)
	}
	return nil, nil
}

func (s *StubSolanaProvider) TokenMeta(ctx context.Context, mintAddress string) (*markets.SolanaTokenMeta, error) {
	if s.TokenMetaFunc != nil {
		return s.TokenMetaFunc(ctx, mintAddress)
	}
	return nil, nil
}

func (s *StubSolanaProvider) AccountTransactions(ctx context.Context, address string) ([]markets.SolanaTransaction, error) {
	if s.AccountTransactionsFunc != nil {
		return s.AccountTransactionsFunc(ctx, address)
	}
	return nil, nil
}

// StubSocialProvider is a hook-based stand-in for the Twitter client
type StubSocialProvider struct {
	SearchMentionsFunc func(ctx context.Context, symbol, name string) ([]markets.Tweet, error)
}

func (s *StubSocialProvider) SearchMentions(ctx context.Context, symbol, name string) ([]markets.Tweet, error) {
	if s.SearchMentionsFunc != nil {
		return s.SearchMentionsFunc(ctx, symbol, name)
	}
	return nil, nil
}
