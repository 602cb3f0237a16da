package dat

import (
	"context"
	"fmt"
	"load-ranking-service/internal/ports"
	"sync"
)

// MockStateCounts seeds a MockMarketplace with per-state loads/trucks counts.
type MockStateCounts struct {
	State  string
	Loads  int
	Trucks int
}

// MockMarketplace is an in-memory MarketplaceClient for tests. It records
// every submitted criteria document and can be told to fail specific states.
type MockMarketplace struct {
	mu         sync.Mutex
	authedOff  bool
	counts     map[string]MockStateCounts
	failStates map[string]struct{}
	queries    map[string]ports.SearchCriteria
	created    []ports.SearchCriteria
	nextID     int
}

func NewMockMarketplace(counts []MockStateCounts) *MockMarketplace {
	m := &MockMarketplace{
		counts:     make(map[string]MockStateCounts, len(counts)),
		failStates: make(map[string]struct{}),
		queries:    make(map[string]ports.SearchCriteria),
	}
	for _, c := range counts {
		m.counts[c.State] = c
	}
	return m
}

// FailState makes any query originating in state return an error.
func (m *MockMarketplace) FailState(state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failStates[state] = struct{}{}
}

// SetUnauthenticated switches Authenticated() to false.
func (m *MockMarketplace) SetUnauthenticated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authedOff = true
}

func (m *MockMarketplace) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.authedOff
}

func (m *MockMarketplace) CreateQuery(ctx context.Context, criteria ports.SearchCriteria) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := originState(criteria)
	if _, failed := m.failStates[state]; failed {
		return "", fmt.Errorf("mock marketplace: query for %q failed", state)
	}

	m.nextID++
	id := fmt.Sprintf("q-%d", m.nextID)
	m.queries[id] = criteria
	m.created = append(m.created, criteria)
	return id, nil
}

func (m *MockMarketplace) GetCounts(ctx context.Context, queryID string) (ports.MatchCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	criteria, ok := m.queries[queryID]
	if !ok {
		return ports.MatchCounts{}, fmt.Errorf("mock marketplace: unknown query %q", queryID)
	}

	counts := m.counts[originState(criteria)]
	if criteria.AssetType == ports.AssetTruck {
		return ports.MatchCounts{Normal: counts.Trucks}, nil
	}
	return ports.MatchCounts{Normal: counts.Loads}, nil
}

// QueriedStates returns the distinct origin states of all submitted queries
// in submission order.
func (m *MockMarketplace) QueriedStates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]struct{})
	states := make([]string, 0, len(m.created))
	for _, criteria := range m.created {
		s := originState(criteria)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		states = append(states, s)
	}
	return states
}

// CreatedQueries returns the number of criteria documents submitted.
func (m *MockMarketplace) CreatedQueries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.created)
}

func originState(criteria ports.SearchCriteria) string {
	if criteria.Origin != nil && len(criteria.Origin.States) > 0 {
		return criteria.Origin.States[0]
	}
	return ""
}
