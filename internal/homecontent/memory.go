package homecontent

import (
	"context"
	"sync"

	"github.com/goliatone/go-catalog/internal/domain"
)

// MemoryRepository keeps home content in memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*HomeContent
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]*HomeContent)}
}

func (m *MemoryRepository) GetByKey(_ context.Context, key string) (*HomeContent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[key]
	if !ok {
		return nil, domain.NewNotFound("home_content", key)
	}
	return cloneHomeContent(rec), nil
}

func (m *MemoryRepository) Save(_ context.Context, record *HomeContent) (*HomeContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneHomeContent(record)
	m.records[copied.Key] = copied
	return cloneHomeContent(copied), nil
}
