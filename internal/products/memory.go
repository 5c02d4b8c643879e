package products

import (
	"context"
	"sort"
	"sync"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	products  map[uuid.UUID]*Product
	slugIndex map[string]uuid.UUID
}

// NewMemoryRepository creates an empty in-memory product repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		products:  make(map[uuid.UUID]*Product),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied product, rejecting a slug held by another record.
func (m *MemoryRepository) Create(_ context.Context, record *Product) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if owner, ok := m.slugIndex[record.Slug]; ok && owner != record.ID {
		return nil, domain.ErrSlugConflict
	}
	copied := cloneProduct(record)
	m.products[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneProduct(copied), nil
}

// Update replaces an existing product.
func (m *MemoryRepository) Update(_ context.Context, record *Product) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.products[record.ID]
	if !ok {
		return nil, domain.NewNotFound("product", record.ID.String())
	}
	if owner, ok := m.slugIndex[record.Slug]; ok && owner != record.ID {
		return nil, domain.ErrSlugConflict
	}
	if current.Slug != record.Slug {
		delete(m.slugIndex, current.Slug)
	}
	copied := cloneProduct(record)
	m.products[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneProduct(copied), nil
}

// Delete removes a product.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.products[id]
	if !ok {
		return domain.NewNotFound("product", id.String())
	}
	delete(m.slugIndex, current.Slug)
	delete(m.products, id)
	return nil
}

// GetByID retrieves a product by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.products[id]
	if !ok {
		return nil, domain.NewNotFound("product", id.String())
	}
	return cloneProduct(rec), nil
}

// GetBySlug retrieves a product by slug.
func (m *MemoryRepository) GetBySlug(_ context.Context, slug string) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, domain.NewNotFound("product", slug)
	}
	return cloneProduct(m.products[id]), nil
}

// List returns products matching opts ordered by creation time then slug.
func (m *MemoryRepository) List(_ context.Context, opts ListOptions) ([]*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Product, 0, len(m.products))
	for _, rec := range m.products {
		if !matches(rec, opts) {
			continue
		}
		out = append(out, cloneProduct(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

// SlugExists reports whether slug belongs to a product other than exclude.
func (m *MemoryRepository) SlugExists(_ context.Context, slug string, exclude uuid.UUID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owner, ok := m.slugIndex[slug]
	return ok && owner != exclude, nil
}

// NameConflictExists reports whether another product in category shares the
// name in any supplied locale.
func (m *MemoryRepository) NameConflictExists(_ context.Context, category string, name domain.LocalizedString, exclude uuid.UUID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, rec := range m.products {
		if id == exclude || rec.Category != category {
			continue
		}
		for locale, value := range name {
			if existing, ok := rec.Name[locale]; ok && existing == value {
				return true, nil
			}
		}
	}
	return false, nil
}

func matches(rec *Product, opts ListOptions) bool {
	if opts.Category != "" && rec.Category != opts.Category {
		return false
	}
	if opts.PublishedOnly && !rec.Status.IsPublic() {
		return false
	}
	return true
}
