package homecontent

import (
	"context"
	"fmt"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/storage"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RegisterModels creates the home content table.
func RegisterModels(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*HomeContent)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create home content table: %w", err)
	}
	return nil
}

func NewHomeContentRepository(db *bun.DB) repository.Repository[*HomeContent] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*HomeContent]{
		NewRecord: func() *HomeContent { return &HomeContent{} },
		GetID: func(h *HomeContent) uuid.UUID {
			return h.ID
		},
		SetID: func(h *HomeContent, id uuid.UUID) {
			h.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(h *HomeContent) string {
			return h.Key
		},
	})
}

type BunRepository struct {
	repo repository.Repository[*HomeContent]
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a Repository backed by bun with optional caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewHomeContentRepository(db)
	if cacheService != nil && keySerializer != nil {
		return &BunRepository{repo: repositorycache.New(base, cacheService, keySerializer)}
	}
	return &BunRepository{repo: base}
}

func (r *BunRepository) GetByKey(ctx context.Context, key string) (*HomeContent, error) {
	result, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, mapRepositoryError(err, key)
	}
	return result, nil
}

// Save inserts the record or replaces the localized fields of an existing one.
func (r *BunRepository) Save(ctx context.Context, record *HomeContent) (*HomeContent, error) {
	existing, err := r.GetByKey(ctx, record.Key)
	switch {
	case domain.IsNotFound(err):
		return r.insert(ctx, record)
	case err != nil:
		return nil, err
	}
	return r.update(ctx, existing, record)
}

// insert falls back to updating the stored row when a concurrent first save
// for the same key won the insert.
func (r *BunRepository) insert(ctx context.Context, record *HomeContent) (*HomeContent, error) {
	created, err := r.repo.Create(ctx, record)
	if err == nil {
		return created, nil
	}
	if !storage.IsUniqueViolation(err) {
		return nil, fmt.Errorf("home content repository error: %w", err)
	}
	existing, err := r.GetByKey(ctx, record.Key)
	if err != nil {
		return nil, err
	}
	return r.update(ctx, existing, record)
}

func (r *BunRepository) update(ctx context.Context, existing, record *HomeContent) (*HomeContent, error) {
	record.ID = existing.ID
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(existing.ID.String()),
		repository.UpdateColumns(
			"hero_title",
			"hero_subtitle",
			"about_title",
			"about_body",
			"seo_title",
			"seo_description",
			"updated_at",
		),
	)
	if err != nil {
		return nil, fmt.Errorf("home content repository error: %w", err)
	}
	return updated, nil
}

func mapRepositoryError(err error, key string) error {
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return domain.NewNotFound("home_content", key)
	}
	return fmt.Errorf("home content repository error: %w", err)
}
