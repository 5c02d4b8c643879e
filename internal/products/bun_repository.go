package products

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

var updateColumns = []string{
	"slug",
	"category",
	"price",
	"status",
	"featured",
	"name",
	"description",
	"short_description",
	"seo_title",
	"seo_description",
	"updated_at",
}

// RegisterModels creates the product tables and the name lookup index.
func RegisterModels(ctx context.Context, db *bun.DB) error {
	for _, model := range []any{(*Product)(nil), (*ProductName)(nil)} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	if _, err := db.NewCreateIndex().
		Model((*ProductName)(nil)).
		Index("idx_product_names_lookup").
		Column("category", "locale", "name").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create product name index: %w", err)
	}
	return nil
}

// BunRepository persists products with bun. Names are mirrored into
// product_names so conflicts are found with equality predicates.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Product]
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a Repository backed by bun with optional caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	return &BunRepository{
		db:   db,
		repo: wrapWithCache(NewProductRepository(db), cacheService, keySerializer),
	}
}

func (r *BunRepository) Create(ctx context.Context, record *Product) (*Product, error) {
	var created *Product
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		created, err = r.repo.CreateTx(ctx, tx, record)
		if err != nil {
			return mapWriteError(err)
		}
		return replaceNames(ctx, tx, created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunRepository) Update(ctx context.Context, record *Product) (*Product, error) {
	var updated *Product
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		updated, err = r.repo.UpdateTx(ctx, tx, record,
			repository.UpdateByID(record.ID.String()),
			repository.UpdateColumns(updateColumns...),
		)
		if err != nil {
			return mapWriteError(err)
		}
		return replaceNames(ctx, tx, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the product and its name index rows together.
func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := deleteNames(ctx, tx, id); err != nil {
			return err
		}
		if err := r.repo.DeleteTx(ctx, tx, &Product{ID: id}); err != nil {
			return mapRepositoryError(err, "product", id.String())
		}
		return nil
	})
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "product", id.String())
	}
	return result, nil
}

func (r *BunRepository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "product", slug)
	}
	return result, nil
}

func (r *BunRepository) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		if opts.Category != "" {
			q = q.Where("?TableAlias.category = ?", opts.Category)
		}
		if opts.PublishedOnly {
			q = q.Where("?TableAlias.status = ?", domain.StatusPublished)
		}
		return q.Order("created_at ASC", "slug ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "product", "")
	}
	return records, nil
}

func (r *BunRepository) SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*Product)(nil)).
		Where("?TableAlias.slug = ?", slug).
		Where("?TableAlias.id != ?", exclude).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("product slug lookup: %w", err)
	}
	return exists, nil
}

func (r *BunRepository) NameConflictExists(ctx context.Context, category string, name domain.LocalizedString, exclude uuid.UUID) (bool, error) {
	if len(name) == 0 {
		return false, nil
	}
	exists, err := r.db.NewSelect().
		Model((*ProductName)(nil)).
		Where("?TableAlias.category = ?", category).
		Where("?TableAlias.product_id != ?", exclude).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			for locale, value := range name {
				q = q.WhereOr("(?TableAlias.locale = ? AND ?TableAlias.name = ?)", locale, value)
			}
			return q
		}).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("product name lookup: %w", err)
	}
	return exists, nil
}

func replaceNames(ctx context.Context, tx bun.IDB, record *Product) error {
	if err := deleteNames(ctx, tx, record.ID); err != nil {
		return err
	}
	rows := nameIndex(record)
	if len(rows) == 0 {
		return nil
	}
	if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("insert product names: %w", err)
	}
	return nil
}

func deleteNames(ctx context.Context, tx bun.IDB, productID uuid.UUID) error {
	if _, err := tx.NewDelete().
		Model((*ProductName)(nil)).
		Where("?TableAlias.product_id = ?", productID).
		Exec(ctx); err != nil {
		return fmt.Errorf("delete product names: %w", err)
	}
	return nil
}

func mapWriteError(err error) error {
	if storage.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", domain.ErrSlugConflict, err)
	}
	return fmt.Errorf("product repository error: %w", err)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return domain.NewNotFound(resource, key)
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
