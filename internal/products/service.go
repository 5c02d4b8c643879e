package products

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/internal/slugs"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	"github.com/google/uuid"
)

// maxWriteAttempts bounds the assign-and-persist sequence: one retry when a
// concurrent writer claimed the slug between check and insert.
const maxWriteAttempts = 2

// Service exposes product use-cases.
type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (*Product, error)
	Update(ctx context.Context, req UpdateProductRequest) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
}

// Repository abstracts product storage. Besides CRUD it answers the two
// existence questions the identity engine asks.
type Repository interface {
	slugs.SlugChecker
	slugs.NameChecker
	Create(ctx context.Context, record *Product) (*Product, error)
	Update(ctx context.Context, record *Product) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
}

// ListOptions filters product listings.
type ListOptions struct {
	Category      string
	PublishedOnly bool
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	Slug             string
	Category         string
	Price            *float64
	Status           string
	Featured         bool
	Name             domain.LocalizedString
	Description      domain.LocalizedString
	ShortDescription domain.LocalizedString
	SeoTitle         domain.LocalizedString
	SeoDescription   domain.LocalizedString
}

// CreateProductRequest captures the information required to create a product.
type CreateProductRequest struct {
	ProductInput
}

// UpdateProductRequest replaces the writable fields of an existing product.
type UpdateProductRequest struct {
	ID uuid.UUID
	ProductInput
}

// Validate checks the request shape.
func (in ProductInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.By(requireLocalized("catalog.product.name_required", "name requires text in at least one locale"))),
		validation.Field(&in.Price,
			validation.NotNil.ErrorObject(validation.NewError("catalog.product.price_required", "price is required")),
			validation.Min(0.0).ErrorObject(validation.NewError("catalog.product.price_negative", "price must not be negative")),
		),
		validation.Field(&in.Category, validation.Length(0, 120)),
		validation.Field(&in.Slug, validation.Length(0, 160)),
		validation.Field(&in.Status, validation.By(validStatus)),
	)
}

// Validate checks the update request shape.
func (r UpdateProductRequest) Validate() error {
	if r.ID == uuid.Nil {
		return validation.Errors{
			"id": validation.NewError("catalog.product.id_required", "id is required"),
		}
	}
	return r.ProductInput.Validate()
}

func requireLocalized(code, message string) validation.RuleFunc {
	return func(value any) error {
		bundle, _ := value.(domain.LocalizedString)
		if bundle.IsEmpty() {
			return validation.NewError(code, message)
		}
		return nil
	}
}

func validStatus(value any) error {
	raw, _ := value.(string)
	if _, ok := domain.ParseStatus(raw); !ok {
		return validation.NewError("catalog.product.status_invalid", "status must be draft, published or archived")
	}
	return nil
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator produces identifiers for new products.
type IDGenerator func() uuid.UUID

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger injects the logger used by the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo   Repository
	engine *slugs.Engine
	now    func() time.Time
	id     IDGenerator
	logger interfaces.Logger
}

// NewService wires the product service.
func NewService(repo Repository, engine *slugs.Engine, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		engine: engine,
		now:    time.Now,
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if err := req.Validate(); err != nil {
		return nil, domain.NewValidation(err)
	}

	record := s.buildRecord(s.id(), req.ProductInput)
	record.CreatedAt = record.UpdatedAt

	if err := s.engine.EnforceNameUniqueness(ctx, record.Category, record.Name, uuid.Nil, s.repo); err != nil {
		return nil, s.logFailure("product.create.name_check_failed", err)
	}

	subject := slugs.Subject{ID: record.ID, Slug: req.Slug, Name: record.Name}
	var lastErr error
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		assigned, err := s.assignSlug(ctx, subject)
		if err != nil {
			return nil, s.logFailure("product.create.slug_failed", err)
		}
		record.Slug = assigned

		created, err := s.repo.Create(ctx, cloneProduct(record))
		if err == nil {
			s.logger.Info("product.create.success", "product_id", created.ID, "slug", created.Slug)
			return created, nil
		}
		lastErr = err
		if !errors.Is(err, domain.ErrSlugConflict) {
			break
		}
		s.logger.Warn("product.create.slug_race", "slug", assigned, "attempt", attempt)
	}
	return nil, s.logFailure("product.create.persist_failed", lastErr)
}

func (s *service) Update(ctx context.Context, req UpdateProductRequest) (*Product, error) {
	if err := req.Validate(); err != nil {
		return nil, domain.NewValidation(err)
	}

	existing, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	record := s.buildRecord(existing.ID, req.ProductInput)
	record.CreatedAt = existing.CreatedAt
	record.Slug = existing.Slug

	if err := s.engine.EnforceNameUniqueness(ctx, record.Category, record.Name, existing.ID, s.repo); err != nil {
		return nil, s.logFailure("product.update.name_check_failed", err)
	}

	subject := slugs.Subject{ID: existing.ID, Slug: req.Slug, Name: record.Name}
	recompute := s.engine.NeedsSlug(&slugs.Snapshot{Slug: existing.Slug, Name: existing.Name}, subject)

	var lastErr error
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		if recompute {
			assigned, err := s.assignSlug(ctx, subject)
			if err != nil {
				return nil, s.logFailure("product.update.slug_failed", err)
			}
			record.Slug = assigned
		}

		updated, err := s.repo.Update(ctx, cloneProduct(record))
		if err == nil {
			s.logger.Info("product.update.success", "product_id", updated.ID, "slug", updated.Slug, "slug_recomputed", recompute)
			return updated, nil
		}
		lastErr = err
		if !recompute || !errors.Is(err, domain.ErrSlugConflict) {
			break
		}
		s.logger.Warn("product.update.slug_race", "slug", record.Slug, "attempt", attempt)
	}
	return nil, s.logFailure("product.update.persist_failed", lastErr)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidation(validation.Errors{
			"id": validation.NewError("catalog.product.id_required", "id is required"),
		})
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.logFailure("product.delete.failed", err)
	}
	s.logger.Info("product.delete.success", "product_id", id)
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, value string) (*Product, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, domain.NewNotFound("product", value)
	}
	return s.repo.GetBySlug(ctx, value)
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	opts.Category = strings.TrimSpace(opts.Category)
	return s.repo.List(ctx, opts)
}

func (s *service) assignSlug(ctx context.Context, subject slugs.Subject) (string, error) {
	return s.engine.AssignUniqueSlug(ctx, subject, s.repo)
}

func (s *service) buildRecord(id uuid.UUID, in ProductInput) *Product {
	status, _ := domain.ParseStatus(in.Status)
	price := 0.0
	if in.Price != nil {
		price = *in.Price
	}
	return &Product{
		ID:               id,
		Category:         strings.TrimSpace(in.Category),
		Price:            price,
		Status:           status,
		Featured:         in.Featured,
		Name:             trimBundle(in.Name),
		Description:      in.Description.Compact(),
		ShortDescription: in.ShortDescription.Compact(),
		SeoTitle:         in.SeoTitle.Compact(),
		SeoDescription:   in.SeoDescription.Compact(),
		UpdatedAt:        s.now().UTC(),
	}
}

func (s *service) logFailure(event string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case domain.IsDuplicateName(err), domain.IsValidation(err), domain.IsNotFound(err):
		s.logger.Warn(event, "error", err)
	default:
		s.logger.Error(event, "error", err, "code", domain.CodeStorage)
	}
	return err
}

// trimBundle drops blank entries and trims the remaining names so the
// uniqueness index compares like with like.
func trimBundle(in domain.LocalizedString) domain.LocalizedString {
	compact := in.Compact()
	for locale, value := range compact {
		compact[locale] = strings.TrimSpace(value)
	}
	return compact
}
