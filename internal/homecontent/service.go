package homecontent

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/identity"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/pkg/interfaces"
)

// Service manages keyed home content documents.
type Service interface {
	Get(ctx context.Context, key string) (*HomeContent, error)
	Upsert(ctx context.Context, req UpsertRequest) (*HomeContent, error)
}

// Repository abstracts home content storage.
type Repository interface {
	GetByKey(ctx context.Context, key string) (*HomeContent, error)
	Save(ctx context.Context, record *HomeContent) (*HomeContent, error)
}

// UpsertRequest replaces the document stored under Key.
type UpsertRequest struct {
	Key            string
	HeroTitle      domain.LocalizedString
	HeroSubtitle   domain.LocalizedString
	AboutTitle     domain.LocalizedString
	AboutBody      domain.LocalizedString
	SeoTitle       domain.LocalizedString
	SeoDescription domain.LocalizedString
}

// Validate checks the request shape.
func (r UpsertRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Key, validation.Length(0, 64)),
		validation.Field(&r.HeroTitle, validation.By(func(value any) error {
			bundle, _ := value.(domain.LocalizedString)
			if bundle.IsEmpty() {
				return validation.NewError("catalog.home.hero_title_required", "hero title requires text in at least one locale")
			}
			return nil
		})),
	)
}

// ServiceOption configures the service.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp updates.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
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
	now    func() time.Time
	logger interfaces.Logger
}

// NewService wires the home content service.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{repo: repo, now: time.Now, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Get(ctx context.Context, key string) (*HomeContent, error) {
	return s.repo.GetByKey(ctx, normalizeKey(key))
}

func (s *service) Upsert(ctx context.Context, req UpsertRequest) (*HomeContent, error) {
	if err := req.Validate(); err != nil {
		return nil, domain.NewValidation(err)
	}
	key := normalizeKey(req.Key)
	record := &HomeContent{
		ID:             identity.HomeContentUUID(key),
		Key:            key,
		HeroTitle:      req.HeroTitle.Compact(),
		HeroSubtitle:   req.HeroSubtitle.Compact(),
		AboutTitle:     req.AboutTitle.Compact(),
		AboutBody:      req.AboutBody.Compact(),
		SeoTitle:       req.SeoTitle.Compact(),
		SeoDescription: req.SeoDescription.Compact(),
		UpdatedAt:      s.now().UTC(),
	}
	saved, err := s.repo.Save(ctx, record)
	if err != nil {
		s.logger.Error("home.upsert.failed", "key", key, "error", err, "code", domain.CodeStorage)
		return nil, err
	}
	s.logger.Info("home.upsert.success", "key", key)
	return saved, nil
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return DefaultKey
	}
	return key
}
