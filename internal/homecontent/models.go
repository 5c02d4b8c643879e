package homecontent

import (
	"time"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultKey identifies the storefront home document.
const DefaultKey = "home"

// HomeContent is a keyed singleton document of localized storefront copy.
type HomeContent struct {
	bun.BaseModel `bun:"table:home_contents,alias:hc"`

	ID             uuid.UUID              `bun:",pk,type:uuid" json:"id"`
	Key            string                 `bun:"key,notnull,unique" json:"key"`
	HeroTitle      domain.LocalizedString `bun:"hero_title,type:jsonb" json:"hero_title,omitempty"`
	HeroSubtitle   domain.LocalizedString `bun:"hero_subtitle,type:jsonb" json:"hero_subtitle,omitempty"`
	AboutTitle     domain.LocalizedString `bun:"about_title,type:jsonb" json:"about_title,omitempty"`
	AboutBody      domain.LocalizedString `bun:"about_body,type:jsonb" json:"about_body,omitempty"`
	SeoTitle       domain.LocalizedString `bun:"seo_title,type:jsonb" json:"seo_title,omitempty"`
	SeoDescription domain.LocalizedString `bun:"seo_description,type:jsonb" json:"seo_description,omitempty"`
	UpdatedAt      time.Time              `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// LocalizedFields lists the document fields rendered per locale.
var LocalizedFields = []string{"heroTitle", "heroSubtitle", "aboutTitle", "aboutBody", "seoTitle", "seoDescription"}

// Document converts the record into the resolver's document shape.
func (h *HomeContent) Document() domain.Document {
	if h == nil {
		return nil
	}
	doc := domain.Document{
		"id":        h.ID.String(),
		"key":       h.Key,
		"updatedAt": h.UpdatedAt,
	}
	bundles := map[string]domain.LocalizedString{
		"heroTitle":      h.HeroTitle,
		"heroSubtitle":   h.HeroSubtitle,
		"aboutTitle":     h.AboutTitle,
		"aboutBody":      h.AboutBody,
		"seoTitle":       h.SeoTitle,
		"seoDescription": h.SeoDescription,
	}
	for field, value := range bundles {
		if len(value) > 0 {
			doc[field] = value.Clone()
		}
	}
	return doc
}

func cloneHomeContent(src *HomeContent) *HomeContent {
	if src == nil {
		return nil
	}
	copied := *src
	copied.HeroTitle = src.HeroTitle.Clone()
	copied.HeroSubtitle = src.HeroSubtitle.Clone()
	copied.AboutTitle = src.AboutTitle.Clone()
	copied.AboutBody = src.AboutBody.Clone()
	copied.SeoTitle = src.SeoTitle.Clone()
	copied.SeoDescription = src.SeoDescription.Clone()
	return &copied
}
