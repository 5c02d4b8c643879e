package products

import (
	"time"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Product is a catalog entry with localized copy and a unique slug.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID               uuid.UUID              `bun:",pk,type:uuid" json:"id"`
	Slug             string                 `bun:"slug,notnull,unique" json:"slug"`
	Category         string                 `bun:"category,notnull,default:''" json:"category"`
	Price            float64                `bun:"price,notnull,default:0" json:"price"`
	Status           domain.Status          `bun:"status,notnull,default:'draft'" json:"status"`
	Featured         bool                   `bun:"featured,notnull,default:false" json:"featured"`
	Name             domain.LocalizedString `bun:"name,type:jsonb,notnull" json:"name"`
	Description      domain.LocalizedString `bun:"description,type:jsonb" json:"description,omitempty"`
	ShortDescription domain.LocalizedString `bun:"short_description,type:jsonb" json:"short_description,omitempty"`
	SeoTitle         domain.LocalizedString `bun:"seo_title,type:jsonb" json:"seo_title,omitempty"`
	SeoDescription   domain.LocalizedString `bun:"seo_description,type:jsonb" json:"seo_description,omitempty"`
	CreatedAt        time.Time              `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time              `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// ProductName indexes one localized product name so conflicts can be found
// with plain equality predicates on any backend.
type ProductName struct {
	bun.BaseModel `bun:"table:product_names,alias:pn"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ProductID uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id"`
	Category  string    `bun:"category,notnull" json:"category"`
	Locale    string    `bun:"locale,notnull" json:"locale"`
	Name      string    `bun:"name,notnull" json:"name"`
}

// LocalizedFields lists the document fields rendered per locale.
var LocalizedFields = []string{"name", "description", "shortDescription", "seoTitle", "seoDescription"}

// Document converts the product into the plain record shape used by the
// locale resolver and HTTP responses.
func (p *Product) Document() domain.Document {
	if p == nil {
		return nil
	}
	doc := domain.Document{
		"id":        p.ID.String(),
		"slug":      p.Slug,
		"category":  p.Category,
		"price":     p.Price,
		"status":    string(p.Status),
		"featured":  p.Featured,
		"name":      p.Name.Clone(),
		"createdAt": p.CreatedAt,
		"updatedAt": p.UpdatedAt,
	}
	setBundle(doc, "description", p.Description)
	setBundle(doc, "shortDescription", p.ShortDescription)
	setBundle(doc, "seoTitle", p.SeoTitle)
	setBundle(doc, "seoDescription", p.SeoDescription)
	return doc
}

func setBundle(doc domain.Document, field string, value domain.LocalizedString) {
	if len(value) == 0 {
		return
	}
	doc[field] = value.Clone()
}

// Documents converts a slice of products, keeping order.
func Documents(records []*Product) []domain.Document {
	out := make([]domain.Document, 0, len(records))
	for _, record := range records {
		if record != nil {
			out = append(out, record.Document())
		}
	}
	return out
}

func cloneProduct(src *Product) *Product {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Name = src.Name.Clone()
	copied.Description = src.Description.Clone()
	copied.ShortDescription = src.ShortDescription.Clone()
	copied.SeoTitle = src.SeoTitle.Clone()
	copied.SeoDescription = src.SeoDescription.Clone()
	return &copied
}

func nameIndex(p *Product) []*ProductName {
	if p == nil {
		return nil
	}
	out := make([]*ProductName, 0, len(p.Name))
	for locale, name := range p.Name {
		if name == "" {
			continue
		}
		out = append(out, &ProductName{
			ID:        uuid.New(),
			ProductID: p.ID,
			Category:  p.Category,
			Locale:    locale,
			Name:      name,
		})
	}
	return out
}
