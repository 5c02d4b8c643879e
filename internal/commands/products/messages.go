package productscmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/products"
	"github.com/google/uuid"
)

const (
	createProductMessageType = "catalog.products.create"
	updateProductMessageType = "catalog.products.update"
	deleteProductMessageType = "catalog.products.delete"
)

// ProductFields mirrors the writable product attributes in their JSON shape.
type ProductFields struct {
	Slug             string                 `json:"slug,omitempty"`
	Category         string                 `json:"category,omitempty"`
	Price            *float64               `json:"price"`
	Status           string                 `json:"status,omitempty"`
	Featured         bool                   `json:"featured,omitempty"`
	Name             domain.LocalizedString `json:"name"`
	Description      domain.LocalizedString `json:"description,omitempty"`
	ShortDescription domain.LocalizedString `json:"shortDescription,omitempty"`
	SeoTitle         domain.LocalizedString `json:"seoTitle,omitempty"`
	SeoDescription   domain.LocalizedString `json:"seoDescription,omitempty"`
}

func (f ProductFields) input() products.ProductInput {
	return products.ProductInput{
		Slug:             f.Slug,
		Category:         f.Category,
		Price:            f.Price,
		Status:           f.Status,
		Featured:         f.Featured,
		Name:             f.Name,
		Description:      f.Description,
		ShortDescription: f.ShortDescription,
		SeoTitle:         f.SeoTitle,
		SeoDescription:   f.SeoDescription,
	}
}

// CreateProductCommand creates a product, deriving its slug when none is given.
type CreateProductCommand struct {
	ProductFields
}

// Type implements command.Message.
func (CreateProductCommand) Type() string { return createProductMessageType }

// Validate applies the product input rules before the handler runs.
func (cmd CreateProductCommand) Validate() error {
	return cmd.input().Validate()
}

// UpdateProductCommand replaces the writable fields of product ID.
type UpdateProductCommand struct {
	ID uuid.UUID `json:"id"`
	ProductFields
}

// Type implements command.Message.
func (UpdateProductCommand) Type() string { return updateProductMessageType }

// Validate requires an id on top of the product input rules.
func (cmd UpdateProductCommand) Validate() error {
	return products.UpdateProductRequest{ID: cmd.ID, ProductInput: cmd.input()}.Validate()
}

// DeleteProductCommand removes product ID.
type DeleteProductCommand struct {
	ID uuid.UUID `json:"id"`
}

// Type implements command.Message.
func (DeleteProductCommand) Type() string { return deleteProductMessageType }

// Validate ensures an id is present.
func (cmd DeleteProductCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ID, validation.By(func(value any) error {
			if id, _ := value.(uuid.UUID); id == uuid.Nil {
				return validation.NewError("catalog.products.delete.id_required", "id is required")
			}
			return nil
		})),
	)
}
