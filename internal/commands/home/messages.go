package homecmd

import (
	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/homecontent"
)

const upsertHomeMessageType = "catalog.home.upsert"

// UpsertHomeCommand replaces the home content stored under Key.
type UpsertHomeCommand struct {
	Key            string                 `json:"key,omitempty"`
	HeroTitle      domain.LocalizedString `json:"heroTitle"`
	HeroSubtitle   domain.LocalizedString `json:"heroSubtitle,omitempty"`
	AboutTitle     domain.LocalizedString `json:"aboutTitle,omitempty"`
	AboutBody      domain.LocalizedString `json:"aboutBody,omitempty"`
	SeoTitle       domain.LocalizedString `json:"seoTitle,omitempty"`
	SeoDescription domain.LocalizedString `json:"seoDescription,omitempty"`
}

// Type implements command.Message.
func (UpsertHomeCommand) Type() string { return upsertHomeMessageType }

// Validate applies the home content rules.
func (cmd UpsertHomeCommand) Validate() error {
	return cmd.request().Validate()
}

func (cmd UpsertHomeCommand) request() homecontent.UpsertRequest {
	return homecontent.UpsertRequest{
		Key:            cmd.Key,
		HeroTitle:      cmd.HeroTitle,
		HeroSubtitle:   cmd.HeroSubtitle,
		AboutTitle:     cmd.AboutTitle,
		AboutBody:      cmd.AboutBody,
		SeoTitle:       cmd.SeoTitle,
		SeoDescription: cmd.SeoDescription,
	}
}
