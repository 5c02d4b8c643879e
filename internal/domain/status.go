package domain

import "strings"

// Status represents lifecycle states for catalog entities.
type Status string

const (
	// StatusDraft indicates an entity still under preparation.
	StatusDraft Status = "draft"
	// StatusPublished identifies entities visible on public reads.
	StatusPublished Status = "published"
	// StatusArchived marks entities retained for history but hidden.
	StatusArchived Status = "archived"
)

// ParseStatus normalizes a raw status value. Empty input defaults to draft.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case "", StatusDraft:
		return StatusDraft, true
	case StatusPublished:
		return StatusPublished, true
	case StatusArchived:
		return StatusArchived, true
	default:
		return "", false
	}
}

// IsPublic reports whether the status is visible on public reads.
func (s Status) IsPublic() bool {
	return s == StatusPublished
}
