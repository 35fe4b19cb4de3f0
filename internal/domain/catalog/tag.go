package catalog

import (
	"strings"

	"github.com/clerkio/backend/internal/domain/shared"
)

// Tag is a free-form label attached to products. Names are unique and
// tags are created on demand, like categories.
type Tag struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Tag) TableName() string {
	return "tags"
}

// NewTag creates a new tag
func NewTag(name string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tag name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tag name cannot exceed 100 characters")
	}

	return &Tag{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}
