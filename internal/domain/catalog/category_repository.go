package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByName finds a category by its unique name
	FindByName(ctx context.Context, name string) (*Category, error)

	// FindAll returns all categories ordered by name
	FindAll(ctx context.Context) ([]Category, error)

	// GetOrCreate returns the category with the given name, inserting it
	// first if absent. The insert-or-fetch is atomic: concurrent callers
	// racing on the same name all end up with the same row.
	GetOrCreate(ctx context.Context, name string) (*Category, error)
}

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	// FindByName finds a tag by its unique name
	FindByName(ctx context.Context, name string) (*Tag, error)

	// FindAll returns all tags ordered by name
	FindAll(ctx context.Context) ([]Tag, error)

	// GetOrCreate returns the tag with the given name, inserting it first
	// if absent. Atomic in the same sense as CategoryRepository.GetOrCreate.
	GetOrCreate(ctx context.Context, name string) (*Tag, error)
}
