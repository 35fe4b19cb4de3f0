package ordering

import (
	"context"

	"github.com/clerkio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID with its lines loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUser finds all orders for a user matching the filter
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// CountByUser counts a user's orders matching the filter
	CountByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates an order together with its lines
	Save(ctx context.Context, order *Order) error

	// Delete deletes an order; its lines go with it
	Delete(ctx context.Context, id uuid.UUID) error
}
