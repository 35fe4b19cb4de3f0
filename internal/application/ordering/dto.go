package ordering

import (
	"time"

	"github.com/clerkio/backend/internal/domain/ordering"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the payload for placing an order
type CreateOrderRequest struct {
	UserID uuid.UUID          `json:"user_id" binding:"required"`
	Lines  []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// OrderLineRequest is one product position on an order request. The unit
// price is not accepted from the client; it is snapshotted server-side.
type OrderLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// OrderResponse is the order representation returned by the API
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	UserID    uuid.UUID           `json:"user_id"`
	OrderedAt time.Time           `json:"ordered_at"`
	Paid      bool                `json:"paid"`
	Total     decimal.Decimal     `json:"total"`
	Lines     []OrderLineResponse `json:"lines"`
}

// OrderLineResponse is one order line in an API response
type OrderLineResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ToOrderResponse converts an order entity to its response form
func ToOrderResponse(order *ordering.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineResponse{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	return OrderResponse{
		ID:        order.ID,
		UserID:    order.UserID,
		OrderedAt: order.OrderedAt,
		Paid:      order.Paid,
		Total:     order.Total(),
		Lines:     lines,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []ordering.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses
}
