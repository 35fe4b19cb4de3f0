package ordering

import (
	"time"

	"github.com/clerkio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a customer order. Lines are owned by the order: deleting the
// order cascades to its lines. The customer is referenced by ID only;
// navigate through UserRepository when the user record is needed.
type Order struct {
	shared.BaseEntity
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	OrderedAt time.Time   `gorm:"not null"`
	Paid      bool        `gorm:"not null;default:false"`
	Lines     []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderLine is one product position on an order. UnitPrice is a snapshot
// of the product price at ordering time.
type OrderLine struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_products"
}

// NewOrder creates a new unpaid order for a user
func NewOrder(userID uuid.UUID) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order requires a user")
	}

	return &Order{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		OrderedAt:  time.Now(),
		Paid:       false,
	}, nil
}

// AddLine appends a product position to the order
func (o *Order) AddLine(productID uuid.UUID, quantity int, unitPrice decimal.Decimal) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Order line requires a product")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Order line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Order line price cannot be negative")
	}

	o.Lines = append(o.Lines, OrderLine{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
	})
	o.UpdatedAt = time.Now()

	return nil
}

// MarkPaid transitions the order to paid. Paying twice is an error.
func (o *Order) MarkPaid() error {
	if o.Paid {
		return shared.NewDomainError("INVALID_STATE", "Order is already paid")
	}
	o.Paid = true
	o.UpdatedAt = time.Now()
	return nil
}

// Total returns the sum of quantity * unit price over all lines
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
