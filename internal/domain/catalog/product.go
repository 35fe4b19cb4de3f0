package catalog

import (
	"time"

	"github.com/clerkio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock count at or below which a product is
// considered low on stock.
const LowStockThreshold = 5

// Product represents a product in the catalog.
// Tags are stored through the product_tags join table; images live in
// product_images, ordered by position.
type Product struct {
	shared.BaseEntity
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockCount  int             `gorm:"not null;default:0"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Images      []ProductImage  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Tags        []Tag           `gorm:"many2many:product_tags"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ProductImage is a single image URL attached to a product
type ProductImage struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:varchar(2048);not null"`
	Position  int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductImage) TableName() string {
	return "product_images"
}

// NewProduct creates a new product
func NewProduct(name, description string, price decimal.Decimal, stockCount int, categoryID uuid.UUID) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Price cannot be negative")
	}
	if stockCount < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Stock count cannot be negative")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category is required")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		Price:       price,
		Discount:    decimal.Zero,
		StockCount:  stockCount,
		CategoryID:  categoryID,
	}, nil
}

// Update overwrites the product's mutable fields
func (p *Product) Update(name, description string, price decimal.Decimal) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Price cannot be negative")
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.UpdatedAt = time.Now()

	return nil
}

// SetDiscount sets the discount amount
func (p *Product) SetDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}
	p.Discount = discount
	p.UpdatedAt = time.Now()
	return nil
}

// AddStock increases the stock count by delta. Negative deltas are
// rejected; stock only goes down through order fulfilment.
func (p *Product) AddStock(delta int) error {
	if delta < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Stock delta cannot be negative")
	}
	p.StockCount += delta
	p.UpdatedAt = time.Now()
	return nil
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Category is required")
	}
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	return nil
}

// SetImages replaces the product's image list, preserving order
func (p *Product) SetImages(urls []string) {
	images := make([]ProductImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, ProductImage{
			BaseEntity: shared.NewBaseEntity(),
			ProductID:  p.ID,
			URL:        url,
			Position:   i,
		})
	}
	p.Images = images
	p.UpdatedAt = time.Now()
}

// IsOutOfStock returns true if the product has no stock
func (p *Product) IsOutOfStock() bool {
	return p.StockCount == 0
}

// IsLowStock returns true if stock is at or below the low stock threshold
// but not zero
func (p *Product) IsLowStock() bool {
	return p.StockCount > 0 && p.StockCount <= LowStockThreshold
}

// EffectivePrice returns the price after discount, floored at zero
func (p *Product) EffectivePrice() decimal.Decimal {
	effective := p.Price.Sub(p.Discount)
	if effective.IsNegative() {
		return decimal.Zero
	}
	return effective
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot exceed 200 characters")
	}
	return nil
}
