package catalog

import (
	"time"

	"github.com/clerkio/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the payload for creating a product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Discount    decimal.Decimal `json:"discount"`
	StockCount  int             `json:"stock_count" binding:"min=0"`
	Category    string          `json:"category" binding:"required,max=100"`
	Tags        []string        `json:"tags"`
	Images      []string        `json:"images"`
}

// UpdateProductRequest is the payload for updating a product
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Discount    decimal.Decimal `json:"discount"`
	Category    string          `json:"category" binding:"required,max=100"`
	Tags        []string        `json:"tags"`
	Images      []string        `json:"images"`
}

// UpdateStockRequest is the payload for restocking a product
type UpdateStockRequest struct {
	Delta int `json:"delta"`
}

// ProductListFilter holds the supported product listing filters. Stock
// flags compose: lowStock selects (0, threshold], outOfStock selects
// exactly zero, and both together select [0, threshold].
type ProductListFilter struct {
	Page        int
	PageSize    int
	OrderBy     string
	OrderDir    string
	Search      string
	Category    string
	LowStock    bool
	OutOfStock  bool
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
}

// ProductResponse is the product representation returned by the API
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Discount       decimal.Decimal `json:"discount"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	StockCount     int             `json:"stock_count"`
	Category       string          `json:"category"`
	Tags           []string        `json:"tags"`
	Images         []string        `json:"images"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CategoryResponse is the category representation returned by the API
type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ToProductResponse converts a product entity to its response form. The
// category name must be resolved by the caller since the entity only
// carries the foreign key.
func ToProductResponse(product *catalog.Product, categoryName string) ProductResponse {
	tags := make([]string, 0, len(product.Tags))
	for _, tag := range product.Tags {
		tags = append(tags, tag.Name)
	}

	images := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		images = append(images, img.URL)
	}

	return ProductResponse{
		ID:             product.ID,
		Name:           product.Name,
		Description:    product.Description,
		Price:          product.Price,
		Discount:       product.Discount,
		EffectivePrice: product.EffectivePrice(),
		StockCount:     product.StockCount,
		Category:       categoryName,
		Tags:           tags,
		Images:         images,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

// ToCategoryResponse converts a category entity to its response form
func ToCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:   category.ID,
		Name: category.Name,
	}
}

// ToCategoryResponses converts a slice of categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses
}
