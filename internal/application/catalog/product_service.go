package catalog

import (
	"context"
	"errors"

	"github.com/clerkio/backend/internal/domain/catalog"
	"github.com/clerkio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	tagRepo      catalog.TagRepository
	feed         catalog.ExternalCatalog
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	tagRepo catalog.TagRepository,
	feed catalog.ExternalCatalog,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		feed:         feed,
	}
}

// Create creates a new product. The category and tags are referenced by
// name and inserted on demand, so an unseen name never fails the call.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	category, err := s.categoryRepo.GetOrCreate(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Description, req.Price, req.StockCount, category.ID)
	if err != nil {
		return nil, err
	}

	if !req.Discount.IsZero() {
		if err := product.SetDiscount(req.Discount); err != nil {
			return nil, err
		}
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}
	product.Tags = tags

	if len(req.Images) > 0 {
		product.SetImages(req.Images)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product, category.Name)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	categoryName, err := s.categoryName(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product, categoryName)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	// Stock range policy: both flags widen the window to include zero,
	// lowStock alone excludes it, outOfStock alone pins stock to zero.
	switch {
	case filter.LowStock && filter.OutOfStock:
		domainFilter.Filters["stock_min"] = 0
		domainFilter.Filters["stock_max"] = catalog.LowStockThreshold
	case filter.LowStock:
		domainFilter.Filters["stock_min"] = 1
		domainFilter.Filters["stock_max"] = catalog.LowStockThreshold
	case filter.OutOfStock:
		domainFilter.Filters["stock_eq"] = 0
	}

	if filter.Category != "" {
		category, err := s.categoryRepo.FindByName(ctx, filter.Category)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				// Unknown category matches nothing
				return []ProductResponse{}, 0, nil
			}
			return nil, 0, err
		}
		domainFilter.Filters["category_id"] = category.ID
	}

	if filter.MinPrice != nil {
		domainFilter.Filters["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		domainFilter.Filters["max_price"] = *filter.MaxPrice
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i], names[products[i].CategoryID]))
	}

	return responses, total, nil
}

// Update overwrites a product's mutable fields
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetOrCreate(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description, req.Price); err != nil {
		return nil, err
	}
	if err := product.SetDiscount(req.Discount); err != nil {
		return nil, err
	}
	if err := product.SetCategory(category.ID); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}
	product.Tags = tags
	product.SetImages(req.Images)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product, category.Name)
	return &response, nil
}

// UpdateStock increases a product's stock by delta. Negative deltas are
// rejected before anything is written.
func (s *ProductService) UpdateStock(ctx context.Context, productID uuid.UUID, delta int) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.AddStock(delta); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	categoryName, err := s.categoryName(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product, categoryName)
	return &response, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	return s.productRepo.Delete(ctx, productID)
}

// FetchExternal returns the merged external catalog listing. The data is
// served straight from the feed and never stored.
func (s *ProductService) FetchExternal(ctx context.Context) (*catalog.FeedAggregate, error) {
	aggregate, err := s.feed.FetchAll(ctx)
	if err != nil {
		return nil, shared.ErrFeedUnavailable
	}
	return aggregate, nil
}

// resolveTags maps tag names to entities, creating unseen ones
func (s *ProductService) resolveTags(ctx context.Context, names []string) ([]catalog.Tag, error) {
	tags := make([]catalog.Tag, 0, len(names))
	for _, name := range names {
		tag, err := s.tagRepo.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *ProductService) categoryName(ctx context.Context, id uuid.UUID) (string, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return category.Name, nil
}

func (s *ProductService) categoryNames(ctx context.Context) (map[uuid.UUID]string, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}
