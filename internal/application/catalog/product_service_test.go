package catalog

import (
	"context"
	"testing"

	"github.com/clerkio/backend/internal/domain/catalog"
	"github.com/clerkio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetOrCreate(ctx context.Context, name string) (*catalog.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

// MockTagRepository is a mock implementation of TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) FindByName(ctx context.Context, name string) (*catalog.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Tag), args.Error(1)
}

func (m *MockTagRepository) FindAll(ctx context.Context) ([]catalog.Tag, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Tag), args.Error(1)
}

func (m *MockTagRepository) GetOrCreate(ctx context.Context, name string) (*catalog.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Tag), args.Error(1)
}

// MockExternalCatalog is a mock implementation of ExternalCatalog
type MockExternalCatalog struct {
	mock.Mock
}

func (m *MockExternalCatalog) FetchPage(ctx context.Context, skip, limit int) (*catalog.FeedPage, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.FeedPage), args.Error(1)
}

func (m *MockExternalCatalog) FetchAll(ctx context.Context) (*catalog.FeedAggregate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.FeedAggregate), args.Error(1)
}

func newProductService() (*ProductService, *MockProductRepository, *MockCategoryRepository, *MockTagRepository, *MockExternalCatalog) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	tagRepo := new(MockTagRepository)
	feed := new(MockExternalCatalog)
	service := NewProductService(productRepo, categoryRepo, tagRepo, feed)
	return service, productRepo, categoryRepo, tagRepo, feed
}

func mustCategory(t *testing.T, name string) *catalog.Category {
	t.Helper()
	category, err := catalog.NewCategory(name)
	require.NoError(t, err)
	return category
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with new category and tags", func(t *testing.T) {
		service, productRepo, categoryRepo, tagRepo, _ := newProductService()

		furniture := mustCategory(t, "Furniture")
		wood, err := catalog.NewTag("wood")
		require.NoError(t, err)

		categoryRepo.On("GetOrCreate", ctx, "Furniture").Return(furniture, nil)
		tagRepo.On("GetOrCreate", ctx, "wood").Return(wood, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(ctx, CreateProductRequest{
			Name:       "Chair",
			Price:      decimal.NewFromInt(50),
			StockCount: 3,
			Category:   "Furniture",
			Tags:       []string{"wood"},
			Images:     []string{"https://img.example.com/chair.png"},
		})

		assert.NoError(t, err)
		assert.Equal(t, "Chair", resp.Name)
		assert.Equal(t, "Furniture", resp.Category)
		assert.Equal(t, []string{"wood"}, resp.Tags)
		assert.Equal(t, 3, resp.StockCount)
		productRepo.AssertExpectations(t)
		categoryRepo.AssertExpectations(t)
		tagRepo.AssertExpectations(t)
	})

	t.Run("reuses existing category by name", func(t *testing.T) {
		service, productRepo, categoryRepo, _, _ := newProductService()

		existing := mustCategory(t, "Furniture")
		categoryRepo.On("GetOrCreate", ctx, "Furniture").Return(existing, nil)
		productRepo.On("Save", ctx, mock.MatchedBy(func(p *catalog.Product) bool {
			return p.CategoryID == existing.ID
		})).Return(nil)

		_, err := service.Create(ctx, CreateProductRequest{
			Name:     "Table",
			Price:    decimal.NewFromInt(120),
			Category: "Furniture",
		})

		assert.NoError(t, err)
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		service, productRepo, categoryRepo, _, _ := newProductService()

		categoryRepo.On("GetOrCreate", ctx, "Furniture").Return(mustCategory(t, "Furniture"), nil)

		_, err := service.Create(ctx, CreateProductRequest{
			Name:     "Chair",
			Price:    decimal.NewFromInt(-1),
			Category: "Furniture",
		})

		assert.Error(t, err)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_UpdateStock(t *testing.T) {
	ctx := context.Background()

	t.Run("adds delta to current stock", func(t *testing.T) {
		service, productRepo, categoryRepo, _, _ := newProductService()

		furniture := mustCategory(t, "Furniture")
		product, err := catalog.NewProduct("Chair", "", decimal.NewFromInt(50), 2, furniture.ID)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Save", ctx, product).Return(nil)
		categoryRepo.On("FindByID", ctx, furniture.ID).Return(furniture, nil)

		resp, err := service.UpdateStock(ctx, product.ID, 3)

		assert.NoError(t, err)
		assert.Equal(t, 5, resp.StockCount)
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects negative delta without saving", func(t *testing.T) {
		service, productRepo, _, _, _ := newProductService()

		furniture := mustCategory(t, "Furniture")
		product, err := catalog.NewProduct("Chair", "", decimal.NewFromInt(50), 2, furniture.ID)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err = service.UpdateStock(ctx, product.ID, -1)

		assert.Error(t, err)
		assert.Equal(t, 2, product.StockCount)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("returns not found for unknown product", func(t *testing.T) {
		service, productRepo, _, _, _ := newProductService()

		missing := uuid.New()
		productRepo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

		_, err := service.UpdateStock(ctx, missing, 3)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("applies stock window for low stock flag", func(t *testing.T) {
		service, productRepo, categoryRepo, _, _ := newProductService()

		productRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["stock_min"] == 1 && f.Filters["stock_max"] == catalog.LowStockThreshold
		})).Return([]catalog.Product{}, nil)
		productRepo.On("Count", ctx, mock.Anything).Return(int64(0), nil)
		categoryRepo.On("FindAll", ctx).Return([]catalog.Category{}, nil)

		_, _, err := service.List(ctx, ProductListFilter{LowStock: true})

		assert.NoError(t, err)
		productRepo.AssertExpectations(t)
	})

	t.Run("widens window to include zero when both flags set", func(t *testing.T) {
		service, productRepo, categoryRepo, _, _ := newProductService()

		productRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["stock_min"] == 0 && f.Filters["stock_max"] == catalog.LowStockThreshold
		})).Return([]catalog.Product{}, nil)
		productRepo.On("Count", ctx, mock.Anything).Return(int64(0), nil)
		categoryRepo.On("FindAll", ctx).Return([]catalog.Category{}, nil)

		_, _, err := service.List(ctx, ProductListFilter{LowStock: true, OutOfStock: true})

		assert.NoError(t, err)
		productRepo.AssertExpectations(t)
	})

	t.Run("pins stock to zero for out of stock flag", func(t *testing.T) {
		service, productRepo, categoryRepo, _, _ := newProductService()

		productRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["stock_eq"] == 0
		})).Return([]catalog.Product{}, nil)
		productRepo.On("Count", ctx, mock.Anything).Return(int64(0), nil)
		categoryRepo.On("FindAll", ctx).Return([]catalog.Category{}, nil)

		_, _, err := service.List(ctx, ProductListFilter{OutOfStock: true})

		assert.NoError(t, err)
		productRepo.AssertExpectations(t)
	})

	t.Run("unknown category name matches nothing", func(t *testing.T) {
		service, productRepo, categoryRepo, _, _ := newProductService()

		categoryRepo.On("FindByName", ctx, "Ghosts").Return(nil, shared.ErrNotFound)

		responses, total, err := service.List(ctx, ProductListFilter{Category: "Ghosts"})

		assert.NoError(t, err)
		assert.Empty(t, responses)
		assert.Equal(t, int64(0), total)
		productRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})

	t.Run("resolves category names on listed products", func(t *testing.T) {
		service, productRepo, categoryRepo, _, _ := newProductService()

		furniture := mustCategory(t, "Furniture")
		product, err := catalog.NewProduct("Chair", "", decimal.NewFromInt(50), 2, furniture.ID)
		require.NoError(t, err)

		productRepo.On("FindAll", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)
		productRepo.On("Count", ctx, mock.Anything).Return(int64(1), nil)
		categoryRepo.On("FindAll", ctx).Return([]catalog.Category{*furniture}, nil)

		responses, total, err := service.List(ctx, ProductListFilter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, responses, 1)
		assert.Equal(t, "Furniture", responses[0].Category)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("propagates not found from repository", func(t *testing.T) {
		service, productRepo, _, _, _ := newProductService()

		missing := uuid.New()
		productRepo.On("Delete", ctx, missing).Return(shared.ErrNotFound)

		err := service.Delete(ctx, missing)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("deletes existing product", func(t *testing.T) {
		service, productRepo, _, _, _ := newProductService()

		id := uuid.New()
		productRepo.On("Delete", ctx, id).Return(nil)

		assert.NoError(t, service.Delete(ctx, id))
		productRepo.AssertExpectations(t)
	})
}

func TestProductService_FetchExternal(t *testing.T) {
	ctx := context.Background()

	t.Run("returns merged feed aggregate", func(t *testing.T) {
		service, _, _, _, feed := newProductService()

		aggregate := &catalog.FeedAggregate{
			Products: []catalog.FeedProduct{{ID: 1, Title: "Phone"}, {ID: 101, Title: "Laptop"}},
			Total:    194,
		}
		feed.On("FetchAll", ctx).Return(aggregate, nil)

		resp, err := service.FetchExternal(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp.Products, 2)
		assert.Equal(t, int64(194), resp.Total)
	})

	t.Run("maps any feed failure to feed unavailable", func(t *testing.T) {
		service, _, _, _, feed := newProductService()

		feed.On("FetchAll", ctx).Return(nil, catalog.ErrFeedRequestFailed)

		_, err := service.FetchExternal(ctx)

		assert.ErrorIs(t, err, shared.ErrFeedUnavailable)
	})
}
