package identity

import (
	"context"
	"testing"
	"time"

	"github.com/clerkio/backend/internal/domain/identity"
	"github.com/clerkio/backend/internal/domain/shared"
	"github.com/clerkio/backend/internal/infrastructure/auth"
	"github.com/clerkio/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newUserService() (*UserService, *MockUserRepository) {
	userRepo := new(MockUserRepository)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-at-least-32-bytes!",
		Expiration: 15 * time.Minute,
		Issuer:     "shop-backend-test",
	})
	return NewUserService(userRepo, jwtService), userRepo
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account and hides password hash", func(t *testing.T) {
		service, userRepo := newUserService()

		userRepo.On("ExistsByEmail", ctx, "jane@example.com").Return(false, nil)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := service.Register(ctx, RegisterRequest{
			Email:     "Jane@Example.com",
			Password:  "s3cret-pass",
			FirstName: "Jane",
		})

		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", resp.Email)
		assert.False(t, resp.Admin)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		service, userRepo := newUserService()

		userRepo.On("ExistsByEmail", ctx, "jane@example.com").Return(true, nil)

		_, err := service.Register(ctx, RegisterRequest{
			Email:    "jane@example.com",
			Password: "s3cret-pass",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues token for valid credentials", func(t *testing.T) {
		service, userRepo := newUserService()

		user, err := identity.NewUser("jane@example.com", "s3cret-pass", "", "")
		require.NoError(t, err)
		userRepo.On("FindByEmail", ctx, "jane@example.com").Return(user, nil)

		resp, err := service.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "s3cret-pass"})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "jane@example.com", resp.User.Email)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		service, userRepo := newUserService()

		user, err := identity.NewUser("jane@example.com", "s3cret-pass", "", "")
		require.NoError(t, err)
		userRepo.On("FindByEmail", ctx, "jane@example.com").Return(user, nil)

		_, err = service.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "wrong-pass"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("unknown email reads as unauthorized, not not found", func(t *testing.T) {
		service, userRepo := newUserService()

		userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, err := service.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "whatever1"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})
}

func TestUserService_PromoteAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes existing user", func(t *testing.T) {
		service, userRepo := newUserService()

		user, err := identity.NewUser("jane@example.com", "s3cret-pass", "", "")
		require.NoError(t, err)
		userRepo.On("FindByEmail", ctx, "jane@example.com").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		err = service.PromoteAdmin(ctx, "jane@example.com")

		assert.NoError(t, err)
		assert.True(t, user.Admin)
		userRepo.AssertExpectations(t)
	})

	t.Run("unknown email is a silent no-op", func(t *testing.T) {
		service, userRepo := newUserService()

		userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)

		err := service.PromoteAdmin(ctx, "ghost@example.com")

		assert.NoError(t, err)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("already admin skips the write", func(t *testing.T) {
		service, userRepo := newUserService()

		user, err := identity.NewUser("jane@example.com", "s3cret-pass", "", "")
		require.NoError(t, err)
		user.Promote()
		userRepo.On("FindByEmail", ctx, "jane@example.com").Return(user, nil)

		err = service.PromoteAdmin(ctx, "jane@example.com")

		assert.NoError(t, err)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("reports true for deleted user", func(t *testing.T) {
		service, userRepo := newUserService()

		id := uuid.New()
		userRepo.On("Delete", ctx, id).Return(nil)

		deleted, err := service.Delete(ctx, id)

		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("reports false when user was absent", func(t *testing.T) {
		service, userRepo := newUserService()

		id := uuid.New()
		userRepo.On("Delete", ctx, id).Return(shared.ErrNotFound)

		deleted, err := service.Delete(ctx, id)

		assert.NoError(t, err)
		assert.False(t, deleted)
	})
}
