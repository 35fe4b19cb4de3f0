package handler

import (
	identityapp "github.com/clerkio/backend/internal/application/identity"
	"github.com/clerkio/backend/internal/infrastructure/auth"
	"github.com/clerkio/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles user account and authentication endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
	requireAuth gin.HandlerFunc
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService, jwtService *auth.JWTService) *UserHandler {
	return &UserHandler{
		userService: userService,
		requireAuth: middleware.RequireAuth(jwtService),
	}
}

// RegisterRoutes mounts the user routes on the given group. Registration
// and login are public; everything else requires a token, and promote
// and delete additionally require the admin flag.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", h.Register)
		users.POST("/login", h.Login)

		users.GET("", h.requireAuth, h.List)
		users.GET("/:id", h.requireAuth, h.GetByID)

		users.POST("/promote", h.requireAuth, middleware.RequireAdmin(), h.Promote)
		users.DELETE("/:id", h.requireAuth, middleware.RequireAdmin(), h.Delete)
	}
}

// Register handles POST /users
func (h *UserHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// Login handles POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	login, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, login)
}

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, users)
}

// GetByID handles GET /users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Promote handles POST /users/promote. An unknown email is accepted
// silently so the endpoint does not reveal which accounts exist.
func (h *UserHandler) Promote(c *gin.Context) {
	var req identityapp.PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.userService.PromoteAdmin(c.Request.Context(), req.Email); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DeleteUserResponse reports whether a delete removed anything
type DeleteUserResponse struct {
	Deleted bool `json:"deleted"`
}

// Delete handles DELETE /users/:id. Deleting an absent user is not an
// error; the response reports whether anything was removed.
func (h *UserHandler) Delete(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	deleted, err := h.userService.Delete(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DeleteUserResponse{Deleted: deleted})
}
