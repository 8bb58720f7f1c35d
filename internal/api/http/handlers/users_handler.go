package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bragboard/internal/api/dto"
	"github.com/spec-kit/bragboard/internal/auth"
	"github.com/spec-kit/bragboard/internal/domain"
	"github.com/spec-kit/bragboard/internal/service"
	apperrors "github.com/spec-kit/bragboard/pkg/util/errorutil"
)

// UsersHandler manages registration, login and directory lookups.
type UsersHandler struct {
	authService      *service.AuthService
	directoryService *service.DirectoryService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, directoryService *service.DirectoryService) *UsersHandler {
	return &UsersHandler{authService: authService, directoryService: directoryService}
}

// Register POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, exp, err := h.authService.Register(c.Context(), service.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Department:  req.Department,
		AdminSecret: req.AdminSecret,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": authResponse(user, token, exp)})
}

// Login POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": authResponse(user, token, exp)})
}

// Me GET /auth/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": userResponse(principal.User)})
}

// ListUsers GET /users returns everyone but the caller, for the recipient picker.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	users, err := h.directoryService.ListOthers(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.UserSummary, 0, len(users))
	for _, user := range users {
		items = append(items, dto.UserSummary{
			ID:         user.ID,
			Name:       user.Name,
			Department: user.Department,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Department: user.Department,
		Role:       string(user.Role),
		IsAdmin:    user.IsAdmin(),
	}
}

func authResponse(user *domain.User, token string, exp time.Time) dto.AuthResponse {
	return dto.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   exp,
		User:        userResponse(user),
	}
}
