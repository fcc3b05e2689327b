package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"colvote.com/internal/api/middleware"
	"colvote.com/internal/auth"
	"colvote.com/internal/config"
	"colvote.com/internal/domain"
	"colvote.com/internal/model"
)

// AuthHandler serves registration, login and session endpoints.
type AuthHandler struct {
	users   domain.UserService
	revoker domain.TokenRevoker
	cfg     *config.Config
}

func NewAuthHandler(users domain.UserService, revoker domain.TokenRevoker, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, revoker: revoker, cfg: cfg}
}

type RegisterRequest struct {
	Colegiado string `json:"colegiado"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	DPI       string `json:"dpi"`
	BirthDate string `json:"birthDate"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Colegiado string `json:"colegiado"`
	DPI       string `json:"dpi"`
	BirthDate string `json:"birthDate"`
	Password  string `json:"password"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register creates a new voter account.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, err := h.users.Register(c.UserContext(), domain.RegisterInput{
		Colegiado: req.Colegiado,
		Name:      req.Name,
		Email:     req.Email,
		DPI:       req.DPI,
		BirthDate: req.BirthDate,
		Password:  req.Password,
	})
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login authenticates the full credential set and returns a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, err := h.users.Authenticate(c.UserContext(), domain.LoginInput{
		Colegiado: req.Colegiado,
		DPI:       req.DPI,
		BirthDate: req.BirthDate,
		Password:  req.Password,
	})
	if err != nil {
		return sendError(c, err)
	}

	token, err := auth.IssueToken([]byte(h.cfg.Auth.JWTSecret), h.cfg.Auth.TokenTTL(), user)
	if err != nil {
		return sendError(c, domain.NewInternalError("failed to sign token", err))
	}

	return c.JSON(AuthResponse{Token: token, User: user})
}

// GetMe returns the account of the presented token.
func (h *AuthHandler) GetMe(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromCtx(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
	}

	user, err := h.users.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(user)
}

// Logout denylists the presented token for its remaining lifetime, so it stops
// working immediately instead of at expiry.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromCtx(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
	}

	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := h.revoker.Revoke(c.UserContext(), claims.ID, ttl); err != nil {
		return sendError(c, domain.NewInternalError("failed to revoke token", err))
	}

	return c.JSON(fiber.Map{"message": "logged out successfully"})
}
