package handlers

import (
	"fmt"
	"log"

	"cinerent/internal/models"
	"cinerent/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	frontendURL string
}

// NewAuthHandler creates a new AuthHandler. frontendURL is where the Google
// callback redirects with the issued token.
func NewAuthHandler(authService *services.AuthService, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
		frontendURL: frontendURL,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/google", h.HandleGoogleLogin)
	authRoutes.Get("/google/callback", h.HandleGoogleCallback)
}

// RegisterRequest represents the request body for registration. Code is the
// optional staff enrollment code.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Code     string `json:"code"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.authService.RegisterUser(user, req.Code); err != nil {
		return respondError(c, err)
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"role":    user.Role,
		"user":    user,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a signed token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password are required",
		})
	}

	token, user, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"role":  user.Role,
	})
}

// HandleGoogleLogin redirects the caller to the Google consent screen.
func (h *AuthHandler) HandleGoogleLogin(c *fiber.Ctx) error {
	url, err := h.authService.GoogleLoginURL(uuid.New().String())
	if err != nil {
		log.Printf("Google login unavailable: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Google login is not configured",
		})
	}
	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}

// HandleGoogleCallback exchanges the authorization code and redirects to the
// frontend with the issued token in the query string.
func (h *AuthHandler) HandleGoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Redirect(h.frontendURL+"/login?error=auth_failed", fiber.StatusTemporaryRedirect)
	}

	token, err := h.authService.GoogleCallback(c.Context(), code)
	if err != nil {
		log.Printf("Google callback failed: %v", err)
		return c.Redirect(h.frontendURL+"/login?error=auth_failed", fiber.StatusTemporaryRedirect)
	}

	return c.Redirect(h.frontendURL+"/auth/success?token="+token, fiber.StatusTemporaryRedirect)
}
