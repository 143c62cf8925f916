package handlers

import (
	"fmt"

	"cinerent/internal/middleware"
	"cinerent/internal/models"
	"cinerent/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ApplicationHandler handles HTTP requests for movie applications.
type ApplicationHandler struct {
	service  *services.ApplicationService
	validate *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the application routes. The router is expected to
// already require authentication.
func (h *ApplicationHandler) RegisterRoutes(router fiber.Router) {
	appRoutes := router.Group("/movie-applications")
	appRoutes.Post("/submit", h.HandleSubmit)
	appRoutes.Get("/", middleware.StaffRequired(), h.HandleListAll)
	appRoutes.Patch("/:id/status", middleware.StaffRequired(), h.HandleUpdateStatus)
}

// SubmitApplicationRequest represents the request body for an application.
type SubmitApplicationRequest struct {
	Title             string   `json:"title" validate:"required,min=1,max=200"`
	ActorsOrDirectors string   `json:"actors_or_directors" validate:"required,max=500"`
	Poster            string   `json:"poster"`
	Price             float64  `json:"price" validate:"required,gt=0"`
	Genre             []string `json:"genre"`
}

// HandleSubmit creates a pending application owned by the caller.
func (h *ApplicationHandler) HandleSubmit(c *fiber.Ctx) error {
	var req SubmitApplicationRequest
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

	userID, _ := c.Locals("user_id").(string)
	app := &models.MovieApplication{
		UserID:            userID,
		Title:             req.Title,
		ActorsOrDirectors: req.ActorsOrDirectors,
		Poster:            req.Poster,
		Price:             req.Price,
		Genre:             req.Genre,
	}

	created, err := h.service.SubmitApplication(app)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   created,
	})
}

// HandleListAll lists every application, newest first.
func (h *ApplicationHandler) HandleListAll(c *fiber.Ctx) error {
	apps, err := h.service.GetAllApplications()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   apps,
	})
}

// UpdateApplicationStatusRequest represents the review decision body.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// HandleUpdateStatus approves or rejects an application. Approval also
// promotes the application into the catalog.
func (h *ApplicationHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status must be 'approved' or 'rejected'",
		})
	}

	app, err := h.service.UpdateApplicationStatus(c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   app,
	})
}
