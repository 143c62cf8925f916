package handlers

import (
	"time"

	"cinerent/internal/middleware"
	"cinerent/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RentalHandler handles HTTP requests for rentals.
type RentalHandler struct {
	service  *services.RentalService
	validate *validator.Validate
}

// NewRentalHandler creates a new RentalHandler.
func NewRentalHandler(service *services.RentalService) *RentalHandler {
	return &RentalHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the rental routes. The router is expected to
// already require authentication.
func (h *RentalHandler) RegisterRoutes(router fiber.Router) {
	rentalRoutes := router.Group("/rentals")
	rentalRoutes.Post("/", h.HandleCreate)
	rentalRoutes.Get("/", h.HandleListOwn)
	rentalRoutes.Get("/admin", middleware.StaffRequired(), h.HandleListAll)
	rentalRoutes.Put("/status", middleware.StaffRequired(), h.HandleUpdateStatus)
}

// CreateRentalRequest represents the request body for rental creation. Dates
// are RFC 3339 date strings (yyyy-mm-dd).
type CreateRentalRequest struct {
	MovieID   string `json:"movie_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// HandleCreate creates a rental for the authenticated caller.
func (h *RentalHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateRentalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "movie_id, start_date and end_date are required",
		})
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "start_date must be an RFC 3339 date",
		})
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "end_date must be an RFC 3339 date",
		})
	}

	userID, _ := c.Locals("user_id").(string)
	rental, err := h.service.CreateRental(userID, req.MovieID, start, end)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   rental,
	})
}

// HandleListOwn lists the caller's rentals, newest first.
func (h *RentalHandler) HandleListOwn(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	rentals, err := h.service.GetUserRentals(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   rentals,
	})
}

// HandleListAll lists every rental system-wide, newest first.
func (h *RentalHandler) HandleListAll(c *fiber.Ctx) error {
	rentals, err := h.service.GetAllRentals()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   rentals,
	})
}

// UpdateRentalStatusRequest represents the request body for a status update.
type UpdateRentalStatusRequest struct {
	RentalID string `json:"rental_id" validate:"required"`
	Status   string `json:"status" validate:"required"`
}

// HandleUpdateStatus moves a rental to the requested status.
func (h *RentalHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req UpdateRentalStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "rental_id and status are required",
		})
	}

	rental, err := h.service.UpdateRentalStatus(req.RentalID, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   rental,
	})
}

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
