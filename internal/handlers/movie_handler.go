package handlers

import (
	"fmt"

	"cinerent/internal/middleware"
	"cinerent/internal/models"
	"cinerent/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MovieHandler handles HTTP requests for the movie catalog.
type MovieHandler struct {
	service  *services.MovieService
	validate *validator.Validate
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(service *services.MovieService) *MovieHandler {
	return &MovieHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the movie routes. The router is expected to already
// require authentication; catalog mutations additionally require staff.
func (h *MovieHandler) RegisterRoutes(router fiber.Router) {
	movieRoutes := router.Group("/movies")
	// "/search" must precede "/:id" so it is not captured as an id.
	movieRoutes.Get("/search", middleware.StaffRequired(), h.HandleSearch)
	movieRoutes.Get("/", h.HandleList)
	movieRoutes.Get("/:id", h.HandleGetByID)
	movieRoutes.Post("/", middleware.StaffRequired(), h.HandleCreate)
	movieRoutes.Put("/:id/availability", middleware.StaffRequired(), h.HandleSetAvailability)
	movieRoutes.Put("/:id", middleware.StaffRequired(), h.HandleUpdate)
	movieRoutes.Delete("/:id", middleware.StaffRequired(), h.HandleDelete)
}

// HandleList retrieves one page of the catalog.
func (h *MovieHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	genre := c.Query("genre")

	result, err := h.service.ListMovies(page, limit, genre)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   result,
	})
}

// HandleSearch finds movies by title substring and/or genre.
func (h *MovieHandler) HandleSearch(c *fiber.Ctx) error {
	movies, err := h.service.SearchMovies(c.Query("query"), c.Query("genre"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   movies,
	})
}

// HandleGetByID retrieves a single movie.
func (h *MovieHandler) HandleGetByID(c *fiber.Ctx) error {
	movie, err := h.service.GetMovieByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   movie,
	})
}

// HandleCreate creates a new movie.
func (h *MovieHandler) HandleCreate(c *fiber.Ctx) error {
	var movie models.Movie
	if err := c.BodyParser(&movie); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(movie); err != nil {
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

	if err := h.service.CreateMovie(&movie); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   movie,
	})
}

// HandleUpdate updates an existing movie's fields.
func (h *MovieHandler) HandleUpdate(c *fiber.Ctx) error {
	movie, err := h.service.GetMovieByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	if err := c.BodyParser(movie); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	movie.ID = c.Params("id") // body must not move the record

	if err := h.service.UpdateMovie(movie); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   movie,
	})
}

// HandleDelete deletes a movie.
func (h *MovieHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteMovie(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Movie deleted successfully",
	})
}

// AvailabilityRequest represents the request body for the availability toggle.
type AvailabilityRequest struct {
	Status string `json:"status" validate:"required,oneof=available unavailable"`
}

// HandleSetAvailability toggles a movie between available and unavailable.
func (h *MovieHandler) HandleSetAvailability(c *fiber.Ctx) error {
	var req AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status must be 'available' or 'unavailable'",
		})
	}

	movie, err := h.service.SetAvailability(c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   movie,
	})
}
