package handlers

import (
	"cinerent/internal/middleware"
	"cinerent/internal/repositories"
	"cinerent/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MessageHandler forwards user messages to the operator and staff replies back
// to users. Unlike the workflow notifications, these sends are awaited: a
// transport failure fails the request.
type MessageHandler struct {
	notifier services.Notifier
	userRepo repositories.UserRepository
	validate *validator.Validate
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(notifier services.Notifier, userRepo repositories.UserRepository) *MessageHandler {
	return &MessageHandler{
		notifier: notifier,
		userRepo: userRepo,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the message routes. The router is expected to
// already require authentication.
func (h *MessageHandler) RegisterRoutes(router fiber.Router) {
	messageRoutes := router.Group("/messages")
	messageRoutes.Post("/", h.HandleSendToAdmin)
	messageRoutes.Post("/reply", middleware.StaffRequired(), h.HandleReply)
}

// MessageRequest represents the request body for a message to the operator.
type MessageRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// HandleSendToAdmin forwards the caller's message to the operator address.
func (h *MessageHandler) HandleSendToAdmin(c *fiber.Ctx) error {
	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Message content is required",
		})
	}

	userID, _ := c.Locals("user_id").(string)
	username := userID
	if user, err := h.userRepo.GetByID(userID); err == nil {
		username = user.Username
	}

	err := h.notifier.Send(services.NotifyAdminMessage, services.NotificationData{
		Username: username,
		Content:  req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Message sent to admin successfully",
	})
}

// ReplyRequest represents the request body for a staff reply.
type ReplyRequest struct {
	To      string `json:"to" validate:"required,email"`
	Content string `json:"content" validate:"required,max=5000"`
}

// HandleReply sends a staff reply to a user's address.
func (h *MessageHandler) HandleReply(c *fiber.Ctx) error {
	var req ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A valid recipient and content are required",
		})
	}

	err := h.notifier.Send(services.NotifyAdminReply, services.NotificationData{
		Recipient: req.To,
		Content:   req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Reply sent successfully",
	})
}
