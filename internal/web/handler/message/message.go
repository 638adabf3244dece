// Package message serves the message endpoints.
package message

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/chatop/chatop-api/internal/auth"
	"github.com/chatop/chatop-api/internal/config"
	controller "github.com/chatop/chatop-api/internal/db/controller/message"
	"github.com/chatop/chatop-api/internal/db/controller/rental"
	"github.com/chatop/chatop-api/internal/db/controller/user"
	"github.com/chatop/chatop-api/internal/db/models"
	"github.com/chatop/chatop-api/internal/web/handler"
	authmiddleware "github.com/chatop/chatop-api/internal/web/middleware/auth"
)

const (
	// Path is the route group of the message endpoints.
	Path = handler.APIPath + "/messages"
)

// SendRequest is the body of POST /api/messages.
type SendRequest struct {
	Message  string `json:"message"   form:"message"   validate:"required,max=2000"`
	UserID   uint64 `json:"user_id"   form:"user_id"   validate:"required"`
	RentalID uint64 `json:"rental_id" form:"rental_id" validate:"required"`
}

// ListResponse is the body of GET /api/messages.
type ListResponse struct {
	Messages []handler.MessageDto `json:"messages"`
}

// Service is the message handler service.
type Service struct {
	db *gorm.DB
}

var _ handler.Service = (*Service)(nil)

// Init registers the message routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, _ *auth.Service) error {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return nil
	}

	s.db = db

	management := authmiddleware.RequireRole(auth.RoleAdmin, auth.RoleManager)

	app.Route(Path, func(r fiber.Router) {
		r.Post("", authmiddleware.RequireAuthenticated(), s.Send)
		r.Get("", management, s.List)
		r.Get("/:id", management, s.Get)
		r.Delete("/:id", authmiddleware.RequireRole(auth.RoleAdmin), s.Delete)
	})

	return nil
}

// Send stores a message about a rental.
func (s *Service) Send(c *fiber.Ctx) error {
	var req SendRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	// messages are always sent as the caller
	if principal, ok := authmiddleware.Principal(c); !ok || principal.ID != req.UserID {
		log.Warn().Uint64("user_id", req.UserID).Msg("message sender is not the caller")
		return auth.ErrForbidden
	}

	db := s.db.WithContext(c.UserContext())

	if _, err := user.GetByID(db, req.UserID); err != nil {
		return err
	}

	if _, err := rental.GetByID(db, req.RentalID); err != nil {
		return err
	}

	msg := &models.Message{Message: req.Message, UserID: req.UserID, RentalID: req.RentalID}
	if err := controller.Create(db, msg); err != nil {
		return err
	}

	log.Debug().Uint64("message_id", msg.ID).Uint64("rental_id", msg.RentalID).Msg("message stored")

	return c.Status(fiber.StatusCreated).JSON(handler.MessageResponse{Message: "Message send with success"})
}

// List answers with every message.
func (s *Service) List(c *fiber.Ctx) error {
	messages, err := controller.GetAll(s.db.WithContext(c.UserContext()))
	if err != nil {
		return err
	}

	resp := ListResponse{Messages: make([]handler.MessageDto, 0, len(messages))}
	for i := range messages {
		resp.Messages = append(resp.Messages, handler.NewMessageDto(&messages[i]))
	}

	return c.JSON(resp)
}

// Get answers with one message.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	msg, err := controller.GetByID(s.db.WithContext(c.UserContext()), id)
	if err != nil {
		return err
	}

	return c.JSON(handler.NewMessageDto(msg))
}

// Delete removes a message.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	if err = controller.Delete(s.db.WithContext(c.UserContext()), id); err != nil {
		return err
	}

	return c.JSON(handler.MessageResponse{Message: "Message deleted"})
}
