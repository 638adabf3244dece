// Package auth serves registration, login and the current user endpoint.
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	coreauth "github.com/chatop/chatop-api/internal/auth"
	"github.com/chatop/chatop-api/internal/config"
	"github.com/chatop/chatop-api/internal/web/handler"
	authmiddleware "github.com/chatop/chatop-api/internal/web/middleware/auth"
)

const (
	// Path is the route group of the auth endpoints.
	Path = handler.APIPath + "/auth"
)

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"     form:"name"     validate:"required,max=64"`
	Email    string `json:"email"    form:"email"    validate:"required,email,max=248"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Service is the auth handler service.
type Service struct {
	cfg         *config.Config
	authService *coreauth.Service
}

var _ handler.Service = (*Service)(nil)

// Init registers the auth routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *coreauth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return nil
	}

	s.cfg = cfg
	s.authService = authService

	app.Route(Path, func(r fiber.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
		r.Get("/me", authmiddleware.RequireAuthenticated(), s.Me)
	})

	return nil
}

// Register creates a USER account and answers with its token.
func (s *Service) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	token, _, err := s.authService.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(handler.TokenResponse{Token: token})
}

// Login answers with a token for valid credentials.
func (s *Service) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	token, err := s.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(handler.TokenResponse{Token: token})
}

// Me answers with the authenticated user.
func (s *Service) Me(c *fiber.Ctx) error {
	user, err := s.authService.Me(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(handler.NewUserDtoFromAuth(user))
}
