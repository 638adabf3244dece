// Package user serves the user endpoints.
package user

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/chatop/chatop-api/internal/auth"
	"github.com/chatop/chatop-api/internal/config"
	controller "github.com/chatop/chatop-api/internal/db/controller/user"
	"github.com/chatop/chatop-api/internal/db/models"
	"github.com/chatop/chatop-api/internal/web/handler"
	authmiddleware "github.com/chatop/chatop-api/internal/web/middleware/auth"
)

const (
	// Path is the route group of the user endpoints.
	Path = handler.APIPath + "/user"
)

// UpdateRequest is the body of PUT /api/user/:id.
type UpdateRequest struct {
	Name string `json:"name" form:"name" validate:"required,max=64"`
}

// ListResponse is the body of GET /api/user.
type ListResponse struct {
	Users []handler.UserDto `json:"users"`
}

// Service is the user handler service.
type Service struct {
	db    *gorm.DB
	guard auth.OwnershipGuard[*models.User]
}

var _ handler.Service = (*Service)(nil)

// Init registers the user routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, _ *auth.Service) error {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return nil
	}

	s.db = db
	s.guard = auth.NewOwnershipGuard(
		func(ctx context.Context, id uint64) (*models.User, error) {
			return controller.GetByID(db.WithContext(ctx), id)
		},
		func(u *models.User) uint64 { return u.ID },
	)

	app.Route(Path, func(r fiber.Router) {
		r.Get("", authmiddleware.RequireRole(auth.RoleAdmin, auth.RoleManager), s.List)
		r.Get("/:id", authmiddleware.RequireAuthenticated(), s.Get)
		r.Put("/:id", s.Update)
		r.Delete("/:id", authmiddleware.RequireRole(auth.RoleAdmin), s.Delete)
	})

	return nil
}

// List answers with every user.
func (s *Service) List(c *fiber.Ctx) error {
	users, err := controller.GetAll(s.db.WithContext(c.UserContext()))
	if err != nil {
		return err
	}

	resp := ListResponse{Users: make([]handler.UserDto, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, handler.NewUserDto(&users[i]))
	}

	return c.JSON(resp)
}

// Get answers with one user.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	user, err := controller.GetByID(s.db.WithContext(c.UserContext()), id)
	if err != nil {
		return err
	}

	return c.JSON(handler.NewUserDto(user))
}

// Update renames the user. Only the user itself may do so.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	if _, _, err = s.guard.Check(c.UserContext(), id); err != nil {
		return err
	}

	var req UpdateRequest
	if err = handler.Bind(c, &req); err != nil {
		return err
	}

	if _, err = controller.UpdateName(s.db.WithContext(c.UserContext()), id, req.Name); err != nil {
		return err
	}

	return c.JSON(handler.MessageResponse{Message: "User updated"})
}

// Delete removes a user.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	if err = controller.Delete(s.db.WithContext(c.UserContext()), id); err != nil {
		return err
	}

	log.Info().Uint64("deleted_user_id", id).Msg("user deleted")

	return c.JSON(handler.MessageResponse{Message: "User deleted"})
}
