// Package rental serves the rental endpoints.
package rental

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/chatop/chatop-api/internal/auth"
	"github.com/chatop/chatop-api/internal/config"
	controller "github.com/chatop/chatop-api/internal/db/controller/rental"
	"github.com/chatop/chatop-api/internal/db/models"
	"github.com/chatop/chatop-api/internal/storage/image"
	"github.com/chatop/chatop-api/internal/web/handler"
	authmiddleware "github.com/chatop/chatop-api/internal/web/middleware/auth"
)

const (
	// Path is the route group of the rental endpoints.
	Path = handler.APIPath + "/rentals"

	// PictureField is the multipart field of the rental picture.
	PictureField = "picture"
)

// CreateRequest is the form of POST /api/rentals.
type CreateRequest struct {
	Name        string  `json:"name"        form:"name"        validate:"required,max=248"`
	Surface     float64 `json:"surface"     form:"surface"     validate:"gte=0"`
	Price       float64 `json:"price"       form:"price"       validate:"gte=0"`
	Description string  `json:"description" form:"description" validate:"max=2000"`
}

// UpdateRequest is the form of PUT /api/rentals/:id. Empty or zero fields keep their stored value.
type UpdateRequest struct {
	Name        string  `json:"name"        form:"name"        validate:"max=248"`
	Surface     float64 `json:"surface"     form:"surface"     validate:"gte=0"`
	Price       float64 `json:"price"       form:"price"       validate:"gte=0"`
	Description string  `json:"description" form:"description" validate:"max=2000"`
}

// ListResponse is the body of GET /api/rentals.
type ListResponse struct {
	Rentals []handler.RentalDto `json:"rentals"`
}

// Service is the rental handler service.
type Service struct {
	cfg    *config.Config
	db     *gorm.DB
	images *image.Store
	guard  auth.OwnershipGuard[*models.Rental]
}

var _ handler.Service = (*Service)(nil)

// Init registers the rental routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, _ *auth.Service) error {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return nil
	}

	images, err := image.New(cfg.Storage.UploadDirectory, cfg.Storage.PublicPath)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.db = db
	s.images = images
	s.guard = auth.NewOwnershipGuard(controller.Loader(db), controller.OwnerOf)

	app.Route(Path, func(r fiber.Router) {
		r.Get("", authmiddleware.RequireAuthenticated(), s.List)
		r.Get("/:id", authmiddleware.RequireAuthenticated(), s.Get)
		r.Post("", authmiddleware.RequireAuthenticated(), s.Create)
		r.Put("/:id", s.Update)
		r.Delete("/:id", authmiddleware.RequireRole(auth.RoleAdmin), s.Delete)
	})

	return nil
}

// List answers with every rental.
func (s *Service) List(c *fiber.Ctx) error {
	rentals, err := controller.GetAll(s.db.WithContext(c.UserContext()))
	if err != nil {
		return err
	}

	resp := ListResponse{Rentals: make([]handler.RentalDto, 0, len(rentals))}
	for i := range rentals {
		resp.Rentals = append(resp.Rentals, handler.NewRentalDto(&rentals[i], s.cfg.Webserver.URL))
	}

	return c.JSON(resp)
}

// Get answers with one rental.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	rental, err := controller.GetByID(s.db.WithContext(c.UserContext()), id)
	if err != nil {
		return err
	}

	return c.JSON(handler.NewRentalDto(rental, s.cfg.Webserver.URL))
}

// Create stores a rental owned by the request principal. The picture is optional.
func (s *Service) Create(c *fiber.Ctx) error {
	principal, ok := authmiddleware.Principal(c)
	if !ok {
		return auth.ErrUnauthorized
	}

	var req CreateRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	picture, err := s.savePicture(c)
	if err != nil {
		return err
	}

	rental := &models.Rental{
		Name:        strings.TrimSpace(req.Name),
		Surface:     req.Surface,
		Price:       req.Price,
		Picture:     picture,
		Description: req.Description,
		OwnerID:     principal.ID,
	}

	if err = controller.Create(s.db.WithContext(c.UserContext()), rental); err != nil {
		if picture != "" {
			if errRm := s.images.Remove(picture); errRm != nil {
				log.Error().Err(errRm).Str("picture", picture).Msg("can't remove picture of failed rental")
			}
		}

		return err
	}

	log.Info().Uint64("rental_id", rental.ID).Uint64("user_id", principal.ID).Msg("rental created")

	return c.Status(fiber.StatusCreated).JSON(handler.MessageResponse{Message: "Rental created"})
}

// Update changes a rental. Only its owner may do so.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	rental, _, err := s.guard.Check(c.UserContext(), id)
	if err != nil {
		return err
	}

	var req UpdateRequest
	if err = handler.Bind(c, &req); err != nil {
		return err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		rental.Name = name
	}

	if req.Surface > 0 {
		rental.Surface = req.Surface
	}

	if req.Price > 0 {
		rental.Price = req.Price
	}

	if req.Description != "" {
		rental.Description = req.Description
	}

	if err = controller.Update(s.db.WithContext(c.UserContext()), rental); err != nil {
		return err
	}

	return c.JSON(handler.MessageResponse{Message: "Rental updated"})
}

// Delete removes a rental.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	if err = controller.Delete(s.db.WithContext(c.UserContext()), id); err != nil {
		return err
	}

	return c.JSON(handler.MessageResponse{Message: "Rental deleted"})
}

// savePicture stores the uploaded picture. Requests without picture field give an empty path.
func (s *Service) savePicture(c *fiber.Ctx) (string, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return "", nil
	}

	fh, err := c.FormFile(PictureField)
	if err != nil {
		// no picture in the form
		return "", nil //nolint:nilerr
	}

	picture, err := s.images.Save(fh)
	if err != nil {
		if errors.Is(err, image.ErrEmptyFile) {
			return "", fmt.Errorf("%w: %s", handler.ErrInvalidRequest, err.Error())
		}

		return "", err
	}

	return picture, nil
}
