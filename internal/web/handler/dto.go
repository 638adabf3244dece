package handler

import (
	"strings"
	"time"

	"github.com/chatop/chatop-api/internal/auth"
	"github.com/chatop/chatop-api/internal/db/models"
)

// MessageResponse is the body of mutations without payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserDto is the public view of a user. The password hash is never exposed.
type UserDto struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      auth.Role `json:"role"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// RentalDto is the public view of a rental.
type RentalDto struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Surface     float64 `json:"surface"`
	Price       float64 `json:"price"`
	Picture     string  `json:"picture"`
	Description string  `json:"description"`
	OwnerID     uint64  `json:"owner_id"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// MessageDto is the public view of a message.
type MessageDto struct {
	ID        uint64 `json:"id"`
	Message   string `json:"message"`
	UserID    uint64 `json:"user_id"`
	RentalID  uint64 `json:"rental_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// FormatDate formats t with DateFormat. The zero time gives an empty string.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(DateFormat)
}

// NewUserDto maps a stored user.
func NewUserDto(u *models.User) UserDto {
	return UserDto{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: FormatDate(u.CreatedAt),
		UpdatedAt: FormatDate(u.UpdatedAt),
	}
}

// NewUserDtoFromAuth maps a credential store user.
func NewUserDtoFromAuth(u *auth.User) UserDto {
	return UserDto{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: FormatDate(u.CreatedAt),
		UpdatedAt: FormatDate(u.UpdatedAt),
	}
}

// NewRentalDto maps a stored rental. A relative picture path is prefixed with baseURL.
func NewRentalDto(r *models.Rental, baseURL string) RentalDto {
	picture := r.Picture
	if strings.HasPrefix(picture, "/") && baseURL != "" {
		picture = strings.TrimRight(baseURL, "/") + picture
	}

	return RentalDto{
		ID:          r.ID,
		Name:        r.Name,
		Surface:     r.Surface,
		Price:       r.Price,
		Picture:     picture,
		Description: r.Description,
		OwnerID:     r.OwnerID,
		CreatedAt:   FormatDate(r.CreatedAt),
		UpdatedAt:   FormatDate(r.UpdatedAt),
	}
}

// NewMessageDto maps a stored message.
func NewMessageDto(m *models.Message) MessageDto {
	return MessageDto{
		ID:        m.ID,
		Message:   m.Message,
		UserID:    m.UserID,
		RentalID:  m.RentalID,
		CreatedAt: FormatDate(m.CreatedAt),
		UpdatedAt: FormatDate(m.UpdatedAt),
	}
}
