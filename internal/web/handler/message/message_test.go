package message

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatop/chatop-api/internal/auth"
	"github.com/chatop/chatop-api/internal/db/dbtest"
	"github.com/chatop/chatop-api/internal/db/models"
	"github.com/chatop/chatop-api/internal/web/handler"
	"github.com/chatop/chatop-api/internal/web/webtest"
)

type fixture struct {
	env                                   *webtest.Env
	member, manager                       models.User
	rental                                models.Rental
	memberToken, managerToken, adminToken string
}

func setup(t *testing.T) fixture {
	t.Helper()

	env := webtest.New(t)
	h := Service{}
	require.NoError(t, h.Init(env.App, env.Config, env.DB, env.Auth))

	member := env.CreateUser(t, "Member", "user@mail.com", auth.RoleUser)
	manager := env.CreateUser(t, "Manager", "manager@mail.com", auth.RoleManager)
	admin := env.CreateUser(t, "Admin", "admin@mail.com", auth.RoleAdmin)
	rental := dbtest.CreateRental(t, env.DB, models.Rental{Name: "Loft", OwnerID: manager.ID})

	return fixture{
		env:          env,
		member:       member,
		manager:      manager,
		rental:       rental,
		memberToken:  env.Token(t, member.ID),
		managerToken: env.Token(t, manager.ID),
		adminToken:   env.Token(t, admin.ID),
	}
}

func TestSend(t *testing.T) {
	f := setup(t)

	testCases := []struct {
		name     string
		token    string
		body     fiber.Map
		expected int
	}{
		{
			name:     "anonymous",
			body:     fiber.Map{"message": "hi", "user_id": f.member.ID, "rental_id": f.rental.ID},
			expected: fiber.StatusUnauthorized,
		},
		{
			name:     "unknown rental",
			token:    f.memberToken,
			body:     fiber.Map{"message": "hi", "user_id": f.member.ID, "rental_id": 999},
			expected: fiber.StatusNotFound,
		},
		{
			name:     "unknown sender",
			token:    f.memberToken,
			body:     fiber.Map{"message": "hi", "user_id": 999, "rental_id": f.rental.ID},
			expected: fiber.StatusForbidden,
		},
		{
			name:     "sent as another user",
			token:    f.memberToken,
			body:     fiber.Map{"message": "hi", "user_id": f.manager.ID, "rental_id": f.rental.ID},
			expected: fiber.StatusForbidden,
		},
		{
			name:     "empty message",
			token:    f.memberToken,
			body:     fiber.Map{"message": "", "user_id": f.member.ID, "rental_id": f.rental.ID},
			expected: fiber.StatusBadRequest,
		},
		{
			name:     "sent",
			token:    f.memberToken,
			body:     fiber.Map{"message": "Is it still available?", "user_id": f.member.ID, "rental_id": f.rental.ID},
			expected: fiber.StatusCreated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.env.JSON(t, fiber.MethodPost, Path, tc.token, tc.body)
			assert.Equal(t, tc.expected, resp.StatusCode)
		})
	}
}

func TestManagement(t *testing.T) {
	f := setup(t)

	resp := f.env.JSON(t, fiber.MethodPost, Path, f.memberToken, fiber.Map{
		"message": "hello", "user_id": f.member.ID, "rental_id": f.rental.ID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var sent handler.MessageResponse
	webtest.Decode(t, resp, &sent)
	assert.Equal(t, "Message send with success", sent.Message)

	resp = f.env.JSON(t, fiber.MethodGet, Path, f.memberToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = f.env.JSON(t, fiber.MethodGet, Path, f.managerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list ListResponse
	webtest.Decode(t, resp, &list)
	require.Len(t, list.Messages, 1)
	assert.Equal(t, "hello", list.Messages[0].Message)

	path := fmt.Sprintf("%s/%d", Path, list.Messages[0].ID)

	resp = f.env.JSON(t, fiber.MethodGet, path, f.managerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var dto handler.MessageDto
	webtest.Decode(t, resp, &dto)
	assert.Equal(t, f.rental.ID, dto.RentalID)

	resp = f.env.JSON(t, fiber.MethodDelete, path, f.managerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = f.env.JSON(t, fiber.MethodDelete, path, f.adminToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = f.env.JSON(t, fiber.MethodGet, path, f.adminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
