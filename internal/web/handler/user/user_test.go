package user

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatop/chatop-api/internal/auth"
	controller "github.com/chatop/chatop-api/internal/db/controller/user"
	"github.com/chatop/chatop-api/internal/web/handler"
	"github.com/chatop/chatop-api/internal/web/webtest"
)

type fixture struct {
	env                                   *webtest.Env
	memberID, adminID, managerID          uint64
	memberToken, adminToken, managerToken string
}

func setup(t *testing.T) fixture {
	t.Helper()

	env := webtest.New(t)
	h := Service{}
	require.NoError(t, h.Init(env.App, env.Config, env.DB, env.Auth))

	member := env.CreateUser(t, "Member", "user@mail.com", auth.RoleUser)
	admin := env.CreateUser(t, "Admin", "admin@mail.com", auth.RoleAdmin)
	manager := env.CreateUser(t, "Manager", "manager@mail.com", auth.RoleManager)

	return fixture{
		env:          env,
		memberID:     member.ID,
		adminID:      admin.ID,
		managerID:    manager.ID,
		memberToken:  env.Token(t, member.ID),
		adminToken:   env.Token(t, admin.ID),
		managerToken: env.Token(t, manager.ID),
	}
}

func TestList(t *testing.T) {
	f := setup(t)

	testCases := []struct {
		name     string
		token    string
		expected int
	}{
		{name: "anonymous", expected: fiber.StatusUnauthorized},
		{name: "user", token: f.memberToken, expected: fiber.StatusForbidden},
		{name: "manager", token: f.managerToken, expected: fiber.StatusOK},
		{name: "admin", token: f.adminToken, expected: fiber.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.env.JSON(t, fiber.MethodGet, Path, tc.token, nil)
			require.Equal(t, tc.expected, resp.StatusCode)

			if tc.expected == fiber.StatusOK {
				var list ListResponse
				webtest.Decode(t, resp, &list)
				assert.Len(t, list.Users, 3)
			}
		})
	}
}

func TestGet(t *testing.T) {
	f := setup(t)

	resp := f.env.JSON(t, fiber.MethodGet, fmt.Sprintf("%s/%d", Path, f.adminID), f.memberToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var dto handler.UserDto
	webtest.Decode(t, resp, &dto)
	assert.Equal(t, "admin@mail.com", dto.Email)

	resp = f.env.JSON(t, fiber.MethodGet, Path+"/999", f.memberToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = f.env.JSON(t, fiber.MethodGet, Path+"/abc", f.memberToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = f.env.JSON(t, fiber.MethodGet, fmt.Sprintf("%s/%d", Path, f.adminID), "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateOwnership(t *testing.T) {
	f := setup(t)
	memberPath := fmt.Sprintf("%s/%d", Path, f.memberID)
	body := fiber.Map{"name": "Renamed"}

	testCases := []struct {
		name     string
		path     string
		token    string
		body     fiber.Map
		expected int
	}{
		{name: "anonymous", path: memberPath, body: body, expected: fiber.StatusUnauthorized},
		{name: "other user", path: memberPath, token: f.managerToken, body: body, expected: fiber.StatusUnauthorized},
		{name: "admin is not owner", path: memberPath, token: f.adminToken, body: body, expected: fiber.StatusUnauthorized},
		{name: "missing user", path: Path + "/999", token: f.memberToken, body: body, expected: fiber.StatusNotFound},
		{name: "empty name", path: memberPath, token: f.memberToken, body: fiber.Map{"name": ""}, expected: fiber.StatusBadRequest},
		{name: "owner", path: memberPath, token: f.memberToken, body: body, expected: fiber.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.env.JSON(t, fiber.MethodPut, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.expected, resp.StatusCode)
		})
	}

	stored, err := controller.GetByID(f.env.DB, f.memberID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Name)
}

func TestDelete(t *testing.T) {
	f := setup(t)
	memberPath := fmt.Sprintf("%s/%d", Path, f.memberID)

	resp := f.env.JSON(t, fiber.MethodDelete, memberPath, f.managerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = f.env.JSON(t, fiber.MethodDelete, memberPath, f.adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var msg handler.MessageResponse
	webtest.Decode(t, resp, &msg)
	assert.Equal(t, "User deleted", msg.Message)

	resp = f.env.JSON(t, fiber.MethodDelete, memberPath, f.adminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
