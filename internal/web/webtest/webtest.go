// Package webtest wires a fiber app with real authentication on an in-memory database for handler tests.
package webtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/chatop/chatop-api/internal/auth"
	"github.com/chatop/chatop-api/internal/config"
	"github.com/chatop/chatop-api/internal/db/controller/user"
	"github.com/chatop/chatop-api/internal/db/dbtest"
	"github.com/chatop/chatop-api/internal/db/models"
	"github.com/chatop/chatop-api/internal/web/handler"
	authmiddleware "github.com/chatop/chatop-api/internal/web/middleware/auth"
)

const (
	// Secret signs the test tokens.
	Secret = "webtest-secret-0123456789abcdef0123"

	// Password is the plaintext password of users created by CreateUser.
	Password = "password"
)

// Env is a ready to use test environment.
type Env struct {
	Config *config.Config
	DB     *gorm.DB
	Auth   *auth.Service
	App    *fiber.App
}

// New creates an Env whose app already runs the authentication middleware.
func New(t testing.TB) *Env {
	t.Helper()

	cfg := &config.Config{
		Webserver: config.Webserver{
			Port:          3001,
			URL:           "http://localhost:3001",
			ShutDownTime:  1,
			CheckAliveURI: "/checkalive",
		},
		Auth: config.Auth{
			JWT: config.JWT{SecretKey: Secret, Expiration: time.Hour.Milliseconds()},
		},
		Storage: config.Storage{
			UploadDirectory: t.TempDir(),
			PublicPath:      "/images",
		},
	}

	db := dbtest.New(t)

	tokens, err := auth.NewTokenService(cfg.Auth.JWT.SecretKey, cfg.Auth.JWT.TTL())
	require.NoError(t, err)

	authService := auth.NewService(tokens, auth.BcryptHasher{Cost: bcrypt.MinCost}, user.NewStore(db))

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	app.Use(authmiddleware.Middleware(authService.Authenticator()))

	return &Env{Config: cfg, DB: db, Auth: authService, App: app}
}

// CreateUser stores a user with Password as password.
func (e *Env) CreateUser(t testing.TB, name, email string, role auth.Role) models.User {
	t.Helper()

	hash, err := e.Auth.Hasher().Encode(Password)
	require.NoError(t, err)

	return dbtest.CreateUser(t, e.DB, models.User{Name: name, Email: email, Password: hash, Role: role})
}

// Token issues a bearer token for userID.
func (e *Env) Token(t testing.TB, userID uint64) string {
	t.Helper()

	token, err := e.Auth.Tokens().Issue(userID)
	require.NoError(t, err)

	return token
}


// NewRequest builds a request with an optional bearer token and content type.
// It does not need a testing.TB and may be used from any goroutine.
func NewRequest(method, path, token, contentType string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}

	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth.BearerPrefix+token)
	}

	return req
}

// Do sends a request with an optional bearer token.
func (e *Env) Do(t testing.TB, method, path, token, contentType string, body io.Reader) *http.Response {
	t.Helper()

	resp, err := e.App.Test(NewRequest(method, path, token, contentType, body), -1)
	require.NoError(t, err)

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

// JSON sends body encoded as JSON. A nil body sends no content.
func (e *Env) JSON(t testing.TB, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	if body == nil {
		return e.Do(t, method, path, token, "", nil)
	}

	b, err := json.Marshal(body)
	require.NoError(t, err)

	return e.Do(t, method, path, token, fiber.MIMEApplicationJSON, bytes.NewReader(b))
}

// Decode reads a JSON response body into dst.
func Decode(t testing.TB, resp *http.Response, dst interface{}) {
	t.Helper()

	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}
