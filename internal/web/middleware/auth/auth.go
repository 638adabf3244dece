package auth

import (
	"github.com/gofiber/fiber/v2"

	coreauth "github.com/chatop/chatop-api/internal/auth"
)

// Middleware resolves the bearer token of every request into the request context.
// It never rejects a request; gates further down decide.
func Middleware(authenticator *coreauth.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(authenticator.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization)))

		return c.Next()
	}
}

// RequireAuthenticated rejects anonymous requests with 401.
func RequireAuthenticated() fiber.Handler {
	return RequireAuthority()
}

// RequireAuthority rejects requests whose principal holds none of authorities.
// Anonymous requests get 401, authenticated ones 403.
func RequireAuthority(authorities ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := coreauth.Authorize(c.UserContext(), authorities...); err != nil {
			return err
		}

		return c.Next()
	}
}

// RequireRole is RequireAuthority for the ROLE_ tags of roles.
func RequireRole(roles ...coreauth.Role) fiber.Handler {
	authorities := make([]string, 0, len(roles))
	for _, r := range roles {
		authorities = append(authorities, r.Authority())
	}

	return RequireAuthority(authorities...)
}

// Principal returns the authenticated principal of the request.
func Principal(c *fiber.Ctx) (coreauth.Principal, bool) {
	return coreauth.CurrentPrincipal(c.UserContext())
}
