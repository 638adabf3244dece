// Package auth provides authentication middleware for the web application.
//
// Middleware reads the Authorization header of each request and stores the
// resolved principal in the request's user context. It fails open: a missing,
// malformed or expired token leaves the request anonymous and it continues
// down the chain.
//
// The Require* handlers are route gates:
//   - RequireAuthenticated answers 401 for anonymous requests
//   - RequireAuthority and RequireRole answer 401 for anonymous and 403 for
//     authenticated requests lacking every listed authority
//
// Usage:
//
//	app.Use(authmiddleware.Middleware(authService.Authenticator()))
//	app.Delete("/api/user/:id", authmiddleware.RequireRole(auth.RoleAdmin), h)
//
// Gate errors are returned to fiber, so the app needs handler.ErrorHandler
// configured to turn them into status codes.
package auth
