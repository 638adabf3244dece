// Package auth provides stateless authentication and authorization for the application.
//
// # Tokens
//
// TokenService issues and verifies HS256 signed JWTs. A token carries the user id
// as subject together with issue and expiry timestamps in millisecond precision.
// Nothing about a token is stored on the server: there is no refresh flow and no
// revocation list, so a token stays valid until it expires.
//
// # Authentication
//
// Authenticator resolves an Authorization header into a Principal:
//   - the header must start with the literal "Bearer " prefix
//   - the token must verify against the configured secret and must not be expired
//   - the subject must resolve to a user in the CredentialStore
//
// Any failure leaves the request anonymous. The authenticator never rejects a
// request; rejection is the job of the guards.
//
// # Authorization
//
// Roles map to a fixed set of permissions (see PermissionsOf and AuthoritiesOf).
// Authorize implements the role gate: a missing principal yields ErrUnauthorized,
// a principal without any of the required authorities yields ErrForbidden.
//
// OwnershipGuard implements the ownership gate used by mutating endpoints. It
// checks, in order, that a principal exists (ErrUnauthorized), that the resource
// exists (ErrNotFound) and that the principal owns it (ErrUnauthorized).
//
// # Request scope
//
// The principal travels in a context.Context (WithPrincipal, CurrentPrincipal).
// There is no global security state.
package auth
