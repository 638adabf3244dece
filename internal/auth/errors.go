package auth

import "errors"

var (
	// ErrInvalidSignature is returned by TokenService.Verify when a token was not signed with the
	// configured secret, uses another algorithm or cannot be decoded at all.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrExpired is returned by TokenService.Verify when the signature is valid but the token
	// reached its expiry time.
	ErrExpired = errors.New("token expired")

	// ErrUnauthorized is returned when a principal is required but missing, or when the
	// principal does not own the resource it tries to mutate.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the principal lacks every authority required by a route.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is wrapped by stores to signal a missing resource.
	ErrNotFound = errors.New("not found")

	// ErrMalformedCredentials is returned when email or password are missing at login or registration.
	ErrMalformedCredentials = errors.New("malformed credentials")

	// ErrBadCredentials is returned when the email is unknown or the password does not match.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrEmailExists is returned when registering an email that is already taken.
	ErrEmailExists = errors.New("email already registered")

	// ErrEmptySecret is returned when a TokenService is created without signing secret.
	ErrEmptySecret = errors.New("token signing secret can not be empty")

	// ErrInvalidTTL is returned when a TokenService is created with a ttl below one millisecond.
	ErrInvalidTTL = errors.New("token ttl must be at least one millisecond")

	// ErrUnknownHashAlgorithm is returned for a password algorithm other than bcrypt or argon2id.
	ErrUnknownHashAlgorithm = errors.New("unknown password hash algorithm")
)
