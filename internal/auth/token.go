package auth

import (
	"math"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// unixMilli is a NumericDate with millisecond precision.
// It is encoded as decimal seconds, e.g. 1700000000.123.
type unixMilli int64

func newUnixMilli(t time.Time) *unixMilli {
	ms := unixMilli(t.UnixMilli())

	return &ms
}

// MarshalJSON implements json.Marshaler.
func (u unixMilli) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(u)/1e3, 'f', -1, 64)), nil
}

// UnmarshalJSON implements json.Unmarshaler. Values are rounded to the nearest millisecond.
func (u *unixMilli) UnmarshalJSON(b []byte) error {
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return errors.Wrap(err, "numeric date")
	}

	*u = unixMilli(math.Round(f * 1e3))

	return nil
}

// Time returns u as time.Time.
func (u unixMilli) Time() time.Time {
	return time.UnixMilli(int64(u))
}

func (u *unixMilli) numericDate() *jwt.NumericDate {
	if u == nil {
		return nil
	}

	return &jwt.NumericDate{Time: u.Time()}
}

// tokenClaims are the claims of a bearer token.
type tokenClaims struct {
	Subject   string     `json:"sub"`
	IssuedAt  *unixMilli `json:"iat,omitempty"`
	ExpiresAt *unixMilli `json:"exp,omitempty"`
}

// GetExpirationTime implements jwt.Claims.
func (c tokenClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return c.ExpiresAt.numericDate(), nil
}

// GetIssuedAt implements jwt.Claims.
func (c tokenClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return c.IssuedAt.numericDate(), nil
}

// GetNotBefore implements jwt.Claims.
func (c tokenClaims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil //nolint:nilnil
}

// GetIssuer implements jwt.Claims.
func (c tokenClaims) GetIssuer() (string, error) {
	return "", nil
}

// GetSubject implements jwt.Claims.
func (c tokenClaims) GetSubject() (string, error) {
	return c.Subject, nil
}

// GetAudience implements jwt.Claims.
func (c tokenClaims) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces time.Now as time source.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

// TokenService issues and verifies HS256 bearer tokens.
// It holds no mutable state after construction and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenService creates a TokenService signing with secret. Tokens expire ttl after issue.
func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	if ttl < time.Millisecond {
		return nil, ErrInvalidTTL
	}

	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	// expiry is checked by Verify at millisecond precision
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	return s, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue returns a signed token for userID.
func (s *TokenService) Issue(userID uint64) (string, error) {
	issuedAt := time.UnixMilli(s.now().UnixMilli())

	claims := tokenClaims{
		Subject:   strconv.FormatUint(userID, 10),
		IssuedAt:  newUnixMilli(issuedAt),
		ExpiresAt: newUnixMilli(issuedAt.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// Verify checks the token and returns its subject.
// It fails with ErrExpired for a correctly signed token with now >= exp
// and with ErrInvalidSignature for everything else.
func (s *TokenService) Verify(token string) (uint64, error) {
	var claims tokenClaims

	if _, err := s.parser.ParseWithClaims(token, &claims, s.key); err != nil {
		return 0, errors.Wrap(ErrInvalidSignature, err.Error())
	}

	if claims.ExpiresAt == nil {
		return 0, errors.Wrap(ErrInvalidSignature, "token has no expiry")
	}

	if !s.now().Before(claims.ExpiresAt.Time()) {
		return 0, ErrExpired
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, errors.Wrap(ErrInvalidSignature, "subject is not a user id")
	}

	return userID, nil
}

func (s *TokenService) key(_ *jwt.Token) (interface{}, error) {
	return s.secret, nil
}
