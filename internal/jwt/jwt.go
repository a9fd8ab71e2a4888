package jwt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiration is the token lifetime used when no positive TTL is given.
const DefaultExpiration = 15 * time.Minute

var (
	// ErrInvalidToken is returned for every verification failure: bad signature,
	// malformed token, missing subject or expired token are not told apart.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrEmptySecretKey is returned when the signing secret was never configured.
	ErrEmptySecretKey = errors.New("jwt secret key is empty")
)

// JWT issues and verifies HS256 bearer tokens whose subject is a username.
type JWT struct {
	secretKey []byte
	exp       time.Duration
	now       func() time.Time
}

// Opt configures a JWT instance.
type Opt func(*JWT)

// WithSecretKey sets the process-wide signing secret.
func WithSecretKey(secretKey string) Opt {
	return func(j *JWT) {
		j.secretKey = []byte(secretKey)
	}
}

// WithExpiration sets the TTL used by Generate.
func WithExpiration(exp time.Duration) Opt {
	return func(j *JWT) {
		j.exp = exp
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Opt {
	return func(j *JWT) {
		j.now = now
	}
}

// New creates a new JWT instance
func New(opts ...Opt) *JWT {
	j := &JWT{
		exp: DefaultExpiration,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Generate issues a token for subject using the configured expiration.
func (j *JWT) Generate(ctx context.Context, subject string) (string, error) {
	return j.Issue(ctx, subject, j.exp)
}

// Issue signs {sub, iat, exp=iat+ttl}. iat is the current time truncated to the
// whole second, since NumericDate claims carry no fraction. A non-positive ttl
// falls back to DefaultExpiration.
func (j *JWT) Issue(ctx context.Context, subject string, ttl time.Duration) (string, error) {
	if len(j.secretKey) == 0 {
		return "", ErrEmptySecretKey
	}
	if ttl <= 0 {
		ttl = DefaultExpiration
	}

	now := j.now().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// GetSubject verifies tokenString and returns its subject claim.
// Any failure is reported as ErrInvalidToken.
func (j *JWT) GetSubject(ctx context.Context, tokenString string) (string, error) {
	if len(j.secretKey) == 0 {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, ErrEmptySecretKey)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: subject not found in token", ErrInvalidToken)
	}

	return claims.Subject, nil
}

// GetTokenFromRequest extracts the token string from the Authorization header
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
