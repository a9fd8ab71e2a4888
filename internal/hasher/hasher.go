package hasher

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmptyPassword is returned when hashing an empty password.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrInvalidCost is returned for a bcrypt cost outside [bcrypt.MinCost, bcrypt.MaxCost].
	ErrInvalidCost = errors.New("invalid bcrypt cost")
)

// Hasher produces salted bcrypt hashes and verifies passwords against them.
// It holds no mutable state and is safe for concurrent use.
type Hasher struct {
	cost int
}

// Opt configures a Hasher.
type Opt func(*Hasher)

// ValidateCost reports ErrInvalidCost when cost is outside [bcrypt.MinCost, bcrypt.MaxCost].
func ValidateCost(cost int) error {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return fmt.Errorf("%w: %d, want %d..%d", ErrInvalidCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// WithCost sets the bcrypt cost. Out of range values leave bcrypt.DefaultCost in place.
func WithCost(cost int) Opt {
	return func(h *Hasher) {
		if ValidateCost(cost) != nil {
			return
		}
		h.cost = cost
	}
}

// New creates a Hasher with bcrypt.DefaultCost unless overridden.
func New(opts ...Opt) *Hasher {
	h := &Hasher{cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash returns a bcrypt hash of password with a random salt embedded in it.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash. A malformed hash yields false.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
