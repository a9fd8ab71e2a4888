package services

//go:generate mockgen -source=identity.go -destination=identity_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

var (
	// ErrUnauthenticated covers invalid, expired and orphaned tokens alike.
	ErrUnauthenticated = errors.New("could not validate credentials")
	// ErrAccountDisabled is returned for a valid token whose user is disabled.
	ErrAccountDisabled = errors.New("inactive user")
)

// TokenVerifier validates a bearer token and returns its subject.
type TokenVerifier interface {
	GetSubject(ctx context.Context, tokenString string) (string, error)
}

// IdentityService turns a bearer token into the live user it was issued for.
// Nothing is cached: every call verifies the token and reads the user.
type IdentityService struct {
	reader   UserReader
	verifier TokenVerifier
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(reader UserReader, verifier TokenVerifier) *IdentityService {
	return &IdentityService{reader: reader, verifier: verifier}
}

// Resolve returns the user named by the token subject.
func (svc *IdentityService) Resolve(ctx context.Context, tokenString string) (*models.UserDB, error) {
	log := logger.FromContext(ctx)

	username, err := svc.verifier.GetSubject(ctx, tokenString)
	if err != nil {
		log.Infow("token rejected", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := svc.reader.GetByUsernameAndEmail(ctx, &username, nil)
	if err != nil {
		log.Errorw("failed to load token subject", "username", username, "err", err)
		return nil, err
	}
	if user == nil {
		log.Infow("token subject does not exist", "username", username)
		return nil, ErrUnauthenticated
	}

	return user, nil
}

// ResolveActive is Resolve plus a check that the account is not disabled.
func (svc *IdentityService) ResolveActive(ctx context.Context, tokenString string) (*models.UserDB, error) {
	user, err := svc.Resolve(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if user.Disabled {
		logger.FromContext(ctx).Infow("disabled user rejected", "username", user.Username)
		return nil, ErrAccountDisabled
	}
	return user, nil
}
