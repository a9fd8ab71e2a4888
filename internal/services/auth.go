package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/repositories"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrValidationFailed   = errors.New("validation failed")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameAndEmail(ctx context.Context, username *string, email *string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username string, passwordHash string, email string) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenGenerator issues bearer tokens for a username.
type TokenGenerator interface {
	Generate(ctx context.Context, subject string) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	reader UserReader
	writer UserWriter
	hasher PasswordHasher
	jwt    TokenGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, hasher PasswordHasher, jwt TokenGenerator) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Register validates and stores a new user. It does not log the user in.
func (svc *AuthService) Register(ctx context.Context, username, password, email string) error {
	log := logger.FromContext(ctx)

	signup := models.NewSignup(username, email, password)
	if err := signup.Validate(); err != nil {
		log.Infow("signup rejected", "username", signup.Username, "reason", err)
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	user, err := svc.reader.GetByUsernameAndEmail(ctx, &signup.Username, &signup.Email)
	if err != nil {
		log.Errorw("failed to check user exists", "err", err)
		return err
	}
	if user != nil {
		log.Infow("user already exists", "username", signup.Username)
		return ErrUserAlreadyExists
	}

	hashedPassword, err := svc.hasher.Hash(signup.Password)
	if err != nil {
		log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.Save(ctx, signup.Username, hashedPassword, signup.Email); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUser) {
			log.Infow("user already exists", "username", signup.Username)
			return ErrUserAlreadyExists
		}
		log.Errorw("failed to save user", "err", err)
		return err
	}

	return nil
}

// Login authenticates a user and returns a token whose subject is the username.
// The username is matched exactly as stored, apart from surrounding whitespace.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	user, err := svc.reader.GetByUsernameAndEmail(ctx, &username, nil)
	if err != nil {
		log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		log.Infow("login failed: user does not exist", "username", username)
		return "", ErrInvalidCredentials
	}

	if !svc.hasher.Verify(password, user.PasswordHash) {
		log.Infow("login failed: wrong password", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.Username)
	if err != nil {
		log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}
