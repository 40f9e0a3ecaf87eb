// Package service implements account registration and login.
package service

import (
	"context"
	"time"

	"samakicash_backend/internal/auth/password"
	"samakicash_backend/internal/auth/repository"
	"samakicash_backend/internal/events"
	"samakicash_backend/platform/apperr"
	"samakicash_backend/platform/config"
	"samakicash_backend/platform/phone"
	"samakicash_backend/platform/sanitize"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Valid account types. Fishers and sellers offer catches; buyers are
// matchmaking candidates.
const (
	UserTypeFisher = "fisher"
	UserTypeSeller = "seller"
	UserTypeBuyer  = "buyer"
)

var validUserTypes = map[string]bool{
	UserTypeFisher: true,
	UserTypeSeller: true,
	UserTypeBuyer:  true,
}

// Registration is the input for creating an account.
type Registration struct {
	Email        string
	Password     string
	UserType     string
	Name         string
	Phone        string
	Organization string
	Location     string
}

// Session is the result of a successful login.
type Session struct {
	UserID      uuid.UUID
	UserType    string
	AccessToken string
}

// Service implements registration and login on top of the accounts
// repository.
type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	bus  events.Bus
}

func New(repo *repository.Repository, cfg config.AuthServiceConfig, bus events.Bus) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus}
}

// Register creates an account. The phone number, when present, is
// normalized to E.164 before storage. Publishes UserRegistered.
func (s *Service) Register(ctx context.Context, reg Registration) (repository.User, error) {
	if reg.UserType == "" {
		reg.UserType = UserTypeFisher
	}
	if !validUserTypes[reg.UserType] {
		return repository.User{}, apperr.Validation("user_type must be fisher, seller or buyer")
	}

	reg.Phone = phone.NormalizeE164(reg.Phone)
	reg.Name = sanitize.Text(reg.Name)
	reg.Organization = sanitize.Text(reg.Organization)
	reg.Location = sanitize.Text(reg.Location)

	hash, err := password.Hash(reg.Password)
	if err != nil {
		return repository.User{}, err
	}

	user, err := s.repo.CreateUser(ctx, repository.NewUser{
		Email:        reg.Email,
		PasswordHash: hash,
		UserType:     reg.UserType,
		Name:         reg.Name,
		Phone:        reg.Phone,
		Organization: reg.Organization,
		Location:     reg.Location,
	})
	if err != nil {
		return repository.User{}, err
	}

	s.bus.Publish(ctx, events.UserRegistered{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		UserType:  user.UserType,
	})

	return user, nil
}

// Login verifies credentials and issues a signed access token.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (Session, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return Session{}, apperr.Unauthorized("invalid credentials")
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return Session{}, apperr.Unauthorized("invalid credentials")
	}

	token, err := s.signAccessToken(user)
	if err != nil {
		return Session{}, err
	}

	return Session{
		UserID:      user.ID,
		UserType:    user.UserType,
		AccessToken: token,
	}, nil
}

func (s *Service) signAccessToken(user repository.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"user_type": user.UserType,
		"exp":       now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":       now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
