package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/scoutline/scoutline-api/internal/apperrors"
	"github.com/scoutline/scoutline-api/internal/models"
	"github.com/scoutline/scoutline-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const sessionLifetime = 72 * time.Hour

// AuthService checks credentials and issues session tokens for both user
// kinds. Which table is consulted depends on the requested user type.
type AuthService struct {
	Candidates repository.CandidateRepository
	Users      repository.CompanyUserRepository
	Secret     []byte
}

func NewAuthService(candidates repository.CandidateRepository, users repository.CompanyUserRepository, secret string) *AuthService {
	return &AuthService{Candidates: candidates, Users: users, Secret: []byte(secret)}
}

// Session is a successful login result.
type Session struct {
	Token    string            `json:"token"`
	UserID   uint              `json:"user_id"`
	UserType models.SenderType `json:"user_type"`
	Name     string            `json:"name"`
}

// Login verifies the credentials and returns a signed HS256 token. Wrong
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, userType, email, password string) (*Session, error) {
	var (
		id     uint
		name   string
		hashed string
	)
	switch models.SenderType(userType) {
	case models.SenderCandidate:
		c, err := s.Candidates.FindCandidateByEmail(ctx, email)
		if err != nil {
			return nil, apperrors.ErrUnauthenticated
		}
		id, name, hashed = c.ID, c.LastName+" "+c.FirstName, c.Password
	case models.SenderCompany:
		u, err := s.Users.FindCompanyUserByEmail(ctx, email)
		if err != nil {
			return nil, apperrors.ErrUnauthenticated
		}
		id, name, hashed = u.ID, u.Name, u.Password
	default:
		return nil, apperrors.Validation("userType must be candidate or company")
	}

	if bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	claims := jwt.MapClaims{
		"user_id":   id,
		"user_type": userType,
		"exp":       time.Now().Add(sessionLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return nil, apperrors.Persistence("sign session token", err)
	}

	return &Session{
		Token:    signed,
		UserID:   id,
		UserType: models.SenderType(userType),
		Name:     name,
	}, nil
}

// HashPassword wraps bcrypt for the seeding/registration paths.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}
