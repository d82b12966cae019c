package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"securecheck-api/models"

	"gorm.io/gorm"
)

const OfficerRole = "officer"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// OfficerService owns officer accounts in the users table.
type OfficerService struct {
	db   *gorm.DB
	auth *AuthService
}

func NewOfficerService(db *gorm.DB, auth *AuthService) *OfficerService {
	return &OfficerService{db: db, auth: auth}
}

// Session is an officer together with a freshly issued token.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register enrols a new officer. Emails compare case-insensitively.
func (s *OfficerService) Register(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if taken, err := s.exists(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	officer := models.User{Email: email, Password: hash, Role: OfficerRole}
	if err := s.db.WithContext(ctx).Create(&officer).Error; err != nil {
		// A concurrent registration can win between the check and the insert.
		if taken, _ := s.exists(ctx, email); taken {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create officer: %w", err)
	}
	return s.session(officer)
}

// Login checks credentials. Unknown emails and wrong passwords both yield
// ErrInvalidCredentials.
func (s *OfficerService) Login(ctx context.Context, email, password string) (*Session, error) {
	var officer models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&officer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("look up officer: %w", err)
	}
	if !s.auth.CheckPassword(officer.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.session(officer)
}

func (s *OfficerService) exists(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, fmt.Errorf("look up officer: %w", err)
	}
	return n > 0, nil
}

func (s *OfficerService) session(officer models.User) (*Session, error) {
	token, err := s.auth.GenerateToken(officer.ID, officer.Email, officer.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: token, User: officer}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
