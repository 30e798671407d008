package services

import (
	"errors"
	"strings"
	"time"

	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/pkg/apperr"
	"github.com/Fenet-Ab/fen-one-shop/pkg/logger"
	"github.com/Fenet-Ab/fen-one-shop/repository"
	"github.com/Fenet-Ab/fen-one-shop/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration and login.
type AuthService struct {
	userRepo    *repository.UserRepository
	jwtSecret   string
	jwtTTL      time.Duration
	adminSecret string
	log         *zap.Logger
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration, adminSecret string) *AuthService {
	return &AuthService{
		userRepo:    repo,
		jwtSecret:   secret,
		jwtTTL:      ttl,
		adminSecret: adminSecret,
		log:         logger.Named("auth"),
	}
}

type RegisterIn struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	AdminSecret string `json:"adminSecret"`
}

type AuthResult struct {
	Token string       `json:"token"`
	Role  string       `json:"role"`
	User  *entity.User `json:"user"`
}

// Register creates a user. The account is ADMIN only when AdminSecret matches
// the configured secret; an empty configured secret never grants ADMIN.
func (s *AuthService) Register(in *RegisterIn) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return nil, apperr.New(apperr.Validation, "name, email and password are required")
	}

	count, err := s.userRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := entity.RoleUser
	if s.adminSecret != "" && in.AdminSecret == s.adminSecret {
		role = entity.RoleAdmin
	}

	user := &entity.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.Uint("userId", user.ID), zap.String("role", role))
	return s.issue(user)
}

// Login checks the password and issues a token.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *entity.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Role: strings.ToLower(user.Role), User: user}, nil
}
