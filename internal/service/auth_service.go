package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"smartclaim/internal/config"
	"smartclaim/internal/domain"
	"smartclaim/internal/port"
)

// Claims represents the JWT claims of a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// SignupInput is the DTO for signup requests.
type SignupInput struct {
	FullName        string `json:"fullName" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginOutput identifies the authenticated user and carries a session token.
type LoginOutput struct {
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// AuthService defines the account and session contract.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (uuid.UUID, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	ValidateToken(tokenString string) (*Claims, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

const bcryptMaxInput = 72

type authService struct {
	userRepo    port.UserRepository
	emailSender port.EmailSender
	jwtCfg      config.JWTConfig
	bcryptCost  int
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(
	userRepo port.UserRepository,
	emailSender port.EmailSender,
	jwtCfg config.JWTConfig,
	authCfg config.AuthConfig,
) AuthService {
	cost := authCfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &authService{
		userRepo:    userRepo,
		emailSender: emailSender,
		jwtCfg:      jwtCfg,
		bcryptCost:  cost,
	}
}

func (s *authService) Signup(ctx context.Context, input SignupInput) (uuid.UUID, error) {
	if input.Password != input.ConfirmPassword {
		return uuid.Nil, domain.ErrPasswordMismatch
	}

	email := strings.TrimSpace(input.Email)
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return uuid.Nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return uuid.Nil, fmt.Errorf("auth.Signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword(passwordInput(input.Password), s.bcryptCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		FullName:     strings.TrimSpace(input.FullName),
		Email:        email,
		PasswordHash: string(hash),
	}
	// The unique index still guards a concurrent signup with the same email.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return uuid.Nil, err
	}

	log.Printf("auth.Signup: registered user %s", user.ID)

	if err := s.emailSender.SendWelcomeEmail(ctx, user.Email, user.FullName); err != nil {
		log.Printf("auth.Signup: failed to send welcome email to user %s: %v", user.ID, err)
	}

	return user.ID, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordInput(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{UserID: user.ID, Token: token, ExpiresAt: expiresAt}, nil
}

// passwordInput returns the bytes handed to bcrypt. bcrypt rejects inputs over
// 72 bytes, so longer passwords are reduced to a base64 SHA-256 digest first.
func passwordInput(password string) []byte {
	if len(password) <= bcryptMaxInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	}, jwt.WithIssuer(s.jwtCfg.Issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) generateToken(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiry := s.jwtCfg.AccessTokenExpiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	expiresAt := now.Add(expiry)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.jwtCfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
		UserID: user.ID,
		Email:  user.Email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing access token: %w", err)
	}
	return signed, expiresAt, nil
}
