package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wardrobe/internal/logger"
	"wardrobe/internal/models"
	"wardrobe/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *zap.Logger
}

// NewAuthService creates a new AuthService. Tokens it issues live for tokenTTL.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       logger.Named("auth"),
	}
}

// TokenTTL is the lifetime of tokens issued by Register and Login.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Register creates a user with a hashed password and returns it together with an
// access token. The returned user carries no password.
func (s *AuthService) Register(req models.RegisterRequest) (*models.User, string, error) {
	email := strings.TrimSpace(req.Email)

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(uuid.New().String(), &models.User{
		Email:     email,
		Name:      req.Name,
		Password:  string(hashedPassword),
		CreatedAt: models.Now(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.IssueToken(user.ID, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	user.Password = ""
	return user, token, nil
}

// Login checks the credentials and returns an access token. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		return "", fmt.Errorf("failed to look up email: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(user.ID, s.tokenTTL)
}

// IssueToken signs an HS256 token whose subject is userID.
func (s *AuthService) IssueToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   userID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ResolveToken validates a token and returns its subject.
func (s *AuthService) ResolveToken(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.log.Debug("token validation failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// CurrentUser loads the user a token was issued for, without the password.
func (s *AuthService) CurrentUser(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	user.Password = ""
	return user, nil
}

// IsAuthError reports whether err should be answered with 401.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrUserNotFound)
}
