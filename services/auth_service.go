package services

import (
	"context"
	"errors"
	"time"

	"journal-cms/auth"
	"journal-cms/config"
	"journal-cms/models"
	"journal-cms/repositories"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, tokenString string) error
	GetUserByID(id uint) (*models.User, error)
	ListUsers() ([]models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   auth.TokenStoreInterface
}

func NewAuthService(userRepo repositories.UserRepository, tokens auth.TokenStoreInterface) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	// Username and email are unique forever; check both before creating.
	if existing, err := s.userRepo.GetByUsername(req.Username); err == nil && existing != nil && existing.ID != 0 {
		return nil, models.ErrUsernameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing, err := s.userRepo.GetByEmail(req.Email); err == nil && existing != nil && existing.ID != 0 {
		return nil, models.ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Role is fixed at creation. The only exception is the configured
	// bootstrap address, which comes in as an admin.
	role := models.RoleUser
	if config.BootstrapAdminEmail != "" && req.Email == config.BootstrapAdminEmail {
		role = models.RoleAdmin
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

// Logout blacklists the presented token for however long it has left to live.
func (s *authService) Logout(ctx context.Context, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return config.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return models.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.ErrInvalidToken
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return models.ErrInvalidToken
	}

	ttl := time.Until(time.Unix(int64(exp), 0))
	if ttl <= 0 {
		return nil
	}

	return s.tokens.Blacklist(ctx, tokenString, ttl)
}

func (s *authService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(config.JWTExpiration).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(config.JWTSecret)
	if err != nil {
		return "", err
	}

	return signedToken, nil
}
