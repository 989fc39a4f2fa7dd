package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"carmarket/internal/models"
	"carmarket/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSignUp      = errors.New("invalid sign up request")
)

const (
	accessTokenTTL  = 20 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
	minPasswordLen  = 8
)

type UserRepo interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	CreateSession(ctx context.Context, s models.Session) error
	GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error)
	DeleteSession(ctx context.Context, userID string) error
}

type UserService struct {
	UserRepo UserRepo
	Tokens   *utils.TokenManager
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return models.AuthResponse{}, ErrInvalidSignUp
	}
	if len(req.Password) < minPasswordLen {
		return models.AuthResponse{}, ErrInvalidSignUp
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.AuthResponse{}, err
	}

	user, err := s.UserRepo.CreateUser(ctx, models.User{
		Email:        email,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Location:     req.Location,
		PasswordHash: string(hash),
	})
	if err != nil {
		return models.AuthResponse{}, err
	}
	return s.issueTokens(ctx, user)
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.UserRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	return s.issueTokens(ctx, user)
}

func (s *UserService) SignOut(ctx context.Context, userID string) error {
	return s.UserRepo.DeleteSession(ctx, userID)
}

func (s *UserService) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) issueTokens(ctx context.Context, user models.User) (models.AuthResponse, error) {
	accessToken, err := s.Tokens.NewAccessToken(user.ID, accessTokenTTL)
	if err != nil {
		return models.AuthResponse{}, err
	}
	refreshToken, err := s.Tokens.NewRefreshToken()
	if err != nil {
		return models.AuthResponse{}, err
	}

	err = s.UserRepo.CreateSession(ctx, models.Session{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
