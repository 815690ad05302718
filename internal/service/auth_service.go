package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-master/internal/config"
	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
	"quiz-master/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTypeAccess = "access"

	minPasswordLength = 6
	dateOfBirthLayout = "2006-01-02"
)

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService issues and verifies access tokens for email/password
// accounts.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, adminOnly bool) (*dto.TokenResponse, error)
	CreateJWT(user *domain.User) (string, error)
	ValidateJWT(tokenString string) (*dto.AuthClaims, error)
}

type authServiceImpl struct {
	userRepo  domain.UserRepository
	jwtConfig config.JWTConfig
}

func NewAuthService(userRepo domain.UserRepository, jwtConfig config.JWTConfig) (AuthService, error) {
	if len(jwtConfig.SecretKey) < 32 {
		return nil, errors.New("jwt secret key must be at least 32 bytes long")
	}
	if jwtConfig.AccessTokenTTL <= 0 {
		jwtConfig.AccessTokenTTL = time.Hour
	}
	return &authServiceImpl{userRepo: userRepo, jwtConfig: jwtConfig}, nil
}

// HashPassword is shared with cmd/seed_admin.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	var dob *time.Time
	var errs domain.ValidationErrors
	if req.DateOfBirth != "" {
		parsed, err := time.Parse(dateOfBirthLayout, req.DateOfBirth)
		if err != nil {
			errs.Add("date_of_birth", "date_of_birth must use the YYYY-MM-DD format")
		} else {
			dob = &parsed
		}
	}
	if len(req.Password) < minPasswordLength {
		errs.Add("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	user := domain.NewUser(req.Email, strings.TrimSpace(req.FullName), strings.TrimSpace(req.Qualification), dob)
	if err := user.Validate(); err != nil {
		var ve domain.ValidationErrors
		if errors.As(err, &ve) {
			errs = append(errs, ve...)
		}
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, domain.NewStoreFailureError("failed to look up email", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError("an account with this email already exists")
	}

	user.PasswordHash, err = HashPassword(req.Password)
	if err != nil {
		return nil, domain.NewInternalError("failed to register user", err)
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, domain.NewStoreFailureError("failed to create user", err)
	}

	logger.Get().Info("User registered", zap.Int64("userID", user.ID), zap.String("email", user.Email))
	resp := toUserResponse(user)
	return &resp, nil
}

// Login checks the password and issues an access token. With adminOnly set,
// non-admin accounts are refused.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest, adminOnly bool) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewStoreFailureError("failed to look up user", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}
	if adminOnly && !user.IsAdmin {
		return nil, domain.NewForbiddenError("administrator access required")
	}

	token, err := s.CreateJWT(user)
	if err != nil {
		return nil, domain.NewInternalError("failed to issue token", err)
	}
	logger.Get().Info("User logged in", zap.Int64("userID", user.ID), zap.Bool("admin", user.IsAdmin))
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtConfig.AccessTokenTTL.Seconds()),
		User:        toUserResponse(user),
	}, nil
}

func (s *authServiceImpl) CreateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    user.ID,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.SecretKey))
}

func (s *authServiceImpl) ValidateJWT(tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SecretKey), nil
	})
	if err != nil {
		logger.Get().Debug("JWT validation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid || claims.TokenType != tokenTypeAccess {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}
