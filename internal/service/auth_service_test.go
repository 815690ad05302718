package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-master/internal/config"
	"quiz-master/internal/domain"
	"quiz-master/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testJWTConfig = config.JWTConfig{
	SecretKey:      "testsecretkeydontuseinproduction32bytes!",
	AccessTokenTTL: 15 * time.Minute,
}

func newTestAuthService(t *testing.T, users *MockUserRepository) AuthService {
	t.Helper()
	svc, err := NewAuthService(users, testJWTConfig)
	require.NoError(t, err)
	return svc
}

func TestNewAuthService_ShortSecret(t *testing.T) {
	_, err := NewAuthService(new(MockUserRepository), config.JWTConfig{SecretKey: "short"})
	assert.Error(t, err)
}

func TestAuthService_Register(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@example.com" && u.PasswordHash != "secret1" && u.DateOfBirth != nil
	})).Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = 5 }).Return(nil)
	svc := newTestAuthService(t, users)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "New@Example.com", Password: "secret1", FullName: "New User", DateOfBirth: "2000-01-31",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.False(t, resp.IsAdmin)
}

func TestAuthService_Register_Invalid(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "nope", Password: "123", DateOfBirth: "31/01/2000",
	})

	var ve domain.ValidationErrors
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve, 4)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetUserByEmail", mock.Anything, "dup@example.com").Return(&domain.User{ID: 1}, nil)
	svc := newTestAuthService(t, users)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "dup@example.com", Password: "secret1", FullName: "Dup"})
	assert.True(t, domain.HasCode(err, domain.ErrConflict))
}

func TestAuthService_Login(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	users := new(MockUserRepository)
	users.On("GetUserByEmail", mock.Anything, "learner@example.com").
		Return(&domain.User{ID: 7, Email: "learner@example.com", PasswordHash: hash}, nil)
	svc := newTestAuthService(t, users)

	t.Run("Success", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "learner@example.com", Password: "secret1"}, false)
		require.NoError(t, err)
		assert.Equal(t, int64(900), resp.ExpiresIn)

		claims, err := svc.ValidateJWT(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, "access", claims.TokenType)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "learner@example.com", Password: "nope"}, false)
		assert.True(t, domain.HasCode(err, domain.ErrUnauthorized))
	})

	t.Run("AdminLoginRefusesLearner", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "learner@example.com", Password: "secret1"}, true)
		assert.True(t, domain.HasCode(err, domain.ErrForbidden))
	})
}

func TestAuthService_ValidateJWT_Rejects(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, dto.AuthClaims{
		UserID:    7,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredToken, err := expired.SignedString([]byte(testJWTConfig.SecretKey))
	require.NoError(t, err)

	otherKey := jwt.NewWithClaims(jwt.SigningMethodHS256, dto.AuthClaims{UserID: 7, TokenType: "access"})
	forged, err := otherKey.SignedString([]byte("a-completely-different-secret-key-0123"))
	require.NoError(t, err)

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, dto.AuthClaims{UserID: 7, TokenType: "refresh"})
	refreshToken, err := refresh.SignedString([]byte(testJWTConfig.SecretKey))
	require.NoError(t, err)

	for name, token := range map[string]string{"expired": expiredToken, "forged": forged, "refresh": refreshToken, "garbage": "abc"} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateJWT(token)
			assert.ErrorIs(t, err, ErrInvalidJWTToken)
		})
	}
}
