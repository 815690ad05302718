package handler

import (
	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
	"quiz-master/internal/logger"
	"quiz-master/internal/service"
	"quiz-master/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService service.AuthService
	validator   *validation.Validator
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validation.NewValidator(),
	}
}

// Register creates a learner account.
// @Summary Register
// @Description Creates a new learner account.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateRegisterRequest(&req); len(errs) > 0 {
		return errs
	}

	user, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return err
	}
	logger.Get().Info("User registered", zap.Int64("userID", user.ID))
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login issues an access token for any account.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	return h.login(c, false)
}

// AdminLogin issues an access token only for administrators.
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Not an administrator"
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	return h.login(c, true)
}

func (h *AuthHandler) login(c *fiber.Ctx, adminOnly bool) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateLoginRequest(&req); len(errs) > 0 {
		return errs
	}

	token, err := h.authService.Login(c.UserContext(), &req, adminOnly)
	if err != nil {
		return err
	}
	return c.JSON(token)
}
