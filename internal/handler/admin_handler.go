package handler

import (
	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
	"quiz-master/internal/logger"
	"quiz-master/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminHandler serves /api/admin. Routes are expected behind
// middleware.Protected and middleware.AdminOnly.
type AdminHandler struct {
	admin service.AdminService
	stats service.StatsService
}

func NewAdminHandler(admin service.AdminService, stats service.StatsService) *AdminHandler {
	return &AdminHandler{admin: admin, stats: stats}
}

// CreateSubject godoc
// @Summary Create a subject
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSubjectRequest true "Subject"
// @Success 201 {object} dto.CreatedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/subjects [post]
func (h *AdminHandler) CreateSubject(c *fiber.Ctx) error {
	var req dto.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	created, err := h.admin.CreateSubject(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListSubjects godoc
// @Summary List subjects
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.SubjectResponse
// @Router /admin/subjects [get]
func (h *AdminHandler) ListSubjects(c *fiber.Ctx) error {
	subjects, err := h.admin.ListSubjects(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(subjects)
}

// CreateChapter godoc
// @Summary Create a chapter
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateChapterRequest true "Chapter"
// @Success 201 {object} dto.CreatedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /admin/chapters [post]
func (h *AdminHandler) CreateChapter(c *fiber.Ctx) error {
	var req dto.CreateChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	created, err := h.admin.CreateChapter(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// CreateQuiz godoc
// @Summary Create a quiz with its questions
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz"
// @Success 201 {object} dto.CreatedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /admin/quizzes [post]
func (h *AdminHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	created, err := h.admin.CreateQuiz(c.UserContext(), &req)
	if err != nil {
		return err
	}
	logger.Get().Info("Quiz created", zap.Int64("quizID", created.ID), zap.Int("questions", len(req.Questions)))
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetQuiz godoc
// @Summary Get a quiz with answers
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.AdminQuizDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/quizzes/{id} [get]
func (h *AdminHandler) GetQuiz(c *fiber.Ctx) error {
	quizID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	quiz, err := h.admin.GetQuiz(c.UserContext(), quizID)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Description Fails with 409 once the quiz has attempts.
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Param id path int true "Question ID"
// @Param request body dto.QuestionRequest true "Question"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Quiz already attempted"
// @Router /admin/questions/{id} [put]
func (h *AdminHandler) UpdateQuestion(c *fiber.Ctx) error {
	questionID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if err := h.admin.UpdateQuestion(c.UserContext(), questionID, &req); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// GetUser godoc
// @Summary User detail
// @Description Profile, attempt history and best/worst/average scores.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.AdminUserDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.stats.AdminUserDetail(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(detail)
}

// BlockUser godoc
// @Summary Block a user
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.BlockStatusResponse
// @Failure 403 {object} dto.ErrorResponse "Administrators cannot be blocked"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id}/block [post]
func (h *AdminHandler) BlockUser(c *fiber.Ctx) error {
	return h.setBlocked(c, true)
}

// UnblockUser godoc
// @Summary Unblock a user
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.BlockStatusResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id}/unblock [post]
func (h *AdminHandler) UnblockUser(c *fiber.Ctx) error {
	return h.setBlocked(c, false)
}

func (h *AdminHandler) setBlocked(c *fiber.Ctx, blocked bool) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	status, err := h.admin.SetUserBlocked(c.UserContext(), userID, blocked)
	if err != nil {
		return err
	}
	return c.JSON(status)
}
