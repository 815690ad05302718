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

// UserHandler serves the learner-facing routes under /api/user.
type UserHandler struct {
	catalog   service.CatalogService
	attempts  service.AttemptService
	stats     service.StatsService
	validator *validation.Validator
}

func NewUserHandler(catalog service.CatalogService, attempts service.AttemptService, stats service.StatsService) *UserHandler {
	return &UserHandler{
		catalog:   catalog,
		attempts:  attempts,
		stats:     stats,
		validator: validation.NewValidator(),
	}
}

// ListSubjects godoc
// @Summary List subjects
// @Description Returns every subject with its chapters and quizzes.
// @Tags catalog
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.SubjectResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /user/subjects [get]
func (h *UserHandler) ListSubjects(c *fiber.Ctx) error {
	subjects, err := h.catalog.ListSubjects(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(subjects)
}

// GetSubject godoc
// @Summary Get a subject
// @Tags catalog
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.SubjectResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /user/subjects/{id} [get]
func (h *UserHandler) GetSubject(c *fiber.Ctx) error {
	subjectID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	subject, err := h.catalog.GetSubject(c.UserContext(), subjectID)
	if err != nil {
		return err
	}
	return c.JSON(subject)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Returns the quiz with its questions. Correct options are not included.
// @Tags catalog
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /user/quizzes/{id} [get]
func (h *UserHandler) GetQuiz(c *fiber.Ctx) error {
	quizID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	quiz, err := h.catalog.GetQuiz(c.UserContext(), quizID)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// SubmitAttempt godoc
// @Summary Submit an attempt
// @Description Scores the submitted answers and records a completed attempt.
// @Tags attempts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param request body dto.SubmitAttemptRequest true "Answers"
// @Success 201 {object} dto.SubmitAttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed answers"
// @Failure 403 {object} dto.ErrorResponse "User is blocked"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 429 {object} dto.ErrorResponse "Too many submissions"
// @Router /user/quizzes/{quiz_id}/attempt [post]
func (h *UserHandler) SubmitAttempt(c *fiber.Ctx) error {
	identity, err := currentUser(c)
	if err != nil {
		return err
	}
	quizID, err := pathID(c, "quiz_id")
	if err != nil {
		return err
	}

	var req dto.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateSubmitAttemptRequest(&req); len(errs) > 0 {
		return errs
	}

	result, err := h.attempts.Submit(c.UserContext(), identity.UserID, quizID, service.ToAnswerSubmissions(*req.Answers))
	if err != nil {
		logger.Get().Debug("Attempt rejected",
			zap.Int64("userID", identity.UserID),
			zap.Int64("quizID", quizID),
			zap.Error(err),
		)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetStats godoc
// @Summary My statistics
// @Tags stats
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserStatsResponse
// @Router /user/stats [get]
func (h *UserHandler) GetStats(c *fiber.Ctx) error {
	identity, err := currentUser(c)
	if err != nil {
		return err
	}
	stats, err := h.stats.UserStats(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// GetAttempts godoc
// @Summary My attempts
// @Description Lists the caller's attempts, newest first.
// @Tags stats
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.AttemptSummaryResponse
// @Router /user/attempts [get]
func (h *UserHandler) GetAttempts(c *fiber.Ctx) error {
	identity, err := currentUser(c)
	if err != nil {
		return err
	}
	attempts, err := h.stats.UserAttempts(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(attempts)
}

// GetAttempt godoc
// @Summary One of my attempts
// @Tags stats
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /user/attempts/{id} [get]
func (h *UserHandler) GetAttempt(c *fiber.Ctx) error {
	identity, err := currentUser(c)
	if err != nil {
		return err
	}
	attemptID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	attempt, err := h.stats.UserAttempt(c.UserContext(), identity.UserID, attemptID)
	if err != nil {
		return err
	}
	return c.JSON(attempt)
}
