package handler_test

import (
	"context"
	"strconv"
	"strings"

	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
	"quiz-master/internal/handler"
	"quiz-master/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// --- Manual Mocks ---

type MockAuthService struct {
	RegisterFunc func(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	LoginFunc    func(ctx context.Context, req *dto.LoginRequest, adminOnly bool) (*dto.TokenResponse, error)
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	panic("MockAuthService.RegisterFunc not implemented")
}
func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest, adminOnly bool) (*dto.TokenResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req, adminOnly)
	}
	panic("MockAuthService.LoginFunc not implemented")
}
func (m *MockAuthService) CreateJWT(user *domain.User) (string, error) {
	panic("MockAuthService.CreateJWT not implemented")
}
func (m *MockAuthService) ValidateJWT(tokenString string) (*dto.AuthClaims, error) {
	panic("MockAuthService.ValidateJWT not implemented")
}

type MockCatalogService struct {
	ListSubjectsFunc func(ctx context.Context) ([]dto.SubjectResponse, error)
	GetSubjectFunc   func(ctx context.Context, subjectID int64) (*dto.SubjectResponse, error)
	GetQuizFunc      func(ctx context.Context, quizID int64) (*dto.QuizDetailResponse, error)
}

func (m *MockCatalogService) ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
	if m.ListSubjectsFunc != nil {
		return m.ListSubjectsFunc(ctx)
	}
	panic("MockCatalogService.ListSubjectsFunc not implemented")
}
func (m *MockCatalogService) GetSubject(ctx context.Context, subjectID int64) (*dto.SubjectResponse, error) {
	if m.GetSubjectFunc != nil {
		return m.GetSubjectFunc(ctx, subjectID)
	}
	panic("MockCatalogService.GetSubjectFunc not implemented")
}
func (m *MockCatalogService) GetQuiz(ctx context.Context, quizID int64) (*dto.QuizDetailResponse, error) {
	if m.GetQuizFunc != nil {
		return m.GetQuizFunc(ctx, quizID)
	}
	panic("MockCatalogService.GetQuizFunc not implemented")
}

type MockAttemptService struct {
	SubmitFunc func(ctx context.Context, userID, quizID int64, answers []domain.AnswerSubmission) (*dto.SubmitAttemptResponse, error)
}

func (m *MockAttemptService) Submit(ctx context.Context, userID, quizID int64, answers []domain.AnswerSubmission) (*dto.SubmitAttemptResponse, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, userID, quizID, answers)
	}
	panic("MockAttemptService.SubmitFunc not implemented")
}

type MockStatsService struct {
	UserStatsFunc       func(ctx context.Context, userID int64) (*dto.UserStatsResponse, error)
	UserAttemptsFunc    func(ctx context.Context, userID int64) ([]dto.AttemptSummaryResponse, error)
	UserAttemptFunc     func(ctx context.Context, userID, attemptID int64) (*dto.AttemptDetailResponse, error)
	AdminUserDetailFunc func(ctx context.Context, userID int64) (*dto.AdminUserDetailResponse, error)
}

func (m *MockStatsService) UserStats(ctx context.Context, userID int64) (*dto.UserStatsResponse, error) {
	if m.UserStatsFunc != nil {
		return m.UserStatsFunc(ctx, userID)
	}
	panic("MockStatsService.UserStatsFunc not implemented")
}
func (m *MockStatsService) UserAttempts(ctx context.Context, userID int64) ([]dto.AttemptSummaryResponse, error) {
	if m.UserAttemptsFunc != nil {
		return m.UserAttemptsFunc(ctx, userID)
	}
	panic("MockStatsService.UserAttemptsFunc not implemented")
}
func (m *MockStatsService) UserAttempt(ctx context.Context, userID, attemptID int64) (*dto.AttemptDetailResponse, error) {
	if m.UserAttemptFunc != nil {
		return m.UserAttemptFunc(ctx, userID, attemptID)
	}
	panic("MockStatsService.UserAttemptFunc not implemented")
}
func (m *MockStatsService) AdminUserDetail(ctx context.Context, userID int64) (*dto.AdminUserDetailResponse, error) {
	if m.AdminUserDetailFunc != nil {
		return m.AdminUserDetailFunc(ctx, userID)
	}
	panic("MockStatsService.AdminUserDetailFunc not implemented")
}

type MockAdminService struct {
	CreateSubjectFunc  func(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.CreatedResponse, error)
	ListSubjectsFunc   func(ctx context.Context) ([]dto.SubjectResponse, error)
	CreateChapterFunc  func(ctx context.Context, req *dto.CreateChapterRequest) (*dto.CreatedResponse, error)
	CreateQuizFunc     func(ctx context.Context, req *dto.CreateQuizRequest) (*dto.CreatedResponse, error)
	GetQuizFunc        func(ctx context.Context, quizID int64) (*dto.AdminQuizDetailResponse, error)
	UpdateQuestionFunc func(ctx context.Context, questionID int64, req *dto.QuestionRequest) error
	ListUsersFunc      func(ctx context.Context) ([]dto.UserResponse, error)
	SetUserBlockedFunc func(ctx context.Context, userID int64, blocked bool) (*dto.BlockStatusResponse, error)
}

func (m *MockAdminService) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.CreatedResponse, error) {
	if m.CreateSubjectFunc != nil {
		return m.CreateSubjectFunc(ctx, req)
	}
	panic("MockAdminService.CreateSubjectFunc not implemented")
}
func (m *MockAdminService) ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
	if m.ListSubjectsFunc != nil {
		return m.ListSubjectsFunc(ctx)
	}
	panic("MockAdminService.ListSubjectsFunc not implemented")
}
func (m *MockAdminService) CreateChapter(ctx context.Context, req *dto.CreateChapterRequest) (*dto.CreatedResponse, error) {
	if m.CreateChapterFunc != nil {
		return m.CreateChapterFunc(ctx, req)
	}
	panic("MockAdminService.CreateChapterFunc not implemented")
}
func (m *MockAdminService) CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.CreatedResponse, error) {
	if m.CreateQuizFunc != nil {
		return m.CreateQuizFunc(ctx, req)
	}
	panic("MockAdminService.CreateQuizFunc not implemented")
}
func (m *MockAdminService) GetQuiz(ctx context.Context, quizID int64) (*dto.AdminQuizDetailResponse, error) {
	if m.GetQuizFunc != nil {
		return m.GetQuizFunc(ctx, quizID)
	}
	panic("MockAdminService.GetQuizFunc not implemented")
}
func (m *MockAdminService) UpdateQuestion(ctx context.Context, questionID int64, req *dto.QuestionRequest) error {
	if m.UpdateQuestionFunc != nil {
		return m.UpdateQuestionFunc(ctx, questionID, req)
	}
	panic("MockAdminService.UpdateQuestionFunc not implemented")
}
func (m *MockAdminService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	panic("MockAdminService.ListUsersFunc not implemented")
}
func (m *MockAdminService) SetUserBlocked(ctx context.Context, userID int64, blocked bool) (*dto.BlockStatusResponse, error) {
	if m.SetUserBlockedFunc != nil {
		return m.SetUserBlockedFunc(ctx, userID, blocked)
	}
	panic("MockAdminService.SetUserBlockedFunc not implemented")
}

type testServices struct {
	auth     *MockAuthService
	catalog  *MockCatalogService
	attempts *MockAttemptService
	stats    *MockStatsService
	admin    *MockAdminService
}

const testUserHeader = "X-Test-User"

// fakeProtected trusts X-Test-User: "<id>" for a learner, "admin:<id>" for
// an administrator. A missing header is rejected like a missing token.
func fakeProtected(c *fiber.Ctx) error {
	raw := c.Get(testUserHeader)
	if raw == "" {
		return domain.NewUnauthorizedError("missing test identity")
	}
	identity := &middleware.Identity{}
	if rest, ok := strings.CutPrefix(raw, "admin:"); ok {
		identity.IsAdmin = true
		raw = rest
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return domain.NewUnauthorizedError("bad test identity")
	}
	identity.UserID = id
	c.Locals(middleware.IdentityKey, identity)
	return c.Next()
}

func setupApp() (*fiber.App, *testServices) {
	svcs := &testServices{
		auth:     &MockAuthService{},
		catalog:  &MockCatalogService{},
		attempts: &MockAttemptService{},
		stats:    &MockStatsService{},
		admin:    &MockAdminService{},
	}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.RegisterRoutes(app, handler.Router{
		Auth:      handler.NewAuthHandler(svcs.auth),
		User:      handler.NewUserHandler(svcs.catalog, svcs.attempts, svcs.stats),
		Admin:     handler.NewAdminHandler(svcs.admin, svcs.stats),
		Protected: fakeProtected,
	})
	return app, svcs
}
