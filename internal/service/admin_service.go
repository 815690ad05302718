package service

import (
	"context"
	"fmt"

	"quiz-master/internal/cache"
	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
	"quiz-master/internal/logger"

	"go.uber.org/zap"
)

// AdminService covers administrator mutations and listings. Every mutation
// invalidates the affected namespaces after it commits.
type AdminService interface {
	CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.CreatedResponse, error)
	ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error)
	CreateChapter(ctx context.Context, req *dto.CreateChapterRequest) (*dto.CreatedResponse, error)
	CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.CreatedResponse, error)
	GetQuiz(ctx context.Context, quizID int64) (*dto.AdminQuizDetailResponse, error)
	UpdateQuestion(ctx context.Context, questionID int64, req *dto.QuestionRequest) error
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	SetUserBlocked(ctx context.Context, userID int64, blocked bool) (*dto.BlockStatusResponse, error)
}

type adminServiceImpl struct {
	userRepo    domain.UserRepository
	subjectRepo domain.SubjectRepository
	quizRepo    domain.QuizRepository
	txManager   domain.TransactionManager
	cache       ResponseCache
	invalidator InvalidationCoordinator
}

func NewAdminService(
	userRepo domain.UserRepository,
	subjectRepo domain.SubjectRepository,
	quizRepo domain.QuizRepository,
	txManager domain.TransactionManager,
	rc ResponseCache,
	invalidator InvalidationCoordinator,
) AdminService {
	return &adminServiceImpl{
		userRepo:    userRepo,
		subjectRepo: subjectRepo,
		quizRepo:    quizRepo,
		txManager:   txManager,
		cache:       rc,
		invalidator: invalidator,
	}
}

func (s *adminServiceImpl) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.CreatedResponse, error) {
	subject := domain.NewSubject(req.Name, req.Description)
	if err := subject.Validate(); err != nil {
		return nil, err
	}
	if err := s.subjectRepo.CreateSubject(ctx, subject); err != nil {
		return nil, domain.NewStoreFailureError("failed to create subject", err)
	}
	s.invalidator.Invalidate(ctx, domain.SubjectChanged(subject.ID))
	logger.Get().Info("Subject created", zap.Int64("subjectID", subject.ID), zap.String("name", subject.Name))
	return &dto.CreatedResponse{ID: subject.ID}, nil
}

// ListSubjects depends only on catalog data, so it is cached in the catalog
// namespace.
func (s *adminServiceImpl) ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
	var resp []dto.SubjectResponse
	err := s.cache.Fetch(ctx, cache.NamespaceKey(cache.CatalogNamespace, "admin-subjects"), 0, &resp, func(ctx context.Context) (interface{}, error) {
		subjects, err := s.subjectRepo.ListSubjects(ctx)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to list subjects", err)
		}
		chapters, err := s.subjectRepo.ListChapters(ctx)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to list chapters", err)
		}
		quizzes, err := s.quizRepo.ListQuizzes(ctx)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to list quizzes", err)
		}
		return nestCatalog(subjects, chapters, quizzes), nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *adminServiceImpl) CreateChapter(ctx context.Context, req *dto.CreateChapterRequest) (*dto.CreatedResponse, error) {
	chapter := domain.NewChapter(req.SubjectID, req.Name, req.Description)
	if err := chapter.Validate(); err != nil {
		return nil, err
	}
	subject, err := s.subjectRepo.GetSubjectByID(ctx, req.SubjectID)
	if err != nil {
		return nil, domain.NewStoreFailureError("failed to load subject", err)
	}
	if subject == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("subject %d not found", req.SubjectID))
	}
	if err := s.subjectRepo.CreateChapter(ctx, chapter); err != nil {
		return nil, domain.NewStoreFailureError("failed to create chapter", err)
	}
	s.invalidator.Invalidate(ctx, domain.ChapterChanged(chapter.ID, chapter.SubjectID))
	return &dto.CreatedResponse{ID: chapter.ID}, nil
}

// questionFromRequest builds a question and reports field errors under
// prefix.
func questionFromRequest(quizID int64, req *dto.QuestionRequest, prefix string) (*domain.Question, domain.ValidationErrors) {
	q := domain.NewQuestion(quizID, req.Statement, req.Options, req.CorrectOption, req.Marks)
	return q, q.Validate(prefix)
}

// CreateQuiz writes the quiz and all of its questions in one transaction.
func (s *adminServiceImpl) CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.CreatedResponse, error) {
	quiz := domain.NewQuiz(req.ChapterID, req.DateOfQuiz, req.Duration, req.Remarks)

	var errs domain.ValidationErrors
	if err := quiz.Validate(); err != nil {
		if ve, ok := err.(domain.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}
	questions := make([]*domain.Question, 0, len(req.Questions))
	for i := range req.Questions {
		q, qErrs := questionFromRequest(0, &req.Questions[i], fmt.Sprintf("questions[%d].", i))
		errs = append(errs, qErrs...)
		questions = append(questions, q)
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	chapter, err := s.subjectRepo.GetChapterByID(ctx, req.ChapterID)
	if err != nil {
		return nil, domain.NewStoreFailureError("failed to load chapter", err)
	}
	if chapter == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("chapter %d not found", req.ChapterID))
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.quizRepo.CreateQuiz(txCtx, quiz); err != nil {
			return err
		}
		for _, q := range questions {
			q.QuizID = quiz.ID
			if err := s.quizRepo.CreateQuestion(txCtx, q); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewStoreFailureError("failed to create quiz", err)
	}

	s.invalidator.Invalidate(ctx, domain.QuizChanged(quiz.ID, chapter.SubjectID))
	logger.Get().Info("Quiz created",
		zap.Int64("quizID", quiz.ID), zap.Int64("chapterID", quiz.ChapterID), zap.Int("questions", len(questions)))
	return &dto.CreatedResponse{ID: quiz.ID}, nil
}

func (s *adminServiceImpl) GetQuiz(ctx context.Context, quizID int64) (*dto.AdminQuizDetailResponse, error) {
	var resp dto.AdminQuizDetailResponse
	key := cache.NamespaceKey(cache.QuizNamespace(quizID), "admin-detail")
	err := s.cache.Fetch(ctx, key, 0, &resp, func(ctx context.Context) (interface{}, error) {
		quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to load quiz", err)
		}
		if quiz == nil {
			return nil, domain.NewQuizNotFoundError(quizID)
		}
		questions, err := s.quizRepo.GetQuestionsByQuizID(ctx, quizID)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to load questions", err)
		}
		count, err := s.quizRepo.CountAttempts(ctx, quizID)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to count attempts", err)
		}

		detail := &dto.AdminQuizDetailResponse{
			QuizResponse: toQuizResponse(quiz),
			Questions:    make([]dto.AdminQuestionResponse, 0, len(questions)),
			AttemptCount: count,
			Locked:       count > 0,
		}
		for _, q := range questions {
			detail.Questions = append(detail.Questions, dto.AdminQuestionResponse{
				QuestionResponse: toQuestionResponse(q),
				CorrectOption:    q.CorrectOption,
			})
		}
		return detail, nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateQuestion refuses to edit quizzes that already have attempts, since
// recorded answers are never rescored.
func (s *adminServiceImpl) UpdateQuestion(ctx context.Context, questionID int64, req *dto.QuestionRequest) error {
	existing, err := s.quizRepo.GetQuestionByID(ctx, questionID)
	if err != nil {
		return domain.NewStoreFailureError("failed to load question", err)
	}
	if existing == nil {
		return domain.NewNotFoundError(fmt.Sprintf("question %d not found", questionID))
	}

	updated, errs := questionFromRequest(existing.QuizID, req, "")
	if err := errs.OrNil(); err != nil {
		return err
	}
	updated.ID = questionID

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		count, err := s.quizRepo.CountAttempts(txCtx, existing.QuizID)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.NewConflictError(fmt.Sprintf("quiz %d already has %d attempts and can no longer be edited", existing.QuizID, count))
		}
		return s.quizRepo.UpdateQuestion(txCtx, updated)
	})
	if err != nil {
		if domain.HasCode(err, domain.ErrConflict) || domain.HasCode(err, domain.ErrNotFound) {
			return err
		}
		return domain.NewStoreFailureError("failed to update question", err)
	}

	subjectID, err := s.quizRepo.GetSubjectIDForQuiz(ctx, existing.QuizID)
	if err != nil {
		logger.Get().Warn("Failed to resolve subject of quiz; subject namespace left to TTL",
			zap.Int64("quizID", existing.QuizID), zap.Error(err))
		subjectID = 0
	}
	s.invalidator.Invalidate(ctx, domain.QuizChanged(existing.QuizID, subjectID))
	return nil
}

func (s *adminServiceImpl) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	var resp []dto.UserResponse
	err := s.cache.Fetch(ctx, cache.NamespaceKey(cache.AdminNamespace, "users"), 0, &resp, func(ctx context.Context) (interface{}, error) {
		users, err := s.userRepo.ListLearners(ctx)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to list users", err)
		}
		out := make([]dto.UserResponse, 0, len(users))
		for _, u := range users {
			out = append(out, toUserResponse(u))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// SetUserBlocked changes the flag that gates attempt submission.
// Administrators cannot be blocked.
func (s *adminServiceImpl) SetUserBlocked(ctx context.Context, userID int64, blocked bool) (*dto.BlockStatusResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewStoreFailureError("failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("user %d not found", userID))
	}
	if user.IsAdmin {
		return nil, domain.NewForbiddenError("administrators cannot be blocked")
	}

	if err := s.userRepo.SetBlocked(ctx, userID, blocked); err != nil {
		if domain.HasCode(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.NewStoreFailureError("failed to update user", err)
	}

	s.invalidator.Invalidate(ctx, domain.AdminGlobalChanged(), domain.UserChanged(userID))
	logger.Get().Info("User block state changed", zap.Int64("userID", userID), zap.Bool("blocked", blocked))
	return &dto.BlockStatusResponse{UserID: userID, IsBlocked: blocked}, nil
}
