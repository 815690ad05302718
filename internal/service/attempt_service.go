package service

import (
	"context"
	"errors"
	"time"

	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
	"quiz-master/internal/logger"
	"quiz-master/internal/metrics"

	"go.uber.org/zap"
)

// AttemptService scores and records quiz submissions.
type AttemptService interface {
	Submit(ctx context.Context, userID, quizID int64, answers []domain.AnswerSubmission) (*dto.SubmitAttemptResponse, error)
}

type attemptServiceImpl struct {
	userRepo    domain.UserRepository
	quizRepo    domain.QuizRepository
	attemptRepo domain.AttemptRepository
	txManager   domain.TransactionManager
	invalidator InvalidationCoordinator
	now         func() time.Time
}

func NewAttemptService(
	userRepo domain.UserRepository,
	quizRepo domain.QuizRepository,
	attemptRepo domain.AttemptRepository,
	txManager domain.TransactionManager,
	invalidator InvalidationCoordinator,
) AttemptService {
	return &attemptServiceImpl{
		userRepo:    userRepo,
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		txManager:   txManager,
		invalidator: invalidator,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates the answers, then writes the attempt, every answer and
// the final score in one transaction. Caches are invalidated only after
// the commit.
func (s *attemptServiceImpl) Submit(ctx context.Context, userID, quizID int64, answers []domain.AnswerSubmission) (*dto.SubmitAttemptResponse, error) {
	appLogger := logger.Get()

	if err := domain.ValidateSubmission(answers); err != nil {
		metrics.Submissions.WithLabelValues("invalid").Inc()
		return nil, err
	}

	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		metrics.Submissions.WithLabelValues("store_failure").Inc()
		return nil, domain.NewStoreFailureError("failed to load quiz", err)
	}
	if quiz == nil {
		metrics.Submissions.WithLabelValues("not_found").Inc()
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	// The blocked flag is read from the store, not from the token.
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		metrics.Submissions.WithLabelValues("store_failure").Inc()
		return nil, domain.NewStoreFailureError("failed to load user", err)
	}
	if user == nil {
		metrics.Submissions.WithLabelValues("unauthorized").Inc()
		return nil, domain.NewUnauthorizedError("user no longer exists")
	}
	if user.IsBlocked {
		metrics.Submissions.WithLabelValues("forbidden").Inc()
		return nil, domain.NewForbiddenError("your account is blocked")
	}

	var result *dto.SubmitAttemptResponse
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		questions, err := s.quizRepo.GetQuestionsByQuizID(txCtx, quizID)
		if err != nil {
			return err
		}
		// Membership is checked before the first write.
		card, err := domain.ScoreAnswers(questions, answers)
		if err != nil {
			return err
		}

		attempt := &domain.QuizAttempt{UserID: userID, QuizID: quizID, StartTime: s.now()}
		if err := s.attemptRepo.CreateAttempt(txCtx, attempt); err != nil {
			return err
		}
		for i := range card.Answers {
			answer := card.Answers[i]
			answer.AttemptID = attempt.ID
			if err := s.attemptRepo.CreateAnswer(txCtx, &answer); err != nil {
				return err
			}
		}
		if err := s.attemptRepo.CompleteAttempt(txCtx, attempt.ID, card.Score, s.now()); err != nil {
			return err
		}

		result = &dto.SubmitAttemptResponse{
			AttemptID:  attempt.ID,
			Score:      card.Score,
			TotalMarks: card.TotalMarks,
		}
		return nil
	})
	if err != nil {
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			metrics.Submissions.WithLabelValues("invalid").Inc()
			return nil, err
		}
		metrics.Submissions.WithLabelValues("store_failure").Inc()
		appLogger.Error("Attempt submission rolled back",
			zap.Int64("userID", userID), zap.Int64("quizID", quizID), zap.Error(err))
		return nil, domain.NewStoreFailureError("failed to record attempt", err)
	}

	s.invalidator.Invalidate(ctx,
		domain.QuizChanged(quizID, 0),
		domain.UserChanged(userID),
		domain.AdminGlobalChanged(),
	)

	metrics.Submissions.WithLabelValues("accepted").Inc()
	appLogger.Info("Attempt recorded",
		zap.Int64("attemptID", result.AttemptID),
		zap.Int64("userID", userID),
		zap.Int64("quizID", quizID),
		zap.Float64("score", result.Score),
		zap.Int("totalMarks", result.TotalMarks))
	return result, nil
}
