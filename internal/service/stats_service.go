package service

import (
	"context"
	"fmt"

	"quiz-master/internal/cache"
	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
)

// StatsService serves attempt history and statistics through the response
// cache.
type StatsService interface {
	UserStats(ctx context.Context, userID int64) (*dto.UserStatsResponse, error)
	UserAttempts(ctx context.Context, userID int64) ([]dto.AttemptSummaryResponse, error)
	UserAttempt(ctx context.Context, userID, attemptID int64) (*dto.AttemptDetailResponse, error)
	AdminUserDetail(ctx context.Context, userID int64) (*dto.AdminUserDetailResponse, error)
}

type statsServiceImpl struct {
	userRepo    domain.UserRepository
	attemptRepo domain.AttemptRepository
	cache       ResponseCache
}

func NewStatsService(userRepo domain.UserRepository, attemptRepo domain.AttemptRepository, rc ResponseCache) StatsService {
	return &statsServiceImpl{
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		cache:       rc,
	}
}

func (s *statsServiceImpl) listAttempts(ctx context.Context, userID int64) ([]*domain.AttemptSummary, error) {
	attempts, err := s.attemptRepo.ListAttemptsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewStoreFailureError(fmt.Sprintf("failed to list attempts of user %d", userID), err)
	}
	return attempts, nil
}

// UserStats counts completed attempts only. Averages are 0 when there are
// none.
func (s *statsServiceImpl) UserStats(ctx context.Context, userID int64) (*dto.UserStatsResponse, error) {
	var resp dto.UserStatsResponse
	err := s.cache.Fetch(ctx, cache.UserKey(userID, "stats"), 0, &resp, func(ctx context.Context) (interface{}, error) {
		attempts, err := s.listAttempts(ctx, userID)
		if err != nil {
			return nil, err
		}
		return toUserStatsResponse(domain.ComputeUserStats(attempts)), nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *statsServiceImpl) UserAttempts(ctx context.Context, userID int64) ([]dto.AttemptSummaryResponse, error) {
	var resp []dto.AttemptSummaryResponse
	err := s.cache.Fetch(ctx, cache.UserKey(userID, "attempts"), 0, &resp, func(ctx context.Context) (interface{}, error) {
		attempts, err := s.listAttempts(ctx, userID)
		if err != nil {
			return nil, err
		}
		return toAttemptSummaryResponses(attempts), nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// UserAttempt returns NOT_FOUND for attempts owned by someone else.
func (s *statsServiceImpl) UserAttempt(ctx context.Context, userID, attemptID int64) (*dto.AttemptDetailResponse, error) {
	var resp dto.AttemptDetailResponse
	key := cache.UserKey(userID, "attempt", cache.ID(attemptID))
	err := s.cache.Fetch(ctx, key, 0, &resp, func(ctx context.Context) (interface{}, error) {
		attempt, err := s.attemptRepo.GetAttemptForUser(ctx, attemptID, userID)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to load attempt", err)
		}
		if attempt == nil {
			return nil, domain.NewNotFoundError(fmt.Sprintf("attempt %d not found", attemptID))
		}
		answers, err := s.attemptRepo.GetAnswersByAttempt(ctx, attemptID)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to load answers", err)
		}

		detail := &dto.AttemptDetailResponse{
			AttemptSummaryResponse: toAttemptSummaryResponse(attempt),
			Answers:                make([]dto.AnswerDetailResponse, 0, len(answers)),
		}
		for _, a := range answers {
			detail.TotalMarks += a.Marks
			detail.Answers = append(detail.Answers, dto.AnswerDetailResponse{
				QuestionID:     a.QuestionID,
				Statement:      a.Statement,
				SelectedOption: a.SelectedOption,
				CorrectOption:  a.CorrectOption,
				IsCorrect:      a.IsCorrect,
				Marks:          a.Marks,
			})
		}
		return detail, nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminUserDetail is shared by every administrator and lives in the admin
// namespace. Best and worst keep the first attempt in start-time
// descending order on ties.
func (s *statsServiceImpl) AdminUserDetail(ctx context.Context, userID int64) (*dto.AdminUserDetailResponse, error) {
	var resp dto.AdminUserDetailResponse
	key := cache.NamespaceKey(cache.AdminNamespace, "user", cache.ID(userID))
	err := s.cache.Fetch(ctx, key, 0, &resp, func(ctx context.Context) (interface{}, error) {
		user, err := s.userRepo.GetUserByID(ctx, userID)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to load user", err)
		}
		if user == nil {
			return nil, domain.NewNotFoundError(fmt.Sprintf("user %d not found", userID))
		}
		attempts, err := s.listAttempts(ctx, userID)
		if err != nil {
			return nil, err
		}

		summary := domain.ComputeScoreSummary(attempts)
		detail := &dto.AdminUserDetailResponse{
			User:              toUserResponse(user),
			Attempts:          toAttemptSummaryResponses(attempts),
			CompletedAttempts: summary.Completed,
			AverageScore:      summary.AverageScore,
		}
		if summary.Best != nil {
			best, bestID := summary.Best.Score, summary.Best.ID
			detail.BestScore, detail.BestAttemptID = &best, &bestID
		}
		if summary.Worst != nil {
			worst, worstID := summary.Worst.Score, summary.Worst.ID
			detail.WorstScore, detail.WorstAttemptID = &worst, &worstID
		}
		return detail, nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
