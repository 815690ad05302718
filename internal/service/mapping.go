package service

import (
	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
)

func toUserResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Qualification: u.Qualification,
		DateOfBirth:   u.DateOfBirth,
		IsAdmin:       u.IsAdmin,
		IsBlocked:     u.IsBlocked,
		CreatedAt:     u.CreatedAt,
	}
}

func toQuizResponse(q *domain.Quiz) dto.QuizResponse {
	return dto.QuizResponse{
		ID:         q.ID,
		ChapterID:  q.ChapterID,
		DateOfQuiz: q.DateOfQuiz,
		Duration:   q.Duration,
		Remarks:    q.Remarks,
	}
}

func toQuestionResponse(q *domain.Question) dto.QuestionResponse {
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	return dto.QuestionResponse{
		ID:        q.ID,
		Statement: q.Statement,
		Options:   options,
		Marks:     q.Marks,
	}
}

func toAttemptSummaryResponse(a *domain.AttemptSummary) dto.AttemptSummaryResponse {
	return dto.AttemptSummaryResponse{
		ID:          a.ID,
		QuizID:      a.QuizID,
		ChapterName: a.ChapterName,
		SubjectName: a.SubjectName,
		Score:       a.Score,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		Completed:   a.Completed(),
	}
}

func toAttemptSummaryResponses(attempts []*domain.AttemptSummary) []dto.AttemptSummaryResponse {
	out := make([]dto.AttemptSummaryResponse, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, toAttemptSummaryResponse(a))
	}
	return out
}

func toUserStatsResponse(stats domain.UserStats) *dto.UserStatsResponse {
	breakdown := make([]dto.SubjectStatsResponse, 0, len(stats.SubjectBreakdown))
	for _, s := range stats.SubjectBreakdown {
		breakdown = append(breakdown, dto.SubjectStatsResponse{
			Subject:      s.Subject,
			Attempts:     s.Attempts,
			AverageScore: s.AverageScore,
		})
	}
	return &dto.UserStatsResponse{
		TotalAttempts:    stats.TotalAttempts,
		AverageScore:     stats.AverageScore,
		SubjectBreakdown: breakdown,
	}
}

// ToAnswerSubmissions converts request answers into domain submissions.
func ToAnswerSubmissions(answers []dto.AnswerRequest) []domain.AnswerSubmission {
	out := make([]domain.AnswerSubmission, len(answers))
	for i, a := range answers {
		out[i] = domain.AnswerSubmission{QuestionID: a.QuestionID, SelectedOption: a.SelectedOption}
	}
	return out
}
