package domain

import (
	"context"
	"fmt"
	"time"
)

// QuizAttempt is one learner's pass through a quiz. EndTime is nil while
// the attempt is in progress.
type QuizAttempt struct {
	ID        int64
	UserID    int64
	QuizID    int64
	Score     float64
	StartTime time.Time
	EndTime   *time.Time
}

// Completed reports whether both time bounds are set.
func (a *QuizAttempt) Completed() bool {
	return a.EndTime != nil && !a.StartTime.IsZero()
}

// UserAnswer is one graded answer. IsCorrect is fixed at evaluation time.
type UserAnswer struct {
	ID             int64
	AttemptID      int64
	QuestionID     int64
	SelectedOption int
	IsCorrect      bool
}

// AnswerSubmission is a single {question_id, selected_option} pair from a learner.
type AnswerSubmission struct {
	QuestionID     int64
	SelectedOption int
}

// AttemptResult is returned to the learner after a successful submission.
type AttemptResult struct {
	AttemptID  int64
	Score      float64
	TotalMarks int
}

// Scorecard is the outcome of grading a submission before it is persisted.
type Scorecard struct {
	Answers    []UserAnswer
	Score      float64
	TotalMarks int
}

// ValidateSubmission checks the payload shape: options within 1..MaxOptions
// and each question answered at most once. An empty list is valid.
func ValidateSubmission(answers []AnswerSubmission) error {
	var errs ValidationErrors
	seen := make(map[int64]struct{}, len(answers))
	for i, a := range answers {
		field := fmt.Sprintf("answers[%d]", i)
		if a.QuestionID <= 0 {
			errs.Add(field+".question_id", "question_id must be a positive integer")
		}
		if a.SelectedOption < 1 || a.SelectedOption > MaxOptions {
			errs.Add(field+".selected_option", fmt.Sprintf("selected_option must be between 1 and %d", MaxOptions))
		}
		if _, dup := seen[a.QuestionID]; dup {
			errs.Add(field+".question_id", fmt.Sprintf("question %d is answered more than once", a.QuestionID))
		}
		seen[a.QuestionID] = struct{}{}
	}
	return errs.OrNil()
}

// ScoreAnswers grades answers against the quiz's questions. Every answer
// must reference a question of the quiz, otherwise nothing is graded.
// A selected option pointing at an empty slot is simply incorrect.
func ScoreAnswers(questions []*Question, answers []AnswerSubmission) (*Scorecard, error) {
	byID := make(map[int64]*Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var errs ValidationErrors
	for i, a := range answers {
		if _, ok := byID[a.QuestionID]; !ok {
			errs.Add(fmt.Sprintf("answers[%d].question_id", i), fmt.Sprintf("question %d does not belong to this quiz", a.QuestionID))
		}
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	card := &Scorecard{Answers: make([]UserAnswer, 0, len(answers))}
	for _, a := range answers {
		q := byID[a.QuestionID]
		correct := a.SelectedOption == q.CorrectOption
		if correct {
			card.Score += float64(q.Marks)
		}
		card.TotalMarks += q.Marks
		card.Answers = append(card.Answers, UserAnswer{
			QuestionID:     q.ID,
			SelectedOption: a.SelectedOption,
			IsCorrect:      correct,
		})
	}
	return card, nil
}

// AttemptSummary is an attempt joined with the names of its chapter and subject.
type AttemptSummary struct {
	QuizAttempt
	ChapterName string
	SubjectName string
}

// AnswerDetail is a persisted answer joined with its question.
type AnswerDetail struct {
	QuestionID     int64
	SelectedOption int
	IsCorrect      bool
	Statement      string
	CorrectOption  int
	Marks          int
}

// AttemptRepository persists attempts and answers.
// Lookups return (nil, nil) when no row matches.
type AttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *QuizAttempt) error
	CreateAnswer(ctx context.Context, answer *UserAnswer) error
	CompleteAttempt(ctx context.Context, attemptID int64, score float64, endTime time.Time) error

	// ListAttemptsByUser returns attempts ordered by start time, newest first.
	ListAttemptsByUser(ctx context.Context, userID int64) ([]*AttemptSummary, error)
	GetAttemptForUser(ctx context.Context, attemptID, userID int64) (*AttemptSummary, error)
	GetAnswersByAttempt(ctx context.Context, attemptID int64) ([]*AnswerDetail, error)
}
