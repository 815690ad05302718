package models

import (
	"database/sql"
	"time"
)

// QuizAttempt is a row of the quiz_attempts table.
type QuizAttempt struct {
	ID        int64        `db:"id"`
	UserID    int64        `db:"user_id"`
	QuizID    int64        `db:"quiz_id"`
	Score     float64      `db:"score"`
	StartTime time.Time    `db:"start_time"`
	EndTime   sql.NullTime `db:"end_time"`
}

// AttemptSummary is an attempt joined with its chapter and subject names.
type AttemptSummary struct {
	QuizAttempt
	ChapterName string `db:"chapter_name"`
	SubjectName string `db:"subject_name"`
}

// AnswerDetail is a user_answers row joined with its question.
type AnswerDetail struct {
	QuestionID        int64  `db:"question_id"`
	SelectedOption    int    `db:"selected_option"`
	IsCorrect         bool   `db:"is_correct"`
	QuestionStatement string `db:"question_statement"`
	CorrectOption     int    `db:"correct_option"`
	Marks             int    `db:"marks"`
}
