package models

import (
	"database/sql"
	"time"
)

// Subject is a row of the subjects table.
type Subject struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
}

// Chapter is a row of the chapters table.
type Chapter struct {
	ID          int64          `db:"id"`
	SubjectID   int64          `db:"subject_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
}

// Quiz is a row of the quizzes table. Duration is in minutes.
type Quiz struct {
	ID         int64          `db:"id"`
	ChapterID  int64          `db:"chapter_id"`
	DateOfQuiz time.Time      `db:"date_of_quiz"`
	Duration   int            `db:"duration"`
	Remarks    sql.NullString `db:"remarks"`
	CreatedAt  time.Time      `db:"created_at"`
}

// Question is a row of the questions table. option3 and option4 are optional.
type Question struct {
	ID                int64          `db:"id"`
	QuizID            int64          `db:"quiz_id"`
	QuestionStatement string         `db:"question_statement"`
	Option1           string         `db:"option1"`
	Option2           string         `db:"option2"`
	Option3           sql.NullString `db:"option3"`
	Option4           sql.NullString `db:"option4"`
	CorrectOption     int            `db:"correct_option"`
	Marks             int            `db:"marks"`
}
