package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	MinOptions = 2
	MaxOptions = 4

	// DefaultMarks applies when a question is created without marks.
	DefaultMarks = 1
)

// Subject is the top of the catalog tree. It owns chapters by id.
type Subject struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// NewSubject creates a new Subject instance
func NewSubject(name, description string) *Subject {
	return &Subject{
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// Validate validates the subject
func (s *Subject) Validate() error {
	var errs ValidationErrors
	if s.Name == "" {
		errs.Add("name", "subject name is required")
	}
	return errs.OrNil()
}

// Chapter belongs to one subject and owns quizzes by id.
type Chapter struct {
	ID          int64
	SubjectID   int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// NewChapter creates a new Chapter instance
func NewChapter(subjectID int64, name, description string) *Chapter {
	return &Chapter{
		SubjectID:   subjectID,
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// Validate validates the chapter
func (c *Chapter) Validate() error {
	var errs ValidationErrors
	if c.SubjectID <= 0 {
		errs.Add("subject_id", "subject_id is required")
	}
	if c.Name == "" {
		errs.Add("name", "chapter name is required")
	}
	return errs.OrNil()
}

// Quiz is a scheduled set of questions inside one chapter.
// Duration is in minutes.
type Quiz struct {
	ID         int64
	ChapterID  int64
	DateOfQuiz time.Time
	Duration   int
	Remarks    string
	CreatedAt  time.Time
}

// NewQuiz creates a new Quiz instance
func NewQuiz(chapterID int64, dateOfQuiz time.Time, duration int, remarks string) *Quiz {
	return &Quiz{
		ChapterID:  chapterID,
		DateOfQuiz: dateOfQuiz,
		Duration:   duration,
		Remarks:    remarks,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	var errs ValidationErrors
	if q.ChapterID <= 0 {
		errs.Add("chapter_id", "chapter_id is required")
	}
	if q.DateOfQuiz.IsZero() {
		errs.Add("date_of_quiz", "date_of_quiz is required")
	}
	if q.Duration <= 0 {
		errs.Add("duration", "duration must be a positive number of minutes")
	}
	return errs.OrNil()
}

// Question holds 2 to 4 option strings; CorrectOption is a 1-based index
// into Options.
type Question struct {
	ID            int64
	QuizID        int64
	Statement     string
	Options       []string
	CorrectOption int
	Marks         int
}

// NewQuestion creates a question, applying DefaultMarks when marks is zero.
func NewQuestion(quizID int64, statement string, options []string, correctOption, marks int) *Question {
	if marks == 0 {
		marks = DefaultMarks
	}
	return &Question{
		QuizID:        quizID,
		Statement:     strings.TrimSpace(statement),
		Options:       options,
		CorrectOption: correctOption,
		Marks:         marks,
	}
}

// Option returns the text of the 1-based option n, or "" when the slot is empty.
func (q *Question) Option(n int) string {
	if n < 1 || n > len(q.Options) {
		return ""
	}
	return q.Options[n-1]
}

// Validate checks the question against its own invariants. prefix is
// prepended to field names so nested payloads report precise paths.
func (q *Question) Validate(prefix string) ValidationErrors {
	var errs ValidationErrors
	if q.Statement == "" {
		errs.Add(prefix+"question_statement", "question statement is required")
	}
	if len(q.Options) < MinOptions || len(q.Options) > MaxOptions {
		errs.Add(prefix+"options", fmt.Sprintf("a question needs between %d and %d options", MinOptions, MaxOptions))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			errs.Add(fmt.Sprintf("%soption%d", prefix, i+1), "option text must not be empty")
		}
	}
	if q.CorrectOption < 1 || q.CorrectOption > len(q.Options) {
		errs.Add(prefix+"correct_option", "correct_option must reference a populated option")
	}
	if q.Marks <= 0 {
		errs.Add(prefix+"marks", "marks must be a positive integer")
	}
	return errs
}

// SubjectRepository persists subjects and their chapters.
// Lookups return (nil, nil) when no row matches.
type SubjectRepository interface {
	CreateSubject(ctx context.Context, subject *Subject) error
	GetSubjectByID(ctx context.Context, id int64) (*Subject, error)
	ListSubjects(ctx context.Context) ([]*Subject, error)

	CreateChapter(ctx context.Context, chapter *Chapter) error
	GetChapterByID(ctx context.Context, id int64) (*Chapter, error)
	ListChapters(ctx context.Context) ([]*Chapter, error)
	ListChaptersBySubject(ctx context.Context, subjectID int64) ([]*Chapter, error)
}

// QuizRepository persists quizzes and their questions.
// Lookups return (nil, nil) when no row matches.
type QuizRepository interface {
	CreateQuiz(ctx context.Context, quiz *Quiz) error
	GetQuizByID(ctx context.Context, id int64) (*Quiz, error)
	ListQuizzes(ctx context.Context) ([]*Quiz, error)
	ListQuizzesBySubject(ctx context.Context, subjectID int64) ([]*Quiz, error)
	// GetSubjectIDForQuiz walks quiz -> chapter -> subject by id.
	GetSubjectIDForQuiz(ctx context.Context, quizID int64) (int64, error)

	CreateQuestion(ctx context.Context, question *Question) error
	GetQuestionByID(ctx context.Context, id int64) (*Question, error)
	GetQuestionsByQuizID(ctx context.Context, quizID int64) ([]*Question, error)
	UpdateQuestion(ctx context.Context, question *Question) error

	CountAttempts(ctx context.Context, quizID int64) (int, error)
}
