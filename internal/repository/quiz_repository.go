package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-master/internal/domain"
	"quiz-master/internal/repository/models"
	"quiz-master/internal/util"

	"github.com/jmoiron/sqlx"
)

const (
	quizColumns     = `q.id, q.chapter_id, q.date_of_quiz, q.duration, q.remarks, q.created_at`
	questionColumns = `id, quiz_id, question_statement, option1, option2, option3, option4, correct_option, marks`
)

// sqlxQuizRepository implements domain.QuizRepository using sqlx.
type sqlxQuizRepository struct {
	db      *sqlx.DB
	dialect Dialect
}

func NewSQLXQuizRepository(db *sqlx.DB, dialect Dialect) domain.QuizRepository {
	return &sqlxQuizRepository{db: db, dialect: dialect}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	return &domain.Quiz{
		ID:         m.ID,
		ChapterID:  m.ChapterID,
		DateOfQuiz: m.DateOfQuiz,
		Duration:   m.Duration,
		Remarks:    m.Remarks.String,
		CreatedAt:  m.CreatedAt,
	}
}

// toDomainQuestion drops trailing empty option slots.
func toDomainQuestion(m *models.Question) *domain.Question {
	options := []string{m.Option1, m.Option2}
	if m.Option3.Valid && m.Option3.String != "" {
		options = append(options, m.Option3.String)
		if m.Option4.Valid && m.Option4.String != "" {
			options = append(options, m.Option4.String)
		}
	}
	return &domain.Question{
		ID:            m.ID,
		QuizID:        m.QuizID,
		Statement:     m.QuestionStatement,
		Options:       options,
		CorrectOption: m.CorrectOption,
		Marks:         m.Marks,
	}
}

func fromDomainQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:                q.ID,
		QuizID:            q.QuizID,
		QuestionStatement: q.Statement,
		Option1:           q.Option(1),
		Option2:           q.Option(2),
		Option3:           util.StringToNullString(q.Option(3)),
		Option4:           util.StringToNullString(q.Option(4)),
		CorrectOption:     q.CorrectOption,
		Marks:             q.Marks,
	}
}

func (r *sqlxQuizRepository) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	exec := GetExecutor(ctx, r.db)
	id, err := nextID(ctx, exec, r.dialect, "quizzes_seq")
	if err != nil {
		return err
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now().UTC()
	}

	query := exec.Rebind(`INSERT INTO quizzes (id, chapter_id, date_of_quiz, duration, remarks, created_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := exec.ExecContext(ctx, query, id, quiz.ChapterID, quiz.DateOfQuiz, quiz.Duration, util.StringToNullString(quiz.Remarks), quiz.CreatedAt); err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	quiz.ID = id
	return nil
}

func (r *sqlxQuizRepository) GetQuizByID(ctx context.Context, id int64) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, r.db)
	var m models.Quiz
	query := exec.Rebind(`SELECT ` + quizColumns + ` FROM quizzes q WHERE q.id = ?`)
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return toDomainQuiz(&m), nil
}

// ListQuizzes returns every quiz ordered by chapter then id.
func (r *sqlxQuizRepository) ListQuizzes(ctx context.Context) ([]*domain.Quiz, error) {
	return r.listQuizzes(ctx, `SELECT `+quizColumns+` FROM quizzes q ORDER BY q.chapter_id, q.id`)
}

func (r *sqlxQuizRepository) ListQuizzesBySubject(ctx context.Context, subjectID int64) ([]*domain.Quiz, error) {
	return r.listQuizzes(ctx, `SELECT `+quizColumns+` FROM quizzes q
		JOIN chapters c ON c.id = q.chapter_id
		WHERE c.subject_id = ?
		ORDER BY q.chapter_id, q.id`, subjectID)
}

func (r *sqlxQuizRepository) listQuizzes(ctx context.Context, query string, args ...interface{}) ([]*domain.Quiz, error) {
	exec := GetExecutor(ctx, r.db)
	var rows []models.Quiz
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	quizzes := make([]*domain.Quiz, len(rows))
	for i := range rows {
		quizzes[i] = toDomainQuiz(&rows[i])
	}
	return quizzes, nil
}

// GetSubjectIDForQuiz returns 0 when the quiz does not exist.
func (r *sqlxQuizRepository) GetSubjectIDForQuiz(ctx context.Context, quizID int64) (int64, error) {
	exec := GetExecutor(ctx, r.db)
	var subjectID int64
	query := exec.Rebind(`SELECT c.subject_id FROM quizzes q JOIN chapters c ON c.id = q.chapter_id WHERE q.id = ?`)
	if err := exec.GetContext(ctx, &subjectID, query, quizID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to resolve subject for quiz: %w", err)
	}
	return subjectID, nil
}

func (r *sqlxQuizRepository) CreateQuestion(ctx context.Context, question *domain.Question) error {
	exec := GetExecutor(ctx, r.db)
	id, err := nextID(ctx, exec, r.dialect, "questions_seq")
	if err != nil {
		return err
	}
	m := fromDomainQuestion(question)

	query := exec.Rebind(`INSERT INTO questions (` + questionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = exec.ExecContext(ctx, query,
		id,
		m.QuizID,
		m.QuestionStatement,
		m.Option1,
		m.Option2,
		m.Option3,
		m.Option4,
		m.CorrectOption,
		m.Marks,
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	question.ID = id
	return nil
}

func (r *sqlxQuizRepository) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	exec := GetExecutor(ctx, r.db)
	var m models.Question
	query := exec.Rebind(`SELECT ` + questionColumns + ` FROM questions WHERE id = ?`)
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return toDomainQuestion(&m), nil
}

// GetQuestionsByQuizID returns the quiz's questions ordered by id.
func (r *sqlxQuizRepository) GetQuestionsByQuizID(ctx context.Context, quizID int64) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, r.db)
	var rows []models.Question
	query := exec.Rebind(`SELECT ` + questionColumns + ` FROM questions WHERE quiz_id = ? ORDER BY id`)
	if err := exec.SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	questions := make([]*domain.Question, len(rows))
	for i := range rows {
		questions[i] = toDomainQuestion(&rows[i])
	}
	return questions, nil
}

func (r *sqlxQuizRepository) UpdateQuestion(ctx context.Context, question *domain.Question) error {
	exec := GetExecutor(ctx, r.db)
	m := fromDomainQuestion(question)

	query := exec.Rebind(`UPDATE questions SET question_statement = ?, option1 = ?, option2 = ?, option3 = ?, option4 = ?, correct_option = ?, marks = ? WHERE id = ?`)
	result, err := exec.ExecContext(ctx, query,
		m.QuestionStatement,
		m.Option1,
		m.Option2,
		m.Option3,
		m.Option4,
		m.CorrectOption,
		m.Marks,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("question %d not found", question.ID))
	}
	return nil
}

func (r *sqlxQuizRepository) CountAttempts(ctx context.Context, quizID int64) (int, error) {
	exec := GetExecutor(ctx, r.db)
	var count int
	query := exec.Rebind(`SELECT COUNT(*) FROM quiz_attempts WHERE quiz_id = ?`)
	if err := exec.GetContext(ctx, &count, query, quizID); err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return count, nil
}
