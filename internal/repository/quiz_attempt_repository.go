package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-master/internal/domain"
	"quiz-master/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const attemptSummarySelect = `SELECT a.id, a.user_id, a.quiz_id, a.score, a.start_time, a.end_time,
		c.name chapter_name, s.name subject_name
	FROM quiz_attempts a
	JOIN quizzes q ON q.id = a.quiz_id
	JOIN chapters c ON c.id = q.chapter_id
	JOIN subjects s ON s.id = c.subject_id`

// sqlxQuizAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxQuizAttemptRepository struct {
	db      *sqlx.DB
	dialect Dialect
}

func NewSQLXQuizAttemptRepository(db *sqlx.DB, dialect Dialect) domain.AttemptRepository {
	return &sqlxQuizAttemptRepository{db: db, dialect: dialect}
}

func toDomainAttemptSummary(m *models.AttemptSummary) *domain.AttemptSummary {
	var end *time.Time
	if m.EndTime.Valid {
		t := m.EndTime.Time
		end = &t
	}
	return &domain.AttemptSummary{
		QuizAttempt: domain.QuizAttempt{
			ID:        m.ID,
			UserID:    m.UserID,
			QuizID:    m.QuizID,
			Score:     m.Score,
			StartTime: m.StartTime,
			EndTime:   end,
		},
		ChapterName: m.ChapterName,
		SubjectName: m.SubjectName,
	}
}

// CreateAttempt allocates an id and inserts an in-progress attempt.
func (r *sqlxQuizAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	exec := GetExecutor(ctx, r.db)
	id, err := nextID(ctx, exec, r.dialect, "quiz_attempts_seq")
	if err != nil {
		return err
	}
	if attempt.StartTime.IsZero() {
		attempt.StartTime = time.Now().UTC()
	}

	query := exec.Rebind(`INSERT INTO quiz_attempts (id, user_id, quiz_id, score, start_time, end_time) VALUES (?, ?, ?, ?, ?, NULL)`)
	if _, err := exec.ExecContext(ctx, query, id, attempt.UserID, attempt.QuizID, attempt.Score, attempt.StartTime); err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}
	attempt.ID = id
	return nil
}

func (r *sqlxQuizAttemptRepository) CreateAnswer(ctx context.Context, answer *domain.UserAnswer) error {
	exec := GetExecutor(ctx, r.db)
	id, err := nextID(ctx, exec, r.dialect, "user_answers_seq")
	if err != nil {
		return err
	}

	query := exec.Rebind(`INSERT INTO user_answers (id, attempt_id, question_id, selected_option, is_correct) VALUES (?, ?, ?, ?, ?)`)
	if _, err := exec.ExecContext(ctx, query, id, answer.AttemptID, answer.QuestionID, answer.SelectedOption, BoolToInt(answer.IsCorrect)); err != nil {
		return fmt.Errorf("failed to create user answer: %w", err)
	}
	answer.ID = id
	return nil
}

// CompleteAttempt sets the final score and end time.
func (r *sqlxQuizAttemptRepository) CompleteAttempt(ctx context.Context, attemptID int64, score float64, endTime time.Time) error {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE quiz_attempts SET score = ?, end_time = ? WHERE id = ?`)
	result, err := exec.ExecContext(ctx, query, score, endTime, attemptID)
	if err != nil {
		return fmt.Errorf("failed to complete quiz attempt: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected != 1 {
		return fmt.Errorf("failed to complete quiz attempt %d: %d rows updated", attemptID, rowsAffected)
	}
	return nil
}

// ListAttemptsByUser orders by start time descending, id descending on ties.
func (r *sqlxQuizAttemptRepository) ListAttemptsByUser(ctx context.Context, userID int64) ([]*domain.AttemptSummary, error) {
	exec := GetExecutor(ctx, r.db)
	var rows []models.AttemptSummary
	query := exec.Rebind(attemptSummarySelect + ` WHERE a.user_id = ? ORDER BY a.start_time DESC, a.id DESC`)
	if err := exec.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list quiz attempts: %w", err)
	}
	attempts := make([]*domain.AttemptSummary, len(rows))
	for i := range rows {
		attempts[i] = toDomainAttemptSummary(&rows[i])
	}
	return attempts, nil
}

// GetAttemptForUser returns (nil, nil) when the attempt does not exist or
// belongs to another user.
func (r *sqlxQuizAttemptRepository) GetAttemptForUser(ctx context.Context, attemptID, userID int64) (*domain.AttemptSummary, error) {
	exec := GetExecutor(ctx, r.db)
	var m models.AttemptSummary
	query := exec.Rebind(attemptSummarySelect + ` WHERE a.id = ? AND a.user_id = ?`)
	if err := exec.GetContext(ctx, &m, query, attemptID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz attempt: %w", err)
	}
	return toDomainAttemptSummary(&m), nil
}

func (r *sqlxQuizAttemptRepository) GetAnswersByAttempt(ctx context.Context, attemptID int64) ([]*domain.AnswerDetail, error) {
	exec := GetExecutor(ctx, r.db)
	var rows []models.AnswerDetail
	query := exec.Rebind(`SELECT ua.question_id, ua.selected_option, ua.is_correct,
			qn.question_statement, qn.correct_option, qn.marks
		FROM user_answers ua
		JOIN questions qn ON qn.id = ua.question_id
		WHERE ua.attempt_id = ?
		ORDER BY ua.id`)
	if err := exec.SelectContext(ctx, &rows, query, attemptID); err != nil {
		return nil, fmt.Errorf("failed to get user answers: %w", err)
	}
	answers := make([]*domain.AnswerDetail, len(rows))
	for i, m := range rows {
		answers[i] = &domain.AnswerDetail{
			QuestionID:     m.QuestionID,
			SelectedOption: m.SelectedOption,
			IsCorrect:      m.IsCorrect,
			Statement:      m.QuestionStatement,
			CorrectOption:  m.CorrectOption,
			Marks:          m.Marks,
		}
	}
	return answers, nil
}
