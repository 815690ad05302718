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

// sqlxSubjectRepository implements domain.SubjectRepository using sqlx.
type sqlxSubjectRepository struct {
	db      *sqlx.DB
	dialect Dialect
}

func NewSQLXSubjectRepository(db *sqlx.DB, dialect Dialect) domain.SubjectRepository {
	return &sqlxSubjectRepository{db: db, dialect: dialect}
}

func toDomainSubject(m *models.Subject) *domain.Subject {
	return &domain.Subject{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description.String,
		CreatedAt:   m.CreatedAt,
	}
}

func toDomainChapter(m *models.Chapter) *domain.Chapter {
	return &domain.Chapter{
		ID:          m.ID,
		SubjectID:   m.SubjectID,
		Name:        m.Name,
		Description: m.Description.String,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *sqlxSubjectRepository) CreateSubject(ctx context.Context, subject *domain.Subject) error {
	exec := GetExecutor(ctx, r.db)
	id, err := nextID(ctx, exec, r.dialect, "subjects_seq")
	if err != nil {
		return err
	}
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = time.Now().UTC()
	}

	query := exec.Rebind(`INSERT INTO subjects (id, name, description, created_at) VALUES (?, ?, ?, ?)`)
	if _, err := exec.ExecContext(ctx, query, id, subject.Name, util.StringToNullString(subject.Description), subject.CreatedAt); err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	subject.ID = id
	return nil
}

func (r *sqlxSubjectRepository) GetSubjectByID(ctx context.Context, id int64) (*domain.Subject, error) {
	exec := GetExecutor(ctx, r.db)
	var m models.Subject
	query := exec.Rebind(`SELECT id, name, description, created_at FROM subjects WHERE id = ?`)
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return toDomainSubject(&m), nil
}

// ListSubjects returns subjects ordered by id.
func (r *sqlxSubjectRepository) ListSubjects(ctx context.Context) ([]*domain.Subject, error) {
	exec := GetExecutor(ctx, r.db)
	var rows []models.Subject
	if err := exec.SelectContext(ctx, &rows, `SELECT id, name, description, created_at FROM subjects ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	subjects := make([]*domain.Subject, len(rows))
	for i := range rows {
		subjects[i] = toDomainSubject(&rows[i])
	}
	return subjects, nil
}

func (r *sqlxSubjectRepository) CreateChapter(ctx context.Context, chapter *domain.Chapter) error {
	exec := GetExecutor(ctx, r.db)
	id, err := nextID(ctx, exec, r.dialect, "chapters_seq")
	if err != nil {
		return err
	}
	if chapter.CreatedAt.IsZero() {
		chapter.CreatedAt = time.Now().UTC()
	}

	query := exec.Rebind(`INSERT INTO chapters (id, subject_id, name, description, created_at) VALUES (?, ?, ?, ?, ?)`)
	if _, err := exec.ExecContext(ctx, query, id, chapter.SubjectID, chapter.Name, util.StringToNullString(chapter.Description), chapter.CreatedAt); err != nil {
		return fmt.Errorf("failed to create chapter: %w", err)
	}
	chapter.ID = id
	return nil
}

func (r *sqlxSubjectRepository) GetChapterByID(ctx context.Context, id int64) (*domain.Chapter, error) {
	exec := GetExecutor(ctx, r.db)
	var m models.Chapter
	query := exec.Rebind(`SELECT id, subject_id, name, description, created_at FROM chapters WHERE id = ?`)
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	return toDomainChapter(&m), nil
}

// ListChapters returns every chapter ordered by subject then id.
func (r *sqlxSubjectRepository) ListChapters(ctx context.Context) ([]*domain.Chapter, error) {
	return r.listChapters(ctx, `SELECT id, subject_id, name, description, created_at FROM chapters ORDER BY subject_id, id`)
}

func (r *sqlxSubjectRepository) ListChaptersBySubject(ctx context.Context, subjectID int64) ([]*domain.Chapter, error) {
	return r.listChapters(ctx, `SELECT id, subject_id, name, description, created_at FROM chapters WHERE subject_id = ? ORDER BY id`, subjectID)
}

func (r *sqlxSubjectRepository) listChapters(ctx context.Context, query string, args ...interface{}) ([]*domain.Chapter, error) {
	exec := GetExecutor(ctx, r.db)
	var rows []models.Chapter
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	chapters := make([]*domain.Chapter, len(rows))
	for i := range rows {
		chapters[i] = toDomainChapter(&rows[i])
	}
	return chapters, nil
}
