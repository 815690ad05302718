package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-master/internal/domain"
	"quiz-master/internal/repository/models"
	"quiz-master/internal/util"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, password_hash, full_name, qualification, date_of_birth, is_admin, is_blocked, created_at`

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db      *sqlx.DB
	dialect Dialect
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB, dialect Dialect) domain.UserRepository {
	return &sqlxUserRepository{db: db, dialect: dialect}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	var dob *time.Time
	if m.DateOfBirth.Valid {
		d := m.DateOfBirth.Time
		dob = &d
	}
	return &domain.User{
		ID:            m.ID,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		FullName:      m.FullName,
		Qualification: m.Qualification.String,
		DateOfBirth:   dob,
		IsAdmin:       m.IsAdmin,
		IsBlocked:     m.IsBlocked,
		CreatedAt:     m.CreatedAt,
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	var dob sql.NullTime
	if u.DateOfBirth != nil {
		dob = util.TimeToNullTime(*u.DateOfBirth)
	}
	return &models.User{
		ID:            u.ID,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		FullName:      u.FullName,
		Qualification: util.StringToNullString(u.Qualification),
		DateOfBirth:   dob,
		IsAdmin:       u.IsAdmin,
		IsBlocked:     u.IsBlocked,
		CreatedAt:     u.CreatedAt,
	}
}

// CreateUser allocates an id and inserts the user.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	exec := GetExecutor(ctx, r.db)

	id, err := nextID(ctx, exec, r.dialect, "users_seq")
	if err != nil {
		return err
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	m := fromDomainUser(user)

	query := exec.Rebind(`INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = exec.ExecContext(ctx, query,
		id,
		m.Email,
		m.PasswordHash,
		m.FullName,
		m.Qualification,
		m.DateOfBirth,
		BoolToInt(m.IsAdmin),
		BoolToInt(m.IsBlocked),
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id
	return nil
}

func (r *sqlxUserRepository) getOne(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	exec := GetExecutor(ctx, r.db)
	var m models.User
	query := exec.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + where)
	if err := exec.GetContext(ctx, &m, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(&m), nil
}

// GetUserByID retrieves a user by id.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return r.getOne(ctx, "id = ?", userID)
}

// GetUserByEmail retrieves a user by email, compared case-insensitively.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

// ListLearners returns every non-admin user ordered by id.
func (r *sqlxUserRepository) ListLearners(ctx context.Context) ([]*domain.User, error) {
	exec := GetExecutor(ctx, r.db)
	var rows []models.User
	query := exec.Rebind(`SELECT ` + userColumns + ` FROM users WHERE is_admin = 0 ORDER BY id`)
	if err := exec.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*domain.User, len(rows))
	for i := range rows {
		users[i] = toDomainUser(&rows[i])
	}
	return users, nil
}

// SetBlocked updates the blocked flag. It fails with NOT_FOUND for an unknown user.
func (r *sqlxUserRepository) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE users SET is_blocked = ? WHERE id = ?`)
	result, err := exec.ExecContext(ctx, query, BoolToInt(blocked), userID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("user %d not found", userID))
	}
	return nil
}
