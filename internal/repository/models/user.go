package models

import (
	"database/sql"
	"time"
)

// User is a row of the users table. Flags are stored as 0/1 and scan into bool.
type User struct {
	ID            int64          `db:"id"`
	Email         string         `db:"email"`
	PasswordHash  string         `db:"password_hash"`
	FullName      string         `db:"full_name"`
	Qualification sql.NullString `db:"qualification"`
	DateOfBirth   sql.NullTime   `db:"date_of_birth"`
	IsAdmin       bool           `db:"is_admin"`
	IsBlocked     bool           `db:"is_blocked"`
	CreatedAt     time.Time      `db:"created_at"`
}
