package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    int64  `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// RegisterRequest is the body of POST /api/auth/register.
// DateOfBirth uses the YYYY-MM-DD layout.
type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	Qualification string `json:"qualification"`
	DateOfBirth   string `json:"date_of_birth"`
}

// LoginRequest is the body of both login endpoints.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned after a successful login.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}

// UserResponse is the public profile of a user.
type UserResponse struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	Qualification string     `json:"qualification"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	IsAdmin       bool       `json:"is_admin"`
	IsBlocked     bool       `json:"is_blocked"`
	CreatedAt     time.Time  `json:"created_at"`
}

// SubjectStatsResponse is one entry of a subject breakdown.
type SubjectStatsResponse struct {
	Subject      string  `json:"subject"`
	Attempts     int     `json:"attempts"`
	AverageScore float64 `json:"average_score"`
}

// UserStatsResponse is returned by GET /api/user/stats.
// @Description Completed-attempt statistics for the caller
type UserStatsResponse struct {
	TotalAttempts    int                    `json:"total_attempts"`
	AverageScore     float64                `json:"average_score"`
	SubjectBreakdown []SubjectStatsResponse `json:"subject_breakdown"`
}

// AdminUserDetailResponse is returned by GET /api/admin/users/{id}.
type AdminUserDetailResponse struct {
	User              UserResponse             `json:"user"`
	Attempts          []AttemptSummaryResponse `json:"attempts"`
	CompletedAttempts int                      `json:"completed_attempts"`
	BestScore         *float64                 `json:"best_score"`
	WorstScore        *float64                 `json:"worst_score"`
	BestAttemptID     *int64                   `json:"best_attempt_id"`
	WorstAttemptID    *int64                   `json:"worst_attempt_id"`
	AverageScore      float64                  `json:"average_score"`
}

// BlockStatusResponse is returned by the block and unblock endpoints.
type BlockStatusResponse struct {
	UserID    int64 `json:"user_id"`
	IsBlocked bool  `json:"is_blocked"`
}
