package main

import (
	"context"
	"testing"

	"quiz-master/cmd/seed_admin/internal/seedmodels"
	"quiz-master/internal/config"
	"quiz-master/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	created []*domain.User
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	user.ID = int64(len(f.created) + 1)
	f.created = append(f.created, user)
	f.byEmail[user.Email] = user
	return nil
}
func (f *fakeUserRepo) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.byEmail[email], nil
}
func (f *fakeUserRepo) ListLearners(ctx context.Context) ([]*domain.User, error) { return nil, nil }
func (f *fakeUserRepo) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	return nil
}

func TestSeedAdmin(t *testing.T) {
	repo := &fakeUserRepo{byEmail: map[string]*domain.User{}}
	cfg := config.AdminConfig{Email: "admin@quizmaster.com", Password: "admin123", FullName: "Admin User"}

	created, err := seedAdmin(context.Background(), repo, cfg)
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, repo.created, 1)
	assert.True(t, repo.created[0].IsAdmin)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created[0].PasswordHash), []byte("admin123")))

	created, err = seedAdmin(context.Background(), repo, cfg)
	require.NoError(t, err)
	assert.False(t, created, "second run is a no-op")
	assert.Len(t, repo.created, 1)
}

func TestSeedAdmin_Refusals(t *testing.T) {
	repo := &fakeUserRepo{byEmail: map[string]*domain.User{
		"learner@example.com": {ID: 3, Email: "learner@example.com"},
	}}

	_, err := seedAdmin(context.Background(), repo, config.AdminConfig{Email: "admin@quizmaster.com", FullName: "Admin"})
	assert.Error(t, err, "password is required")

	_, err = seedAdmin(context.Background(), repo, config.AdminConfig{Email: "learner@example.com", Password: "x", FullName: "Admin"})
	assert.Error(t, err, "existing learner is not promoted")
	assert.Empty(t, repo.created)
}

func TestToCreateQuizRequest(t *testing.T) {
	req, err := toCreateQuizRequest(4, seedmodels.SeedQuiz{
		DateOfQuiz: "2026-03-01",
		Duration:   20,
		Questions:  []seedmodels.SeedQuestion{{Statement: "2+2?", Options: []string{"3", "4"}, CorrectOption: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), req.ChapterID)
	assert.Equal(t, 2026, req.DateOfQuiz.Year())
	require.Len(t, req.Questions, 1)
	assert.Equal(t, 2, req.Questions[0].CorrectOption)

	_, err = toCreateQuizRequest(4, seedmodels.SeedQuiz{DateOfQuiz: "03/01/2026"})
	assert.Error(t, err)
}
