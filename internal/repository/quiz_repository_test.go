package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"quiz-master/internal/domain"
	"quiz-master/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var questionRowColumns = []string{"id", "quiz_id", "question_statement", "option1", "option2", "option3", "option4", "correct_option", "marks"}

func TestToDomainQuestion_DropsEmptySlots(t *testing.T) {
	m := &models.Question{
		ID: 1, QuizID: 2, QuestionStatement: "Capital of France?",
		Option1: "Paris", Option2: "Rome",
		Option3: sql.NullString{String: "Berlin", Valid: true},
		CorrectOption: 1, Marks: 2,
	}
	q := toDomainQuestion(m)
	assert.Equal(t, []string{"Paris", "Rome", "Berlin"}, q.Options)

	m.Option3 = sql.NullString{}
	q = toDomainQuestion(m)
	assert.Equal(t, []string{"Paris", "Rome"}, q.Options)
}

func TestFromDomainQuestion_NullsMissingSlots(t *testing.T) {
	q := domain.NewQuestion(3, "2+2?", []string{"3", "4"}, 2, 0)
	m := fromDomainQuestion(q)
	assert.Equal(t, "3", m.Option1)
	assert.Equal(t, "4", m.Option2)
	assert.False(t, m.Option3.Valid)
	assert.False(t, m.Option4.Valid)
	assert.Equal(t, 1, m.Marks)
}

func TestSQLXQuizRepository_CreateQuizAndQuestion(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuizRepository(db, DialectPostgres)
	defer db.Close()

	quiz := domain.NewQuiz(4, time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), 30, "")
	expectNextID(mock, "quizzes_seq", 11)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO quizzes`)).
		WithArgs(int64(11), int64(4), sqlmock.AnyArg(), 30, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	require.NoError(t, repo.CreateQuiz(context.Background(), quiz))
	assert.Equal(t, int64(11), quiz.ID)

	question := domain.NewQuestion(quiz.ID, "2+2?", []string{"3", "4", "5"}, 2, 3)
	expectNextID(mock, "questions_seq", 21)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO questions`)).
		WithArgs(int64(21), int64(11), "2+2?", "3", "4", sqlmock.AnyArg(), sqlmock.AnyArg(), 2, 3).
		WillReturnResult(sqlmock.NewResult(21, 1))

	require.NoError(t, repo.CreateQuestion(context.Background(), question))
	assert.Equal(t, int64(21), question.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXQuizRepository_GetQuizByID_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuizRepository(db, DialectPostgres)
	defer db.Close()

	mock.ExpectQuery(`FROM quizzes q WHERE q.id = \?`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	quiz, err := repo.GetQuizByID(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, quiz)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXQuizRepository_GetQuestionsByQuizID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuizRepository(db, DialectPostgres)
	defer db.Close()

	mock.ExpectQuery(`FROM questions WHERE quiz_id = \? ORDER BY id`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(questionRowColumns).
			AddRow(int64(1), int64(7), "q1", "a", "b", nil, nil, 1, 1).
			AddRow(int64(2), int64(7), "q2", "a", "b", "c", "d", 2, 2))

	questions, err := repo.GetQuestionsByQuizID(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Len(t, questions[0].Options, 2)
	assert.Len(t, questions[1].Options, 4)
	assert.Equal(t, 2, questions[1].Marks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXQuizRepository_GetSubjectIDForQuiz(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuizRepository(db, DialectPostgres)
	defer db.Close()

	mock.ExpectQuery(`SELECT c.subject_id FROM quizzes q JOIN chapters c`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"subject_id"}).AddRow(int64(3)))

	subjectID, err := repo.GetSubjectIDForQuiz(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), subjectID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXQuizRepository_UpdateQuestion_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuizRepository(db, DialectPostgres)
	defer db.Close()

	q := &domain.Question{ID: 50, Statement: "s", Options: []string{"a", "b"}, CorrectOption: 1, Marks: 1}
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE questions SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateQuestion(context.Background(), q)
	assert.True(t, domain.HasCode(err, domain.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXQuizRepository_CountAttempts(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuizRepository(db, DialectPostgres)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM quiz_attempts WHERE quiz_id = ?`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountAttempts(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXSubjectRepository_ListChaptersBySubject(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXSubjectRepository(db, DialectPostgres)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM chapters WHERE subject_id = \? ORDER BY id`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "subject_id", "name", "description", "created_at"}).
			AddRow(int64(1), int64(3), "Algebra", nil, now).
			AddRow(int64(2), int64(3), "Geometry", "shapes", now))

	chapters, err := repo.ListChaptersBySubject(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, "", chapters[0].Description)
	assert.Equal(t, "shapes", chapters[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXSubjectRepository_CreateSubject(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXSubjectRepository(db, DialectPostgres)
	defer db.Close()

	subject := domain.NewSubject(" Math ", "")
	expectNextID(mock, "subjects_seq", 3)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO subjects (id, name, description, created_at)`)).
		WithArgs(int64(3), "Math", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(3, 1))

	require.NoError(t, repo.CreateSubject(context.Background(), subject))
	assert.Equal(t, int64(3), subject.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
