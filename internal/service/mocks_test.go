package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"quiz-master/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListLearners(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	args := m.Called(ctx, userID, blocked)
	return args.Error(0)
}

// --- MockSubjectRepository ---
type MockSubjectRepository struct {
	mock.Mock
}

func (m *MockSubjectRepository) CreateSubject(ctx context.Context, subject *domain.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

func (m *MockSubjectRepository) GetSubjectByID(ctx context.Context, id int64) (*domain.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subject), args.Error(1)
}

func (m *MockSubjectRepository) ListSubjects(ctx context.Context) ([]*domain.Subject, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Subject), args.Error(1)
}

func (m *MockSubjectRepository) CreateChapter(ctx context.Context, chapter *domain.Chapter) error {
	args := m.Called(ctx, chapter)
	return args.Error(0)
}

func (m *MockSubjectRepository) GetChapterByID(ctx context.Context, id int64) (*domain.Chapter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chapter), args.Error(1)
}

func (m *MockSubjectRepository) ListChapters(ctx context.Context) ([]*domain.Chapter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Chapter), args.Error(1)
}

func (m *MockSubjectRepository) ListChaptersBySubject(ctx context.Context, subjectID int64) ([]*domain.Chapter, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Chapter), args.Error(1)
}

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetQuizByID(ctx context.Context, id int64) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListQuizzes(ctx context.Context) ([]*domain.Quiz, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListQuizzesBySubject(ctx context.Context, subjectID int64) ([]*domain.Quiz, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetSubjectIDForQuiz(ctx context.Context, quizID int64) (int64, error) {
	args := m.Called(ctx, quizID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuizRepository) CreateQuestion(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuizRepository) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuizRepository) GetQuestionsByQuizID(ctx context.Context, quizID int64) ([]*domain.Question, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuizRepository) UpdateQuestion(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuizRepository) CountAttempts(ctx context.Context, quizID int64) (int, error) {
	args := m.Called(ctx, quizID)
	return args.Int(0), args.Error(1)
}

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) CreateAnswer(ctx context.Context, answer *domain.UserAnswer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAttemptRepository) CompleteAttempt(ctx context.Context, attemptID int64, score float64, endTime time.Time) error {
	args := m.Called(ctx, attemptID, score, endTime)
	return args.Error(0)
}

func (m *MockAttemptRepository) ListAttemptsByUser(ctx context.Context, userID int64) ([]*domain.AttemptSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AttemptSummary), args.Error(1)
}

func (m *MockAttemptRepository) GetAttemptForUser(ctx context.Context, attemptID, userID int64) (*domain.AttemptSummary, error) {
	args := m.Called(ctx, attemptID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttemptSummary), args.Error(1)
}

func (m *MockAttemptRepository) GetAnswersByAttempt(ctx context.Context, attemptID int64) ([]*domain.AnswerDetail, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AnswerDetail), args.Error(1)
}

// --- MockTransactionManager ---
// WithTransaction runs fn unless the mock is told to fail the begin.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// --- recordingInvalidator ---
type recordingInvalidator struct {
	mu     sync.Mutex
	events []domain.InvalidationEvent
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, events ...domain.InvalidationEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
}

func (r *recordingInvalidator) Events() []domain.InvalidationEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.InvalidationEvent(nil), r.events...)
}

// --- memoryCache ---
// memoryCache is an in-memory domain.Cache. Setting down makes every call
// fail as if redis were unreachable. TTLs are ignored.
type memoryCache struct {
	mu     sync.Mutex
	values map[string]string
	sets   map[string]map[string]struct{}
	down   bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		values: make(map[string]string),
		sets:   make(map[string]map[string]struct{}),
	}
}

const errCacheDown = domain.CacheError("cache: connection refused")

func (c *memoryCache) SetDown(down bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.down = down
}

func (c *memoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return "", errCacheDown
	}
	v, ok := c.values[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return errCacheDown
	}
	c.values[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return errCacheDown
	}
	for _, k := range keys {
		delete(c.values, k)
		delete(c.sets, k)
	}
	return nil
}

func (c *memoryCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return 0, errCacheDown
	}
	n, _ := strconv.ParseInt(c.values[key], 10, 64)
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *memoryCache) SAdd(ctx context.Context, key string, members ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return errCacheDown
	}
	set, ok := c.sets[key]
	if !ok {
		set = make(map[string]struct{})
		c.sets[key] = set
	}
	for _, m := range members {
		set[m] = struct{}{}
	}
	return nil
}

func (c *memoryCache) SMembers(ctx context.Context, key string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return nil, errCacheDown
	}
	var out []string
	for m := range c.sets[key] {
		out = append(out, m)
	}
	return out, nil
}

func (c *memoryCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return errCacheDown
	}
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return errCacheDown
	}
	return nil
}
