package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attempt(id int64, subject string, score float64, start time.Time, done bool) *AttemptSummary {
	a := &AttemptSummary{
		QuizAttempt: QuizAttempt{ID: id, Score: score, StartTime: start},
		SubjectName: subject,
	}
	if done {
		end := start.Add(10 * time.Minute)
		a.EndTime = &end
	}
	return a
}

func TestComputeUserStats_NoAttempts(t *testing.T) {
	stats := ComputeUserStats(nil)
	assert.Equal(t, 0, stats.TotalAttempts)
	assert.Equal(t, 0.0, stats.AverageScore)
	require.NotNil(t, stats.SubjectBreakdown)
	assert.Empty(t, stats.SubjectBreakdown)
}

func TestComputeUserStats_SingleSubject(t *testing.T) {
	now := time.Now()
	stats := ComputeUserStats([]*AttemptSummary{
		attempt(2, "Math", 6, now, true),
		attempt(1, "Math", 4, now.Add(-time.Hour), true),
	})
	assert.Equal(t, 2, stats.TotalAttempts)
	assert.Equal(t, 5.0, stats.AverageScore)
	assert.Equal(t, []SubjectStats{{Subject: "Math", Attempts: 2, AverageScore: 5.0}}, stats.SubjectBreakdown)
}

func TestComputeUserStats_SkipsInProgressAndSortsSubjects(t *testing.T) {
	now := time.Now()
	stats := ComputeUserStats([]*AttemptSummary{
		attempt(4, "Physics", 3, now, true),
		attempt(3, "Math", 100, now.Add(-time.Minute), false),
		attempt(2, "Biology", 2, now.Add(-2*time.Minute), true),
		attempt(1, "Math", 8, now.Add(-3*time.Minute), true),
	})
	assert.Equal(t, 3, stats.TotalAttempts)
	assert.InDelta(t, 13.0/3.0, stats.AverageScore, 1e-9)
	require.Len(t, stats.SubjectBreakdown, 3)
	assert.Equal(t, "Biology", stats.SubjectBreakdown[0].Subject)
	assert.Equal(t, "Math", stats.SubjectBreakdown[1].Subject)
	assert.Equal(t, 1, stats.SubjectBreakdown[1].Attempts)
	assert.Equal(t, 8.0, stats.SubjectBreakdown[1].AverageScore)
	assert.Equal(t, "Physics", stats.SubjectBreakdown[2].Subject)
}

func TestComputeScoreSummary_TiesTakeFirstEncountered(t *testing.T) {
	now := time.Now()
	attempts := []*AttemptSummary{
		attempt(5, "Math", 7, now, true),
		attempt(4, "Math", 2, now.Add(-time.Minute), true),
		attempt(3, "Math", 7, now.Add(-2*time.Minute), true),
		attempt(2, "Math", 2, now.Add(-3*time.Minute), true),
		attempt(1, "Math", 50, now.Add(-4*time.Minute), false),
	}
	summary := ComputeScoreSummary(attempts)
	require.NotNil(t, summary.Best)
	require.NotNil(t, summary.Worst)
	assert.Equal(t, int64(5), summary.Best.ID)
	assert.Equal(t, int64(4), summary.Worst.ID)
	assert.Equal(t, 4, summary.Completed)
	assert.Equal(t, 4.5, summary.AverageScore)
}

func TestComputeScoreSummary_Empty(t *testing.T) {
	summary := ComputeScoreSummary([]*AttemptSummary{})
	assert.Nil(t, summary.Best)
	assert.Nil(t, summary.Worst)
	assert.Equal(t, 0.0, summary.AverageScore)
}

func TestAverageScore(t *testing.T) {
	assert.Equal(t, 0.0, AverageScore(nil))
	assert.Equal(t, 5.0, AverageScore([]float64{4, 6}))
}
