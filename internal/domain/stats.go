package domain

import "sort"

// SubjectStats is the per-subject rollup of a user's completed attempts.
type SubjectStats struct {
	Subject      string
	Attempts     int
	AverageScore float64
}

// UserStats is the rollup of a user's completed attempts.
type UserStats struct {
	TotalAttempts    int
	AverageScore     float64
	SubjectBreakdown []SubjectStats
}

// ScoreSummary reports best, worst and average over completed attempts.
// Best and Worst are nil when there are none.
type ScoreSummary struct {
	Best         *AttemptSummary
	Worst        *AttemptSummary
	AverageScore float64
	Completed    int
}

// AverageScore is the arithmetic mean of scores, 0 for an empty list.
func AverageScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// ComputeUserStats aggregates completed attempts overall and per subject.
// Breakdown entries are sorted by subject name.
func ComputeUserStats(attempts []*AttemptSummary) UserStats {
	var all []float64
	bySubject := make(map[string][]float64)
	for _, a := range attempts {
		if a == nil || !a.Completed() {
			continue
		}
		all = append(all, a.Score)
		bySubject[a.SubjectName] = append(bySubject[a.SubjectName], a.Score)
	}

	breakdown := make([]SubjectStats, 0, len(bySubject))
	for name, scores := range bySubject {
		breakdown = append(breakdown, SubjectStats{
			Subject:      name,
			Attempts:     len(scores),
			AverageScore: AverageScore(scores),
		})
	}
	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].Subject < breakdown[j].Subject })

	return UserStats{
		TotalAttempts:    len(all),
		AverageScore:     AverageScore(all),
		SubjectBreakdown: breakdown,
	}
}

// ComputeScoreSummary expects attempts in start-time-descending order; on a
// tie the first attempt encountered wins.
func ComputeScoreSummary(attempts []*AttemptSummary) ScoreSummary {
	var summary ScoreSummary
	var scores []float64
	for _, a := range attempts {
		if a == nil || !a.Completed() {
			continue
		}
		scores = append(scores, a.Score)
		if summary.Best == nil || a.Score > summary.Best.Score {
			summary.Best = a
		}
		if summary.Worst == nil || a.Score < summary.Worst.Score {
			summary.Worst = a
		}
	}
	summary.Completed = len(scores)
	summary.AverageScore = AverageScore(scores)
	return summary
}
