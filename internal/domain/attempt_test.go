package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestionQuiz() []*Question {
	return []*Question{
		{ID: 1, QuizID: 7, Statement: "q1", Options: []string{"a", "b"}, CorrectOption: 1, Marks: 1},
		{ID: 2, QuizID: 7, Statement: "q2", Options: []string{"a", "b", "c"}, CorrectOption: 2, Marks: 2},
	}
}

func TestScoreAnswers(t *testing.T) {
	tests := []struct {
		name       string
		answers    []AnswerSubmission
		wantScore  float64
		wantTotal  int
		wantMarked []bool
	}{
		{
			name:       "first correct only",
			answers:    []AnswerSubmission{{QuestionID: 1, SelectedOption: 1}, {QuestionID: 2, SelectedOption: 1}},
			wantScore:  1,
			wantTotal:  3,
			wantMarked: []bool{true, false},
		},
		{
			name:       "second correct only",
			answers:    []AnswerSubmission{{QuestionID: 1, SelectedOption: 2}, {QuestionID: 2, SelectedOption: 2}},
			wantScore:  2,
			wantTotal:  3,
			wantMarked: []bool{false, true},
		},
		{
			name:       "option beyond populated slots is incorrect",
			answers:    []AnswerSubmission{{QuestionID: 1, SelectedOption: 4}},
			wantScore:  0,
			wantTotal:  1,
			wantMarked: []bool{false},
		},
		{
			name:       "empty submission",
			answers:    []AnswerSubmission{},
			wantScore:  0,
			wantTotal:  0,
			wantMarked: []bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := ScoreAnswers(twoQuestionQuiz(), tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, card.Score)
			assert.Equal(t, tt.wantTotal, card.TotalMarks)
			require.Len(t, card.Answers, len(tt.wantMarked))
			for i, want := range tt.wantMarked {
				assert.Equal(t, want, card.Answers[i].IsCorrect)
				assert.Equal(t, tt.answers[i].SelectedOption, card.Answers[i].SelectedOption)
			}
		})
	}
}

func TestScoreAnswers_ForeignQuestionRejectsWholeSubmission(t *testing.T) {
	card, err := ScoreAnswers(twoQuestionQuiz(), []AnswerSubmission{
		{QuestionID: 1, SelectedOption: 1},
		{QuestionID: 99, SelectedOption: 1},
	})
	assert.Nil(t, card)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "answers[1].question_id", verrs[0].Field)
}

func TestValidateSubmission(t *testing.T) {
	assert.NoError(t, ValidateSubmission(nil))
	assert.NoError(t, ValidateSubmission([]AnswerSubmission{{QuestionID: 1, SelectedOption: 4}}))

	err := ValidateSubmission([]AnswerSubmission{{QuestionID: 1, SelectedOption: 0}})
	assert.Error(t, err)

	err = ValidateSubmission([]AnswerSubmission{{QuestionID: 1, SelectedOption: 5}})
	assert.Error(t, err)

	err = ValidateSubmission([]AnswerSubmission{{QuestionID: 1, SelectedOption: 1}, {QuestionID: 1, SelectedOption: 2}})
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs[0].Message, "more than once")
}

func TestQuestion_Validate(t *testing.T) {
	valid := NewQuestion(1, "2+2?", []string{"3", "4"}, 2, 0)
	assert.Empty(t, valid.Validate(""))
	assert.Equal(t, DefaultMarks, valid.Marks)

	pointsAtEmptySlot := NewQuestion(1, "2+2?", []string{"3", "4"}, 3, 1)
	errs := pointsAtEmptySlot.Validate("questions[0].")
	require.Len(t, errs, 1)
	assert.Equal(t, "questions[0].correct_option", errs[0].Field)

	tooFew := NewQuestion(1, "2+2?", []string{"4"}, 1, 1)
	assert.NotEmpty(t, tooFew.Validate(""))

	tooMany := NewQuestion(1, "2+2?", []string{"1", "2", "3", "4", "5"}, 1, 1)
	assert.NotEmpty(t, tooMany.Validate(""))

	assert.Equal(t, "4", valid.Option(2))
	assert.Equal(t, "", valid.Option(3))
}

func TestDomainError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStoreFailureError("failed to persist attempt", cause)
	assert.True(t, errors.Is(err, cause))
	assert.True(t, HasCode(err, ErrStoreFailure))
	assert.False(t, HasCode(err, ErrNotFound))
	assert.Equal(t, "failed to persist attempt: connection reset", err.Error())

	nf := NewQuizNotFoundError(42)
	assert.Equal(t, int64(42), nf.Context["quiz_id"])
}
