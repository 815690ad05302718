package validation

import (
	"testing"

	"quiz-master/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	v := NewValidator()

	id, errs := v.ValidateID("quiz_id", "42")
	assert.Empty(t, errs)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		_, errs := v.ValidateID("quiz_id", raw)
		if assert.Len(t, errs, 1, raw) {
			assert.Equal(t, "quiz_id", errs[0].Field)
		}
	}
}

func TestValidateSubmitAttemptRequest(t *testing.T) {
	v := NewValidator()

	errs := v.ValidateSubmitAttemptRequest(&dto.SubmitAttemptRequest{})
	assert.Len(t, errs, 1)

	empty := []dto.AnswerRequest{}
	assert.Empty(t, v.ValidateSubmitAttemptRequest(&dto.SubmitAttemptRequest{Answers: &empty}))

	tooMany := make([]dto.AnswerRequest, maxAnswersPerSubmission+1)
	assert.Len(t, v.ValidateSubmitAttemptRequest(&dto.SubmitAttemptRequest{Answers: &tooMany}), 1)
}

func TestValidateLoginRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateLoginRequest(&dto.LoginRequest{Email: "a@b.co", Password: "x"}))
	assert.Len(t, v.ValidateLoginRequest(&dto.LoginRequest{Email: "not-an-email"}), 2)
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, isValidEmail("admin@quizmaster.com"))
	assert.True(t, isValidEmail(" learner@example.org "))
	assert.False(t, isValidEmail("admin@"))
	assert.False(t, isValidEmail("a b@c.d"))
	assert.False(t, isValidEmail(""))
}
