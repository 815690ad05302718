package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
)

const maxAnswersPerSubmission = 200

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateID parses a positive integer id from a path parameter.
func (v *Validator) ValidateID(field, raw string) (int64, domain.ValidationErrors) {
	var errs domain.ValidationErrors
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		errs.Add(field, fmt.Sprintf("%s must be a positive integer", field))
		return 0, errs
	}
	return id, nil
}

// ValidateSubmitAttemptRequest checks the shape of a submission. Option
// ranges and duplicates are checked by the domain.
func (v *Validator) ValidateSubmitAttemptRequest(req *dto.SubmitAttemptRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if req.Answers == nil {
		errs.Add("answers", "answers is required")
		return errs
	}
	if len(*req.Answers) > maxAnswersPerSubmission {
		errs.Add("answers", fmt.Sprintf("at most %d answers can be submitted at once", maxAnswersPerSubmission))
	}
	return errs
}

// ValidateLoginRequest requires both credentials.
func (v *Validator) ValidateLoginRequest(req *dto.LoginRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if !isValidEmail(req.Email) {
		errs.Add("email", "a valid email is required")
	}
	if req.Password == "" {
		errs.Add("password", "password is required")
	}
	return errs
}

// ValidateRegisterRequest checks the email format up front; the remaining
// rules live in the auth service.
func (v *Validator) ValidateRegisterRequest(req *dto.RegisterRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if !isValidEmail(req.Email) {
		errs.Add("email", "a valid email is required")
	}
	return errs
}

// isValidEmail is a shape check only.
func isValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return false
	}
	return emailPattern.MatchString(s)
}
