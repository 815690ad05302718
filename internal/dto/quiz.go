package dto

import "time"

// SubjectResponse represents a subject in the API response
// @Description Subject with its chapters
type SubjectResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Chapters    []ChapterResponse `json:"chapters"`
}

// ChapterResponse represents a chapter and the quizzes it owns.
type ChapterResponse struct {
	ID          int64          `json:"id"`
	SubjectID   int64          `json:"subject_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Quizzes     []QuizResponse `json:"quizzes"`
}

// QuizResponse is the quiz header shown in listings.
type QuizResponse struct {
	ID         int64     `json:"id"`
	ChapterID  int64     `json:"chapter_id"`
	DateOfQuiz time.Time `json:"date_of_quiz"`
	Duration   int       `json:"duration"`
	Remarks    string    `json:"remarks"`
}

// QuestionResponse is a question as seen by a learner. The correct option
// is never included.
type QuestionResponse struct {
	ID        int64    `json:"id"`
	Statement string   `json:"question_statement"`
	Options   []string `json:"options"`
	Marks     int      `json:"marks"`
}

// QuizDetailResponse is the learner view of a quiz.
// @Description Quiz with questions, without answers
type QuizDetailResponse struct {
	QuizResponse
	ChapterName string             `json:"chapter_name"`
	Questions   []QuestionResponse `json:"questions"`
}

// AdminQuestionResponse includes the correct option.
type AdminQuestionResponse struct {
	QuestionResponse
	CorrectOption int `json:"correct_option"`
}

// AdminQuizDetailResponse is the administrator view of a quiz.
type AdminQuizDetailResponse struct {
	QuizResponse
	Questions    []AdminQuestionResponse `json:"questions"`
	AttemptCount int                     `json:"attempt_count"`
	Locked       bool                    `json:"locked"`
}

// CreateSubjectRequest is the body of POST /api/admin/subjects.
type CreateSubjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateChapterRequest is the body of POST /api/admin/chapters.
type CreateChapterRequest struct {
	SubjectID   int64  `json:"subject_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// QuestionRequest describes one question. Options holds 2 to 4 entries and
// CorrectOption is 1-based. Marks defaults to 1 when omitted.
type QuestionRequest struct {
	Statement     string   `json:"question_statement"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Marks         int      `json:"marks"`
}

// CreateQuizRequest is the body of POST /api/admin/quizzes.
// @Description Quiz with its questions
type CreateQuizRequest struct {
	ChapterID  int64             `json:"chapter_id"`
	DateOfQuiz time.Time         `json:"date_of_quiz"`
	Duration   int               `json:"duration"`
	Remarks    string            `json:"remarks"`
	Questions  []QuestionRequest `json:"questions"`
}

// CreatedResponse carries the id of a newly created record.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// AnswerRequest is one submitted answer.
type AnswerRequest struct {
	QuestionID     int64 `json:"question_id"`
	SelectedOption int   `json:"selected_option"`
}

// SubmitAttemptRequest is the body of POST /api/user/quizzes/{id}/attempt.
// Answers is a pointer so a missing field can be told apart from an empty
// list.
// @Description Answers submitted for a quiz
type SubmitAttemptRequest struct {
	Answers *[]AnswerRequest `json:"answers"`
}

// SubmitAttemptResponse is returned with 201 after a submission commits.
type SubmitAttemptResponse struct {
	AttemptID  int64   `json:"attempt_id"`
	Score      float64 `json:"score"`
	TotalMarks int     `json:"total_marks"`
}

// AttemptSummaryResponse is one row of an attempt history.
type AttemptSummaryResponse struct {
	ID          int64      `json:"id"`
	QuizID      int64      `json:"quiz_id"`
	ChapterName string     `json:"chapter_name"`
	SubjectName string     `json:"subject_name"`
	Score       float64    `json:"score"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Completed   bool       `json:"completed"`
}

// AnswerDetailResponse is one answer in an attempt detail.
type AnswerDetailResponse struct {
	QuestionID     int64  `json:"question_id"`
	Statement      string `json:"question_statement"`
	SelectedOption int    `json:"selected_option"`
	CorrectOption  int    `json:"correct_option"`
	IsCorrect      bool   `json:"is_correct"`
	Marks          int    `json:"marks"`
}

// AttemptDetailResponse is returned by GET /api/user/attempts/{id}.
type AttemptDetailResponse struct {
	AttemptSummaryResponse
	TotalMarks int                    `json:"total_marks"`
	Answers    []AnswerDetailResponse `json:"answers"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Details interface{} `json:"details,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}
