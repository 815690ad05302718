package seedmodels

// SeedQuestion defines a question in the JSON seed file. CorrectOption is
// 1-based.
type SeedQuestion struct {
	Statement     string   `json:"question_statement"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Marks         int      `json:"marks"`
}

// SeedQuiz defines a quiz in the JSON seed file. DateOfQuiz is YYYY-MM-DD.
type SeedQuiz struct {
	DateOfQuiz string         `json:"date_of_quiz"`
	Duration   int            `json:"duration"`
	Remarks    string         `json:"remarks"`
	Questions  []SeedQuestion `json:"questions"`
}

// SeedChapter defines a chapter in the JSON seed file.
type SeedChapter struct {
	Name        string     `json:"chapter_name"`
	Description string     `json:"chapter_description"`
	Quizzes     []SeedQuiz `json:"quizzes"`
}

// SeedSubject defines the top-level entry of the JSON seed file.
type SeedSubject struct {
	Name        string        `json:"subject_name"`
	Description string        `json:"subject_description"`
	Chapters    []SeedChapter `json:"chapters"`
}
