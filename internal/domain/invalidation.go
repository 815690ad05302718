package domain

// InvalidationKind names the kind of mutation that makes cached responses stale.
type InvalidationKind string

const (
	InvalidateSubject     InvalidationKind = "subject"
	InvalidateChapter     InvalidationKind = "chapter"
	InvalidateQuiz        InvalidationKind = "quiz"
	InvalidateUser        InvalidationKind = "user"
	InvalidateAdminGlobal InvalidationKind = "admin-global"
)

// InvalidationEvent describes one committed mutation. SubjectID is the
// owning subject for chapter and quiz events, 0 when unknown.
type InvalidationEvent struct {
	Kind      InvalidationKind
	ID        int64
	SubjectID int64
}

func SubjectChanged(subjectID int64) InvalidationEvent {
	return InvalidationEvent{Kind: InvalidateSubject, ID: subjectID, SubjectID: subjectID}
}

func ChapterChanged(chapterID, subjectID int64) InvalidationEvent {
	return InvalidationEvent{Kind: InvalidateChapter, ID: chapterID, SubjectID: subjectID}
}

func QuizChanged(quizID, subjectID int64) InvalidationEvent {
	return InvalidationEvent{Kind: InvalidateQuiz, ID: quizID, SubjectID: subjectID}
}

func UserChanged(userID int64) InvalidationEvent {
	return InvalidationEvent{Kind: InvalidateUser, ID: userID}
}

func AdminGlobalChanged() InvalidationEvent {
	return InvalidationEvent{Kind: InvalidateAdminGlobal}
}
