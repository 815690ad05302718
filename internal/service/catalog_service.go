package service

import (
	"context"
	"fmt"

	"quiz-master/internal/cache"
	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
)

// CatalogService serves the subject, chapter and quiz views shared by all
// learners.
type CatalogService interface {
	ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error)
	GetSubject(ctx context.Context, subjectID int64) (*dto.SubjectResponse, error)
	GetQuiz(ctx context.Context, quizID int64) (*dto.QuizDetailResponse, error)
}

type catalogServiceImpl struct {
	subjectRepo domain.SubjectRepository
	quizRepo    domain.QuizRepository
	cache       ResponseCache
}

func NewCatalogService(subjectRepo domain.SubjectRepository, quizRepo domain.QuizRepository, rc ResponseCache) CatalogService {
	return &catalogServiceImpl{
		subjectRepo: subjectRepo,
		quizRepo:    quizRepo,
		cache:       rc,
	}
}

// nestCatalog groups chapters under subjects and quizzes under chapters,
// keeping the store's ordering.
func nestCatalog(subjects []*domain.Subject, chapters []*domain.Chapter, quizzes []*domain.Quiz) []dto.SubjectResponse {
	quizzesByChapter := make(map[int64][]dto.QuizResponse)
	for _, q := range quizzes {
		quizzesByChapter[q.ChapterID] = append(quizzesByChapter[q.ChapterID], toQuizResponse(q))
	}
	chaptersBySubject := make(map[int64][]dto.ChapterResponse)
	for _, c := range chapters {
		qs := quizzesByChapter[c.ID]
		if qs == nil {
			qs = []dto.QuizResponse{}
		}
		chaptersBySubject[c.SubjectID] = append(chaptersBySubject[c.SubjectID], dto.ChapterResponse{
			ID:          c.ID,
			SubjectID:   c.SubjectID,
			Name:        c.Name,
			Description: c.Description,
			Quizzes:     qs,
		})
	}

	out := make([]dto.SubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		cs := chaptersBySubject[s.ID]
		if cs == nil {
			cs = []dto.ChapterResponse{}
		}
		out = append(out, dto.SubjectResponse{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Chapters:    cs,
		})
	}
	return out
}

func (s *catalogServiceImpl) ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
	var resp []dto.SubjectResponse
	err := s.cache.Fetch(ctx, cache.NamespaceKey(cache.CatalogNamespace, "subjects"), 0, &resp, func(ctx context.Context) (interface{}, error) {
		subjects, err := s.subjectRepo.ListSubjects(ctx)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to list subjects", err)
		}
		chapters, err := s.subjectRepo.ListChapters(ctx)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to list chapters", err)
		}
		quizzes, err := s.quizRepo.ListQuizzes(ctx)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to list quizzes", err)
		}
		return nestCatalog(subjects, chapters, quizzes), nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *catalogServiceImpl) GetSubject(ctx context.Context, subjectID int64) (*dto.SubjectResponse, error) {
	var resp dto.SubjectResponse
	key := cache.NamespaceKey(cache.SubjectNamespace(subjectID), "detail")
	err := s.cache.Fetch(ctx, key, 0, &resp, func(ctx context.Context) (interface{}, error) {
		subject, err := s.subjectRepo.GetSubjectByID(ctx, subjectID)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to load subject", err)
		}
		if subject == nil {
			return nil, domain.NewNotFoundError(fmt.Sprintf("subject %d not found", subjectID))
		}
		chapters, err := s.subjectRepo.ListChaptersBySubject(ctx, subjectID)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to list chapters", err)
		}
		quizzes, err := s.quizRepo.ListQuizzesBySubject(ctx, subjectID)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to list quizzes", err)
		}
		nested := nestCatalog([]*domain.Subject{subject}, chapters, quizzes)
		return nested[0], nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetQuiz never exposes correct options.
func (s *catalogServiceImpl) GetQuiz(ctx context.Context, quizID int64) (*dto.QuizDetailResponse, error) {
	var resp dto.QuizDetailResponse
	key := cache.NamespaceKey(cache.QuizNamespace(quizID), "detail")
	err := s.cache.Fetch(ctx, key, 0, &resp, func(ctx context.Context) (interface{}, error) {
		quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to load quiz", err)
		}
		if quiz == nil {
			return nil, domain.NewQuizNotFoundError(quizID)
		}
		chapter, err := s.subjectRepo.GetChapterByID(ctx, quiz.ChapterID)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to load chapter", err)
		}
		questions, err := s.quizRepo.GetQuestionsByQuizID(ctx, quizID)
		if err != nil {
			return nil, domain.NewStoreFailureError("failed to load questions", err)
		}

		detail := &dto.QuizDetailResponse{
			QuizResponse: toQuizResponse(quiz),
			Questions:    make([]dto.QuestionResponse, 0, len(questions)),
		}
		if chapter != nil {
			detail.ChapterName = chapter.Name
		}
		for _, q := range questions {
			detail.Questions = append(detail.Questions, toQuestionResponse(q))
		}
		return detail, nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
