package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"quiz-master/cmd/seed_admin/internal/seedmodels"
	"quiz-master/internal/config"
	"quiz-master/internal/database"
	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
	"quiz-master/internal/logger"
	"quiz-master/internal/repository"
	"quiz-master/internal/service"

	"go.uber.org/zap"
)

func main() {
	catalogPath := flag.String("catalog", "", "optional JSON file of subjects, chapters and quizzes to create")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		// If logger is not initialized yet, use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() // Ensure logs are flushed
	log := logger.Get()

	db, err := database.NewSQLXDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	dialect := repository.Dialect(cfg.DB.Driver)
	userRepo := repository.NewSQLXUserRepository(db, dialect)

	created, err := seedAdmin(ctx, userRepo, cfg.Admin)
	if err != nil {
		log.Fatal("Failed to seed administrator", zap.Error(err))
	}
	if created {
		log.Info("Administrator created", zap.String("email", cfg.Admin.Email))
	} else {
		log.Info("Administrator already exists", zap.String("email", cfg.Admin.Email))
	}

	if *catalogPath == "" {
		return
	}

	log.Info("Loading seed data from file", zap.String("path", *catalogPath))
	byteValue, err := os.ReadFile(*catalogPath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *catalogPath), zap.Error(err))
	}
	var subjects []seedmodels.SeedSubject
	if err := json.Unmarshal(byteValue, &subjects); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}

	// The server clears its own cache namespaces on the next write; seeding
	// runs against the store only.
	admin := service.NewAdminService(
		userRepo,
		repository.NewSQLXSubjectRepository(db, dialect),
		repository.NewSQLXQuizRepository(db, dialect),
		repository.NewTransactionManagerAdapter(db),
		service.NewResponseCache(nil, 0),
		service.NewInvalidationCoordinator(service.NewResponseCache(nil, 0)),
	)
	if err := seedCatalog(ctx, admin, subjects); err != nil {
		log.Fatal("Failed to seed catalog", zap.Error(err))
	}
	log.Info("Catalog seeding completed", zap.Int("subjects", len(subjects)))
}

// seedAdmin creates the configured administrator unless the email is
// already registered. It reports whether a row was created.
func seedAdmin(ctx context.Context, users domain.UserRepository, adminCfg config.AdminConfig) (bool, error) {
	if adminCfg.Password == "" {
		return false, errors.New("admin.password must be set")
	}

	existing, err := users.GetUserByEmail(ctx, adminCfg.Email)
	if err != nil {
		return false, fmt.Errorf("error checking admin %s: %w", adminCfg.Email, err)
	}
	if existing != nil {
		if !existing.IsAdmin {
			return false, fmt.Errorf("%s is registered as a learner", adminCfg.Email)
		}
		return false, nil
	}

	admin := domain.NewUser(adminCfg.Email, adminCfg.FullName, "", nil)
	admin.IsAdmin = true
	if err := admin.Validate(); err != nil {
		return false, err
	}
	if admin.PasswordHash, err = service.HashPassword(adminCfg.Password); err != nil {
		return false, err
	}
	if err := users.CreateUser(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to save admin %s: %w", adminCfg.Email, err)
	}
	return true, nil
}

// seedCatalog creates every subject, chapter and quiz through the admin
// service so seed data passes the same validation as API input.
func seedCatalog(ctx context.Context, admin service.AdminService, subjects []seedmodels.SeedSubject) error {
	for _, ss := range subjects {
		subject, err := admin.CreateSubject(ctx, &dto.CreateSubjectRequest{Name: ss.Name, Description: ss.Description})
		if err != nil {
			return fmt.Errorf("failed to save subject %s: %w", ss.Name, err)
		}

		for _, sc := range ss.Chapters {
			chapter, err := admin.CreateChapter(ctx, &dto.CreateChapterRequest{
				SubjectID:   subject.ID,
				Name:        sc.Name,
				Description: sc.Description,
			})
			if err != nil {
				return fmt.Errorf("failed to save chapter %s: %w", sc.Name, err)
			}

			for i, sq := range sc.Quizzes {
				req, err := toCreateQuizRequest(chapter.ID, sq)
				if err != nil {
					return fmt.Errorf("chapter %s quiz %d: %w", sc.Name, i+1, err)
				}
				if _, err := admin.CreateQuiz(ctx, req); err != nil {
					return fmt.Errorf("failed to save quiz %d of chapter %s: %w", i+1, sc.Name, err)
				}
			}
		}
	}
	return nil
}

func toCreateQuizRequest(chapterID int64, sq seedmodels.SeedQuiz) (*dto.CreateQuizRequest, error) {
	date, err := time.Parse(time.DateOnly, sq.DateOfQuiz)
	if err != nil {
		return nil, fmt.Errorf("invalid date_of_quiz %q: %w", sq.DateOfQuiz, err)
	}
	questions := make([]dto.QuestionRequest, len(sq.Questions))
	for i, q := range sq.Questions {
		questions[i] = dto.QuestionRequest{
			Statement:     q.Statement,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			Marks:         q.Marks,
		}
	}
	return &dto.CreateQuizRequest{
		ChapterID:  chapterID,
		DateOfQuiz: date,
		Duration:   sq.Duration,
		Remarks:    sq.Remarks,
		Questions:  questions,
	}, nil
}
