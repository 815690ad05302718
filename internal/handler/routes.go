package handler

import (
	"quiz-master/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Router bundles what RegisterRoutes needs.
type Router struct {
	Auth  *AuthHandler
	User  *UserHandler
	Admin *AdminHandler

	// Protected authenticates the caller; SubmitLimit throttles attempt
	// submissions. A nil SubmitLimit disables throttling.
	Protected   fiber.Handler
	SubmitLimit fiber.Handler
}

// RegisterRoutes mounts /api/auth, /api/user and /api/admin.
func RegisterRoutes(app fiber.Router, r Router) {
	vm := middleware.NewValidationMiddleware()
	id := vm.ValidateID("id")

	api := app.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", r.Auth.Register)
	authGroup.Post("/login", r.Auth.Login)
	authGroup.Post("/admin/login", r.Auth.AdminLogin)

	// Learner routes (all protected)
	userGroup := api.Group("/user", r.Protected)
	userGroup.Get("/subjects", r.User.ListSubjects)
	userGroup.Get("/subjects/:id", id, r.User.GetSubject)
	userGroup.Get("/quizzes/:id", id, r.User.GetQuiz)
	submit := []fiber.Handler{vm.ValidateID("quiz_id")}
	if r.SubmitLimit != nil {
		submit = append(submit, r.SubmitLimit)
	}
	userGroup.Post("/quizzes/:quiz_id/attempt", append(submit, r.User.SubmitAttempt)...)
	userGroup.Get("/stats", r.User.GetStats)
	userGroup.Get("/attempts", r.User.GetAttempts)
	userGroup.Get("/attempts/:id", id, r.User.GetAttempt)

	// Admin routes
	adminGroup := api.Group("/admin", r.Protected, middleware.AdminOnly())
	adminGroup.Post("/subjects", r.Admin.CreateSubject)
	adminGroup.Get("/subjects", r.Admin.ListSubjects)
	adminGroup.Post("/chapters", r.Admin.CreateChapter)
	adminGroup.Post("/quizzes", r.Admin.CreateQuiz)
	adminGroup.Get("/quizzes/:id", id, r.Admin.GetQuiz)
	adminGroup.Put("/questions/:id", id, r.Admin.UpdateQuestion)
	adminGroup.Get("/users", r.Admin.ListUsers)
	adminGroup.Get("/users/:id", id, r.Admin.GetUser)
	adminGroup.Post("/users/:id/block", id, r.Admin.BlockUser)
	adminGroup.Post("/users/:id/unblock", id, r.Admin.UnblockUser)
}
