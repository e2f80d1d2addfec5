package handler

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the API under /api.
func RegisterRoutes(app *fiber.App, quiz *QuizHandler, health *HealthHandler) {
	api := app.Group("/api")
	api.Get("/health", health.Health)
	api.Post("/quiz/generate", quiz.GenerateQuestions)
	api.Post("/quiz/check", quiz.CheckAnswer)
	api.Get("/answer", quiz.AnswerQuestion)
}
