package handler

import (
	"strings"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/dto"
	"lecture-quiz/internal/service"
	"lecture-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GenerateQuestions godoc
// @Summary Generate quiz questions
// @Description Builds questions from the loaded lecture, optionally focused on a topic
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuestionsRequest true "Topic and count"
// @Success 200 {object} dto.GenerateQuestionsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /quiz/generate [post]
func (h *QuizHandler) GenerateQuestions(c *fiber.Ctx) error {
	var req dto.GenerateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be JSON")
	}
	if errs := h.validator.ValidateGenerateRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GenerateQuestions(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CheckAnswer godoc
// @Summary Check quiz answer
// @Description Judges a free-text answer against the expected one
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.CheckAnswerRequest true "Answer details"
// @Success 200 {object} dto.CheckAnswerResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /quiz/check [post]
func (h *QuizHandler) CheckAnswer(c *fiber.Ctx) error {
	var req dto.CheckAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be JSON")
	}
	if errs := h.validator.ValidateCheckAnswerRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.CheckAnswer(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AnswerQuestion godoc
// @Summary Answer a question from the lecture
// @Tags quiz
// @Produce json
// @Param q query string true "Question"
// @Success 200 {object} dto.AnswerResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /answer [get]
func (h *QuizHandler) AnswerQuestion(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if errs := h.validator.ValidateQuestion(q); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.AnswerQuestion(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
