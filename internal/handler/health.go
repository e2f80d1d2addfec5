package handler

import (
	"errors"

	"lecture-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

type HealthResponse struct {
	Status       string `json:"status"`
	DocumentHash string `json:"document_hash"`
	Sentences    int    `json:"sentences"`
	Cache        string `json:"cache"`
}

type HealthHandler struct {
	engine        service.QuizEngine
	questionCache service.QuestionCacheService
}

// NewHealthHandler reports on engine and, when questionCache is not nil, on
// the question cache.
func NewHealthHandler(engine service.QuizEngine, questionCache service.QuestionCacheService) *HealthHandler {
	if questionCache == nil {
		questionCache = service.NewQuestionCacheService(nil, 0)
	}
	return &HealthHandler{engine: engine, questionCache: questionCache}
}

// Health reports which lecture is loaded. An unreachable cache degrades
// caching only, so the status stays "ok".
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	cacheStatus := "ok"
	if err := h.questionCache.Ping(c.UserContext()); err != nil {
		cacheStatus = "unavailable"
		if errors.Is(err, service.ErrCacheDisabled) {
			cacheStatus = "disabled"
		}
	}
	return c.JSON(HealthResponse{
		Status:       "ok",
		DocumentHash: h.engine.DocumentHash(),
		Sentences:    h.engine.CorpusSize(),
		Cache:        cacheStatus,
	})
}
