package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/prompts"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/store"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/utils"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"`  // "ready" | "not_ready"
	Service string                    `json:"service"` // Service name
	Checks  map[string]ReadinessCheck `json:"checks"`  // Individual check results
}

// Pinger covers optional backends (question bank, redis) the readiness
// endpoint should verify when they are configured.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	sessions      store.SessionStore
	promptManager prompts.PromptProvider
	extras        map[string]Pinger
}

func NewHealthHandler(sessions store.SessionStore, promptManager prompts.PromptProvider, extras map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		sessions:      sessions,
		promptManager: promptManager,
		extras:        extras,
	}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "interview",
		"version": "1.0.0",
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	ctx, cancel := context.WithTimeout(request.Context(), 3*time.Second)
	defer cancel()

	if handler.sessions == nil {
		checks["session_store"] = ReadinessCheck{
			Status:  "failed",
			Message: "Session store not initialized",
		}
		allChecksPass = false
	} else if err := handler.sessions.Ping(ctx); err != nil {
		checks["session_store"] = ReadinessCheck{
			Status:  "failed",
			Message: err.Error(),
		}
		allChecksPass = false
	} else {
		checks["session_store"] = ReadinessCheck{Status: "ok"}
	}

	if handler.promptManager == nil {
		checks["prompt_manager"] = ReadinessCheck{
			Status:  "failed",
			Message: "Prompt manager not initialized",
		}
		allChecksPass = false
	} else if len(handler.promptManager.GetTemplates()) == 0 {
		checks["prompt_manager"] = ReadinessCheck{
			Status:  "failed",
			Message: "No prompt templates loaded",
		}
		allChecksPass = false
	} else {
		checks["prompt_manager"] = ReadinessCheck{Status: "ok"}
	}

	for name, pinger := range handler.extras {
		if err := pinger.Ping(ctx); err != nil {
			checks[name] = ReadinessCheck{Status: "failed", Message: err.Error()}
			allChecksPass = false
		} else {
			checks[name] = ReadinessCheck{Status: "ok"}
		}
	}

	response := ReadinessResponse{
		Service: "interview",
		Checks:  checks,
	}

	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}
