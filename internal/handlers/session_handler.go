package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/engine"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/middleware"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/utils"
)

type SessionHandler struct {
	engine *engine.Engine
	logger *zap.Logger
}

func NewSessionHandler(eng *engine.Engine, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{engine: eng, logger: logger}
}

// Create handles POST /api/v1/interviews
func (sh *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateSessionRequest](r)

	session, err := sh.engine.Create(r.Context(), req)
	if err != nil {
		sh.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, models.SessionResponse{
		Session:   session,
		RequestID: req.RequestID,
	})
}

// Start handles POST /api/v1/interviews/{session_id}/start
func (sh *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	_, question, err := sh.engine.Start(r.Context(), sessionID)
	if err != nil {
		sh.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.QuestionResponse{Question: question})
}

// NextQuestion handles GET /api/v1/interviews/{session_id}/question
func (sh *SessionHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	resp, err := sh.engine.NextQuestion(r.Context(), sessionID)
	if err != nil {
		sh.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// SubmitAnswer handles POST /api/v1/interviews/{session_id}/answer
func (sh *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	req := middleware.GetValidatedRequest[*models.SubmitAnswerRequest](r)

	resp, err := sh.engine.SubmitAnswer(r.Context(), sessionID, req)
	if err != nil {
		sh.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// Pause handles POST /api/v1/interviews/{session_id}/pause
func (sh *SessionHandler) Pause(w http.ResponseWriter, r *http.Request) {
	sh.lifecycle(w, r, sh.engine.Pause)
}

// Resume handles POST /api/v1/interviews/{session_id}/resume
func (sh *SessionHandler) Resume(w http.ResponseWriter, r *http.Request) {
	sh.lifecycle(w, r, sh.engine.Resume)
}

// Abandon handles POST /api/v1/interviews/{session_id}/abandon
func (sh *SessionHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	sh.lifecycle(w, r, sh.engine.Abandon)
}

// Status handles GET /api/v1/interviews/{session_id}
func (sh *SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	session, err := sh.engine.Get(r.Context(), sessionID)
	if err != nil {
		sh.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.SessionResponse{Session: session})
}

func (sh *SessionHandler) lifecycle(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string) (*models.Session, error)) {
	sessionID := chi.URLParam(r, "session_id")

	session, err := op(r.Context(), sessionID)
	if err != nil {
		sh.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.SessionResponse{Session: session})
}

func (sh *SessionHandler) writeError(w http.ResponseWriter, err error) {
	status, resp := mapEngineError(err)
	if status == http.StatusInternalServerError {
		sh.logger.Error("Interview operation failed", zap.Error(err))
	}
	utils.JSON(w, status, resp)
}

// mapEngineError translates engine errors into the API's uniform error body.
func mapEngineError(err error) (int, models.ErrorResponse) {
	switch {
	case errors.Is(err, engine.ErrSessionNotFound):
		return http.StatusNotFound, models.ErrorResponse{Code: "session_not_found", Message: "no session with that id"}
	case errors.Is(err, engine.ErrQuestionNotFound):
		return http.StatusNotFound, models.ErrorResponse{Code: "question_not_found", Message: "question does not belong to this session"}
	case errors.Is(err, engine.ErrSessionTerminal):
		return http.StatusConflict, models.ErrorResponse{Code: "session_completed", Message: "session has already finished"}
	case errors.Is(err, engine.ErrInvalidTransition):
		return http.StatusConflict, models.ErrorResponse{Code: "invalid_transition", Message: "operation not allowed in the session's current status"}
	case errors.Is(err, engine.ErrReportNotReady):
		return http.StatusConflict, models.ErrorResponse{Code: "report_not_ready", Message: "report is only available once the interview is completed"}
	default:
		return http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "something went wrong"}
	}
}
