package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/engine"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/utils"
)

type ReportHandler struct {
	engine *engine.Engine
	logger *zap.Logger
}

func NewReportHandler(eng *engine.Engine, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{engine: eng, logger: logger}
}

// Get handles GET /api/v1/interviews/{session_id}/report
func (rh *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	report, err := rh.engine.Report(r.Context(), sessionID)
	if err != nil {
		status, resp := mapEngineError(err)
		if status == http.StatusInternalServerError {
			rh.logger.Error("Report generation failed", zap.String("session_id", sessionID), zap.Error(err))
		}
		utils.JSON(w, status, resp)
		return
	}
	utils.JSON(w, http.StatusOK, report)
}
