package routers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/engine"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/evaluation"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/generator"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/handlers"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/prompts"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/store/memory"
)

func newTestRouter(t *testing.T, jwtSecret string) *chi.Mux {
	t.Helper()
	logger := zap.NewNop()

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("prompts: %v", err)
	}

	sessions := memory.NewStore()
	eng := engine.New(engine.Deps{
		Store:     sessions,
		Generator: generator.New(nil, nil, nil, 0, logger),
		Evaluator: evaluation.New(nil, nil, nil, 0, logger),
		Logger:    logger,
	})

	router := chi.NewRouter()
	HealthRoutes(router, handlers.NewHealthHandler(sessions, promptManager, nil))
	InterviewRoutes(router, handlers.NewSessionHandler(eng, logger), handlers.NewReportHandler(eng, logger), jwtSecret)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("healthz = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("readyz = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Errorf("metrics = %d", rec.Code)
	}
}

func TestCreateSessionValidation(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/interviews/", `{"company":"Initech"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing student_id, got %d", rec.Code)
	}
	var errResp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errResp.Code != "missing_student_id" {
		t.Errorf("unexpected error code %q", errResp.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/interviews/", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed JSON, got %d", rec.Code)
	}
}

func TestUnknownSessionReturns404(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/interviews/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestInterviewFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/interviews/", `{"student_id":"stu-1","company":"Initech"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d, body %s", rec.Code, rec.Body.String())
	}
	var created models.SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	id := created.Session.ID

	// report before completion conflicts
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/interviews/%s/report", id), "")
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for early report, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/interviews/%s/start", id), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("start = %d, body %s", rec.Code, rec.Body.String())
	}
	var question models.QuestionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &question); err != nil {
		t.Fatalf("decode start: %v", err)
	}
	if question.Question == nil {
		t.Fatalf("expected a first question")
	}

	body := fmt.Sprintf(`{"question_id":%q,"text":"my answer","time_taken_seconds":90}`, question.Question.ID)
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/interviews/%s/answer", id), body)
	if rec.Code != http.StatusOK {
		t.Fatalf("answer = %d, body %s", rec.Code, rec.Body.String())
	}
	var answer models.SubmitAnswerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &answer); err != nil {
		t.Fatalf("decode answer: %v", err)
	}
	if answer.NextAction != models.ActionNextQuestion {
		t.Errorf("expected next_question, got %s", answer.NextAction)
	}

	// lifecycle endpoints
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/interviews/%s/pause", id), "")
	if rec.Code != http.StatusOK {
		t.Errorf("pause = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/interviews/%s/pause", id), "")
	if rec.Code != http.StatusConflict {
		t.Errorf("double pause = %d, want 409", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/interviews/%s/resume", id), "")
	if rec.Code != http.StatusOK {
		t.Errorf("resume = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/interviews/%s/abandon", id), "")
	if rec.Code != http.StatusOK {
		t.Errorf("abandon = %d", rec.Code)
	}

	// answers after abandonment conflict
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/interviews/%s/answer", id), body)
	if rec.Code != http.StatusConflict {
		t.Errorf("answer after abandon = %d, want 409", rec.Code)
	}
}

func TestAuthRequiredWhenSecretConfigured(t *testing.T) {
	router := newTestRouter(t, "test-secret")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/interviews/", `{"student_id":"stu-1"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", rec.Code)
	}

	// health stays open
	rec = doJSON(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("healthz must not require auth, got %d", rec.Code)
	}
}
