package sandbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
)

func TestRunTests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/run_tests" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req runTestsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Language != "python" || len(req.TestCases) != 2 {
			t.Errorf("unexpected request: %+v", req)
		}
		if req.TestCases[0].ExpectedOutput != "[0,1]" {
			t.Errorf("expected output mapped from the test case, got %+v", req.TestCases[0])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Result{Passed: 1, Total: 2})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	result, err := client.RunTests(context.Background(), "def f(): pass", "python", []models.TestCase{
		{Input: "[2,7] 9", Output: "[0,1]"},
		{Input: "[3,3] 6", Output: "[0,1]"},
	})
	if err != nil {
		t.Fatalf("run tests: %v", err)
	}
	if result.Passed != 1 || result.Total != 2 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestRunTestsSandboxError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "unsupported language"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.RunTests(context.Background(), "code", "cobol", nil)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunTestsEmptyVerdictRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Result{})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	if _, err := client.RunTests(context.Background(), "code", "python", nil); err == nil {
		t.Errorf("expected error for a verdict with no test results")
	}
}
