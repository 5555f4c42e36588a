package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
)

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func authProbe() (*string, http.Handler) {
	var subject string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = AuthSubject(r)
		w.WriteHeader(http.StatusOK)
	})
	return &subject, handler
}

func TestRequireAuthDisabledWithoutSecret(t *testing.T) {
	_, probe := authProbe()
	handler := RequireAuth("")(probe)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected pass-through without a secret, got %d", rec.Code)
	}
}

func TestRequireAuthRejectsMissingAndBadTokens(t *testing.T) {
	_, probe := authProbe()
	handler := RequireAuth("s3cret")(probe)

	tests := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"garbage token":  "Bearer not.a.jwt",
		"wrong secret":   "Bearer " + signToken(t, "other-secret", "stu-1"),
	}
	for name, header := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: got %d, want 401", name, rec.Code)
			continue
		}
		var errResp models.ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
			t.Errorf("%s: decode body: %v", name, err)
			continue
		}
		if errResp.Code != "unauthorized" {
			t.Errorf("%s: code %q, want unauthorized", name, errResp.Code)
		}
	}
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	subject, probe := authProbe()
	handler := RequireAuth("s3cret")(probe)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "s3cret", "stu-42"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	if *subject != "stu-42" {
		t.Errorf("AuthSubject = %q, want stu-42", *subject)
	}
}
