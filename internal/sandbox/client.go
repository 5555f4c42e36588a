package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
)

// Client talks to the remote code-execution sandbox over HTTP. The sandbox
// runs untrusted candidate code in isolated containers; this service only
// ever consumes its results.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type runTestsRequest struct {
	Language  string     `json:"language"`
	Code      string     `json:"code"`
	TestCases []testCase `json:"test_cases"`
}

type testCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
}

type caseResult struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Passed   bool   `json:"passed"`
}

// Result is the sandbox's verdict over all test cases.
type Result struct {
	Passed  int          `json:"passed"`
	Total   int          `json:"total"`
	Results []caseResult `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewClient builds a sandbox client with a bounded per-call timeout. The
// timeout is a hard bound: a hung sandbox degrades scoring, it never hangs
// an evaluation.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// RunTests executes code against the declared test cases.
func (c *Client) RunTests(ctx context.Context, code, language string, cases []models.TestCase) (*Result, error) {
	req := runTestsRequest{
		Language: language,
		Code:     code,
	}
	for _, tc := range cases {
		req.TestCases = append(req.TestCases, testCase{
			Input:          tc.Input,
			ExpectedOutput: tc.Output,
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sandbox request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/run_tests", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sandbox call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error != "" {
			return nil, fmt.Errorf("sandbox rejected request: %s", errResp.Error)
		}
		return nil, fmt.Errorf("sandbox returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode sandbox response: %w", err)
	}
	if result.Total <= 0 {
		return nil, fmt.Errorf("sandbox returned no test results")
	}

	return &result, nil
}
