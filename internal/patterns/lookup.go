package patterns

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
)

// RoundPattern is one round descriptor from the company interview-pattern
// catalogue.
type RoundPattern struct {
	Type            models.RoundType `json:"type"`
	Name            string           `json:"name"`
	DurationMinutes int              `json:"duration_minutes"`
	Topics          []string         `json:"topics"`
}

// Lookup resolves the interview structure a company uses for a role.
// Implementations may fail; callers always fall back to DefaultPattern.
type Lookup interface {
	Rounds(ctx context.Context, company, role string) ([]RoundPattern, error)
}

// DefaultPattern is the built-in 3-round interview used whenever no company
// pattern is available or the resolved pattern is unusable.
func DefaultPattern() []RoundPattern {
	return []RoundPattern{
		{
			Type:            models.RoundDSA,
			Name:            "Coding Round",
			DurationMinutes: 40,
			Topics:          []string{"arrays", "strings", "hash-map"},
		},
		{
			Type:            models.RoundSystemDesign,
			Name:            "System Design Round",
			DurationMinutes: 45,
			Topics:          []string{"distributed-systems", "storage", "caching"},
		},
		{
			Type:            models.RoundBehavioral,
			Name:            "Behavioral Round",
			DurationMinutes: 30,
			Topics:          []string{"teamwork", "conflict", "leadership"},
		},
	}
}

// HTTPLookup queries the company-patterns service.
type HTTPLookup struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPLookup(baseURL string, timeout time.Duration) *HTTPLookup {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPLookup{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type patternResponse struct {
	Rounds []RoundPattern `json:"rounds"`
}

func (l *HTTPLookup) Rounds(ctx context.Context, company, role string) ([]RoundPattern, error) {
	endpoint := fmt.Sprintf("%s/api/v1/patterns?company=%s&role=%s",
		l.baseURL, url.QueryEscape(company), url.QueryEscape(role))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pattern lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pattern service returned status %d", resp.StatusCode)
	}

	var parsed patternResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode pattern response: %w", err)
	}

	return parsed.Rounds, nil
}

// Sanitize drops round descriptors with unknown types and fills missing
// names/durations. An empty result means the pattern is unusable.
func Sanitize(rounds []RoundPattern) []RoundPattern {
	var out []RoundPattern
	for _, r := range rounds {
		if !models.ValidRoundType(r.Type) {
			continue
		}
		if r.Name == "" {
			r.Name = defaultRoundName(r.Type)
		}
		if r.DurationMinutes <= 0 {
			r.DurationMinutes = 45
		}
		out = append(out, r)
	}
	return out
}

func defaultRoundName(t models.RoundType) string {
	switch t {
	case models.RoundDSA:
		return "Coding Round"
	case models.RoundSystemDesign:
		return "System Design Round"
	case models.RoundBehavioral:
		return "Behavioral Round"
	default:
		return "Technical Round"
	}
}
