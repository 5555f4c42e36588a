package bank

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
)

// pre-authored questions shipped with the binary
//
//go:embed seed/*.yaml
var seedFS embed.FS

type seedFile struct {
	Questions []seedQuestion `yaml:"questions"`
}

type seedQuestion struct {
	Ref                string            `yaml:"ref"`
	Type               string            `yaml:"type"`
	Difficulty         string            `yaml:"difficulty"`
	Title              string            `yaml:"title"`
	Text               string            `yaml:"text"`
	Topics             []string          `yaml:"topics"`
	Hints              []string          `yaml:"hints"`
	ExpectedPoints     []string          `yaml:"expected_points"`
	TimeLimitSeconds   int               `yaml:"time_limit_seconds"`
	ExpectedComplexity string            `yaml:"expected_complexity"`
	Theme              string            `yaml:"theme"`
	ExpectedComponents []string          `yaml:"expected_components"`
	DiscussionPoints   []string          `yaml:"discussion_points"`
	TestCases          []models.TestCase `yaml:"test_cases"`
}

// Seed loads the embedded question files into the bank, skipping refs that
// are already present so operator-edited rows survive restarts. Returns the
// number of inserted questions.
func (r *Repository) Seed() (int, error) {
	entries, err := seedFS.ReadDir("seed")
	if err != nil {
		return 0, fmt.Errorf("failed to read seed directory: %w", err)
	}

	inserted := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := seedFS.ReadFile("seed/" + entry.Name())
		if err != nil {
			return inserted, fmt.Errorf("failed to read seed file %s: %w", entry.Name(), err)
		}

		var file seedFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return inserted, fmt.Errorf("failed to parse seed file %s: %w", entry.Name(), err)
		}

		for _, sq := range file.Questions {
			if sq.Ref == "" || !models.ValidRoundType(models.RoundType(sq.Type)) || !models.ValidDifficulty(models.Difficulty(sq.Difficulty)) {
				return inserted, fmt.Errorf("invalid seed question %q in %s", sq.Ref, entry.Name())
			}

			var existing int64
			if err := r.db.Model(&BankQuestion{}).Where("ref = ?", sq.Ref).Count(&existing).Error; err != nil {
				return inserted, err
			}
			if existing > 0 {
				continue
			}

			row := sq.toRow()
			if err := r.db.Create(&row).Error; err != nil {
				return inserted, fmt.Errorf("failed to insert seed question %q: %w", sq.Ref, err)
			}
			inserted++
		}
	}

	return inserted, nil
}

func (sq *seedQuestion) toRow() BankQuestion {
	row := BankQuestion{
		Ref:                sq.Ref,
		Type:               sq.Type,
		Difficulty:         sq.Difficulty,
		Title:              sq.Title,
		Text:               strings.TrimSpace(sq.Text),
		Topics:             encodeList(sq.Topics),
		Hints:              encodeList(sq.Hints),
		ExpectedPoints:     encodeList(sq.ExpectedPoints),
		TimeLimitSeconds:   sq.TimeLimitSeconds,
		ExpectedComplexity: sq.ExpectedComplexity,
		Theme:              sq.Theme,
		ExpectedComponents: encodeList(sq.ExpectedComponents),
		DiscussionPoints:   encodeList(sq.DiscussionPoints),
		Active:             true,
	}
	if row.TimeLimitSeconds <= 0 {
		row.TimeLimitSeconds = 600
	}
	if len(sq.TestCases) > 0 {
		if b, err := json.Marshal(sq.TestCases); err == nil {
			row.TestCases = string(b)
		}
	}
	return row
}
