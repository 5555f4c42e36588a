package difficulty

import "github.com/sushant-mutnale/StudentHub-sub000/internal/models"

// score thresholds of the difficulty ladder
const (
	escalateAt   = 80.0
	deescalateAt = 50.0
)

// Adapt maps an answer score and the current difficulty to the next
// question's difficulty. No hysteresis: every answer moves the ladder
// directly. Never escalates past HARD or de-escalates below EASY.
func Adapt(score float64, current models.Difficulty) models.Difficulty {
	switch {
	case score >= escalateAt:
		switch current {
		case models.DifficultyEasy:
			return models.DifficultyMedium
		case models.DifficultyMedium:
			return models.DifficultyHard
		default:
			return models.DifficultyHard
		}
	case score < deescalateAt:
		switch current {
		case models.DifficultyHard:
			return models.DifficultyMedium
		case models.DifficultyMedium:
			return models.DifficultyEasy
		default:
			return models.DifficultyEasy
		}
	default:
		return current
	}
}
