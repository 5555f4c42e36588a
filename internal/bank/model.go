package bank

import (
	"encoding/json"
	"time"
)

// BankQuestion is a pre-authored question as stored in the relational bank.
// Slice-valued fields are stored as JSON text columns so the same schema
// works on postgres and sqlite.
type BankQuestion struct {
	ID         uint   `gorm:"primaryKey"`
	Ref        string `gorm:"uniqueIndex;size:64"`
	Type       string `gorm:"index:idx_bank_type_difficulty;size:32"`
	Difficulty string `gorm:"index:idx_bank_type_difficulty;size:16"`
	Title      string `gorm:"size:255"`
	Text       string `gorm:"type:text"`

	Topics         string `gorm:"type:text"`
	Hints          string `gorm:"type:text"`
	ExpectedPoints string `gorm:"type:text"`

	TimeLimitSeconds   int
	ExpectedComplexity string `gorm:"size:32"`
	Theme              string `gorm:"size:128"`
	ExpectedComponents string `gorm:"type:text"`
	DiscussionPoints   string `gorm:"type:text"`
	TestCases          string `gorm:"type:text"`

	Active    bool `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func encodeList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	b, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return string(b)
}

func decodeList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}
