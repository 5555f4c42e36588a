package models

import "time"

// Report is a derived projection over a COMPLETED session. It is never
// persisted as source of truth, only cached.
type Report struct {
	SessionID    string          `json:"session_id"`
	StudentID    string          `json:"student_id"`
	Company      string          `json:"company,omitempty"`
	Role         string          `json:"role,omitempty"`
	OverallScore float64         `json:"overall_score"`
	Rounds       []RoundBreakdown `json:"rounds"`
	Entries      []ReportEntry   `json:"entries"`

	Strengths       []string `json:"strengths,omitempty"`
	Improvements    []string `json:"improvements,omitempty"`
	Recommendations []string `json:"recommendations"`

	TotalQuestionsAnswered int       `json:"total_questions_answered"`
	TotalTimeSpentSeconds  int       `json:"total_time_spent_seconds"`
	GeneratedAt            time.Time `json:"generated_at"`
}

type RoundBreakdown struct {
	Name              string      `json:"name"`
	Type              RoundType   `json:"type"`
	QuestionsAnswered int         `json:"questions_answered"`
	Score             float64     `json:"score"`
	Status            RoundStatus `json:"status"`
}

// ReportEntry is one question/answer/evaluation tuple, in issuance order.
type ReportEntry struct {
	RoundNum   int        `json:"round_num"`
	Question   string     `json:"question"`
	Type       RoundType  `json:"type"`
	Difficulty Difficulty `json:"difficulty"`
	Answer     string     `json:"answer,omitempty"`
	Code       string     `json:"code,omitempty"`
	Evaluation Evaluation `json:"evaluation"`
}
