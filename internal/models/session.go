package models

import "time"

// lifecycle state of an interview session
type SessionStatus string

const (
	StatusNotStarted SessionStatus = "NOT_STARTED"
	StatusInProgress SessionStatus = "IN_PROGRESS"
	StatusPaused     SessionStatus = "PAUSED"
	StatusCompleted  SessionStatus = "COMPLETED"
	StatusAbandoned  SessionStatus = "ABANDONED"
)

// IsTerminal reports whether no further mutation is allowed
func (s SessionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

func ValidDifficulty(d Difficulty) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

type RoundType string

const (
	RoundDSA          RoundType = "DSA"
	RoundBehavioral   RoundType = "BEHAVIORAL"
	RoundSystemDesign RoundType = "SYSTEM_DESIGN"
	RoundTechnical    RoundType = "TECHNICAL"
)

func ValidRoundType(t RoundType) bool {
	switch t {
	case RoundDSA, RoundBehavioral, RoundSystemDesign, RoundTechnical:
		return true
	}
	return false
}

type RoundStatus string

const (
	RoundPending    RoundStatus = "pending"
	RoundInProgress RoundStatus = "in_progress"
	RoundCompleted  RoundStatus = "completed"
)

// Session is one mock interview attempt. Rounds (with their questions and
// answers) are embedded so that a session is always persisted as a single
// document: every state transition is one store write.
type Session struct {
	ID        string        `json:"id" bson:"_id"`
	StudentID string        `json:"student_id" bson:"student_id"`
	Company   string        `json:"company,omitempty" bson:"company,omitempty"`
	Role      string        `json:"role,omitempty" bson:"role,omitempty"`
	Status    SessionStatus `json:"status" bson:"status"`

	Rounds            []Round    `json:"rounds" bson:"rounds"`
	CurrentRoundIndex int        `json:"current_round_index" bson:"current_round_index"`
	CurrentDifficulty Difficulty `json:"current_difficulty" bson:"current_difficulty"`

	TotalQuestionsAnswered int     `json:"total_questions_answered" bson:"total_questions_answered"`
	TotalTimeSpentSeconds  int     `json:"total_time_spent_seconds" bson:"total_time_spent_seconds"`
	OverallScore           float64 `json:"overall_score" bson:"overall_score"`

	// aggregated on completion, deduplicated and capped
	Strengths    []string `json:"strengths,omitempty" bson:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty" bson:"improvements,omitempty"`

	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
	StartedAt      *time.Time `json:"started_at,omitempty" bson:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	LastActivityAt time.Time  `json:"last_activity_at" bson:"last_activity_at"`
}

// Round is one phase of a session dedicated to a single question archetype.
// Created once at session-creation time, never reordered.
type Round struct {
	RoundNum        int         `json:"round_num" bson:"round_num"`
	Type            RoundType   `json:"type" bson:"type"`
	Name            string      `json:"name" bson:"name"`
	DurationMinutes int         `json:"duration_minutes" bson:"duration_minutes"`
	Topics          []string    `json:"topics,omitempty" bson:"topics,omitempty"`
	QuestionsAnswered int       `json:"questions_answered" bson:"questions_answered"`
	Score           float64     `json:"score" bson:"score"`
	Status          RoundStatus `json:"status" bson:"status"`

	Questions []Question `json:"questions" bson:"questions"`
}

// ActiveRound returns the round the session is currently in, or nil when the
// session is past its last round.
func (s *Session) ActiveRound() *Round {
	if s.CurrentRoundIndex < 0 || s.CurrentRoundIndex >= len(s.Rounds) {
		return nil
	}
	return &s.Rounds[s.CurrentRoundIndex]
}

// FindQuestion locates an issued question by id across all rounds.
func (s *Session) FindQuestion(questionID string) (*Round, *Question) {
	for ri := range s.Rounds {
		r := &s.Rounds[ri]
		for qi := range r.Questions {
			if r.Questions[qi].ID == questionID {
				return r, &r.Questions[qi]
			}
		}
	}
	return nil, nil
}

// IssuedQuestionRefs returns source refs of every question issued so far,
// used to avoid re-issuing the same bank question within one session.
func (s *Session) IssuedQuestionRefs() []string {
	var refs []string
	for ri := range s.Rounds {
		for qi := range s.Rounds[ri].Questions {
			if ref := s.Rounds[ri].Questions[qi].SourceRef; ref != "" {
				refs = append(refs, ref)
			}
		}
	}
	return refs
}
