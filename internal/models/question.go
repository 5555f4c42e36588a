package models

import "time"

// QuestionSource records which generation tier produced a question.
type QuestionSource string

const (
	SourceBank     QuestionSource = "bank"
	SourceLLM      QuestionSource = "llm"
	SourceTemplate QuestionSource = "template"
)

// single testcase for sandboxed DSA grading
type TestCase struct {
	Input       string `json:"input" bson:"input"`
	Output      string `json:"output" bson:"output"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Question is generated by the engine and immutable once issued. Type-specific
// grading context (expected complexity, theme, expected components) travels
// with the question so evaluators stay stateless.
type Question struct {
	ID               string         `json:"id" bson:"id"`
	RoundNum         int            `json:"round_num" bson:"round_num"`
	Type             RoundType      `json:"type" bson:"type"`
	Difficulty       Difficulty     `json:"difficulty" bson:"difficulty"`
	Text             string         `json:"text" bson:"text"`
	Hints            []string       `json:"hints,omitempty" bson:"hints,omitempty"`
	ExpectedPoints   []string       `json:"expected_points,omitempty" bson:"expected_points,omitempty"`
	TimeLimitSeconds int            `json:"time_limit_seconds" bson:"time_limit_seconds"`
	Source           QuestionSource `json:"source" bson:"source"`
	SourceRef        string         `json:"source_ref,omitempty" bson:"source_ref,omitempty"`

	// DSA grading context
	ExpectedComplexity string     `json:"expected_complexity,omitempty" bson:"expected_complexity,omitempty"`
	TestCases          []TestCase `json:"test_cases,omitempty" bson:"test_cases,omitempty"`

	// behavioral grading context
	Theme string `json:"theme,omitempty" bson:"theme,omitempty"`

	// system design grading context
	ExpectedComponents []string `json:"expected_components,omitempty" bson:"expected_components,omitempty"`
	DiscussionPoints   []string `json:"discussion_points,omitempty" bson:"discussion_points,omitempty"`

	// idempotency guard: set true on the first accepted answer
	Answered bool      `json:"answered" bson:"answered"`
	IssuedAt time.Time `json:"issued_at" bson:"issued_at"`

	Answer *Answer `json:"answer,omitempty" bson:"answer,omitempty"`
}

// Answer is one evaluated response to a question.
type Answer struct {
	QuestionID       string     `json:"question_id" bson:"question_id"`
	Text             string     `json:"text" bson:"text"`
	Code             string     `json:"code,omitempty" bson:"code,omitempty"`
	Language         string     `json:"language,omitempty" bson:"language,omitempty"`
	TimeTakenSeconds int        `json:"time_taken_seconds" bson:"time_taken_seconds"`
	Evaluation       Evaluation `json:"evaluation" bson:"evaluation"`
	SubmittedAt      time.Time  `json:"submitted_at" bson:"submitted_at"`
}

// Evaluation is the rubric scoring result for one answer.
// Degraded flags that a remote collaborator (sandbox or AI) was unavailable
// and a heuristic stood in; it is observability metadata, never an error.
type Evaluation struct {
	Score        float64            `json:"score" bson:"score"`
	Feedback     string             `json:"feedback" bson:"feedback"`
	Strengths    []string           `json:"strengths,omitempty" bson:"strengths,omitempty"`
	Improvements []string           `json:"improvements,omitempty" bson:"improvements,omitempty"`
	Breakdown    map[string]float64 `json:"breakdown" bson:"breakdown"`

	Degraded        bool     `json:"degraded,omitempty" bson:"degraded,omitempty"`
	DegradedReasons []string `json:"degraded_reasons,omitempty" bson:"degraded_reasons,omitempty"`
}
