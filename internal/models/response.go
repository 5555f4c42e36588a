package models

// NextAction tells the client what to do after an accepted answer.
type NextAction string

const (
	ActionNextQuestion       NextAction = "next_question"
	ActionNextRound          NextAction = "next_round"
	ActionInterviewCompleted NextAction = "interview_completed"
)

type SessionResponse struct {
	Session   *Session `json:"session"`
	RequestID string   `json:"request_id,omitempty"`
}

// returned by start / next_question
type QuestionResponse struct {
	Question  *Question `json:"question,omitempty"`
	Completed bool      `json:"completed"`
	Message   string    `json:"message,omitempty"`
}

type SubmitAnswerResponse struct {
	Evaluation    Evaluation `json:"evaluation"`
	NextAction    NextAction `json:"next_action"`
	NextRound     string     `json:"next_round,omitempty"`
	NewDifficulty Difficulty `json:"new_difficulty"`
}

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Code + ": " + e.Message
}
