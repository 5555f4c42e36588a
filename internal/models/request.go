package models

import "strings"

type CreateSessionRequest struct {
	StudentID string `json:"student_id"`
	Company   string `json:"company"`
	Role      string `json:"role"`
	// pre-parsed resume/JD skills, used to bias technical-round topics
	Skills    []string `json:"skills,omitempty"`
	RequestID string   `json:"request_id"`
}

// implements the Validator interface
func (r *CreateSessionRequest) Validate() error {
	if strings.TrimSpace(r.StudentID) == "" {
		return &ErrorResponse{
			Code:    "missing_student_id",
			Message: "student_id field is required",
		}
	}
	if len(r.Skills) > 30 {
		return &ErrorResponse{
			Code:    "too_many_skills",
			Message: "at most 30 skills are accepted",
		}
	}
	return nil
}

type SubmitAnswerRequest struct {
	QuestionID       string `json:"question_id"`
	Text             string `json:"text"`
	Code             string `json:"code,omitempty"`
	Language         string `json:"language,omitempty"`
	TimeTakenSeconds int    `json:"time_taken_seconds"`
	RequestID        string `json:"request_id"`
}

func (r *SubmitAnswerRequest) Validate() error {
	if strings.TrimSpace(r.QuestionID) == "" {
		return &ErrorResponse{Code: "missing_question_id", Message: "question_id field is required"}
	}
	if strings.TrimSpace(r.Text) == "" && strings.TrimSpace(r.Code) == "" {
		return &ErrorResponse{Code: "empty_answer", Message: "answer must include text or code"}
	}
	if r.TimeTakenSeconds < 0 {
		return &ErrorResponse{Code: "invalid_time_taken", Message: "time_taken_seconds must not be negative"}
	}
	if r.Language != "" {
		supported := map[string]bool{"python": true, "java": true, "cpp": true, "javascript": true, "go": true}
		if !supported[strings.ToLower(strings.TrimSpace(r.Language))] {
			return &ErrorResponse{Code: "unsupported_language", Message: "language must be one of python/java/cpp/javascript/go"}
		}
	}
	return nil
}
