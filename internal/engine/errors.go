package engine

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrQuestionNotFound  = errors.New("question not found in session")
	ErrSessionTerminal   = errors.New("session already completed or abandoned")
	ErrInvalidTransition = errors.New("operation not allowed in current session status")
	ErrReportNotReady    = errors.New("report is only available for completed sessions")
)
