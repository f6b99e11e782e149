package dto

import "github.com/lshigami/placement/internal/model"

// QuestionResponse is the quiz-facing view of a question. The correct index
// is included because the client scores answers locally.
type QuestionResponse struct {
	ID           uint     `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

type CreateQuestionResponse struct {
	ID uint `json:"id"`
}

type GradeResponse struct {
	Level model.Level `json:"level"`
}

type HealthResponse struct {
	OK bool `json:"ok"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
