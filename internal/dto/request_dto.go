package dto

// CreateQuestionRequest is the admin payload for adding a question.
// CorrectIndex is zero-based.
type CreateQuestionRequest struct {
	Text         string   `json:"text" binding:"required"`
	Options      []string `json:"options" binding:"required,len=4"`
	CorrectIndex int      `json:"correctIndex" binding:"min=0,max=3"`
}

// GradeRequest carries the tally of a finished quiz run.
type GradeRequest struct {
	Score int `json:"score" binding:"min=0"`
	Total int `json:"total" binding:"required,gt=0"`
}
