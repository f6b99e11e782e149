package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement/internal/controller"
	"github.com/lshigami/placement/internal/dto"
	"github.com/lshigami/placement/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	questionService service.QuestionService
	gradeService    service.GradeService
}

func NewQuizController(qs service.QuestionService, gs service.GradeService) *QuizController {
	return &QuizController{
		questionService: qs,
		gradeService:    gs,
	}
}

// GetQuestions godoc
// @Summary List all questions
// @Description Returns every question ordered by id, including the zero-based correct index used for local scoring.
// @Tags Quiz
// @Produce json
// @Success 200 {array} dto.QuestionResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/questions [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	questions, err := c.questionService.ListQuestions()
	if err != nil {
		controller.RespondServiceError(ctx, err, "Failed to retrieve questions")
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// Grade godoc
// @Summary Grade a finished quiz
// @Description Maps score/total to a CEFR level (A1-C2) and records the result.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param tally body dto.GradeRequest true "Correct answers and number of questions"
// @Success 200 {object} dto.GradeResponse
// @Failure 400 {object} dto.ErrorResponse "Missing body, non-positive total or score out of range"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/grade [post]
func (c *QuizController) Grade(ctx *gin.Context) {
	var req dto.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Grade: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := c.gradeService.Grade(req)
	if err != nil {
		controller.RespondServiceError(ctx, err, "Failed to grade attempt")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
