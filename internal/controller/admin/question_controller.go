package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement/internal/controller"
	"github.com/lshigami/placement/internal/dto"
	"github.com/lshigami/placement/internal/service"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// CreateQuestion godoc
// @Summary (Admin) Add a question
// @Description Adds a multiple-choice question with exactly four options. correctIndex is zero-based.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param question body dto.CreateQuestionRequest true "Question text, four options and the zero-based correct index"
// @Success 200 {object} dto.CreateQuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input (option count, index range, empty text)"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateQuestion: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := c.questionService.CreateQuestion(req)
	if err != nil {
		controller.RespondServiceError(ctx, err, "Failed to create question")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Tags Admin - Questions
// @Param id path int true "Question ID"
// @Success 200 "Deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.questionService.DeleteQuestion(id); err != nil {
		controller.RespondServiceError(ctx, err, "Failed to delete question")
		return
	}
	ctx.Status(http.StatusOK)
}
