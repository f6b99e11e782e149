package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement/internal/dto"
	"github.com/lshigami/placement/internal/middleware"
	"github.com/lshigami/placement/internal/service"
	"github.com/lshigami/placement/internal/web"
	"github.com/rs/zerolog/log"
)

// SystemController serves the health probe and the browser quiz page.
type SystemController struct{}

func NewSystemController() *SystemController {
	return &SystemController{}
}

// Health godoc
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (c *SystemController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{OK: true})
}

// QuizPage serves the static single-page quiz.
func (c *SystemController) QuizPage(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", web.QuizPage)
}

// ParseID reads a positive integer path parameter. Ids are signed 64-bit in
// both databases, so anything up to math.MaxInt64 is accepted.
func ParseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

// RespondServiceError maps service sentinel errors to HTTP statuses.
// Unrecognised errors become a 500 with msg and are logged.
func RespondServiceError(ctx *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrInvalidQuestion), errors.Is(err, service.ErrInvalidAttempt):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrQuestionNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).
			Str("request_id", middleware.GetRequestID(ctx)).
			Str("path", ctx.FullPath()).
			Msg(msg)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msg})
	}
}
