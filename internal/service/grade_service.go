package service

import (
	"fmt"
	"time"

	"github.com/lshigami/placement/internal/dto"
	"github.com/lshigami/placement/internal/model"
	"github.com/lshigami/placement/internal/repository"
	"github.com/rs/zerolog/log"
)

// GradeService records finished quiz runs. A retried request records a
// second row; results are not deduplicated.
type GradeService interface {
	Grade(req dto.GradeRequest) (*dto.GradeResponse, error)
}

type gradeService struct {
	resultRepo repository.ResultRepository
	levels     LevelService
	now        func() time.Time
}

func NewGradeService(resultRepo repository.ResultRepository, levels LevelService) GradeService {
	return &gradeService{
		resultRepo: resultRepo,
		levels:     levels,
		now:        time.Now,
	}
}

func (s *gradeService) Grade(req dto.GradeRequest) (*dto.GradeResponse, error) {
	if req.Total <= 0 {
		return nil, fmt.Errorf("%w: total must be positive, got %d", ErrInvalidAttempt, req.Total)
	}
	if req.Score < 0 || req.Score > req.Total {
		return nil, fmt.Errorf("%w: score %d outside 0-%d", ErrInvalidAttempt, req.Score, req.Total)
	}

	level, err := s.levels.LevelFor(req.Score, req.Total)
	if err != nil {
		return nil, err
	}

	result := model.Result{
		Score:        req.Score,
		Total:        req.Total,
		Level:        level,
		CreatedAtUTC: s.now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.resultRepo.Create(&result); err != nil {
		log.Error().Err(err).Int("score", req.Score).Int("total", req.Total).Msg("Failed to save result")
		return nil, fmt.Errorf("database error saving result: %w", err)
	}

	log.Info().
		Uint("resultID", result.ID).
		Int("score", req.Score).
		Int("total", req.Total).
		Str("level", string(level)).
		Msg("Quiz graded")
	return &dto.GradeResponse{Level: level}, nil
}
