package service

import (
	"fmt"

	"github.com/lshigami/placement/internal/model"
)

// bandUpperBounds[i] is the exclusive percentage bound of model.Levels[i].
// The top level has no bound.
var bandUpperBounds = []int64{30, 50, 70, 85, 95}

type LevelService interface {
	LevelFor(score, total int) (model.Level, error)
}

type levelService struct{}

func NewLevelService() LevelService {
	return &levelService{}
}

func (s *levelService) LevelFor(score, total int) (model.Level, error) {
	return LevelFor(score, total)
}

// LevelFor maps a score out of total to a CEFR band. Each band is right-open,
// so exactly 30% is A2 and anything from 95% up is C2. The comparison
// score*100 < threshold*total is done in integers so boundaries are exact.
func LevelFor(score, total int) (model.Level, error) {
	if total <= 0 {
		return "", fmt.Errorf("%w: total must be positive, got %d", ErrInvalidAttempt, total)
	}

	scaled := int64(score) * 100
	for i, bound := range bandUpperBounds {
		if scaled < bound*int64(total) {
			return model.Levels[i], nil
		}
	}
	return model.Levels[len(model.Levels)-1], nil
}
