package service

import (
	"testing"
	"time"

	"github.com/lshigami/placement/internal/dto"
	"github.com/lshigami/placement/internal/model"
	"github.com/lshigami/placement/internal/repository"
	"github.com/lshigami/placement/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGradeServiceForTest(t *testing.T) (*gradeService, *gorm.DB) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	svc := NewGradeService(repository.NewResultRepository(db), NewLevelService()).(*gradeService)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 0, time.FixedZone("CET", 3600))
	}
	return svc, db
}

func TestGradeRecordsResult(t *testing.T) {
	svc, db := newGradeServiceForTest(t)

	resp, err := svc.Grade(dto.GradeRequest{Score: 3, Total: 10})
	require.NoError(t, err)
	assert.Equal(t, model.LevelA2, resp.Level)

	var results []model.Result
	require.NoError(t, db.Find(&results).Error)
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].Score)
	assert.Equal(t, 10, results[0].Total)
	assert.Equal(t, model.LevelA2, results[0].Level)
	assert.Equal(t, "2026-03-14T08:26:53Z", results[0].CreatedAtUTC)
}

func TestGradeRetryAppendsDuplicateRow(t *testing.T) {
	svc, db := newGradeServiceForTest(t)

	for i := 0; i < 2; i++ {
		_, err := svc.Grade(dto.GradeRequest{Score: 10, Total: 10})
		require.NoError(t, err)
	}

	var n int64
	require.NoError(t, db.Model(&model.Result{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestGradeRejectsInvalidTally(t *testing.T) {
	tests := []struct {
		name string
		req  dto.GradeRequest
	}{
		{"zero total", dto.GradeRequest{Score: 0, Total: 0}},
		{"negative total", dto.GradeRequest{Score: 0, Total: -3}},
		{"negative score", dto.GradeRequest{Score: -1, Total: 5}},
		{"score above total", dto.GradeRequest{Score: 6, Total: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, db := newGradeServiceForTest(t)

			_, err := svc.Grade(tt.req)
			assert.ErrorIs(t, err, ErrInvalidAttempt)

			var n int64
			require.NoError(t, db.Model(&model.Result{}).Count(&n).Error)
			assert.Zero(t, n)
		})
	}
}
