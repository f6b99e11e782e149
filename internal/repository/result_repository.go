package repository

import (
	"github.com/lshigami/placement/internal/model"
	"gorm.io/gorm"
)

// ResultRepository is append-only: results are never updated or deleted.
type ResultRepository interface {
	Create(result *model.Result) error
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(result *model.Result) error {
	return r.db.Create(result).Error
}
