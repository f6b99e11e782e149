package repository

import (
	"github.com/lshigami/placement/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const seedBatchSize = 100

type QuestionRepository interface {
	Create(question *model.Question) error
	CreateAll(questions []model.Question) error
	FindAll() ([]model.Question, error)
	Count() (int64, error)
	// Delete returns gorm.ErrRecordNotFound when no row has the given id.
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

// CreateAll inserts every question in a single transaction.
func (r *questionRepository) CreateAll(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&questions, seedBatchSize).Error
	})
}

func (r *questionRepository) FindAll() ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "Id"}}).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Question{}).Count(&n).Error
	return n, err
}

func (r *questionRepository) Delete(id uint) error {
	res := r.db.Delete(&model.Question{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
