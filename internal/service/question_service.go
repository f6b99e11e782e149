package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/placement/internal/dto"
	"github.com/lshigami/placement/internal/model"
	"github.com/lshigami/placement/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type QuestionService interface {
	ListQuestions() ([]dto.QuestionResponse, error)
	CreateQuestion(req dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error)
	DeleteQuestion(id uint) error
}

type questionService struct {
	repo  repository.QuestionRepository
	cache QuestionCache
}

func NewQuestionService(repo repository.QuestionRepository, cache QuestionCache) QuestionService {
	return &questionService{repo: repo, cache: cache}
}

// ListQuestions returns every question ordered by id. A list loaded while a
// write invalidated the cache is returned but not cached.
func (s *questionService) ListQuestions() ([]dto.QuestionResponse, error) {
	cached, generation, ok := s.cache.Get()
	if ok {
		return cached, nil
	}

	questions, err := s.repo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load questions from repository")
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}

	resp, err := toQuestionResponses(questions)
	if err != nil {
		return nil, err
	}
	s.cache.Set(generation, resp)
	return resp, nil
}

func (s *questionService) CreateQuestion(req dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error) {
	question, err := newQuestion(req.Text, req.Options, req.CorrectIndex)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(question); err != nil {
		log.Error().Err(err).Msg("Failed to create question in database")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}
	s.cache.Invalidate()

	log.Info().Uint("questionID", question.ID).Msg("Question created")
	return &dto.CreateQuestionResponse{ID: question.ID}, nil
}

func (s *questionService) DeleteQuestion(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", ErrQuestionNotFound, id)
		}
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to delete question")
		return fmt.Errorf("database error deleting question %d: %w", id, err)
	}
	s.cache.Invalidate()

	log.Info().Uint("questionID", id).Msg("Question deleted")
	return nil
}

// newQuestion trims its inputs and enforces the write-time invariants shared
// by the admin API and the seed loader.
func newQuestion(text string, options []string, correctIndex int) (*model.Question, error) {
	if len(options) != model.OptionCount {
		return nil, fmt.Errorf("%w: options must be length %d, got %d", ErrInvalidQuestion, model.OptionCount, len(options))
	}
	if correctIndex < 0 || correctIndex >= model.OptionCount {
		return nil, fmt.Errorf("%w: correctIndex must be 0-3, got %d", ErrInvalidQuestion, correctIndex)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text required", ErrInvalidQuestion)
	}

	trimmed := make([]string, len(options))
	for i, o := range options {
		trimmed[i] = strings.TrimSpace(o)
	}

	q := &model.Question{Text: text, CorrectIndex: correctIndex}
	q.SetOptions(trimmed)
	return q, nil
}

func toQuestionResponses(questions []model.Question) ([]dto.QuestionResponse, error) {
	resp := make([]dto.QuestionResponse, 0, len(questions))
	// Options is filled from model.Question.Options().
	if err := copier.Copy(&resp, &questions); err != nil {
		log.Error().Err(err).Msg("Failed to copy Question models to QuestionResponse")
		return nil, fmt.Errorf("error preparing questions response: %w", err)
	}
	return resp, nil
}
