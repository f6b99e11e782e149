package service

import (
	"github.com/lshigami/placement/internal/dto"
	"github.com/lshigami/placement/internal/model"
	"github.com/lshigami/placement/internal/repository"
)

// recordingCache is an in-memory QuestionCache that counts invalidations
// and honours generations the way the Redis cache does.
type recordingCache struct {
	stored      []dto.QuestionResponse
	has         bool
	generation  int64
	sets        int
	staleSets   int
	invalidated int
}

func (c *recordingCache) Get() ([]dto.QuestionResponse, int64, bool) {
	return c.stored, c.generation, c.has
}

func (c *recordingCache) Set(generation int64, q []dto.QuestionResponse) {
	if generation != c.generation {
		c.staleSets++
		return
	}
	c.stored, c.has = q, true
	c.sets++
}

func (c *recordingCache) Invalidate() {
	c.stored, c.has = nil, false
	c.generation++
	c.invalidated++
}

func (c *recordingCache) Close() error { return nil }

// interleavingRepo runs duringFindAll once, after the wrapped FindAll has
// read the store but before it returns.
type interleavingRepo struct {
	repository.QuestionRepository
	duringFindAll func()
}

func (r *interleavingRepo) FindAll() ([]model.Question, error) {
	questions, err := r.QuestionRepository.FindAll()
	if hook := r.duringFindAll; hook != nil {
		r.duringFindAll = nil
		hook()
	}
	return questions, err
}
