package quizclient

import (
	"errors"
	"fmt"

	"github.com/lshigami/placement/internal/dto"
	"github.com/lshigami/placement/internal/model"
)

var (
	ErrSessionFinished = errors.New("quiz already finished")
	ErrInvalidChoice   = errors.New("invalid choice")
)

// Session walks a fixed list of questions once, keeping a running score.
// It is not safe for concurrent use.
type Session struct {
	questions []dto.QuestionResponse
	index     int
	score     int
}

func NewSession(questions []dto.QuestionResponse) *Session {
	return &Session{questions: questions}
}

// Current returns the question awaiting an answer; ok is false once done.
func (s *Session) Current() (q dto.QuestionResponse, position int, ok bool) {
	if s.Done() {
		return dto.QuestionResponse{}, s.index, false
	}
	return s.questions[s.index], s.index, true
}

// Answer records a zero-based choice for the current question and advances.
func (s *Session) Answer(choice int) (correct bool, err error) {
	if s.Done() {
		return false, ErrSessionFinished
	}
	if choice < 0 || choice >= model.OptionCount {
		return false, fmt.Errorf("%w: %d", ErrInvalidChoice, choice)
	}

	correct = choice == s.questions[s.index].CorrectIndex
	if correct {
		s.score++
	}
	s.index++
	return correct, nil
}

func (s *Session) Done() bool { return s.index >= len(s.questions) }
func (s *Session) Score() int { return s.score }
func (s *Session) Total() int { return len(s.questions) }

// Restart rewinds to the first question with a zero score.
func (s *Session) Restart() {
	s.index = 0
	s.score = 0
}
