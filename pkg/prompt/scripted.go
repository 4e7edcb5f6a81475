package prompt

import (
	"context"
	"sync"

	"github.com/arthur-debert/modbisect/pkg/errors"
)

// Scripted replays a fixed sequence of answers and records the questions.
type Scripted struct {
	mu        sync.Mutex
	answers   []Answer
	questions []string

	// OnAsk, when set, runs before each answer is returned.
	OnAsk func(round int, question string)
}

// NewScripted creates a Scripted asker.
func NewScripted(answers ...Answer) *Scripted {
	return &Scripted{answers: answers}
}

// Ask returns the next scripted answer. Running out of answers is an error.
func (s *Scripted) Ask(ctx context.Context, question string) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Unknown, errors.Wrap(err, errors.ErrInterrupted, "prompt interrupted")
	}

	s.mu.Lock()
	round := len(s.questions)
	s.questions = append(s.questions, question)
	if round >= len(s.answers) {
		s.mu.Unlock()
		return Unknown, errors.Newf(errors.ErrPrompt, "no scripted answer for question %d", round+1)
	}
	answer := s.answers[round]
	hook := s.OnAsk
	s.mu.Unlock()

	if hook != nil {
		hook(round, question)
	}
	return answer, nil
}

// Questions returns the questions asked so far.
func (s *Scripted) Questions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.questions...)
}
