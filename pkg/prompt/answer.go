// Package prompt asks the user yes/no/abort questions during a bisection.
//
// The Asker interface is the only thing the bisection engine knows about user
// interaction. Console talks to a terminal (or any reader/writer pair);
// Scripted and Func serve tests and non-interactive callers.
package prompt

import (
	"context"
	"strings"
)

// Answer is the user's reply to a bisection question.
type Answer int

const (
	Unknown Answer = iota
	Yes
	No
	Abort
)

func (a Answer) String() string {
	switch a {
	case Yes:
		return "yes"
	case No:
		return "no"
	case Abort:
		return "abort"
	default:
		return "unknown"
	}
}

// ParseAnswer maps free-form input to an Answer. The boolean is false when
// the input is not recognised.
func ParseAnswer(input string) (Answer, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return Yes, true
	case "n", "no":
		return No, true
	case "a", "abort", "q", "quit":
		return Abort, true
	default:
		return Unknown, false
	}
}

// Asker asks a yes/no question and blocks until it is answered or ctx ends.
type Asker interface {
	Ask(ctx context.Context, question string) (Answer, error)
}

// Func adapts a plain function to the Asker interface.
type Func func(ctx context.Context, question string) (Answer, error)

// Ask calls f.
func (f Func) Ask(ctx context.Context, question string) (Answer, error) {
	return f(ctx, question)
}
