// Package gen defines the content generation collaborator the game engines
// talk to. The session core only sees the Generator interface; the Gemini
// client below is the production implementation.
package gen

import "context"

// Kind selects which prompt family a request uses.
type Kind string

const (
	KindTask      Kind = "TASK"
	KindPenalty   Kind = "PUNISHMENT"
	KindColorTask Kind = "COLOR_TASK"
	KindWrongWord Kind = "WRONG_WORD"
	KindInterview Kind = "INTERVIEW"
	KindRiddle    Kind = "RIDDLE"
	KindSpy       Kind = "SPY"
)

// Params parametrize a generation request. Extra carries kind-specific data,
// today only the color name of round-2 cards.
type Params struct {
	Language   string
	Difficulty string
	Extra      string
}

// Generator produces one piece of task text per call. Implementations must
// never include the answer inline; the engines only length-check the result.
type Generator interface {
	Generate(ctx context.Context, kind Kind, p Params) (string, error)
}

// Func adapts a function to the Generator interface, used by tests.
type Func func(ctx context.Context, kind Kind, p Params) (string, error)

func (f Func) Generate(ctx context.Context, kind Kind, p Params) (string, error) {
	return f(ctx, kind, p)
}
