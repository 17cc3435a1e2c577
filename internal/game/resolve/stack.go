// Package resolve implements the effect-resolution engine: a single-threaded
// LIFO stack of resolvers driven from outside, a context threading protocol,
// and the response-window continuation pattern that lets one effect pause for
// another player's answer without coroutines.
package resolve

import (
	"go.uber.org/zap"
)

// Resolver is one unit of effect logic. Resolve may push further resolvers
// onto the context's stack before returning; pushing never executes them —
// the driving loop drains them on subsequent pops. Resolve must never drain
// the stack itself: that flatness is what keeps the execution trace
// inspectable and makes suspend-and-resume work.
type Resolver interface {
	Name() string
	Resolve(ctx *Context) Result
}

// Record is one entry of the execution history: which resolver ran, a
// shallow snapshot of its context, and what it returned. Records are for
// replay verification and debugging, never for re-execution.
type Record struct {
	Resolver string
	Context  *Context
	Result   Result
}

type frame struct {
	resolver Resolver
	ctx      *Context
}

// Stack is the LIFO driver structure for one top-level action resolution.
// It is created per action and discarded when the action completes; it never
// inspects results itself — halting on failure is the driving loop's job.
type Stack struct {
	frames  []frame
	history []Record
	logger  *zap.Logger
}

// NewStack creates an empty resolution stack.
func NewStack(logger *zap.Logger) *Stack {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stack{
		frames: make([]frame, 0, 8),
		logger: logger,
	}
}

// Push appends a (resolver, context) pair. No side effects.
func (s *Stack) Push(r Resolver, ctx *Context) {
	s.frames = append(s.frames, frame{resolver: r, ctx: ctx})
}

// Pop removes the top pair, executes it, and records the outcome. Popping an
// empty stack is a neutral success.
func (s *Stack) Pop() Result {
	if len(s.frames) == 0 {
		return Ok()
	}
	idx := len(s.frames) - 1
	f := s.frames[idx]
	s.frames = s.frames[:idx]

	result := f.resolver.Resolve(f.ctx)

	snapshot := *f.ctx
	s.history = append(s.history, Record{
		Resolver: f.resolver.Name(),
		Context:  &snapshot,
		Result:   result,
	})

	if result.Success {
		s.logger.Debug("resolver executed",
			zap.String("resolver", f.resolver.Name()),
			zap.Int("remaining", len(s.frames)),
		)
	} else {
		s.logger.Warn("resolver failed",
			zap.String("resolver", f.resolver.Name()),
			zap.String("code", string(result.Code)),
			zap.String("message_key", result.MessageKey),
		)
	}
	return result
}

// IsEmpty reports whether any frames remain.
func (s *Stack) IsEmpty() bool {
	return len(s.frames) == 0
}

// Depth returns the number of pending frames.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// History returns the ordered record list. The returned slice is a copy; the
// records themselves are immutable by convention.
func (s *Stack) History() []Record {
	out := make([]Record, len(s.history))
	copy(out, s.history)
	return out
}
