// Package advisor bridges the deterministic recommendation ranking to an
// external natural-language advisory service. The bridge is an enrichment
// layer: its failure never affects the ranking itself.
package advisor

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/scentlab/scent-cli/internal/model"
)

// ErrUnavailable is returned for any transport, timeout, parse, or
// shape-validation failure. Callers get one uniform failure because the
// remediation is identical either way: retry, or show the ranking without
// advisory.
var ErrUnavailable = eris.New("advisor: advisory not available")

// ErrSuperseded is returned when a newer call on the same session was issued
// before this one resolved. It is never user-visible; callers discard it
// silently.
var ErrSuperseded = eris.New("advisor: superseded by newer request")

// DefaultTimeout bounds one advisory round trip.
const DefaultTimeout = 12 * time.Second

// Generator produces raw model text for a prompt. Implementations own their
// transport envelope: the Ollama generator unwraps the {response: "..."}
// outer JSON, the Claude generator concatenates text blocks. The bridge only
// ever sees the model's text, so a transport change stays inside the
// generator.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Bridge constructs advisory prompts, calls a Generator, and validates the
// response into an AdvisoryResult.
type Bridge struct {
	gen     Generator
	timeout time.Duration
}

// New creates a Bridge. A non-positive timeout falls back to DefaultTimeout.
func New(gen Generator, timeout time.Duration) *Bridge {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Bridge{gen: gen, timeout: timeout}
}

// Advise asks the advisory service to explain and extend the given
// recommendations. Any failure surfaces as ErrUnavailable; the underlying
// cause is logged, not returned, so callers cannot branch on it.
func (b *Bridge) Advise(ctx context.Context, answers model.Answers, recs []model.Recommendation) (*model.AdvisoryResult, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	raw, err := b.gen.Generate(ctx, BuildPrompt(answers, recs))
	if err != nil {
		zap.L().Debug("advisor: generate failed", zap.Error(err))
		return nil, eris.Wrap(ErrUnavailable, "generate")
	}

	result, err := decodeAdvice(raw)
	if err != nil {
		zap.L().Debug("advisor: invalid advice payload", zap.Error(err))
		return nil, eris.Wrap(ErrUnavailable, "decode")
	}
	return result, nil
}

// Session serializes advisory calls for one logical caller context (one
// results screen). A new Advise supersedes any in-flight one: the prior call
// is cancelled and its result, should it still arrive, is discarded. Ordering
// is last-issued-wins, enforced by a generation counter checked before the
// result is applied.
type Session struct {
	bridge *Bridge

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
}

// NewSession creates a Session over the given bridge.
func NewSession(b *Bridge) *Session {
	return &Session{bridge: b}
}

// Advise behaves like Bridge.Advise but guarantees that only the most
// recently issued call's result is ever returned; superseded calls resolve to
// ErrSuperseded.
func (s *Session) Advise(ctx context.Context, answers model.Answers, recs []model.Recommendation) (*model.AdvisoryResult, error) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	result, err := s.bridge.Advise(ctx, answers, recs)

	s.mu.Lock()
	stale := s.generation != gen
	s.mu.Unlock()
	if stale {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
