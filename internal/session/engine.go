package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/abhisek/iqfieldbot/internal/events"
	"github.com/abhisek/iqfieldbot/internal/metrics"
	"github.com/abhisek/iqfieldbot/internal/problemgen"
	"github.com/abhisek/iqfieldbot/internal/store"
)

// providerAttempts is the number of provider calls made before the
// fallback question is used.
const providerAttempts = 2

var tracer = otel.Tracer("iqfieldbot/session")

// Engine runs session transitions against a store. Operations on the same
// session id are serialized; different sessions proceed in parallel.
type Engine struct {
	store     store.Store
	generator problemgen.Generator
	machine   *Machine
	cfg       Config
	locks     *keyedMutex
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithPublisher sets the lifecycle event publisher.
func WithPublisher(p events.Publisher) Option {
	return func(e *Engine) { e.publisher = p }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine. gen may be nil, in which case every
// question comes from problemgen.FallbackQuestion.
//
// A non-positive ProviderTimeout is replaced by the default.
func NewEngine(st store.Store, gen problemgen.Generator, cfg Config, opts ...Option) *Engine {
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = DefaultConfig().ProviderTimeout
	}
	e := &Engine{
		store:     st,
		generator: gen,
		cfg:       cfg,
		locks:     newKeyedMutex(),
		publisher: events.Nop{},
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.machine = NewMachine(cfg, e.now)
	return e
}

// Config returns the session configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Create starts a new session and persists it.
func (e *Engine) Create(ctx context.Context, userID string) (*Session, error) {
	ctx, span := tracer.Start(ctx, "session.Create")
	defer span.End()

	s := e.machine.NewSession(uuid.NewString(), userID)
	span.SetAttributes(attribute.String("session.id", s.ID))

	if err := e.save(ctx, s); err != nil {
		return nil, spanError(span, err)
	}
	e.metrics.SessionCreated()
	e.publish(ctx, events.TypeSessionCreated, s, map[string]any{"user_id": userID})
	e.logger.Debug("session created", zap.String("session_id", s.ID))
	return s, nil
}

// Get loads a session.
func (e *Engine) Get(ctx context.Context, id string) (*Session, error) {
	return e.load(ctx, id)
}

// SelectField selects the quiz field and attaches the first question.
func (e *Engine) SelectField(ctx context.Context, id string, field problemgen.Field) (*Session, error) {
	ctx, span := tracer.Start(ctx, "session.SelectField", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.String("session.field", string(field)),
	))
	defer span.End()

	unlock := e.locks.Lock(id)
	defer unlock()

	s, err := e.load(ctx, id)
	if err != nil {
		return nil, spanError(span, err)
	}
	if err := e.machine.SelectField(s, field, e.asker(ctx)); err != nil {
		return nil, spanError(span, err)
	}
	if err := e.save(ctx, s); err != nil {
		return nil, spanError(span, err)
	}

	e.publish(ctx, events.TypeFieldSelected, s, map[string]any{"field": string(field)})
	return s, nil
}

// SubmitAnswer scores an answer to the pending question.
func (e *Engine) SubmitAnswer(ctx context.Context, id, answer string) (*AnswerResult, error) {
	ctx, span := tracer.Start(ctx, "session.SubmitAnswer", trace.WithAttributes(
		attribute.String("session.id", id),
	))
	defer span.End()

	unlock := e.locks.Lock(id)
	defer unlock()

	s, err := e.load(ctx, id)
	if err != nil {
		return nil, spanError(span, err)
	}
	field := s.SelectedField
	res, err := e.machine.SubmitAnswer(s, answer, e.asker(ctx))
	if err != nil {
		return nil, spanError(span, err)
	}
	if err := e.save(ctx, s); err != nil {
		return nil, spanError(span, err)
	}

	span.SetAttributes(
		attribute.Bool("answer.correct", res.IsCorrect),
		attribute.Float64("session.difficulty", res.Difficulty),
	)
	e.metrics.AnswerScored(string(field), res.IsCorrect)
	e.publish(ctx, events.TypeAnswerScored, s, map[string]any{
		"field":      string(field),
		"correct":    res.IsCorrect,
		"score":      res.Score,
		"difficulty": res.Difficulty,
	})
	if res.IsComplete {
		e.metrics.SessionCompleted(s.Accuracy())
		e.publish(ctx, events.TypeSessionComplete, s, map[string]any{
			"score":           s.Score,
			"total_questions": s.TotalQuestions,
			"correct_answers": s.CorrectAnswers,
		})
		e.logger.Info("session complete",
			zap.String("session_id", s.ID),
			zap.Int("score", s.Score),
			zap.Int("correct", s.CorrectAnswers),
			zap.Int("total", s.TotalQuestions),
		)
	}
	return res, nil
}

// Delete removes a session.
func (e *Engine) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "session.Delete", trace.WithAttributes(
		attribute.String("session.id", id),
	))
	defer span.End()

	unlock := e.locks.Lock(id)
	defer unlock()

	if err := e.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return spanError(span, err)
		}
		return spanError(span, fmt.Errorf("%w: delete %s: %v", ErrPersistence, id, err))
	}
	e.publish(ctx, events.TypeSessionDeleted, &Session{ID: id}, nil)
	return nil
}

// Analytics loads a session and builds its performance report.
func (e *Engine) Analytics(ctx context.Context, id string) (*Analytics, error) {
	s, err := e.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildAnalytics(s, e.now()), nil
}

func (e *Engine) load(ctx context.Context, id string) (*Session, error) {
	data, err := e.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: load %s: %v", ErrPersistence, id, err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrPersistence, id, err)
	}
	return &s, nil
}

func (e *Engine) save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	if err := e.store.Put(ctx, s.ID, data); err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrPersistence, s.ID, err)
	}
	return nil
}

// asker binds the provider to ctx. Each attempt is bounded by the
// provider timeout; after providerAttempts failures the static fallback
// question is returned.
func (e *Engine) asker(ctx context.Context) Asker {
	return func(input problemgen.GenerateInput) *problemgen.Question {
		start := time.Now()
		q := e.generate(ctx, input)
		source := "provider"
		if q == nil {
			q = problemgen.FallbackQuestion(input.Field, input.Difficulty)
			source = "fallback"
		}
		e.metrics.QuestionServed(string(input.Field), source, time.Since(start))
		return q
	}
}

func (e *Engine) generate(ctx context.Context, input problemgen.GenerateInput) *problemgen.Question {
	if e.generator == nil {
		return nil
	}
	ctx, span := tracer.Start(ctx, "session.generate", trace.WithAttributes(
		attribute.String("question.field", string(input.Field)),
		attribute.Int("question.difficulty", input.Difficulty),
	))
	defer span.End()

	for attempt := 1; attempt <= providerAttempts; attempt++ {
		q, err := e.generateOnce(ctx, input)
		if err == nil {
			span.SetAttributes(attribute.Int("question.attempts", attempt))
			return q
		}
		e.logger.Warn("question provider failed",
			zap.String("field", string(input.Field)),
			zap.Int("difficulty", input.Difficulty),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}
	span.SetStatus(codes.Error, "provider unavailable, using fallback")
	return nil
}

type generated struct {
	q   *problemgen.Question
	err error
}

// generateOnce runs one provider call under the timeout. The provider runs
// in its own goroutine so a call that ignores its context cannot stall the
// transition.
func (e *Engine) generateOnce(ctx context.Context, input problemgen.GenerateInput) (*problemgen.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.ProviderTimeout)
	defer cancel()

	ch := make(chan generated, 1)
	go func() {
		q, err := e.generator.Generate(ctx, input)
		ch <- generated{q: q, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("question provider: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		if r.q == nil {
			return nil, errors.New("question provider returned no question")
		}
		if err := r.q.Validate(); err != nil {
			return nil, fmt.Errorf("invalid question: %w", err)
		}
		if r.q.Field != input.Field {
			return nil, fmt.Errorf("question field %q does not match %q", r.q.Field, input.Field)
		}
		return r.q, nil
	}
}

func (e *Engine) publish(ctx context.Context, typ string, s *Session, payload map[string]any) {
	ev := events.Event{
		Type:      typ,
		SessionID: s.ID,
		Timestamp: e.now().UTC(),
		Payload:   payload,
	}
	if err := e.publisher.Publish(ctx, ev); err != nil {
		e.logger.Warn("failed to publish session event",
			zap.String("type", typ),
			zap.String("session_id", s.ID),
			zap.Error(err),
		)
	}
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
