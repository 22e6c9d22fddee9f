package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/iqfieldbot/internal/events"
	"github.com/abhisek/iqfieldbot/internal/llm"
	"github.com/abhisek/iqfieldbot/internal/metrics"
	"github.com/abhisek/iqfieldbot/internal/problemgen"
	"github.com/abhisek/iqfieldbot/internal/session"
	"github.com/abhisek/iqfieldbot/internal/store"
)

// runtime holds the components shared by serve and play.
type runtime struct {
	store     store.Store
	engine    *session.Engine
	metrics   *metrics.Metrics
	publisher events.Publisher
	closers   []func() error
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			log.Warn("close failed", zap.Error(err))
		}
	}
}

// buildGenerator returns the question source: the LLM mixed with the
// static bank when a provider is configured, otherwise the bank alone.
// The returned closer releases the LLM request log, if one was opened.
func buildGenerator(ctx context.Context, cmd *cobra.Command, st store.Store) (problemgen.Generator, func() error, error) {
	bank := problemgen.NewBankGenerator(nil)
	noop := func() error { return nil }

	var repo store.EventRepo
	closer := noop
	if s, ok := st.(*store.SQLiteStore); ok {
		repo = s.EventRepo()
	} else if cfg.LLM.Provider != "none" {
		path, err := resolveDBPath(cmd)
		if err == nil {
			var s *store.SQLiteStore
			if s, err = store.OpenSQLite(path); err == nil {
				repo = s.EventRepo()
				closer = s.Close
			}
		}
		if err != nil {
			log.Warn("LLM request log unavailable", zap.Error(err))
		}
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, repo, log)
	if err != nil {
		if errors.Is(err, llm.ErrNoProvider) {
			log.Info("no LLM provider configured, using question bank only")
			return bank, closer, nil
		}
		_ = closer()
		return nil, noop, fmt.Errorf("LLM provider: %w", err)
	}
	ai := problemgen.New(provider, problemgen.DefaultConfig())
	return problemgen.NewMix(ai, bank, cfg.Questions.AIRatio, nil, log), closer, nil
}

// buildRuntime wires store, question source, events and metrics into a
// session engine.
func buildRuntime(ctx context.Context, cmd *cobra.Command, storeCfg store.Config, withEvents bool) (*runtime, error) {
	rt := &runtime{publisher: events.Nop{}, metrics: metrics.New()}

	st, err := store.Open(ctx, storeCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", storeCfg.Backend, err)
	}
	rt.store = st
	rt.closers = append(rt.closers, st.Close)

	gen, closeGen, err := buildGenerator(ctx, cmd, st)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.closers = append(rt.closers, closeGen)

	if withEvents && cfg.Events.AMQPURL != "" {
		pub, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("connect event broker: %w", err)
		}
		rt.publisher = pub
		rt.closers = append(rt.closers, pub.Close)
		log.Info("publishing session events", zap.String("exchange", cfg.Events.Exchange))
	}

	rt.engine = session.NewEngine(st, gen, cfg.Session,
		session.WithLogger(log.Named("session")),
		session.WithPublisher(rt.publisher),
		session.WithMetrics(rt.metrics),
	)
	return rt, nil
}
