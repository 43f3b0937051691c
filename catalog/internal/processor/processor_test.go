package processor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cinecircle/catalog/pkg/model"
	"cinecircle/pkg/callgateway"
	"cinecircle/pkg/discovery/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type run struct {
	kind      model.EnrichmentKind
	limit     int
	batchSize int
}

type fakeEnricher struct {
	mu    sync.Mutex
	runs  []run
	err   map[model.EnrichmentKind]error
	onRun func()
}

func (f *fakeEnricher) Kinds() []model.EnrichmentKind {
	return []model.EnrichmentKind{model.KindMood, model.KindAdvisory}
}

func (f *fakeEnricher) RunEnrichment(_ context.Context, kind model.EnrichmentKind, limit int, batchSize int) (model.EnrichmentSummary, error) {
	f.mu.Lock()
	f.runs = append(f.runs, run{kind, limit, batchSize})
	f.mu.Unlock()
	if f.onRun != nil {
		f.onRun()
	}
	return model.EnrichmentSummary{}, f.err[kind]
}

type failingLock struct {
	calls int
}

func (l *failingLock) Acquire(context.Context, string) (bool, func() error, error) {
	l.calls++
	return false, nil, errors.New("consul unavailable")
}

func TestProcessRunsEveryKind(t *testing.T) {
	e := &fakeEnricher{err: map[model.EnrichmentKind]error{model.KindMood: errors.New("boom")}}
	p := New(zap.NewNop(), memory.NewRegistry(), e, Config{
		Limit:      40,
		BatchSizes: map[model.EnrichmentKind]int{model.KindMood: 12, model.KindAdvisory: 6},
	})

	require.NoError(t, p.process(context.Background()))
	assert.Equal(t, []run{
		{model.KindMood, 40, 12},
		{model.KindAdvisory, 40, 6},
	}, e.runs)
}

func TestProcessStopsOnConfigurationError(t *testing.T) {
	e := &fakeEnricher{err: map[model.EnrichmentKind]error{model.KindMood: callgateway.ErrNotConfigured}}
	p := New(zap.NewNop(), memory.NewRegistry(), e, Config{})

	err := p.process(context.Background())
	assert.ErrorIs(t, err, callgateway.ErrNotConfigured)
	assert.Len(t, e.runs, 1)
}

func TestStartStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e := &fakeEnricher{}
	e.onRun = cancel
	p := New(zap.NewNop(), memory.NewRegistry(), e, Config{Interval: time.Hour})

	done := make(chan error, 1)
	go func() { done <- p.Start(ctx) }()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("processor did not stop")
	}
}

func TestStartRetriesLock(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	lock := &failingLock{}
	e := &fakeEnricher{}
	p := New(zap.NewNop(), lock, e, Config{})
	p.retryDelay = 10 * time.Millisecond

	err := p.Start(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, lock.calls, 1)
	assert.Empty(t, e.runs)
}
