package callgateway

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v6"
	"go.uber.org/zap"
)

type completerFunc func(ctx context.Context, system string, user string, maxTokens int) (string, error)

func (f completerFunc) CreateCompletion(ctx context.Context, system string, user string, maxTokens int) (string, error) {
	return f(ctx, system, user, maxTokens)
}

func newTestGateway(client Completer, cfg Config) *Gateway {
	if cfg.Credential == "" {
		cfg.Credential = "test-key"
	}
	return New(client, cfg, tally.NoopScope, zap.NewNop())
}

func TestInvokeNotConfigured(t *testing.T) {
	var called atomic.Bool
	g := New(completerFunc(func(context.Context, string, string, int) (string, error) {
		called.Store(true)
		return "", nil
	}), Config{}, tally.NoopScope, zap.NewNop())

	_, err := g.Invoke(context.Background(), Prompt{User: "hi"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
	assert.False(t, called.Load())
}

func TestInvokePassesPrompt(t *testing.T) {
	g := newTestGateway(completerFunc(func(_ context.Context, system string, user string, maxTokens int) (string, error) {
		assert.Equal(t, "rubric", system)
		assert.Equal(t, "items", user)
		assert.Equal(t, 512, maxTokens)
		return "ok", nil
	}), Config{MinInterval: time.Millisecond})

	got, err := g.Invoke(context.Background(), Prompt{System: "rubric", User: "items", MaxTokens: 512})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestInvokeCapsConcurrency(t *testing.T) {
	const maxConcurrent = 3
	var active, peak atomic.Int64
	g := newTestGateway(completerFunc(func(context.Context, string, string, int) (string, error) {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		active.Add(-1)
		return "ok", nil
	}), Config{MaxConcurrent: maxConcurrent, MinInterval: time.Millisecond})

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.Invoke(context.Background(), Prompt{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, peak.Load(), int64(maxConcurrent))
	assert.Greater(t, peak.Load(), int64(1))
}

func TestInvokeSpacesCallStarts(t *testing.T) {
	const interval = 40 * time.Millisecond
	var mu sync.Mutex
	var starts []time.Time
	g := newTestGateway(completerFunc(func(context.Context, string, string, int) (string, error) {
		mu.Lock()
		starts = append(starts, time.Now())
		mu.Unlock()
		return "ok", nil
	}), Config{MaxConcurrent: 10, MinInterval: interval})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.Invoke(context.Background(), Prompt{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, starts, 4)
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	for i := 1; i < len(starts); i++ {
		assert.GreaterOrEqual(t, starts[i].Sub(starts[i-1]), interval-5*time.Millisecond)
	}
}

func TestInvokeServesWaitersInArrivalOrder(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	var order []string
	g := newTestGateway(completerFunc(func(_ context.Context, _ string, user string, _ int) (string, error) {
		if user == "first" {
			<-release
		}
		mu.Lock()
		order = append(order, user)
		mu.Unlock()
		return user, nil
	}), Config{MaxConcurrent: 1, MinInterval: time.Millisecond})

	var wg sync.WaitGroup
	start := func(name string) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.Invoke(context.Background(), Prompt{User: name})
			assert.NoError(t, err)
		}()
		time.Sleep(15 * time.Millisecond)
	}
	start("first")
	start("second")
	start("third")
	start("fourth")
	close(release)
	wg.Wait()

	assert.Equal(t, []string{"first", "second", "third", "fourth"}, order)
}

func TestInvokeReleasesSlotOnFailure(t *testing.T) {
	callErr := errors.New("upstream unavailable")
	var calls atomic.Int64
	g := newTestGateway(completerFunc(func(context.Context, string, string, int) (string, error) {
		if calls.Add(1) == 1 {
			return "", callErr
		}
		return "ok", nil
	}), Config{MaxConcurrent: 1, MinInterval: time.Millisecond})

	_, err := g.Invoke(context.Background(), Prompt{})
	assert.ErrorIs(t, err, callErr)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, err := g.Invoke(ctx, Prompt{})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestInvokeTimesOutHungCall(t *testing.T) {
	var calls atomic.Int64
	g := newTestGateway(completerFunc(func(ctx context.Context, _ string, _ string, _ int) (string, error) {
		if calls.Add(1) == 1 {
			<-ctx.Done()
			return "", ctx.Err()
		}
		return "ok", nil
	}), Config{MaxConcurrent: 1, MinInterval: time.Millisecond, CallTimeout: 20 * time.Millisecond})

	_, err := g.Invoke(context.Background(), Prompt{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	got, err := g.Invoke(context.Background(), Prompt{})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestInvokeCancelledWhileQueued(t *testing.T) {
	release := make(chan struct{})
	g := newTestGateway(completerFunc(func(context.Context, string, string, int) (string, error) {
		<-release
		return "ok", nil
	}), Config{MaxConcurrent: 1, MinInterval: time.Millisecond})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = g.Invoke(context.Background(), Prompt{})
	}()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := g.Invoke(ctx, Prompt{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	<-done
}
