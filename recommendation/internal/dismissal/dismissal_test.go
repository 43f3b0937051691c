package dismissal

import (
	"context"
	"errors"
	"testing"
	"time"

	catalogmodel "cinecircle/catalog/pkg/model"
	ratingmodel "cinecircle/rating/pkg/model"
	"cinecircle/recommendation/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newManager(t *testing.T) (*Manager, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)}
	m := New(memory.New(zap.NewNop()), 0, zap.NewNop())
	m.now = c.now
	return m, c
}

func TestUndoWithinWindow(t *testing.T) {
	ctx := context.Background()
	m, c := newManager(t)

	deadline, err := m.Dismiss(ctx, "ann", 7)
	require.NoError(t, err)
	assert.Equal(t, c.t.Add(DefaultUndoWindow), deadline)

	got, err := m.Dismissed(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, []catalogmodel.ItemID{7}, got)

	c.t = c.t.Add(4 * time.Second)
	require.NoError(t, m.Undo(ctx, "ann", 7))
	got, err = m.Dismissed(ctx, "ann")
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.ErrorIs(t, m.Undo(ctx, "ann", 7), ErrUndoExpired)
}

func TestUndoAfterWindow(t *testing.T) {
	ctx := context.Background()
	m, c := newManager(t)
	_, err := m.Dismiss(ctx, "ann", 7)
	require.NoError(t, err)

	c.t = c.t.Add(DefaultUndoWindow + time.Millisecond)
	assert.ErrorIs(t, m.Undo(ctx, "ann", 7), ErrUndoExpired)

	got, err := m.Dismissed(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, []catalogmodel.ItemID{7}, got)
}

func TestUndoIsPerUser(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	_, err := m.Dismiss(ctx, "ann", 7)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Undo(ctx, "ben", 7), ErrUndoExpired)
	assert.ErrorIs(t, m.Undo(ctx, "ann", 8), ErrUndoExpired)
}

func TestRedismissReopensWindow(t *testing.T) {
	ctx := context.Background()
	m, c := newManager(t)
	_, err := m.Dismiss(ctx, "ann", 7)
	require.NoError(t, err)
	c.t = c.t.Add(time.Minute)
	_, err = m.Dismiss(ctx, "ann", 7)
	require.NoError(t, err)
	c.t = c.t.Add(time.Second)
	assert.NoError(t, m.Undo(ctx, "ann", 7))
	assert.Len(t, m.pending, 0)
}

type failingRepo struct{ Repository }

func (failingRepo) CreateDismissal(context.Context, ratingmodel.UserID, catalogmodel.ItemID, time.Time) error {
	return errors.New("db down")
}

func TestDismissRepositoryError(t *testing.T) {
	m := New(failingRepo{}, time.Second, zap.NewNop())
	_, err := m.Dismiss(context.Background(), "ann", 1)
	assert.EqualError(t, err, "db down")
	assert.ErrorIs(t, m.Undo(context.Background(), "ann", 1), ErrUndoExpired)
}
