// Package dismissal records "not interested" marks with a short undo window.
package dismissal

import (
	"context"
	"errors"
	"sync"
	"time"

	catalogmodel "cinecircle/catalog/pkg/model"
	"cinecircle/pkg/logging"
	ratingmodel "cinecircle/rating/pkg/model"

	"go.uber.org/zap"
)

// DefaultUndoWindow is the grace period for undoing a dismissal.
const DefaultUndoWindow = 5 * time.Second

// ErrUndoExpired is returned when a dismissal is undone after its window
// closed, or when there is no pending dismissal to undo.
var ErrUndoExpired = errors.New("undo window expired")

// Repository is the durable dismissal store.
type Repository interface {
	CreateDismissal(ctx context.Context, userID ratingmodel.UserID, itemID catalogmodel.ItemID, at time.Time) error
	DeleteDismissal(ctx context.Context, userID ratingmodel.UserID, itemID catalogmodel.ItemID) error
	ListDismissed(ctx context.Context, userID ratingmodel.UserID) ([]catalogmodel.ItemID, error)
}

type key struct {
	user ratingmodel.UserID
	item catalogmodel.ItemID
}

// Manager writes dismissals immediately and lets them be undone until
// the window closes. After that the dismissal is permanent.
type Manager struct {
	repo    Repository
	window  time.Duration
	now     func() time.Time
	logger  *zap.Logger
	mu      sync.Mutex
	pending map[key]time.Time
}

// New creates a new dismissal manager. A non-positive window takes the default.
func New(repo Repository, window time.Duration, logger *zap.Logger) *Manager {
	if window <= 0 {
		window = DefaultUndoWindow
	}
	logger = logger.With(zap.String(logging.FieldComponent, "dismissal"))
	return &Manager{repo: repo, window: window, now: time.Now, logger: logger, pending: map[key]time.Time{}}
}

// Dismiss records the dismissal and returns the undo deadline.
func (m *Manager) Dismiss(ctx context.Context, userID ratingmodel.UserID, itemID catalogmodel.ItemID) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if err := m.repo.CreateDismissal(ctx, userID, itemID, now); err != nil {
		return time.Time{}, err
	}
	m.prune(now)
	deadline := now.Add(m.window)
	m.pending[key{userID, itemID}] = deadline
	return deadline, nil
}

// Undo deletes a dismissal whose window is still open.
func (m *Manager) Undo(ctx context.Context, userID ratingmodel.UserID, itemID catalogmodel.ItemID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key{userID, itemID}
	deadline, ok := m.pending[k]
	if !ok || m.now().After(deadline) {
		delete(m.pending, k)
		return ErrUndoExpired
	}
	if err := m.repo.DeleteDismissal(ctx, userID, itemID); err != nil {
		return err
	}
	delete(m.pending, k)
	m.logger.Debug("Dismissal undone", zap.String(logging.FieldUserID, string(userID)), zap.Int64(logging.FieldItemID, int64(itemID)))
	return nil
}

// Dismissed returns the items the user has dismissed, including those
// still inside their undo window.
func (m *Manager) Dismissed(ctx context.Context, userID ratingmodel.UserID) ([]catalogmodel.ItemID, error) {
	return m.repo.ListDismissed(ctx, userID)
}

// prune drops closed windows. Callers hold mu.
func (m *Manager) prune(now time.Time) {
	for k, deadline := range m.pending {
		if now.After(deadline) {
			delete(m.pending, k)
		}
	}
}
