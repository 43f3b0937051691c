package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	catalogmodel "cinecircle/catalog/pkg/model"
	"cinecircle/pkg/logging"
	ratingmodel "cinecircle/rating/pkg/model"
	"cinecircle/recommendation/configs"
	"cinecircle/recommendation/internal/repository"
	"cinecircle/recommendation/pkg/model"

	_ "github.com/go-sql-driver/mysql"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const tracerID = "recommendation-repository-mysql"

// Repository defines a MySQL-based collective and dismissal repository.
type Repository struct {
	db     *sql.DB
	logger *zap.Logger
}

// New creates a new MySQL-based repository.
func New(config configs.MysqlConfig, logger *zap.Logger) (*Repository, error) {
	logger = logger.With(
		zap.String(logging.FieldComponent, "repository"),
		zap.String(logging.FieldType, "mysql"),
	)
	logger.Info("Connecting to mysql", zap.String("host", config.Host), zap.String("db", config.Name))
	db, err := sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", config.User, config.Pass, config.Host, config.Port, config.Name))
	if err != nil {
		return nil, err
	}
	return &Repository{db: db, logger: logger}, nil
}

// GetCollective retrieves a collective and its members in membership order.
func (r *Repository) GetCollective(ctx context.Context, id model.CollectiveID) (*model.Collective, error) {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/GetCollective")
	defer span.End()
	c := model.Collective{ID: id}
	err := r.db.QueryRowContext(ctx, "SELECT name FROM collectives WHERE id = ?", id).Scan(&c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	} else if err != nil {
		r.logger.Warn("Failed to get collective from MySQL", zap.String("collective", string(id)), zap.Error(err))
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, "SELECT user_id, display_name FROM collective_members WHERE collective_id = ? ORDER BY position", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			m    model.Member
			name sql.NullString
		)
		if err := rows.Scan(&m.UserID, &name); err != nil {
			return nil, err
		}
		m.DisplayName = name.String
		c.Members = append(c.Members, m)
	}
	return &c, rows.Err()
}

// PutCollective adds or replaces a collective and its members in one transaction.
func (r *Repository) PutCollective(ctx context.Context, c *model.Collective) (err error) {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/PutCollective")
	defer span.End()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				r.logger.Warn("Failed to roll back collective update", zap.Error(rerr))
			}
		}
	}()
	if _, err = tx.ExecContext(ctx, "REPLACE INTO collectives (id, name) VALUES (?, ?)", c.ID, c.Name); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM collective_members WHERE collective_id = ?", c.ID); err != nil {
		return err
	}
	for i, m := range c.Members {
		if _, err = tx.ExecContext(ctx, "INSERT INTO collective_members (collective_id, user_id, display_name, position) VALUES (?, ?, ?, ?)",
			c.ID, m.UserID, m.DisplayName, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CreateDismissal records that the user dismissed the item. Dismissing
// twice keeps the first timestamp.
func (r *Repository) CreateDismissal(ctx context.Context, userID ratingmodel.UserID, itemID catalogmodel.ItemID, at time.Time) error {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/CreateDismissal")
	defer span.End()
	_, err := r.db.ExecContext(ctx, "INSERT IGNORE INTO dismissals (user_id, item_id, dismissed_at) VALUES (?, ?, ?)", userID, itemID, at)
	if err != nil {
		r.logger.Warn("Failed to create dismissal", zap.String(logging.FieldUserID, string(userID)),
			zap.Int64(logging.FieldItemID, int64(itemID)), zap.Error(err))
	}
	return err
}

// DeleteDismissal removes a dismissal.
func (r *Repository) DeleteDismissal(ctx context.Context, userID ratingmodel.UserID, itemID catalogmodel.ItemID) error {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/DeleteDismissal")
	defer span.End()
	res, err := r.db.ExecContext(ctx, "DELETE FROM dismissals WHERE user_id = ? AND item_id = ?", userID, itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListDismissed returns the items a user dismissed in ascending id order.
func (r *Repository) ListDismissed(ctx context.Context, userID ratingmodel.UserID) ([]catalogmodel.ItemID, error) {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/ListDismissed")
	defer span.End()
	rows, err := r.db.QueryContext(ctx, "SELECT item_id FROM dismissals WHERE user_id = ? ORDER BY item_id", userID)
	if err != nil {
		r.logger.Warn("Failed to list dismissals", zap.String(logging.FieldUserID, string(userID)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	var res []catalogmodel.ItemID
	for rows.Next() {
		var id catalogmodel.ItemID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	return res, rows.Err()
}
