package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cinecircle/pkg/logging"
	"cinecircle/rating/configs"
	"cinecircle/rating/internal/repository"
	"cinecircle/rating/pkg/model"

	_ "github.com/go-sql-driver/mysql"
	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const tracerID = "rating-repository-mysql"

const ratingColumns = "user_id, item_id, overall_score, dimensions, rated_at, updated_at"

// Repository defines a MySQL-based rating repository.
type Repository struct {
	db     *sql.DB
	logger *zap.Logger
}

// New creates a new MySQL-based rating repository.
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

// Get retrieves a user's rating of an item.
func (r *Repository) Get(ctx context.Context, userID model.UserID, itemID model.ItemID) (*model.Rating, error) {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/Get")
	defer span.End()
	row := r.db.QueryRowContext(ctx, "SELECT "+ratingColumns+" FROM ratings WHERE user_id = ? AND item_id = ?", userID, itemID)
	rating, err := scanRating(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	} else if err != nil {
		r.logger.Warn("Failed to get rating from MySQL", zap.String(logging.FieldUserID, string(userID)),
			zap.Int64(logging.FieldItemID, int64(itemID)), zap.Error(err))
		return nil, err
	}
	return rating, nil
}

// Upsert creates or replaces a rating. An existing rated_at is kept.
func (r *Repository) Upsert(ctx context.Context, rating *model.Rating) error {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/Upsert")
	defer span.End()
	var dims []byte
	if len(rating.Dimensions) > 0 {
		var err error
		if dims, err = json.Marshal(rating.Dimensions); err != nil {
			return err
		}
	}
	_, err := r.db.ExecContext(ctx, "INSERT INTO ratings ("+ratingColumns+") VALUES (?, ?, ?, ?, ?, ?) "+
		"ON DUPLICATE KEY UPDATE overall_score = VALUES(overall_score), dimensions = VALUES(dimensions), updated_at = VALUES(updated_at)",
		rating.UserID, rating.ItemID, rating.OverallScore, dims, rating.RatedAt, rating.UpdatedAt)
	if err != nil {
		r.logger.Warn("Failed to upsert rating to MySQL", zap.String(logging.FieldUserID, string(rating.UserID)),
			zap.Int64(logging.FieldItemID, int64(rating.ItemID)), zap.Error(err))
	}
	return err
}

// Delete removes a user's rating of an item.
func (r *Repository) Delete(ctx context.Context, userID model.UserID, itemID model.ItemID) error {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/Delete")
	defer span.End()
	res, err := r.db.ExecContext(ctx, "DELETE FROM ratings WHERE user_id = ? AND item_id = ?", userID, itemID)
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

// ListByUsers returns every rating made by the given users, ordered by
// user id and item id.
func (r *Repository) ListByUsers(ctx context.Context, userIDs []model.UserID) ([]*model.Rating, error) {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/ListByUsers")
	defer span.End()
	if len(userIDs) == 0 {
		return nil, nil
	}
	args := make([]any, len(userIDs))
	for i, u := range userIDs {
		args[i] = u
	}
	query := "SELECT " + ratingColumns + " FROM ratings WHERE user_id IN (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(userIDs)), ", ") + ") ORDER BY user_id, item_id"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Warn("Failed to list ratings from MySQL", zap.Int("users", len(userIDs)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	var res []*model.Rating
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, rating)
	}
	return res, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRating(s scanner) (*model.Rating, error) {
	var (
		rating model.Rating
		dims   []byte
	)
	if err := s.Scan(&rating.UserID, &rating.ItemID, &rating.OverallScore, &dims, &rating.RatedAt, &rating.UpdatedAt); err != nil {
		return nil, err
	}
	if len(dims) > 0 {
		if err := json.Unmarshal(dims, &rating.Dimensions); err != nil {
			return nil, err
		}
	}
	return &rating, nil
}
