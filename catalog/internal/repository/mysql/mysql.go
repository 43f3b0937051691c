package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinecircle/catalog/configs"
	"cinecircle/catalog/internal/repository"
	"cinecircle/catalog/pkg/model"
	"cinecircle/pkg/logging"

	_ "github.com/go-sql-driver/mysql"
	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const tracerID = "catalog-repository-mysql"

const itemColumns = "id, title, year, genres, synopsis, runtime_minutes, content_rating, providers, vote_average, vote_count, " +
	"mood_scores, mood_scored_at, pairings, parental_summary, advisory, llm_enriched_at"

// Repository defines a MySQL-based catalog repository.
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
	db, err := sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&clientFoundRows=true", config.User, config.Pass, config.Host, config.Port, config.Name))
	if err != nil {
		return nil, err
	}
	return &Repository{db: db, logger: logger}, nil
}

// Get retrieves a catalog item by id.
func (r *Repository) Get(ctx context.Context, id model.ItemID) (*model.CatalogItem, error) {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/Get")
	defer span.End()
	row := r.db.QueryRowContext(ctx, "SELECT "+itemColumns+" FROM catalog_items WHERE id = ?", id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	} else if err != nil {
		r.logger.Warn("Failed to get item from MySQL", zap.Int64(logging.FieldItemID, int64(id)), zap.Error(err))
		return nil, err
	}
	return item, nil
}

// Put adds or replaces a catalog item.
func (r *Repository) Put(ctx context.Context, item *model.CatalogItem) error {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/Put")
	defer span.End()
	if err := repository.CheckMoodScores(item.MoodScores, item.MoodScoredAt); err != nil {
		return err
	}
	genres, err := json.Marshal(item.Genres)
	if err != nil {
		return err
	}
	providers, err := json.Marshal(item.Providers)
	if err != nil {
		return err
	}
	moods, err := nullableJSON(item.MoodScores, len(item.MoodScores) > 0)
	if err != nil {
		return err
	}
	pairings, err := nullableJSON(item.Pairings, item.Pairings != nil)
	if err != nil {
		return err
	}
	advisory, err := nullableJSON(advisoryToJSON(item.Advisory), len(item.Advisory) > 0)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, "REPLACE INTO catalog_items ("+itemColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		item.ID, item.Title, item.Year, genres, item.Synopsis, item.RuntimeMinutes, item.ContentRating, providers,
		item.VoteAverage, item.VoteCount, moods, item.MoodScoredAt, pairings, item.ParentalSummary, advisory, item.LLMEnrichedAt)
	if err != nil {
		r.logger.Warn("Failed to put item to MySQL", zap.Int64(logging.FieldItemID, int64(item.ID)), zap.Error(err))
	}
	return err
}

// GetItems returns the items with the given ids. Unknown ids are skipped.
func (r *Repository) GetItems(ctx context.Context, ids []model.ItemID) ([]*model.CatalogItem, error) {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/GetItems")
	defer span.End()
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := "SELECT " + itemColumns + " FROM catalog_items WHERE id IN (" + placeholders(len(ids)) + ")"
	return r.query(ctx, query, args...)
}

// ListUnenriched returns up to limit items not yet enriched by the given
// pass, most popular first.
func (r *Repository) ListUnenriched(ctx context.Context, kind model.EnrichmentKind, limit int) ([]*model.CatalogItem, error) {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/ListUnenriched")
	defer span.End()
	var column string
	switch kind {
	case model.KindMood:
		column = "mood_scored_at"
	case model.KindAdvisory:
		column = "llm_enriched_at"
	default:
		return nil, fmt.Errorf("unknown enrichment kind %q", kind)
	}
	query := "SELECT " + itemColumns + " FROM catalog_items WHERE " + column + " IS NULL ORDER BY vote_count DESC, id ASC LIMIT ?"
	return r.query(ctx, query, limit)
}

// ListCandidates returns up to limit items not in exclude, most popular
// first. A non-positive limit returns every item.
func (r *Repository) ListCandidates(ctx context.Context, exclude []model.ItemID, limit int) ([]*model.CatalogItem, error) {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/ListCandidates")
	defer span.End()
	var sb strings.Builder
	var args []any
	sb.WriteString("SELECT " + itemColumns + " FROM catalog_items")
	if len(exclude) > 0 {
		sb.WriteString(" WHERE id NOT IN (" + placeholders(len(exclude)) + ")")
		for _, id := range exclude {
			args = append(args, id)
		}
	}
	sb.WriteString(" ORDER BY vote_count DESC, id ASC")
	if limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	return r.query(ctx, sb.String(), args...)
}

// SaveMoodScores stores a complete mood score set and its timestamp in one update.
func (r *Repository) SaveMoodScores(ctx context.Context, id model.ItemID, scores model.MoodScores, scoredAt time.Time) error {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/SaveMoodScores")
	defer span.End()
	if err := repository.CheckMoodScores(scores, &scoredAt); err != nil {
		return err
	}
	b, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, "UPDATE catalog_items SET mood_scores = ?, mood_scored_at = ? WHERE id = ?", b, scoredAt, id)
	if err != nil {
		r.logger.Warn("Failed to save mood scores", zap.Int64(logging.FieldItemID, int64(id)), zap.Error(err))
		return err
	}
	return expectOneRow(res)
}

// SaveAdvisory stores pairings, parental summary and severities in one update.
func (r *Repository) SaveAdvisory(ctx context.Context, id model.ItemID, e *model.AdvisoryEnrichment, enrichedAt time.Time) error {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repository/SaveAdvisory")
	defer span.End()
	pairings, err := json.Marshal(e.Pairings)
	if err != nil {
		return err
	}
	advisory, err := json.Marshal(advisoryToJSON(e.Advisory))
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE catalog_items SET pairings = ?, parental_summary = ?, advisory = ?, llm_enriched_at = ? WHERE id = ?",
		pairings, e.ParentalSummary, advisory, enrichedAt, id)
	if err != nil {
		r.logger.Warn("Failed to save advisory", zap.Int64(logging.FieldItemID, int64(id)), zap.Error(err))
		return err
	}
	return expectOneRow(res)
}

func (r *Repository) query(ctx context.Context, query string, args ...any) ([]*model.CatalogItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Warn("Failed to query items from MySQL", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	var res []*model.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*model.CatalogItem, error) {
	var (
		item                             model.CatalogItem
		year, runtime                    sql.NullInt64
		synopsis, contentRating, summary sql.NullString
		genres, providers                []byte
		moods, pairings, advisory        []byte
		moodScoredAt, llmEnrichedAt      sql.NullTime
		voteAverage                      sql.NullFloat64
		voteCount                        sql.NullInt64
	)
	if err := s.Scan(&item.ID, &item.Title, &year, &genres, &synopsis, &runtime, &contentRating, &providers,
		&voteAverage, &voteCount, &moods, &moodScoredAt, &pairings, &summary, &advisory, &llmEnrichedAt); err != nil {
		return nil, err
	}
	item.Year = int(year.Int64)
	item.RuntimeMinutes = int(runtime.Int64)
	item.Synopsis = synopsis.String
	item.ContentRating = contentRating.String
	item.ParentalSummary = summary.String
	item.VoteAverage = voteAverage.Float64
	item.VoteCount = voteCount.Int64
	if err := unmarshalIfSet(genres, &item.Genres); err != nil {
		return nil, err
	}
	if err := unmarshalIfSet(providers, &item.Providers); err != nil {
		return nil, err
	}
	if err := unmarshalIfSet(moods, &item.MoodScores); err != nil {
		return nil, err
	}
	if len(pairings) > 0 {
		item.Pairings = &model.Pairings{}
		if err := json.Unmarshal(pairings, item.Pairings); err != nil {
			return nil, err
		}
	}
	if len(advisory) > 0 {
		var raw map[string]string
		if err := json.Unmarshal(advisory, &raw); err != nil {
			return nil, err
		}
		item.Advisory = advisoryFromJSON(raw)
	}
	if moodScoredAt.Valid {
		t := moodScoredAt.Time
		item.MoodScoredAt = &t
	}
	if llmEnrichedAt.Valid {
		t := llmEnrichedAt.Time
		item.LLMEnrichedAt = &t
	}
	return &item, nil
}

func unmarshalIfSet(b []byte, v any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, v)
}

func nullableJSON(v any, set bool) ([]byte, error) {
	if !set {
		return nil, nil
	}
	return json.Marshal(v)
}

func advisoryToJSON(a model.Advisory) map[string]string {
	res := make(map[string]string, len(a))
	for c, s := range a {
		res[string(c)] = s.String()
	}
	return res
}

func advisoryFromJSON(raw map[string]string) model.Advisory {
	res := make(model.Advisory, len(raw))
	for k, v := range raw {
		c, err := model.ParseCategory(k)
		if err != nil {
			continue
		}
		if s, err := model.ParseSeverity(v); err == nil {
			res[c] = s
		}
	}
	return res
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
