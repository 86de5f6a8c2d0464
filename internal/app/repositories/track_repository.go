package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/db"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/logger"
)

// TrackRepository handles training track database operations
type TrackRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTrackRepository creates a new TrackRepository
func NewTrackRepository(db *pgxpool.Pool) *TrackRepository {
	return &TrackRepository{db: db, sb: statementBuilder()}
}

func (r *TrackRepository) selectTracks() squirrel.SelectBuilder {
	return r.sb.Select(
		"t.id", "t.slug", "t.title_ar", "t.title_en", "t.description_ar", "t.description_en", "t.sort_order",
		"COALESCE(array_agg(tp.program_id ORDER BY tp.position, tp.program_id) FILTER (WHERE tp.program_id IS NOT NULL), '{}')",
	).
		From("training_tracks t").
		LeftJoin("track_programs tp ON tp.track_id = t.id").
		GroupBy("t.id")
}

func scanTrack(row rowScanner) (*models.TrainingTrack, error) {
	var t models.TrainingTrack
	err := row.Scan(&t.ID, &t.Slug, &t.Title.AR, &t.Title.EN, &t.Description.AR, &t.Description.EN, &t.SortOrder, &t.ProgramIDs)
	if err != nil {
		return nil, err
	}
	if t.ProgramIDs == nil {
		t.ProgramIDs = []int64{}
	}
	return &t, nil
}

// List returns all tracks with their ordered program ids
func (r *TrackRepository) List(ctx context.Context) ([]models.TrainingTrack, error) {
	sql, args, err := r.selectTracks().OrderBy("t.sort_order", "t.id").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list tracks SQL")
		return nil, fmt.Errorf("failed to build list tracks query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list tracks query")
		return nil, fmt.Errorf("error listing tracks: %w", err)
	}
	defer rows.Close()

	tracks := []models.TrainingTrack{}
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning track row")
			return nil, fmt.Errorf("error scanning track: %w", err)
		}
		tracks = append(tracks, *t)
	}
	return tracks, rows.Err()
}

// GetByID returns a track by id
func (r *TrackRepository) GetByID(ctx context.Context, id int64) (*models.TrainingTrack, error) {
	return r.getOne(ctx, squirrel.Eq{"t.id": id})
}

// GetBySlug returns a track by slug
func (r *TrackRepository) GetBySlug(ctx context.Context, slug string) (*models.TrainingTrack, error) {
	return r.getOne(ctx, squirrel.Eq{"t.slug": slug})
}

func (r *TrackRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.TrainingTrack, error) {
	sql, args, err := r.selectTracks().Where(where).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get track SQL")
		return nil, fmt.Errorf("failed to build get track query: %w", err)
	}

	t, err := scanTrack(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTrackNotFound
		}
		logger.Error().Err(err).Msg("Error scanning track row")
		return nil, fmt.Errorf("error retrieving track: %w", err)
	}
	return t, nil
}

// InsertIfAbsent inserts t with its program links unless the slug exists.
// Links of an existing track are left untouched.
func (r *TrackRepository) InsertIfAbsent(ctx context.Context, t *models.TrainingTrack) (bool, error) {
	created := false
	err := db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("training_tracks").
			Columns("slug", "title_ar", "title_en", "description_ar", "description_en", "sort_order").
			Values(t.Slug, t.Title.AR, t.Title.EN, t.Description.AR, t.Description.EN, t.SortOrder).
			Suffix("ON CONFLICT (slug) DO NOTHING RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert track query: %w", err)
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&t.ID)
		if errors.Is(err, pgx.ErrNoRows) {
			return tx.QueryRow(ctx, `SELECT id FROM training_tracks WHERE slug = $1`, t.Slug).Scan(&t.ID)
		}
		if err != nil {
			return fmt.Errorf("error inserting track: %w", err)
		}
		created = true

		if len(t.ProgramIDs) == 0 {
			return nil
		}
		links := r.sb.Insert("track_programs").Columns("track_id", "program_id", "position")
		for i, programID := range t.ProgramIDs {
			links = links.Values(t.ID, programID, i)
		}
		sql, args, err = links.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build track programs query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error linking track programs: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("slug", t.Slug).Msg("Error inserting track")
		return false, err
	}
	return created, nil
}
