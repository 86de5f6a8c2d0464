package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/dberrors"
	"github.com/tadreeb/academy/internal/pkg/logger"
)

var programColumns = []string{
	"p.id", "p.slug", "p.category_id",
	"p.title_ar", "p.title_en", "p.summary_ar", "p.summary_en", "p.description_ar", "p.description_en",
	"p.duration_hours", "p.delivery_mode", "p.level", "p.price", "p.currency", "p.start_date",
	"p.seats", "p.image_url", "p.featured", "p.is_active", "p.created_at", "p.updated_at",
}

// ProgramQuery narrows a program listing
type ProgramQuery struct {
	CategoryID *int64
	Featured   *bool
	Search     string
	ActiveOnly bool
	Page       Page
}

// ProgramRepository handles program database operations
type ProgramRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{db: db, sb: statementBuilder()}
}

func scanProgram(row rowScanner) (*models.Program, error) {
	var p models.Program
	var deliveryMode, level string
	err := row.Scan(
		&p.ID, &p.Slug, &p.CategoryID,
		&p.Title.AR, &p.Title.EN, &p.Summary.AR, &p.Summary.EN, &p.Description.AR, &p.Description.EN,
		&p.DurationHours, &deliveryMode, &level, &p.Price, &p.Currency, &p.StartDate,
		&p.Seats, &p.ImageURL, &p.Featured, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.DeliveryMode = models.DeliveryMode(deliveryMode)
	p.Level = models.Level(level)
	return &p, nil
}

func collectPrograms(rows pgx.Rows) ([]models.Program, error) {
	defer rows.Close()
	programs := []models.Program{}
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning program row")
			return nil, fmt.Errorf("error scanning program: %w", err)
		}
		programs = append(programs, *p)
	}
	return programs, rows.Err()
}

func (q ProgramQuery) conditions() squirrel.And {
	where := squirrel.And{}
	if q.ActiveOnly {
		where = append(where, squirrel.Eq{"p.is_active": true})
	}
	if q.CategoryID != nil {
		where = append(where, squirrel.Eq{"p.category_id": *q.CategoryID})
	}
	if q.Featured != nil {
		where = append(where, squirrel.Eq{"p.featured": *q.Featured})
	}
	if q.Search != "" {
		pattern := containsPattern(q.Search)
		where = append(where, squirrel.Or{
			squirrel.ILike{"p.title_ar": pattern},
			squirrel.ILike{"p.title_en": pattern},
			squirrel.ILike{"p.summary_ar": pattern},
			squirrel.ILike{"p.summary_en": pattern},
		})
	}
	return where
}

// List returns one page of programs matching q and the total match count
func (r *ProgramRepository) List(ctx context.Context, q ProgramQuery) ([]models.Program, int64, error) {
	where := q.conditions()

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("programs p").Where(where).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count programs SQL")
		return nil, 0, fmt.Errorf("failed to build count programs query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting programs")
		return nil, 0, fmt.Errorf("error counting programs: %w", err)
	}
	if total == 0 {
		return []models.Program{}, 0, nil
	}

	sql, args, err := r.sb.Select(programColumns...).
		From("programs p").
		Where(where).
		OrderBy("p.featured DESC", "p.start_date NULLS LAST", "p.id").
		Offset(q.Page.Offset).
		Limit(q.Page.Limit).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list programs SQL")
		return nil, 0, fmt.Errorf("failed to build list programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list programs query")
		return nil, 0, fmt.Errorf("error listing programs: %w", err)
	}
	programs, err := collectPrograms(rows)
	if err != nil {
		return nil, 0, err
	}
	return programs, total, nil
}

// ListByTrack returns the active programs of a track in track order
func (r *ProgramRepository) ListByTrack(ctx context.Context, trackID int64) ([]models.Program, error) {
	sql, args, err := r.sb.Select(programColumns...).
		From("programs p").
		Join("track_programs tp ON tp.program_id = p.id").
		Where(squirrel.Eq{"tp.track_id": trackID, "p.is_active": true}).
		OrderBy("tp.position", "p.id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building track programs SQL")
		return nil, fmt.Errorf("failed to build track programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("trackID", trackID).Msg("Error executing track programs query")
		return nil, fmt.Errorf("error listing track programs: %w", err)
	}
	return collectPrograms(rows)
}

// GetByID returns a program by id; activeOnly hides deactivated programs
func (r *ProgramRepository) GetByID(ctx context.Context, id int64, activeOnly bool) (*models.Program, error) {
	return r.getOne(ctx, squirrel.Eq{"p.id": id}, activeOnly)
}

// GetBySlug returns a program by slug; activeOnly hides deactivated programs
func (r *ProgramRepository) GetBySlug(ctx context.Context, slug string, activeOnly bool) (*models.Program, error) {
	return r.getOne(ctx, squirrel.Eq{"p.slug": slug}, activeOnly)
}

func (r *ProgramRepository) getOne(ctx context.Context, where squirrel.Eq, activeOnly bool) (*models.Program, error) {
	if activeOnly {
		where["p.is_active"] = true
	}
	sql, args, err := r.sb.Select(programColumns...).From("programs p").Where(where).Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get program SQL")
		return nil, fmt.Errorf("failed to build get program query: %w", err)
	}

	p, err := scanProgram(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		logger.Error().Err(err).Msg("Error scanning program row")
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}
	return p, nil
}

func (r *ProgramRepository) mapWriteError(err error, p *models.Program, action string) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "programs_slug_key"):
		return apperrors.ErrSlugTaken
	case dberrors.IsForeignKeyError(err):
		return apperrors.ErrCategoryNotFound
	}
	logger.Error().Err(err).Str("slug", p.Slug).Msgf("Error executing %s program query", action)
	return fmt.Errorf("error %s program: %w", action, err)
}

// Create inserts p and fills its id and timestamps
func (r *ProgramRepository) Create(ctx context.Context, p *models.Program) error {
	sql, args, err := r.insertBuilder(p).Suffix("RETURNING id, created_at, updated_at").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create program SQL")
		return fmt.Errorf("failed to build create program query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return r.mapWriteError(err, p, "creating")
	}
	return nil
}

// InsertIfAbsent inserts p unless its slug exists and fills p.ID either way.
func (r *ProgramRepository) InsertIfAbsent(ctx context.Context, p *models.Program) (bool, error) {
	sql, args, err := r.insertBuilder(p).Suffix("ON CONFLICT (slug) DO NOTHING RETURNING id").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build insert program query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, r.mapWriteError(err, p, "inserting")
	}

	existing, err := r.GetBySlug(ctx, p.Slug, false)
	if err != nil {
		return false, err
	}
	p.ID = existing.ID
	return false, nil
}

func (r *ProgramRepository) insertBuilder(p *models.Program) squirrel.InsertBuilder {
	return r.sb.Insert("programs").
		Columns("slug", "category_id",
			"title_ar", "title_en", "summary_ar", "summary_en", "description_ar", "description_en",
			"duration_hours", "delivery_mode", "level", "price", "currency", "start_date",
			"seats", "image_url", "featured", "is_active").
		Values(p.Slug, p.CategoryID,
			p.Title.AR, p.Title.EN, p.Summary.AR, p.Summary.EN, p.Description.AR, p.Description.EN,
			p.DurationHours, string(p.DeliveryMode), string(p.Level), p.Price, p.Currency, p.StartDate,
			p.Seats, p.ImageURL, p.Featured, p.IsActive)
}

// Update overwrites the editable fields of program p.ID
func (r *ProgramRepository) Update(ctx context.Context, p *models.Program) error {
	sql, args, err := r.sb.Update("programs").
		SetMap(map[string]interface{}{
			"slug":           p.Slug,
			"category_id":    p.CategoryID,
			"title_ar":       p.Title.AR,
			"title_en":       p.Title.EN,
			"summary_ar":     p.Summary.AR,
			"summary_en":     p.Summary.EN,
			"description_ar": p.Description.AR,
			"description_en": p.Description.EN,
			"duration_hours": p.DurationHours,
			"delivery_mode":  string(p.DeliveryMode),
			"level":          string(p.Level),
			"price":          p.Price,
			"currency":       p.Currency,
			"start_date":     p.StartDate,
			"seats":          p.Seats,
			"featured":       p.Featured,
			"is_active":      p.IsActive,
			"updated_at":     time.Now(),
		}).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING image_url, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update program SQL")
		return fmt.Errorf("failed to build update program query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrProgramNotFound
		}
		return r.mapWriteError(err, p, "updating")
	}
	return nil
}

// Deactivate hides a program from the public catalog
func (r *ProgramRepository) Deactivate(ctx context.Context, id int64) error {
	return r.exec(ctx, "deactivating", r.sb.Update("programs").
		Set("is_active", false).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}))
}

// SetImage stores the public URL of the program's cover image
func (r *ProgramRepository) SetImage(ctx context.Context, id int64, imageURL string) error {
	return r.exec(ctx, "setting image of", r.sb.Update("programs").
		Set("image_url", imageURL).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}))
}

func (r *ProgramRepository) exec(ctx context.Context, action string, b squirrel.UpdateBuilder) error {
	sql, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Msgf("Error building %s program SQL", action)
		return fmt.Errorf("failed to build query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msgf("Error %s program", action)
		return fmt.Errorf("error %s program: %w", action, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}
