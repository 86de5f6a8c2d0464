package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/logger"
)

var categoryColumns = []string{"id", "slug", "name_ar", "name_en", "sort_order"}

// CategoryRepository handles category database operations
type CategoryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db, sb: statementBuilder()}
}

func scanCategory(row rowScanner) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.Slug, &c.Name.AR, &c.Name.EN, &c.SortOrder); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered for display
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	sql, args, err := r.sb.Select(categoryColumns...).
		From("categories").
		OrderBy("sort_order", "id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list categories SQL")
		return nil, fmt.Errorf("failed to build list categories query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list categories query")
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning category row")
			return nil, fmt.Errorf("error scanning category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

// GetBySlug returns the category with the given slug
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug})
}

// GetByID returns the category with the given id
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *CategoryRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Category, error) {
	sql, args, err := r.sb.Select(categoryColumns...).From("categories").Where(where).Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get category SQL")
		return nil, fmt.Errorf("failed to build get category query: %w", err)
	}

	c, err := scanCategory(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		logger.Error().Err(err).Msg("Error scanning category row")
		return nil, fmt.Errorf("error retrieving category: %w", err)
	}
	return c, nil
}

// InsertIfAbsent inserts c unless its slug exists and fills c.ID either way.
// It reports whether a row was created.
func (r *CategoryRepository) InsertIfAbsent(ctx context.Context, c *models.Category) (bool, error) {
	sql, args, err := r.sb.Insert("categories").
		Columns("slug", "name_ar", "name_en", "sort_order").
		Values(c.Slug, c.Name.AR, c.Name.EN, c.SortOrder).
		Suffix("ON CONFLICT (slug) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build insert category query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&c.ID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("slug", c.Slug).Msg("Error inserting category")
		return false, fmt.Errorf("error inserting category: %w", err)
	}

	existing, err := r.GetBySlug(ctx, c.Slug)
	if err != nil {
		return false, err
	}
	c.ID = existing.ID
	return false, nil
}
