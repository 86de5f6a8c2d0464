package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/pkg/logger"
)

// PeopleRepository handles team members and testimonials, the two
// read-mostly lists behind the about and home pages.
type PeopleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPeopleRepository creates a new PeopleRepository
func NewPeopleRepository(db *pgxpool.Pool) *PeopleRepository {
	return &PeopleRepository{db: db, sb: statementBuilder()}
}

// ListTeam returns team members in display order
func (r *PeopleRepository) ListTeam(ctx context.Context) ([]models.TeamMember, error) {
	sql, args, err := r.sb.Select("id", "slug", "name_ar", "name_en", "role_ar", "role_en", "bio_ar", "bio_en",
		"photo_url", "linkedin_url", "sort_order").
		From("team_members").
		OrderBy("sort_order", "id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list team SQL")
		return nil, fmt.Errorf("failed to build list team query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list team query")
		return nil, fmt.Errorf("error listing team: %w", err)
	}
	defer rows.Close()

	team := []models.TeamMember{}
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.ID, &m.Slug, &m.Name.AR, &m.Name.EN, &m.Role.AR, &m.Role.EN, &m.Bio.AR, &m.Bio.EN,
			&m.PhotoURL, &m.LinkedInURL, &m.SortOrder); err != nil {
			logger.Error().Err(err).Msg("Error scanning team member row")
			return nil, fmt.Errorf("error scanning team member: %w", err)
		}
		team = append(team, m)
	}
	return team, rows.Err()
}

// ListTestimonials returns testimonials in display order
func (r *PeopleRepository) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	sql, args, err := r.sb.Select("id", "slug", "author_name_ar", "author_name_en", "author_title_ar", "author_title_en",
		"quote_ar", "quote_en", "rating", "sort_order").
		From("testimonials").
		OrderBy("sort_order", "id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list testimonials SQL")
		return nil, fmt.Errorf("failed to build list testimonials query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list testimonials query")
		return nil, fmt.Errorf("error listing testimonials: %w", err)
	}
	defer rows.Close()

	testimonials := []models.Testimonial{}
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(&t.ID, &t.Slug, &t.AuthorName.AR, &t.AuthorName.EN, &t.AuthorTitle.AR, &t.AuthorTitle.EN,
			&t.Quote.AR, &t.Quote.EN, &t.Rating, &t.SortOrder); err != nil {
			logger.Error().Err(err).Msg("Error scanning testimonial row")
			return nil, fmt.Errorf("error scanning testimonial: %w", err)
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}

// InsertTeamMemberIfAbsent inserts m unless its slug exists
func (r *PeopleRepository) InsertTeamMemberIfAbsent(ctx context.Context, m *models.TeamMember) (bool, error) {
	return r.insertIfAbsent(ctx, r.sb.Insert("team_members").
		Columns("slug", "name_ar", "name_en", "role_ar", "role_en", "bio_ar", "bio_en", "photo_url", "linkedin_url", "sort_order").
		Values(m.Slug, m.Name.AR, m.Name.EN, m.Role.AR, m.Role.EN, m.Bio.AR, m.Bio.EN, m.PhotoURL, m.LinkedInURL, m.SortOrder),
		&m.ID)
}

// InsertTestimonialIfAbsent inserts t unless its slug exists
func (r *PeopleRepository) InsertTestimonialIfAbsent(ctx context.Context, t *models.Testimonial) (bool, error) {
	return r.insertIfAbsent(ctx, r.sb.Insert("testimonials").
		Columns("slug", "author_name_ar", "author_name_en", "author_title_ar", "author_title_en", "quote_ar", "quote_en", "rating", "sort_order").
		Values(t.Slug, t.AuthorName.AR, t.AuthorName.EN, t.AuthorTitle.AR, t.AuthorTitle.EN, t.Quote.AR, t.Quote.EN, t.Rating, t.SortOrder),
		&t.ID)
}

func (r *PeopleRepository) insertIfAbsent(ctx context.Context, b squirrel.InsertBuilder, id *int64) (bool, error) {
	sql, args, err := b.Suffix("ON CONFLICT (slug) DO NOTHING RETURNING id").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build insert query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error executing insert query")
		return false, fmt.Errorf("error inserting row: %w", err)
	}
	return true, nil
}
