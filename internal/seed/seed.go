package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tadreeb/academy/internal/app/models"
	appRepos "github.com/tadreeb/academy/internal/app/repositories"
)

type CategoryWriter interface {
	InsertIfAbsent(ctx context.Context, c *models.Category) (bool, error)
}

type ProgramWriter interface {
	InsertIfAbsent(ctx context.Context, p *models.Program) (bool, error)
}

type TrackWriter interface {
	InsertIfAbsent(ctx context.Context, t *models.TrainingTrack) (bool, error)
}

type PeopleWriter interface {
	InsertTeamMemberIfAbsent(ctx context.Context, m *models.TeamMember) (bool, error)
	InsertTestimonialIfAbsent(ctx context.Context, t *models.Testimonial) (bool, error)
}

// Result counts the rows created by one run. Rows that already existed are not counted.
type Result struct {
	Categories   int
	Programs     int
	Tracks       int
	TeamMembers  int
	Testimonials int
}

// Total returns the number of rows created
func (r Result) Total() int {
	return r.Categories + r.Programs + r.Tracks + r.TeamMembers + r.Testimonials
}

// Seeder inserts the static catalog. Running it again is a no-op.
type Seeder struct {
	categories CategoryWriter
	programs   ProgramWriter
	tracks     TrackWriter
	people     PeopleWriter
	logger     zerolog.Logger
}

func NewSeeder(categories CategoryWriter, programs ProgramWriter, tracks TrackWriter, people PeopleWriter, lgr zerolog.Logger) *Seeder {
	return &Seeder{
		categories: categories,
		programs:   programs,
		tracks:     tracks,
		people:     people,
		logger:     lgr,
	}
}

// FromRepositories builds a Seeder over the Postgres repositories
func FromRepositories(repos *appRepos.Repositories, lgr zerolog.Logger) *Seeder {
	return NewSeeder(repos.CategoryRepository, repos.ProgramRepository, repos.TrackRepository, repos.PeopleRepository, lgr)
}

// CreateDefaultData inserts categories, programs, tracks, team members and
// testimonials. Errors on single rows are logged and joined; the run continues
// so one bad row does not hide the others.
func (s *Seeder) CreateDefaultData(ctx context.Context) (Result, error) {
	var res Result
	var finalErr error

	s.logger.Info().Msg("Checking/Creating catalog data...")

	categoryIDs := make(map[string]int64, len(categories))
	for _, c := range categories {
		created, err := s.categories.InsertIfAbsent(ctx, &c)
		if err != nil {
			s.logger.Error().Err(err).Str("slug", c.Slug).Msg("Error creating category")
			finalErr = errors.Join(finalErr, fmt.Errorf("category %s: %w", c.Slug, err))
			continue
		}
		categoryIDs[c.Slug] = c.ID
		if created {
			res.Categories++
		}
	}

	programIDs := make(map[string]int64, len(programs))
	for _, ps := range programs {
		p := ps.program
		categoryID, ok := categoryIDs[ps.categorySlug]
		if !ok {
			err := fmt.Errorf("program %s: category %s unavailable", p.Slug, ps.categorySlug)
			s.logger.Error().Err(err).Msg("Skipping program")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		p.CategoryID = categoryID

		created, err := s.programs.InsertIfAbsent(ctx, &p)
		if err != nil {
			s.logger.Error().Err(err).Str("slug", p.Slug).Msg("Error creating program")
			finalErr = errors.Join(finalErr, fmt.Errorf("program %s: %w", p.Slug, err))
			continue
		}
		programIDs[p.Slug] = p.ID
		if created {
			res.Programs++
		}
	}

	for _, ts := range tracks {
		t := ts.track
		ids, err := resolvePrograms(programIDs, ts.programSlugs)
		if err != nil {
			s.logger.Error().Err(err).Str("slug", t.Slug).Msg("Skipping track")
			finalErr = errors.Join(finalErr, fmt.Errorf("track %s: %w", t.Slug, err))
			continue
		}
		t.ProgramIDs = ids

		created, err := s.tracks.InsertIfAbsent(ctx, &t)
		if err != nil {
			s.logger.Error().Err(err).Str("slug", t.Slug).Msg("Error creating track")
			finalErr = errors.Join(finalErr, fmt.Errorf("track %s: %w", t.Slug, err))
			continue
		}
		if created {
			res.Tracks++
		}
	}

	for _, m := range teamMembers {
		created, err := s.people.InsertTeamMemberIfAbsent(ctx, &m)
		if err != nil {
			s.logger.Error().Err(err).Str("slug", m.Slug).Msg("Error creating team member")
			finalErr = errors.Join(finalErr, fmt.Errorf("team member %s: %w", m.Slug, err))
			continue
		}
		if created {
			res.TeamMembers++
		}
	}

	for _, t := range testimonials {
		created, err := s.people.InsertTestimonialIfAbsent(ctx, &t)
		if err != nil {
			s.logger.Error().Err(err).Str("slug", t.Slug).Msg("Error creating testimonial")
			finalErr = errors.Join(finalErr, fmt.Errorf("testimonial %s: %w", t.Slug, err))
			continue
		}
		if created {
			res.Testimonials++
		}
	}

	if finalErr != nil {
		s.logger.Warn().Int("created", res.Total()).Msg("Catalog seeding finished with errors")
		return res, finalErr
	}

	s.logger.Info().
		Int("categories", res.Categories).
		Int("programs", res.Programs).
		Int("tracks", res.Tracks).
		Int("team_members", res.TeamMembers).
		Int("testimonials", res.Testimonials).
		Msg("Catalog data ensured")
	return res, nil
}

func resolvePrograms(ids map[string]int64, slugs []string) ([]int64, error) {
	out := make([]int64, 0, len(slugs))
	for _, slug := range slugs {
		id, ok := ids[slug]
		if !ok {
			return nil, fmt.Errorf("program %s unavailable", slug)
		}
		out = append(out, id)
	}
	return out, nil
}
