package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/app/repositories"
	"github.com/tadreeb/academy/internal/pkg/helpers"
	"golang.org/x/sync/errgroup"
)

// HomeFeaturedLimit caps the featured programs shown on the landing page
const HomeFeaturedLimit = 6

// CatalogService serves the public, read-only catalog
type CatalogService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListPrograms(ctx context.Context, filter dto.ProgramFilter) (*dto.PaginatedResponse, error)
	GetProgram(ctx context.Context, idOrSlug string) (*models.Program, error)
	ListTracks(ctx context.Context) ([]models.TrainingTrack, error)
	GetTrack(ctx context.Context, idOrSlug string) (*dto.TrackDetailResponse, error)
	ListTeam(ctx context.Context) ([]models.TeamMember, error)
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	Home(ctx context.Context) (*dto.HomeResponse, error)
}

type catalogServiceImpl struct {
	categories CategoryStore
	programs   ProgramStore
	tracks     TrackStore
	people     PeopleStore
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(categories CategoryStore, programs ProgramStore, tracks TrackStore, people PeopleStore) CatalogService {
	return &catalogServiceImpl{
		categories: categories,
		programs:   programs,
		tracks:     tracks,
		people:     people,
	}
}

// parseID reports whether s is a positive numeric id
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id > 0
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *catalogServiceImpl) resolveCategory(ctx context.Context, ref string) (*models.Category, error) {
	if id, ok := parseID(ref); ok {
		return s.categories.GetByID(ctx, id)
	}
	return s.categories.GetBySlug(ctx, ref)
}

func (s *catalogServiceImpl) ListPrograms(ctx context.Context, filter dto.ProgramFilter) (*dto.PaginatedResponse, error) {
	q := repositories.ProgramQuery{
		Featured:   filter.Featured,
		Search:     strings.TrimSpace(filter.Query),
		ActiveOnly: true,
		Page:       pageOf(filter.Page, filter.Size),
	}

	if ref := strings.TrimSpace(filter.Category); ref != "" {
		category, err := s.resolveCategory(ctx, ref)
		if err != nil {
			return nil, err
		}
		q.CategoryID = &category.ID
	}

	programs, total, err := s.programs.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}

	return &dto.PaginatedResponse{
		Items:      programs,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.Size),
	}, nil
}

func (s *catalogServiceImpl) GetProgram(ctx context.Context, idOrSlug string) (*models.Program, error) {
	if id, ok := parseID(idOrSlug); ok {
		return s.programs.GetByID(ctx, id, true)
	}
	return s.programs.GetBySlug(ctx, idOrSlug, true)
}

func (s *catalogServiceImpl) ListTracks(ctx context.Context) ([]models.TrainingTrack, error) {
	return s.tracks.List(ctx)
}

func (s *catalogServiceImpl) GetTrack(ctx context.Context, idOrSlug string) (*dto.TrackDetailResponse, error) {
	var track *models.TrainingTrack
	var err error
	if id, ok := parseID(idOrSlug); ok {
		track, err = s.tracks.GetByID(ctx, id)
	} else {
		track, err = s.tracks.GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}

	programs, err := s.programs.ListByTrack(ctx, track.ID)
	if err != nil {
		return nil, fmt.Errorf("loading programs of track %s: %w", track.Slug, err)
	}
	return &dto.TrackDetailResponse{Track: track, Programs: programs}, nil
}

func (s *catalogServiceImpl) ListTeam(ctx context.Context) ([]models.TeamMember, error) {
	return s.people.ListTeam(ctx)
}

func (s *catalogServiceImpl) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.people.ListTestimonials(ctx)
}

// Home loads every landing page section concurrently; the first failure
// cancels the rest and fails the whole response.
func (s *catalogServiceImpl) Home(ctx context.Context) (*dto.HomeResponse, error) {
	var home dto.HomeResponse
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		featured := true
		programs, _, err := s.programs.List(gctx, repositories.ProgramQuery{
			Featured:   &featured,
			ActiveOnly: true,
			Page:       repositories.Page{Limit: HomeFeaturedLimit},
		})
		if err != nil {
			return fmt.Errorf("featured programs: %w", err)
		}
		home.FeaturedPrograms = programs
		return nil
	})
	g.Go(func() error {
		tracks, err := s.tracks.List(gctx)
		if err != nil {
			return fmt.Errorf("tracks: %w", err)
		}
		home.Tracks = tracks
		return nil
	})
	g.Go(func() error {
		team, err := s.people.ListTeam(gctx)
		if err != nil {
			return fmt.Errorf("team: %w", err)
		}
		home.Team = team
		return nil
	})
	g.Go(func() error {
		testimonials, err := s.people.ListTestimonials(gctx)
		if err != nil {
			return fmt.Errorf("testimonials: %w", err)
		}
		home.Testimonials = testimonials
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return &home, nil
}

