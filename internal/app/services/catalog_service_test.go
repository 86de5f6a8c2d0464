package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/app/repositories"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
)

type catalogMocks struct {
	categories *mockCategoryStore
	programs   *mockProgramStore
	tracks     *mockTrackStore
	people     *mockPeopleStore
}

func newCatalog() (CatalogService, catalogMocks) {
	m := catalogMocks{
		categories: &mockCategoryStore{},
		programs:   &mockProgramStore{},
		tracks:     &mockTrackStore{},
		people:     &mockPeopleStore{},
	}
	return NewCatalogService(m.categories, m.programs, m.tracks, m.people), m
}

func TestListPrograms_ResolvesCategorySlugAndClampsPage(t *testing.T) {
	svc, m := newCatalog()
	ctx := context.Background()

	m.categories.On("GetBySlug", ctx, "leadership").Return(&models.Category{ID: 4, Slug: "leadership"}, nil)
	m.programs.On("List", ctx, mock.MatchedBy(func(q repositories.ProgramQuery) bool {
		return q.ActiveOnly && q.CategoryID != nil && *q.CategoryID == 4 &&
			q.Search == "coach" && q.Page == repositories.Page{Offset: 0, Limit: 10}
	})).Return([]models.Program{{ID: 1}, {ID: 2}}, int64(12), nil)

	resp, err := svc.ListPrograms(ctx, dto.ProgramFilter{Category: "leadership", Query: " coach ", Page: 0, Size: 500})
	require.NoError(t, err)

	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 1, resp.Pagination.CurrentPage)
	assert.Equal(t, 10, resp.Pagination.PageSize)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	m.categories.AssertExpectations(t)
	m.programs.AssertExpectations(t)
}

func TestListPrograms_NumericCategoryUsesID(t *testing.T) {
	svc, m := newCatalog()
	ctx := context.Background()

	m.categories.On("GetByID", ctx, int64(7)).Return(&models.Category{ID: 7}, nil)
	m.programs.On("List", ctx, mock.Anything).Return([]models.Program{}, int64(0), nil)

	_, err := svc.ListPrograms(ctx, dto.ProgramFilter{Category: "7", Page: 2, Size: 5})
	require.NoError(t, err)
	m.categories.AssertNotCalled(t, "GetBySlug", mock.Anything, mock.Anything)
}

func TestListPrograms_UnknownCategory(t *testing.T) {
	svc, m := newCatalog()
	ctx := context.Background()
	m.categories.On("GetBySlug", ctx, "nope").Return(nil, apperrors.ErrCategoryNotFound)

	_, err := svc.ListPrograms(ctx, dto.ProgramFilter{Category: "nope"})
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
	m.programs.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGetProgram_ByIDOrSlugActiveOnly(t *testing.T) {
	svc, m := newCatalog()
	ctx := context.Background()
	m.programs.On("GetByID", ctx, int64(3), true).Return(&models.Program{ID: 3}, nil)
	m.programs.On("GetBySlug", ctx, "hr-basics", true).Return(nil, apperrors.ErrProgramNotFound)

	p, err := svc.GetProgram(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)

	_, err = svc.GetProgram(ctx, "hr-basics")
	assert.ErrorIs(t, err, apperrors.ErrProgramNotFound)
}

func TestGetTrack_ResolvesPrograms(t *testing.T) {
	svc, m := newCatalog()
	ctx := context.Background()
	track := &models.TrainingTrack{ID: 2, Slug: "managers", ProgramIDs: []int64{5, 1}}
	m.tracks.On("GetBySlug", ctx, "managers").Return(track, nil)
	m.programs.On("ListByTrack", ctx, int64(2)).Return([]models.Program{{ID: 5}, {ID: 1}}, nil)

	detail, err := svc.GetTrack(ctx, "managers")
	require.NoError(t, err)
	assert.Equal(t, track, detail.Track)
	assert.Equal(t, int64(5), detail.Programs[0].ID)
}

func TestHome_AggregatesSections(t *testing.T) {
	svc, m := newCatalog()

	m.programs.On("List", mock.Anything, mock.MatchedBy(func(q repositories.ProgramQuery) bool {
		return q.Featured != nil && *q.Featured && q.Page.Limit == HomeFeaturedLimit
	})).Return([]models.Program{{ID: 1, Featured: true}}, int64(1), nil)
	m.tracks.On("List", mock.Anything).Return([]models.TrainingTrack{{ID: 1}}, nil)
	m.people.On("ListTeam", mock.Anything).Return([]models.TeamMember{{ID: 1}, {ID: 2}}, nil)
	m.people.On("ListTestimonials", mock.Anything).Return([]models.Testimonial{{ID: 9}}, nil)

	home, err := svc.Home(context.Background())
	require.NoError(t, err)
	assert.Len(t, home.FeaturedPrograms, 1)
	assert.Len(t, home.Tracks, 1)
	assert.Len(t, home.Team, 2)
	assert.Len(t, home.Testimonials, 1)
}

func TestHome_AnyFailureFailsResponse(t *testing.T) {
	svc, m := newCatalog()
	boom := errors.New("db down")

	m.programs.On("List", mock.Anything, mock.Anything).Return([]models.Program{}, int64(0), nil)
	m.tracks.On("List", mock.Anything).Return(nil, boom)
	m.people.On("ListTeam", mock.Anything).Return([]models.TeamMember{}, nil)
	m.people.On("ListTestimonials", mock.Anything).Return([]models.Testimonial{}, nil)

	home, err := svc.Home(context.Background())
	assert.Nil(t, home)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "tracks")
}

func TestPageOf_HugePageStaysInBigintRange(t *testing.T) {
	p := pageOf(math.MaxInt64, 10)
	assert.LessOrEqual(t, p.Offset, uint64(math.MaxInt64))
	assert.Equal(t, uint64(10), p.Limit)

	p = pageOf(math.MaxInt64/5, 10)
	assert.LessOrEqual(t, p.Offset, uint64(math.MaxInt64))
}
