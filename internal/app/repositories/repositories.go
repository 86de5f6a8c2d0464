package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	CategoryRepository     *CategoryRepository
	ProgramRepository      *ProgramRepository
	TrackRepository        *TrackRepository
	PeopleRepository       *PeopleRepository
	ContactRepository      *ContactRepository
	RegistrationRepository *RegistrationRepository
	ConsultingRepository   *ConsultingRepository
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CategoryRepository:     NewCategoryRepository(db),
		ProgramRepository:      NewProgramRepository(db),
		TrackRepository:        NewTrackRepository(db),
		PeopleRepository:       NewPeopleRepository(db),
		ContactRepository:      NewContactRepository(db),
		RegistrationRepository: NewRegistrationRepository(db),
		ConsultingRepository:   NewConsultingRepository(db),
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
	}
}
