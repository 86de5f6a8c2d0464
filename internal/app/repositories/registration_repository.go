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
	"github.com/tadreeb/academy/internal/pkg/dberrors"
	"github.com/tadreeb/academy/internal/pkg/logger"
)

// RegistrationRepository handles program registration database operations
type RegistrationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db, sb: statementBuilder()}
}

// Create stores reg after checking, under a row lock on the program, that the
// program is active and still has seats. It returns the locked program.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.ProgramRegistration) (*models.Program, error) {
	var program *models.Program
	err := db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Select(programColumns...).
			From("programs p").
			Where(squirrel.Eq{"p.id": reg.ProgramID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build lock program query: %w", err)
		}

		program, err = scanProgram(tx.QueryRow(ctx, sql, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrProgramNotFound
			}
			return fmt.Errorf("error locking program: %w", err)
		}
		if !program.IsActive {
			return apperrors.ErrProgramClosed
		}

		if program.Seats > 0 {
			var taken int
			if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM program_registrations WHERE program_id = $1`, program.ID).Scan(&taken); err != nil {
				return fmt.Errorf("error counting registrations: %w", err)
			}
			if taken >= program.Seats {
				return apperrors.ErrProgramFull
			}
		}

		sql, args, err = r.sb.Insert("program_registrations").
			Columns("program_id", "full_name", "email", "phone", "organization", "job_title", "notes", "lang").
			Values(reg.ProgramID, reg.FullName, reg.Email, reg.Phone, reg.Organization, reg.JobTitle, reg.Notes, reg.Lang).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create registration query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&reg.ID, &reg.CreatedAt); err != nil {
			if dberrors.IsDuplicateConstraintError(err, "program_registrations_program_email_key") {
				return apperrors.ErrAlreadyRegistered
			}
			return fmt.Errorf("error creating registration: %w", err)
		}
		return nil
	})
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrProgramNotFound, apperrors.ErrProgramClosed, apperrors.ErrProgramFull, apperrors.ErrAlreadyRegistered) {
			logger.Error().Err(err).Int64("programID", reg.ProgramID).Msg("Error creating program registration")
		}
		return nil, err
	}
	return program, nil
}

// List returns registrations newest first, optionally for one program
func (r *RegistrationRepository) List(ctx context.Context, programID *int64, page Page) ([]models.ProgramRegistration, int64, error) {
	where := squirrel.And{}
	if programID != nil {
		where = append(where, squirrel.Eq{"program_id": *programID})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("program_registrations").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count registrations query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting registrations")
		return nil, 0, fmt.Errorf("error counting registrations: %w", err)
	}

	sql, args, err := r.sb.Select("id", "program_id", "full_name", "email", "phone", "organization", "job_title", "notes", "lang", "created_at").
		From("program_registrations").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list registrations SQL")
		return nil, 0, fmt.Errorf("failed to build list registrations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list registrations query")
		return nil, 0, fmt.Errorf("error listing registrations: %w", err)
	}
	defer rows.Close()

	registrations := []models.ProgramRegistration{}
	for rows.Next() {
		var reg models.ProgramRegistration
		if err := rows.Scan(&reg.ID, &reg.ProgramID, &reg.FullName, &reg.Email, &reg.Phone,
			&reg.Organization, &reg.JobTitle, &reg.Notes, &reg.Lang, &reg.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning registration row")
			return nil, 0, fmt.Errorf("error scanning registration: %w", err)
		}
		registrations = append(registrations, reg)
	}
	return registrations, total, rows.Err()
}
