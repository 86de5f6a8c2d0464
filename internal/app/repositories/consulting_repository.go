package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/logger"
)

// ConsultingRepository handles consulting request database operations
type ConsultingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewConsultingRepository creates a new ConsultingRepository
func NewConsultingRepository(db *pgxpool.Pool) *ConsultingRepository {
	return &ConsultingRepository{db: db, sb: statementBuilder()}
}

// Create stores a consulting request as pending
func (r *ConsultingRepository) Create(ctx context.Context, req *models.ConsultingRequest) error {
	req.ForwardStatus = models.ForwardPending
	sql, args, err := r.sb.Insert("consulting_requests").
		Columns("full_name", "email", "phone", "organization", "service_type", "message", "lang", "forward_status").
		Values(req.FullName, req.Email, req.Phone, req.Organization, string(req.ServiceType), req.Message, req.Lang, string(req.ForwardStatus)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create consulting request SQL")
		return fmt.Errorf("failed to build create consulting request query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&req.ID, &req.CreatedAt); err != nil {
		logger.Error().Err(err).Str("email", req.Email).Msg("Error executing create consulting request query")
		return fmt.Errorf("error creating consulting request: %w", err)
	}
	return nil
}

// UpdateForwardStatus records the outcome of forwarding a request upstream
func (r *ConsultingRepository) UpdateForwardStatus(ctx context.Context, id int64, status models.ForwardStatus, externalRef *string) error {
	sql, args, err := r.sb.Update("consulting_requests").
		Set("forward_status", string(status)).
		Set("external_ref", externalRef).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update forward status SQL")
		return fmt.Errorf("failed to build update forward status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error executing update forward status query")
		return fmt.Errorf("error updating forward status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("consulting request %d not found", id))
	}
	return nil
}

// List returns requests newest first, optionally filtered by forward status
func (r *ConsultingRepository) List(ctx context.Context, status models.ForwardStatus, page Page) ([]models.ConsultingRequest, int64, error) {
	where := squirrel.And{}
	if status != "" {
		where = append(where, squirrel.Eq{"forward_status": string(status)})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("consulting_requests").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count consulting requests query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting consulting requests")
		return nil, 0, fmt.Errorf("error counting consulting requests: %w", err)
	}

	sql, args, err := r.sb.Select("id", "full_name", "email", "phone", "organization", "service_type", "message",
		"lang", "forward_status", "external_ref", "created_at").
		From("consulting_requests").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list consulting requests SQL")
		return nil, 0, fmt.Errorf("failed to build list consulting requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list consulting requests query")
		return nil, 0, fmt.Errorf("error listing consulting requests: %w", err)
	}
	defer rows.Close()

	requests := []models.ConsultingRequest{}
	for rows.Next() {
		var req models.ConsultingRequest
		var serviceType, status string
		if err := rows.Scan(&req.ID, &req.FullName, &req.Email, &req.Phone, &req.Organization, &serviceType, &req.Message,
			&req.Lang, &status, &req.ExternalRef, &req.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning consulting request row")
			return nil, 0, fmt.Errorf("error scanning consulting request: %w", err)
		}
		req.ServiceType = models.ServiceType(serviceType)
		req.ForwardStatus = models.ForwardStatus(status)
		requests = append(requests, req)
	}
	return requests, total, rows.Err()
}
