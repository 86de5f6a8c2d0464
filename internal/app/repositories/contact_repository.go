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

// ContactRepository handles contact message database operations
type ContactRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{db: db, sb: statementBuilder()}
}

// Create stores a contact message and fills its id and created_at
func (r *ContactRepository) Create(ctx context.Context, m *models.ContactMessage) error {
	sql, args, err := r.sb.Insert("contact_messages").
		Columns("full_name", "email", "phone", "subject", "message", "lang").
		Values(m.FullName, m.Email, m.Phone, m.Subject, m.Message, m.Lang).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create contact message SQL")
		return fmt.Errorf("failed to build create contact message query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		logger.Error().Err(err).Str("email", m.Email).Msg("Error executing create contact message query")
		return fmt.Errorf("error creating contact message: %w", err)
	}
	return nil
}

// List returns newest messages first, optionally only unread ones
func (r *ContactRepository) List(ctx context.Context, unreadOnly bool, page Page) ([]models.ContactMessage, int64, error) {
	where := squirrel.And{}
	if unreadOnly {
		where = append(where, squirrel.Eq{"is_read": false})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("contact_messages").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count contact messages query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting contact messages")
		return nil, 0, fmt.Errorf("error counting contact messages: %w", err)
	}

	sql, args, err := r.sb.Select("id", "full_name", "email", "phone", "subject", "message", "lang", "is_read", "created_at").
		From("contact_messages").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list contact messages SQL")
		return nil, 0, fmt.Errorf("failed to build list contact messages query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list contact messages query")
		return nil, 0, fmt.Errorf("error listing contact messages: %w", err)
	}
	defer rows.Close()

	messages := []models.ContactMessage{}
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.FullName, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.Lang, &m.IsRead, &m.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning contact message row")
			return nil, 0, fmt.Errorf("error scanning contact message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, total, rows.Err()
}

// MarkRead flags a message as handled
func (r *ContactRepository) MarkRead(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("contact_messages").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building mark read SQL")
		return fmt.Errorf("failed to build mark read query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error executing mark read query")
		return fmt.Errorf("error marking contact message read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("contact message %d not found", id))
	}
	return nil
}
