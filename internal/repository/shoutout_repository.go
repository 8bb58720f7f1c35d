package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bragboard/internal/domain"
)

// ShoutoutFilter captures feed query parameters. Departments filter on the
// sender's department and combine as a disjunction.
type ShoutoutFilter struct {
	SenderID        *string
	Departments     []string
	Status          *domain.ModerationStatus
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
	IncludeReported bool
	Limit           int
	Offset          int
}

// UserCount pairs a user id with an aggregate count.
type UserCount struct {
	UserID string
	Count  int
}

// ShoutoutRepository encapsulates shoutout persistence. GetByID and
// ListWithFilter return shoutouts with recipient ids populated; reactions and
// comments are loaded through their own repositories.
type ShoutoutRepository interface {
	Create(ctx context.Context, shoutout *domain.Shoutout) error
	GetByID(ctx context.Context, id string) (*domain.Shoutout, error)
	ListWithFilter(ctx context.Context, filter ShoutoutFilter) ([]domain.Shoutout, error)
	Delete(ctx context.Context, id string) error
	DeleteBySender(ctx context.Context, senderID string) ([]string, error)
	RemoveRecipient(ctx context.Context, userID string) error
	UpdateModerationStatus(ctx context.Context, id string, from, to domain.ModerationStatus) (bool, error)
	Count(ctx context.Context) (int, error)
	CountBySender(ctx context.Context) ([]UserCount, error)
	CountByRecipient(ctx context.Context) ([]UserCount, error)
	CountByDepartment(ctx context.Context) (map[string]int, error)
}

type shoutoutRepository struct {
	pool *pgxpool.Pool
}

// NewShoutoutRepository instantiates repository.
func NewShoutoutRepository(pool *pgxpool.Pool) ShoutoutRepository {
	return &shoutoutRepository{pool: pool}
}

func (r *shoutoutRepository) Create(ctx context.Context, shoutout *domain.Shoutout) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO shoutouts (sender_id, message, moderation_status)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, query,
		shoutout.SenderID,
		shoutout.Message,
		shoutout.ModerationStatus,
	).Scan(&shoutout.ID, &shoutout.CreatedAt); err != nil {
		return err
	}

	for _, rid := range shoutout.RecipientIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO shoutout_recipients (shoutout_id, recipient_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			shoutout.ID, rid,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *shoutoutRepository) GetByID(ctx context.Context, id string) (*domain.Shoutout, error) {
	const query = `
        SELECT id, sender_id, message, moderation_status, created_at
        FROM shoutouts WHERE id=$1`

	var shoutout domain.Shoutout
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&shoutout.ID,
		&shoutout.SenderID,
		&shoutout.Message,
		&shoutout.ModerationStatus,
		&shoutout.CreatedAt,
	); err != nil {
		return nil, err
	}

	recipients, err := r.recipientIDs(ctx, shoutout.ID)
	if err != nil {
		return nil, err
	}
	shoutout.RecipientIDs = recipients
	return &shoutout, nil
}

func (r *shoutoutRepository) ListWithFilter(ctx context.Context, filter ShoutoutFilter) ([]domain.Shoutout, error) {
	base := `SELECT s.id, s.sender_id, s.message, s.moderation_status, s.created_at
             FROM shoutouts s`
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Departments) > 0 {
		base += ` JOIN users u ON u.id = s.sender_id`
		placeholders := make([]string, len(filter.Departments))
		for i, dept := range filter.Departments {
			args = append(args, dept)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("u.department IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.SenderID != nil {
		args = append(args, *filter.SenderID)
		clauses = append(clauses, fmt.Sprintf("s.sender_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("s.moderation_status=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("s.created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("s.created_at <= $%d", len(args)))
	}
	if !filter.IncludeReported {
		args = append(args, domain.ModerationStatusReported)
		clauses = append(clauses, fmt.Sprintf("s.moderation_status <> $%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY s.created_at DESC, s.id DESC`,
		base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Shoutout
	for rows.Next() {
		var shoutout domain.Shoutout
		if err := rows.Scan(
			&shoutout.ID,
			&shoutout.SenderID,
			&shoutout.Message,
			&shoutout.ModerationStatus,
			&shoutout.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, shoutout)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		recipients, err := r.recipientIDs(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].RecipientIDs = recipients
	}
	return result, nil
}

func (r *shoutoutRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM shoutouts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *shoutoutRepository) DeleteBySender(ctx context.Context, senderID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `DELETE FROM shoutouts WHERE sender_id=$1 RETURNING id`, senderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *shoutoutRepository) RemoveRecipient(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM shoutout_recipients WHERE recipient_id=$1`, userID)
	return err
}

// UpdateModerationStatus performs a compare-and-swap on the status column.
// The bool reports whether the transition was applied.
func (r *shoutoutRepository) UpdateModerationStatus(ctx context.Context, id string, from, to domain.ModerationStatus) (bool, error) {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE shoutouts SET moderation_status=$1 WHERE id=$2 AND moderation_status=$3`,
		to, id, from,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *shoutoutRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM shoutouts`).Scan(&count)
	return count, err
}

func (r *shoutoutRepository) CountBySender(ctx context.Context) ([]UserCount, error) {
	const query = `
        SELECT sender_id, COUNT(*) FROM shoutouts GROUP BY sender_id`
	return r.queryCounts(ctx, query)
}

func (r *shoutoutRepository) CountByRecipient(ctx context.Context) ([]UserCount, error) {
	const query = `
        SELECT recipient_id, COUNT(*) FROM shoutout_recipients GROUP BY recipient_id`
	return r.queryCounts(ctx, query)
}

func (r *shoutoutRepository) CountByDepartment(ctx context.Context) (map[string]int, error) {
	const query = `
        SELECT u.department, COUNT(s.id)
        FROM shoutouts s JOIN users u ON u.id = s.sender_id
        GROUP BY u.department`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var dept string
		var count int
		if err := rows.Scan(&dept, &count); err != nil {
			return nil, err
		}
		result[dept] = count
	}
	return result, rows.Err()
}

func (r *shoutoutRepository) queryCounts(ctx context.Context, query string) ([]UserCount, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []UserCount
	for rows.Next() {
		var uc UserCount
		if err := rows.Scan(&uc.UserID, &uc.Count); err != nil {
			return nil, err
		}
		result = append(result, uc)
	}
	return result, rows.Err()
}

func (r *shoutoutRepository) recipientIDs(ctx context.Context, shoutoutID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT recipient_id FROM shoutout_recipients WHERE shoutout_id=$1 ORDER BY recipient_id`,
		shoutoutID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
