package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bragboard/internal/domain"
)

// ReactionRepository owns the reactor sets attached to shoutouts. Toggle is
// the only mutation: a (shoutout, user, type) membership flips on each call.
type ReactionRepository interface {
	Toggle(ctx context.Context, shoutoutID, userID string, reactionType domain.ReactionType) (added bool, newCount int, err error)
	MapByShoutout(ctx context.Context, shoutoutID string) (map[domain.ReactionType][]string, error)
}

type reactionRepository struct {
	pool *pgxpool.Pool
}

// NewReactionRepository instantiates repository.
func NewReactionRepository(pool *pgxpool.Pool) ReactionRepository {
	return &reactionRepository{pool: pool}
}

// Toggle flips membership inside a transaction that locks the parent shoutout
// row, so concurrent toggles on one shoutout are applied in arrival order.
func (r *reactionRepository) Toggle(ctx context.Context, shoutoutID, userID string, reactionType domain.ReactionType) (bool, int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var id string
	if err := tx.QueryRow(ctx,
		`SELECT id FROM shoutouts WHERE id=$1 FOR UPDATE`, shoutoutID,
	).Scan(&id); err != nil {
		return false, 0, err
	}

	cmd, err := tx.Exec(ctx,
		`DELETE FROM reactions WHERE shoutout_id=$1 AND user_id=$2 AND reaction_type=$3`,
		shoutoutID, userID, reactionType,
	)
	if err != nil {
		return false, 0, err
	}

	added := cmd.RowsAffected() == 0
	if added {
		if _, err := tx.Exec(ctx,
			`INSERT INTO reactions (shoutout_id, user_id, reaction_type) VALUES ($1, $2, $3)`,
			shoutoutID, userID, reactionType,
		); err != nil {
			return false, 0, err
		}
	}

	var count int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM reactions WHERE shoutout_id=$1 AND reaction_type=$2`,
		shoutoutID, reactionType,
	).Scan(&count); err != nil {
		return false, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, 0, err
	}
	return added, count, nil
}

func (r *reactionRepository) MapByShoutout(ctx context.Context, shoutoutID string) (map[domain.ReactionType][]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT reaction_type, user_id FROM reactions WHERE shoutout_id=$1 ORDER BY created_at, user_id`,
		shoutoutID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.ReactionType][]string)
	for rows.Next() {
		var reactionType domain.ReactionType
		var userID string
		if err := rows.Scan(&reactionType, &userID); err != nil {
			return nil, err
		}
		result[reactionType] = append(result[reactionType], userID)
	}
	return result, rows.Err()
}
