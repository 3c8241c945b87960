package engagement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v4/stdlib"

	"ascended/pkg/logger"
)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) UserEngagements(ctx context.Context, userId, postId string) ([]Type, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT type FROM engagements WHERE user_id=$1 AND post_id=$2 ORDER BY created_at", userId, postId)
	if err != nil {
		return nil, fmt.Errorf("engagement/repo: can't select user engagements: %w", err)
	}
	defer rows.Close()

	types := []Type{}
	for rows.Next() {
		var t Type
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("engagement/repo: can't scan engagement: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// Add stores the engagement in one transaction. The opposite vote is
// dropped first and energy is debited only if the balance covers it.
func (r *Repo) Add(ctx context.Context, e *Engagement) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("engagement/repo: can't begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Log(ctx).Errorf("engagement/repo: rollback failed: %v", rbErr)
			}
		}
	}()

	if opposite, ok := e.Type.Opposite(); ok {
		_, err = tx.ExecContext(ctx,
			"DELETE FROM engagements WHERE user_id=$1 AND post_id=$2 AND type=$3",
			e.UserId, e.PostId, opposite)
		if err != nil {
			return fmt.Errorf("engagement/repo: can't drop opposite vote: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO engagements(user_id, post_id, type, amount) VALUES($1, $2, $3, $4) ON CONFLICT DO NOTHING",
		e.UserId, e.PostId, e.Type, e.Amount)
	if err != nil {
		return fmt.Errorf("engagement/repo: can't insert engagement: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAlreadyEngaged
	}

	if e.Type == Energy {
		res, err = tx.ExecContext(ctx,
			"UPDATE users SET energy = energy - $1 WHERE id=$2 AND energy >= $1", e.Amount, e.UserId)
		if err != nil {
			return fmt.Errorf("engagement/repo: can't debit energy: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrInsufficientEnergy
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("engagement/repo: can't commit engagement: %w", err)
	}
	return nil
}

// Remove deletes the engagement and refunds the energy it carried.
func (r *Repo) Remove(ctx context.Context, userId, postId string, t Type) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("engagement/repo: can't begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Log(ctx).Errorf("engagement/repo: rollback failed: %v", rbErr)
			}
		}
	}()

	var amount int
	err = tx.QueryRowContext(ctx,
		"DELETE FROM engagements WHERE user_id=$1 AND post_id=$2 AND type=$3 RETURNING amount",
		userId, postId, t).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotEngaged
	}
	if err != nil {
		return fmt.Errorf("engagement/repo: can't delete engagement: %w", err)
	}

	if amount > 0 {
		_, err = tx.ExecContext(ctx, "UPDATE users SET energy = energy + $1 WHERE id=$2", amount, userId)
		if err != nil {
			return fmt.Errorf("engagement/repo: can't refund energy: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("engagement/repo: can't commit removal: %w", err)
	}
	return nil
}

// PurgePost refunds every energy transfer made to the post and drops all of its engagements.
func (r *Repo) PurgePost(ctx context.Context, postId string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("engagement/repo: can't begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Log(ctx).Errorf("engagement/repo: rollback failed: %v", rbErr)
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		"UPDATE users SET energy = users.energy + e.amount FROM engagements e WHERE e.user_id = users.id AND e.post_id=$1 AND e.type=$2",
		postId, Energy)
	if err != nil {
		return fmt.Errorf("engagement/repo: can't refund post energy: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM engagements WHERE post_id=$1", postId); err != nil {
		return fmt.Errorf("engagement/repo: can't delete post engagements: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("engagement/repo: can't commit purge: %w", err)
	}
	return nil
}

// Counts returns counters for every requested post, zero valued when a post has none.
func (r *Repo) Counts(ctx context.Context, postIds []string) (map[string]Counters, error) {
	res := make(map[string]Counters, len(postIds))
	if len(postIds) == 0 {
		return res, nil
	}

	placeholders := make([]string, len(postIds))
	args := make([]interface{}, len(postIds))
	for i, id := range postIds {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
		res[id] = Counters{}
	}
	query := "SELECT post_id, type, count(*), coalesce(sum(amount), 0) FROM engagements WHERE post_id IN (" +
		strings.Join(placeholders, ", ") + ") GROUP BY post_id, type"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("engagement/repo: can't count engagements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			postId     string
			t          Type
			count, sum int
		)
		if err := rows.Scan(&postId, &t, &count, &sum); err != nil {
			return nil, fmt.Errorf("engagement/repo: can't scan counters: %w", err)
		}
		c := res[postId]
		switch t {
		case Upvote:
			c.Upvote = count
		case Downvote:
			c.Downvote = count
		case Like:
			c.Like = count
		case Energy:
			c.Energy = sum
		}
		res[postId] = c
	}
	return res, rows.Err()
}
