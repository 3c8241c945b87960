package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v4/stdlib"

	"ascended/pkg/logger"
)

const reportColumns = "id, type, reason, status, post_id, reported_user_id, reporter_id, moderator_notes, created_at, updated_at"

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(s scanner) (*Report, error) {
	r := new(Report)
	var postId, reportedUserId, notes sql.NullString
	err := s.Scan(&r.Id, &r.Type, &r.Reason, &r.Status, &postId, &reportedUserId,
		&r.ReporterId, &notes, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.PostId = postId.String
	r.ReportedUserId = reportedUserId.String
	r.ModeratorNotes = notes.String
	return r, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Create stores a pending report and fills its id and timestamps.
func (repo *Repo) Create(ctx context.Context, r *Report) error {
	r.Status = Pending
	err := repo.db.QueryRowContext(ctx,
		"INSERT INTO reports(type, reason, status, post_id, reported_user_id, reporter_id) VALUES($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at",
		r.Type, r.Reason, r.Status, nullable(r.PostId), nullable(r.ReportedUserId), r.ReporterId,
	).Scan(&r.Id, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("report/repo: report wasn't added: %w", err)
	}
	return nil
}

// List returns the whole queue, newest first.
func (repo *Repo) List(ctx context.Context) ([]*Report, error) {
	rows, err := repo.db.QueryContext(ctx, "SELECT "+reportColumns+" FROM reports ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("report/repo: can't select reports: %w", err)
	}
	defer rows.Close()

	reports := []*Report{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("report/repo: can't scan report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// Update moves one report to status. Empty notes keep the stored ones.
func (repo *Repo) Update(ctx context.Context, id string, status Status, notes string) (*Report, error) {
	var updated *Report
	err := repo.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		updated, err = transition(ctx, tx, id, status, notes)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Bulk applies the action to every report or to none of them.
func (repo *Repo) Bulk(ctx context.Context, ids []string, action Action, notes string) ([]*Report, error) {
	updated := make([]*Report, 0, len(ids))
	err := repo.inTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			r, err := transition(ctx, tx, id, action.TargetStatus(), notes)
			if err != nil {
				return err
			}
			updated = append(updated, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func transition(ctx context.Context, tx *sql.Tx, id string, to Status, notes string) (*Report, error) {
	r, err := scanReport(tx.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE id=$1 FOR UPDATE", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("report/repo: can't lock report %s: %w", id, err)
	}

	if !CanTransition(r.Status, to) {
		return nil, fmt.Errorf("%w: report %s is %s, can't become %s", ErrIllegalTransition, id, r.Status, to)
	}

	err = tx.QueryRowContext(ctx,
		"UPDATE reports SET status=$1, moderator_notes=coalesce($2, moderator_notes), updated_at=now() WHERE id=$3 RETURNING updated_at",
		to, nullable(notes), id,
	).Scan(&r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("report/repo: can't update report %s: %w", id, err)
	}

	r.Status = to
	if notes != "" {
		r.ModeratorNotes = notes
	}
	return r, nil
}

func (repo *Repo) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("report/repo: can't begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Log(ctx).Errorf("report/repo: rollback failed: %v", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("report/repo: can't commit: %w", err)
	}
	return nil
}
