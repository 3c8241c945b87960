package main

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id bigserial PRIMARY KEY,
		username text NOT NULL UNIQUE,
		password bytea NOT NULL,
		role text NOT NULL DEFAULT 'user',
		energy integer NOT NULL DEFAULT 0 CHECK (energy >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS engagements (
		user_id bigint NOT NULL REFERENCES users(id),
		post_id text NOT NULL,
		type text NOT NULL,
		amount integer NOT NULL DEFAULT 0 CHECK (amount >= 0),
		created_at timestamptz NOT NULL DEFAULT now(),
		UNIQUE (user_id, post_id, type)
	)`,
	`CREATE INDEX IF NOT EXISTS engagements_post_id_idx ON engagements(post_id)`,
	`CREATE TABLE IF NOT EXISTS reports (
		id bigserial PRIMARY KEY,
		type text NOT NULL,
		reason text NOT NULL,
		status text NOT NULL DEFAULT 'pending',
		post_id text,
		reported_user_id bigint REFERENCES users(id),
		reporter_id bigint NOT NULL REFERENCES users(id),
		moderator_notes text,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now(),
		CHECK ((post_id IS NULL) <> (reported_user_id IS NULL))
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("main: schema migration failed: %w", err)
		}
	}
	return nil
}
