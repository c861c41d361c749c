// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package persist

import (
	"context"
	"database/sql"
	"errors"
)

// Postgres stores values in the client_state table created by the
// database migrations.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a store on an already migrated database.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.db.QueryRowContext(ctx,
		`SELECT value FROM client_state WHERE key = $1`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errKey("get", key, err)
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO client_state (key, value, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return errKey("set", key, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM client_state WHERE key = $1`, key); err != nil {
		return errKey("delete", key, err)
	}
	return nil
}
