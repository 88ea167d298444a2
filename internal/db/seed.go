package db

import (
	"context"
	"errors"

	"github.com/eventlyhq/evently/internal/repo/memory"
	"github.com/eventlyhq/evently/internal/security"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSeedData inserts the fixed fixture accounts and catalog into an empty
// database. Existing rows are left alone, so restarts are idempotent. The
// Postgres path stores hashed credentials; the plaintext fixtures stay confined
// to the in-memory repositories.
func EnsureSeedData(ctx context.Context, pool *pgxpool.Pool, verifier security.CredentialVerifier) error {
	for _, u := range memory.SeedUsers() {
		var dummy string

		err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, u.Email).Scan(&dummy)

		if err == nil {
			continue
		}

		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		stored, err := verifier.Store(u.Password)

		if err != nil {
			return err
		}

		_, err = pool.Exec(ctx,
			`INSERT INTO users (id, name, email, password, role)
			 VALUES ($1,$2,$3,$4,$5)`,
			u.ID, u.Name, u.Email, stored, u.Role,
		)

		if err != nil {
			return err
		}
	}

	for _, e := range memory.SeedEvents() {
		var dummy string

		err := pool.QueryRow(ctx, `SELECT id FROM events WHERE id = $1`, e.ID).Scan(&dummy)

		if err == nil {
			continue
		}

		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		// seq is BIGSERIAL; inserting in fixture order preserves listing order
		_, err = pool.Exec(ctx,
			`INSERT INTO events (id, title, date_label, time_label, location, description, image, capacity, registrations, tags, is_past)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			e.ID, e.Title, e.Date, e.Time, e.Location, e.Description, e.Image, e.Capacity, e.Registrations, e.Tags, e.IsPast,
		)

		if err != nil {
			return err
		}
	}

	return nil
}
