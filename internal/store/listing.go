// Package store persists the public room listing. It is a side channel: the
// session core calls it fire-and-forget and never depends on its answers.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal"
)

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	language   TEXT NOT NULL,
	count      INT  NOT NULL DEFAULT 0,
	avatars    TEXT[] NOT NULL DEFAULT '{}',
	tags       TEXT[] NOT NULL DEFAULT '{}',
	is_live    BOOLEAN NOT NULL DEFAULT FALSE,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Listing is the postgres-backed room listing.
type Listing struct {
	pool *pgxpool.Pool
}

// New connects and ensures the schema exists.
func New(ctx context.Context, databaseURL string) (*Listing, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating rooms table: %w", err)
	}
	return &Listing{pool: pool}, nil
}

func (l *Listing) Close() {
	l.pool.Close()
}

// Upsert writes or refreshes the whole summary row.
func (l *Listing) Upsert(ctx context.Context, r internal.RoomSummary) error {
	_, err := l.pool.Exec(ctx, `
		INSERT INTO rooms (id, title, language, count, avatars, tags, is_live, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			language = EXCLUDED.language,
			count = EXCLUDED.count,
			avatars = EXCLUDED.avatars,
			tags = EXCLUDED.tags,
			is_live = EXCLUDED.is_live,
			updated_at = now()`,
		r.ID, r.Title, r.Language, r.Count, r.Avatars, r.Tags, r.IsLive)
	if err != nil {
		return fmt.Errorf("upserting room %s: %w", r.ID, err)
	}
	return nil
}

// SetCount refreshes the player count of a published room.
func (l *Listing) SetCount(ctx context.Context, roomID string, count int) error {
	_, err := l.pool.Exec(ctx,
		`UPDATE rooms SET count = $2, updated_at = now() WHERE id = $1`, roomID, count)
	if err != nil {
		return fmt.Errorf("updating count for room %s: %w", roomID, err)
	}
	return nil
}

// SetLive flips the live flag of a published room.
func (l *Listing) SetLive(ctx context.Context, roomID string, live bool) error {
	_, err := l.pool.Exec(ctx,
		`UPDATE rooms SET is_live = $2, updated_at = now() WHERE id = $1`, roomID, live)
	if err != nil {
		return fmt.Errorf("updating live flag for room %s: %w", roomID, err)
	}
	return nil
}

// Delete drops a room from the listing.
func (l *Listing) Delete(ctx context.Context, roomID string) error {
	_, err := l.pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, roomID)
	if err != nil {
		return fmt.Errorf("deleting room %s: %w", roomID, err)
	}
	return nil
}

// List returns the published rooms, most recently touched first.
func (l *Listing) List(ctx context.Context) ([]internal.RoomSummary, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, title, language, count, avatars, tags, is_live
		FROM rooms ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	var out []internal.RoomSummary
	for rows.Next() {
		var r internal.RoomSummary
		if err := rows.Scan(&r.ID, &r.Title, &r.Language, &r.Count, &r.Avatars, &r.Tags, &r.IsLive); err != nil {
			return nil, fmt.Errorf("scanning room row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
