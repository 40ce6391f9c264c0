// Package postgres archives delivered digests. Engine state stays in memory;
// the archive is write-mostly history for the editorial team.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"media_watch/internal/domain"
	"media_watch/internal/export"
)

// ArchivedDigest is one row of the digests table.
type ArchivedDigest struct {
	ID          int64     `db:"id"`
	ProfileID   string    `db:"profile_id"`
	FileName    string    `db:"file_name"`
	Title       string    `db:"title"`
	GeneratedAt time.Time `db:"generated_at"`
	Body        string    `db:"body"`
	ItemCount   int       `db:"item_count"`
}

type DigestArchive struct {
	db *sqlx.DB
	tx *TransactionManager
}

func NewDigestArchive(db *sqlx.DB, tx *TransactionManager) *DigestArchive {
	return &DigestArchive{db: db, tx: tx}
}

// Save stores the rendered digest and its items. Re-delivering the same file
// for a profile replaces the earlier copy. It implements export.Saver.
func (a *DigestArchive) Save(ctx context.Context, file export.File, d *domain.Digest) error {
	return a.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		id, err := a.upsertDigest(txCtx, file, d)
		if err != nil {
			return fmt.Errorf("upsert digest: %w", err)
		}
		if err := a.replaceItems(txCtx, id, d.Items); err != nil {
			return fmt.Errorf("replace digest items: %w", err)
		}
		return nil
	})
}

func (a *DigestArchive) upsertDigest(ctx context.Context, file export.File, d *domain.Digest) (int64, error) {
	query := `
		INSERT INTO digests (profile_id, file_name, title, generated_at, body, item_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (profile_id, file_name) DO UPDATE SET
			title = EXCLUDED.title,
			generated_at = EXCLUDED.generated_at,
			body = EXCLUDED.body,
			item_count = EXCLUDED.item_count
		RETURNING id`

	var id int64
	err := sqlx.GetContext(ctx, GetExecutor(ctx, a.db), &id, query,
		d.ProfileID,
		file.Name,
		d.Title,
		d.GeneratedAt,
		string(file.Body),
		len(d.Items),
	)
	return id, err
}

func (a *DigestArchive) replaceItems(ctx context.Context, digestID int64, items []domain.ContentItem) error {
	exec := GetExecutor(ctx, a.db)

	if _, err := exec.ExecContext(ctx, `DELETE FROM digest_items WHERE digest_id = $1`, digestID); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	positions := make([]int64, len(items))
	keys := make([]string, len(items))
	titles := make([]string, len(items))
	sources := make([]string, len(items))
	links := make([]string, len(items))
	for i, it := range items {
		positions[i] = int64(i + 1)
		keys[i] = it.Key()
		titles[i] = it.Title
		sources[i] = it.Source
		links[i] = it.Link
	}

	query := `
		INSERT INTO digest_items (digest_id, position, item_key, title, source, link)
		SELECT $1, u.position, u.item_key, u.title, u.source, u.link
		FROM unnest($2::int[], $3::text[], $4::text[], $5::text[], $6::text[])
			AS u(position, item_key, title, source, link)`

	_, err := exec.ExecContext(ctx, query,
		digestID,
		pq.Array(positions),
		pq.Array(keys),
		pq.Array(titles),
		pq.Array(sources),
		pq.Array(links),
	)
	return err
}

// Latest returns the most recently generated archived digests of a profile.
func (a *DigestArchive) Latest(ctx context.Context, profileID string, limit int) ([]ArchivedDigest, error) {
	query := `
		SELECT id, profile_id, file_name, title, generated_at, body, item_count
		FROM digests
		WHERE profile_id = $1
		ORDER BY generated_at DESC, id DESC
		LIMIT $2`

	var out []ArchivedDigest
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, a.db), &out, query, profileID, limit); err != nil {
		return nil, fmt.Errorf("select digests: %w", err)
	}
	return out, nil
}

// ItemKeys returns the archived item keys of a digest in delivery order.
func (a *DigestArchive) ItemKeys(ctx context.Context, digestID int64) ([]string, error) {
	var keys []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, a.db), &keys,
		`SELECT item_key FROM digest_items WHERE digest_id = $1 ORDER BY position`, digestID)
	if err != nil {
		return nil, fmt.Errorf("select digest items: %w", err)
	}
	return keys, nil
}
