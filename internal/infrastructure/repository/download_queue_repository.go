package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DownloadStatusPending   = "pending"
	DownloadStatusCompleted = "completed"
)

type DownloadQueueRepository struct {
	pool *pgxpool.Pool
}

func NewDownloadQueueRepository(pool *pgxpool.Pool) *DownloadQueueRepository {
	return &DownloadQueueRepository{pool: pool}
}

func (r *DownloadQueueRepository) SelectMissing(ctx context.Context, limit int) ([]domain.WorkItem, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, COALESCE(book_id::text, ''), file_id, status, storage_key, created_at::text
FROM download_queue
WHERE status = $1
  AND (storage_key IS NULL OR storage_key = '')
  AND file_id <> ''
ORDER BY updated_at DESC, id
LIMIT $2
`, DownloadStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("select pending downloads: %w", err)
	}
	defer rows.Close()

	return scanDownloadRows(rows)
}

func (r *DownloadQueueRepository) Fill(ctx context.Context, id string, value string) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE download_queue
SET storage_key = $2,
    status = $3,
    error_message = NULL,
    updated_at = NOW()
WHERE id = $1
`, id, value, DownloadStatusCompleted)
	if err != nil {
		return fmt.Errorf("update download_queue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *DownloadQueueRepository) List(ctx context.Context, filter domain.Filter) ([]domain.WorkItem, error) {
	query := `
SELECT id::text, COALESCE(book_id::text, ''), file_id, status, storage_key, created_at::text
FROM download_queue`
	var (
		conds []string
		args  []any
	)
	if status := strings.TrimSpace(filter.Status); status != "" {
		args = append(args, status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if key := strings.TrimSpace(filter.Key); key != "" {
		args = append(args, key)
		conds = append(conds, fmt.Sprintf("(id::text = $%d OR file_id = $%d)", len(args), len(args)))
	}
	if len(conds) > 0 {
		query += "\nWHERE " + strings.Join(conds, " AND ")
	}
	query += "\nORDER BY created_at DESC, id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list download_queue: %w", err)
	}
	defer rows.Close()

	return scanDownloadRows(rows)
}

func scanDownloadRows(rows pgx.Rows) ([]domain.WorkItem, error) {
	var items []domain.WorkItem
	for rows.Next() {
		var (
			item      domain.WorkItem
			bookID    string
			createdAt string
		)
		if err := rows.Scan(&item.ID, &bookID, &item.SourceRef, &item.Status, &item.Value, &createdAt); err != nil {
			return nil, err
		}
		item.Attributes = map[string]string{
			"book_id":    bookID,
			"created_at": createdAt,
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Enqueue adds a pending row for fileID unless one already exists. created is
// false when the file was already queued.
func (r *DownloadQueueRepository) Enqueue(ctx context.Context, fileID string) (id string, created bool, err error) {
	err = r.pool.QueryRow(ctx, `
INSERT INTO download_queue (file_id, status)
SELECT $1, $2
WHERE NOT EXISTS (SELECT 1 FROM download_queue WHERE file_id = $1)
RETURNING id::text
`, fileID, DownloadStatusPending).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("enqueue download %s: %w", fileID, err)
	}
	return id, true, nil
}
