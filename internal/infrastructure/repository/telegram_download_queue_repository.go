package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

// TelegramDownloadQueueRepository reads telegram_download_queue. The table
// has its own row shape and is not assumed to be the same queue as
// download_queue.
type TelegramDownloadQueueRepository struct {
	db *gorm.DB
}

func NewTelegramDownloadQueueRepository(db *gorm.DB) *TelegramDownloadQueueRepository {
	return &TelegramDownloadQueueRepository{db: db}
}

func (r *TelegramDownloadQueueRepository) List(ctx context.Context, filter domain.Filter) ([]domain.WorkItem, error) {
	var rows []models.TelegramDownloadQueueEntry

	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id")
	if status := strings.TrimSpace(filter.Status); status != "" {
		q = q.Where("status = ?", status)
	}
	if key := strings.TrimSpace(filter.Key); key != "" {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return []domain.WorkItem{}, nil
		}
		q = q.Where("id = ?", id)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list telegram_download_queue: %w", err)
	}

	items := make([]domain.WorkItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.WorkItem{
			ID:        strconv.FormatInt(row.ID, 10),
			SourceRef: strconv.FormatInt(row.ChannelID, 10) + "/" + strconv.FormatInt(row.MessageID, 10),
			Value:     row.FilePath,
			Status:    row.Status,
			Attributes: map[string]string{
				"channel_id": strconv.FormatInt(row.ChannelID, 10),
				"message_id": strconv.FormatInt(row.MessageID, 10),
				"created_at": row.CreatedAt.UTC().Format(time.RFC3339),
			},
		})
	}
	return items, nil
}
