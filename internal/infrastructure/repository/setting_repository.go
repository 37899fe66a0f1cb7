package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) List(ctx context.Context, filter domain.Filter) ([]domain.WorkItem, error) {
	var rows []models.Setting

	q := r.db.WithContext(ctx).Order("key")
	if key := strings.TrimSpace(filter.Key); key != "" {
		q = q.Where("key = ?", key)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}

	items := make([]domain.WorkItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.WorkItem{
			ID:    row.Key,
			Value: row.Value,
			Attributes: map[string]string{
				"updated_at": row.UpdatedAt.UTC().Format(time.RFC3339),
			},
		})
	}
	return items, nil
}
