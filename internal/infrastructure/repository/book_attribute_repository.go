package repository

import (
	"context"
	"fmt"

	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

// BookAttributeRepository selects books whose target column is NULL or empty
// and fills that column. The source column holds the reference the fetcher
// needs; rows without one are never selected.
type BookAttributeRepository struct {
	db           *gorm.DB
	targetColumn string
	sourceColumn string
}

func NewBookCoverRepository(db *gorm.DB) *BookAttributeRepository {
	return &BookAttributeRepository{db: db, targetColumn: "cover_url", sourceColumn: "cover_file_id"}
}

func NewBookDescriptionRepository(db *gorm.DB) *BookAttributeRepository {
	return &BookAttributeRepository{db: db, targetColumn: "description", sourceColumn: "source_ref"}
}

func (r *BookAttributeRepository) SelectMissing(ctx context.Context, limit int) ([]domain.WorkItem, error) {
	var rows []models.Book

	err := r.db.WithContext(ctx).
		Where(fmt.Sprintf("(%[1]s IS NULL OR %[1]s = '')", r.targetColumn)).
		Where(fmt.Sprintf("%[1]s IS NOT NULL AND %[1]s <> ''", r.sourceColumn)).
		Order("updated_at DESC").
		Order("id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("select books missing %s: %w", r.targetColumn, err)
	}

	items := make([]domain.WorkItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, r.toDomain(row))
	}
	return items, nil
}

func (r *BookAttributeRepository) Fill(ctx context.Context, id string, value string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ?", id).
		Updates(map[string]any{
			r.targetColumn: value,
			"updated_at":   gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return fmt.Errorf("update book %s: %w", r.targetColumn, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *BookAttributeRepository) toDomain(row models.Book) domain.WorkItem {
	item := domain.WorkItem{
		ID: row.ID,
		Attributes: map[string]string{
			"title":  row.Title,
			"author": row.Author,
		},
	}
	switch r.targetColumn {
	case "cover_url":
		item.SourceRef = row.CoverFileID
		item.Value = row.CoverURL
	default:
		item.SourceRef = row.SourceRef
		item.Value = row.Description
	}
	return item
}
