// Package seed fills a development database with books that are missing
// their cover and description, plus queued downloads for some of them.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/db/models"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const insertBatchSize = 100

type Result struct {
	Books     int
	Downloads int
}

type BookSeeder struct {
	db    *gorm.DB
	faker *gofakeit.Faker
}

// NewBookSeeder returns a seeder. A zero seed picks a random one.
func NewBookSeeder(db *gorm.DB, seed int64) *BookSeeder {
	return &BookSeeder{db: db, faker: gofakeit.New(seed)}
}

// Generate builds n books and one pending download for every third book.
// Nothing is written.
func (s *BookSeeder) Generate(n int) ([]models.Book, []models.DownloadQueueEntry) {
	books := make([]models.Book, 0, n)
	var downloads []models.DownloadQueueEntry

	for i := 0; i < n; i++ {
		title := s.faker.BookTitle()
		book := models.Book{
			ID:          uuid.NewString(),
			Title:       title,
			Author:      s.faker.BookAuthor(),
			CoverFileID: "AgAC" + s.faker.LetterN(28),
			SourceRef:   slug(title) + "-" + s.faker.DigitN(4),
		}
		books = append(books, book)

		if i%3 == 0 {
			bookID := book.ID
			downloads = append(downloads, models.DownloadQueueEntry{
				ID:     uuid.NewString(),
				BookID: &bookID,
				FileID: "BQAC" + s.faker.LetterN(28),
				Status: "pending",
			})
		}
	}
	return books, downloads
}

func (s *BookSeeder) Seed(ctx context.Context, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("seed count must be positive, got %d", n)
	}

	books, downloads := s.Generate(n)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&books, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to save books: %w", err)
		}
		if len(downloads) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&downloads, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to save download queue: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Books: len(books), Downloads: len(downloads)}, nil
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
