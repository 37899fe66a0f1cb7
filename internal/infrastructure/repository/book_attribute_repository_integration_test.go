package repository_test

import (
	"context"
	"errors"
	"testing"

	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/db/models"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/repository"
)

func TestBookCoverRepositorySelectAndFillIntegration(t *testing.T) {
	db := openTestDB(t)
	if err := db.Exec("DELETE FROM books").Error; err != nil {
		t.Fatalf("failed to cleanup books: %v", err)
	}

	covered := "https://covers.s3.cloud.ru/done.jpg"
	empty := ""
	books := []models.Book{
		{Title: "Solaris", Author: "Stanislaw Lem", CoverFileID: "file-1"},
		{Title: "Roadside Picnic", Author: "Strugatsky", CoverFileID: "file-2", CoverURL: &empty},
		{Title: "Hard to Be a God", Author: "Strugatsky", CoverFileID: "file-3"},
		{Title: "The Cyberiad", Author: "Stanislaw Lem", CoverFileID: "file-4", CoverURL: &covered},
		{Title: "Eden", Author: "Stanislaw Lem", CoverFileID: "file-5", CoverURL: &covered},
		{Title: "No Source", Author: "Unknown"},
	}
	if err := db.Create(&books).Error; err != nil {
		t.Fatalf("failed to seed books: %v", err)
	}

	repo := repository.NewBookCoverRepository(db)
	ctx := context.Background()

	items, err := repo.SelectMissing(ctx, 5)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	limited, err := repo.SelectMissing(ctx, 2)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 items, got %d", len(limited))
	}

	for _, item := range items {
		if item.SourceRef == "" {
			t.Fatalf("expected source ref on %s", item.ID)
		}
		if err := repo.Fill(ctx, item.ID, "https://covers.s3.cloud.ru/"+item.SourceRef+".jpg"); err != nil {
			t.Fatalf("fill failed: %v", err)
		}
	}

	again, err := repo.SelectMissing(ctx, 5)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected no items after fill, got %d", len(again))
	}
}

func TestBookDescriptionRepositoryFillUnknownIDIntegration(t *testing.T) {
	db := openTestDB(t)

	repo := repository.NewBookDescriptionRepository(db)
	err := repo.Fill(context.Background(), "00000000-0000-4000-8000-000000000000", "text")
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
