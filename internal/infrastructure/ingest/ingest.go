// Package ingest copies Telegram files into object storage.
package ingest

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/storage"
)

type downloader interface {
	Download(ctx context.Context, fileID string) ([]byte, string, error)
}

type uploader interface {
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
}

// CoverFetcher stores a book's cover image and returns its public URL.
type CoverFetcher struct {
	files    downloader
	uploader uploader
	bucket   string
}

func NewCoverFetcher(files downloader, uploader uploader, bucket string) *CoverFetcher {
	return &CoverFetcher{files: files, uploader: uploader, bucket: bucket}
}

func (f *CoverFetcher) Fetch(ctx context.Context, item domain.WorkItem) (string, error) {
	key, err := copyFile(ctx, f.files, f.uploader, f.bucket, "covers", item, ".jpg")
	if err != nil {
		return "", err
	}
	return storage.BuildURL(f.bucket, key), nil
}

// FileFetcher stores a queued book file and returns its object key,
// "books/<book_id>/<queue_id><ext>", or "books/<queue_id><ext>" for rows
// not linked to a book. Keys are unique per queue row.
type FileFetcher struct {
	files    downloader
	uploader uploader
	bucket   string
}

func NewFileFetcher(files downloader, uploader uploader, bucket string) *FileFetcher {
	return &FileFetcher{files: files, uploader: uploader, bucket: bucket}
}

func (f *FileFetcher) Fetch(ctx context.Context, item domain.WorkItem) (string, error) {
	name := item.ID
	if bookID := item.Attributes["book_id"]; bookID != "" {
		name = bookID + "/" + item.ID
	}
	return copyFile(ctx, f.files, f.uploader, f.bucket, "books", domain.WorkItem{ID: name, SourceRef: item.SourceRef}, ".bin")
}

func copyFile(ctx context.Context, files downloader, up uploader, bucket, prefix string, item domain.WorkItem, fallbackExt string) (string, error) {
	data, filePath, err := files.Download(ctx, item.SourceRef)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", item.SourceRef, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("download %s: %w", item.SourceRef, domain.ErrEmptyValue)
	}

	ext := strings.ToLower(path.Ext(filePath))
	if ext == "" {
		ext = fallbackExt
	}
	key := prefix + "/" + item.ID + ext

	if err := up.Put(ctx, bucket, key, data, http.DetectContentType(data)); err != nil {
		return "", err
	}
	return key, nil
}
