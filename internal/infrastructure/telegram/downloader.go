package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type fileContents interface {
	DownloadFile(ctx context.Context, filePath string) ([]byte, error)
}

// Downloader resolves a file id with getFile and downloads its contents.
type Downloader struct {
	client Client
	files  fileContents
	cache  PathCache
}

// NewDownloader returns a Downloader. cache may be nil.
func NewDownloader(client Client, files fileContents, cache PathCache) *Downloader {
	return &Downloader{client: client, files: files, cache: cache}
}

// Download returns the file contents and the Telegram file path, whose
// extension callers use to name stored objects.
func (d *Downloader) Download(ctx context.Context, fileID string) ([]byte, string, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return nil, "", fmt.Errorf("%w: empty file id", ErrFileNotFound)
	}

	if d.cache != nil {
		if path, ok, err := d.cache.Get(fileID); err == nil && ok {
			data, err := d.files.DownloadFile(ctx, path)
			if err == nil {
				return data, path, nil
			}
			if !errors.Is(err, ErrFileNotFound) {
				return nil, "", err
			}
			_ = d.cache.Delete(fileID)
		}
	}

	path, err := d.resolve(ctx, fileID)
	if err != nil {
		return nil, "", err
	}
	data, err := d.files.DownloadFile(ctx, path)
	if err != nil {
		return nil, "", err
	}
	return data, path, nil
}

func (d *Downloader) resolve(ctx context.Context, fileID string) (string, error) {
	var file File
	if err := d.client.Invoke(ctx, "getFile", map[string]string{"file_id": fileID}, &file); err != nil {
		return "", fmt.Errorf("get file %s: %w", fileID, err)
	}
	if file.FilePath == "" {
		return "", fmt.Errorf("%w: %s has no path", ErrFileNotFound, fileID)
	}
	if d.cache != nil {
		_ = d.cache.Put(fileID, file.FilePath)
	}
	return file.FilePath, nil
}
