package storage_test

import (
	"testing"

	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/storage"
)

func TestBuildURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		bucket string
		key    string
		want   string
	}{
		{bucket: "books", key: "my file.pdf", want: "https://books.s3.cloud.ru/my%20file.pdf"},
		{bucket: "covers", key: "covers/42.jpg", want: "https://covers.s3.cloud.ru/covers/42.jpg"},
		{bucket: "books", key: "/leading.fb2", want: "https://books.s3.cloud.ru/leading.fb2"},
		{bucket: "books", key: "Пикник на обочине.epub", want: "https://books.s3.cloud.ru/%D0%9F%D0%B8%D0%BA%D0%BD%D0%B8%D0%BA%20%D0%BD%D0%B0%20%D0%BE%D0%B1%D0%BE%D1%87%D0%B8%D0%BD%D0%B5.epub"},
		{bucket: "books", key: "a?b#c.txt", want: "https://books.s3.cloud.ru/a%3Fb%23c.txt"},
	}

	for _, tc := range cases {
		if got := storage.BuildURL(tc.bucket, tc.key); got != tc.want {
			t.Fatalf("BuildURL(%q, %q) = %q, want %q", tc.bucket, tc.key, got, tc.want)
		}
	}
}

func TestBuildURLDeterministic(t *testing.T) {
	t.Parallel()

	first := storage.BuildURL("books", "x y/z.pdf")
	if second := storage.BuildURL("books", "x y/z.pdf"); first != second {
		t.Fatalf("expected stable output, got %q and %q", first, second)
	}
}
