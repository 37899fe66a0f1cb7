package telegram_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/telegram"
	"github.com/google/go-cmp/cmp"
)

type replayClient struct {
	updates []string
}

func (c *replayClient) Invoke(ctx context.Context, method string, params any, result any) error {
	return nil
}

func (c *replayClient) Subscribe(ctx context.Context, handler func(telegram.Update)) error {
	for i, raw := range c.updates {
		handler(telegram.Update{ID: int64(i), Raw: json.RawMessage(raw)})
	}
	return nil
}

func TestDocumentFeedFiltersDocuments(t *testing.T) {
	t.Parallel()

	client := &replayClient{updates: []string{
		`{"update_id":1,"channel_post":{"document":{"file_id":"doc-1","file_name":"a.fb2"}}}`,
		`{"update_id":2,"channel_post":{"text":"announcement"}}`,
		`not json`,
		`{"update_id":3,"message":{"document":{"file_id":"doc-2","file_name":"b.epub"}}}`,
	}}

	var got []string
	err := telegram.NewDocumentFeed(client).SubscribeDocuments(context.Background(), func(fileID, fileName string) {
		got = append(got, fileID+"|"+fileName)
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff([]string{"doc-1|a.fb2", "doc-2|b.epub"}, got); diff != "" {
		t.Fatalf("unexpected documents (-want +got):\n%s", diff)
	}
}
