// Package telegram talks to Telegram through the Bot API.
//
// Only two operations are used by the rest of the repository: a single
// remote procedure call and a stream of updates. [Client] describes exactly
// that, so jobs and tests never depend on the wider API surface.
package telegram

import (
	"context"
	"encoding/json"
)

// Client is the subset of Telegram used by this repository.
type Client interface {
	// Invoke calls method with params and decodes the result into result,
	// which may be nil.
	Invoke(ctx context.Context, method string, params any, result any) error
	// Subscribe delivers updates to handler until ctx is done or the
	// connection fails.
	Subscribe(ctx context.Context, handler func(Update)) error
}

type Update struct {
	ID  int64
	Raw json.RawMessage
}

// Document returns the file id of a document attached to a channel post or
// message in the update, if any.
func (u Update) Document() (fileID string, fileName string, ok bool) {
	var payload struct {
		Message     *messageWithDocument `json:"message"`
		ChannelPost *messageWithDocument `json:"channel_post"`
	}
	if err := json.Unmarshal(u.Raw, &payload); err != nil {
		return "", "", false
	}
	for _, m := range []*messageWithDocument{payload.ChannelPost, payload.Message} {
		if m != nil && m.Document != nil && m.Document.FileID != "" {
			return m.Document.FileID, m.Document.FileName, true
		}
	}
	return "", "", false
}

type messageWithDocument struct {
	Document *struct {
		FileID   string `json:"file_id"`
		FileName string `json:"file_name"`
	} `json:"document"`
}

type File struct {
	FileID   string `json:"file_id"`
	FilePath string `json:"file_path"`
	FileSize int64  `json:"file_size"`
}
