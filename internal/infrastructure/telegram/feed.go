package telegram

import "context"

// DocumentFeed narrows the update stream to attached documents.
type DocumentFeed struct {
	client Client
}

func NewDocumentFeed(client Client) *DocumentFeed {
	return &DocumentFeed{client: client}
}

func (f *DocumentFeed) SubscribeDocuments(ctx context.Context, handler func(fileID, fileName string)) error {
	return f.client.Subscribe(ctx, func(u Update) {
		if fileID, fileName, ok := u.Document(); ok {
			handler(fileID, fileName)
		}
	})
}
