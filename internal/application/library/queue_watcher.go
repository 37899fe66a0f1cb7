package library

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

type DocumentSubscriber interface {
	SubscribeDocuments(ctx context.Context, handler func(fileID, fileName string)) error
}

type downloadEnqueuer interface {
	Enqueue(ctx context.Context, fileID string) (string, bool, error)
}

// QueueWatcher adds every document posted to the watched chats to the
// download queue, so the downloads job picks it up on its next run.
type QueueWatcher struct {
	feed   DocumentSubscriber
	queue  downloadEnqueuer
	logger logrus.FieldLogger
}

func NewQueueWatcher(feed DocumentSubscriber, queue downloadEnqueuer, logger logrus.FieldLogger) *QueueWatcher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &QueueWatcher{feed: feed, queue: queue, logger: logger}
}

// Run blocks until ctx is cancelled or the subscription fails. Enqueue
// errors are logged and do not stop the watcher.
func (w *QueueWatcher) Run(ctx context.Context) error {
	err := w.feed.SubscribeDocuments(ctx, func(fileID, fileName string) {
		log := w.logger.WithFields(logrus.Fields{"file_id": fileID, "file_name": fileName})

		id, created, err := w.queue.Enqueue(ctx, fileID)
		if err != nil {
			log.Errorf("enqueue failed: %v", err)
			return
		}
		if !created {
			log.Debug("already queued")
			return
		}
		log.WithField("queue_id", id).Info("queued")
	})
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}
