package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/mdcopy"
)

// Ensure LoggingPageStore implements mdcopy.PageStore.
var _ mdcopy.PageStore = (*LoggingPageStore)(nil)

// LoggingPageStore wraps a PageStore with logging.
type LoggingPageStore struct {
	next   mdcopy.PageStore
	logger *slog.Logger
}

// NewLoggingPageStore creates a new LoggingPageStore.
func NewLoggingPageStore(next mdcopy.PageStore, logger *slog.Logger) *LoggingPageStore {
	return &LoggingPageStore{next: next, logger: logger}
}

func (s *LoggingPageStore) Save(ctx context.Context, page *mdcopy.Page) (err error) {
	defer func() {
		s.logger.Debug("save page",
			"url", page.URL,
			"hash", page.Hash,
			"bytes", len(page.Content),
			"err", err,
		)
	}()
	return s.next.Save(ctx, page)
}

func (s *LoggingPageStore) Commit() (err error) {
	defer func() { s.logger.Info("commit pages", "err", err) }()
	return s.next.Commit()
}

func (s *LoggingPageStore) Abort() (err error) {
	defer func() { s.logger.Info("abort pages", "err", err) }()
	return s.next.Abort()
}
