package mock

import (
	"context"

	"github.com/fwojciec/mdcopy"
)

// Compile-time interface verification.
var (
	_ mdcopy.PageStore     = (*PageStore)(nil)
	_ mdcopy.DomainLimiter = (*DomainLimiter)(nil)
)

// PageStore is a mock implementation of mdcopy.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *mdcopy.Page) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *mdcopy.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}

// DomainLimiter is a mock implementation of mdcopy.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
