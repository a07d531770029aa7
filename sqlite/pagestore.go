package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/mdcopy"
	"github.com/google/uuid"
)

// Ensure PageStore implements mdcopy.PageStore at compile time.
var _ mdcopy.PageStore = (*PageStore)(nil)

// PageStore saves the pages of one site export inside a single transaction.
// The site's previous export is replaced on Commit and kept on Abort.
type PageStore struct {
	db   *DB
	name string
	now  func() time.Time

	mu       sync.Mutex
	tx       *sql.Tx
	siteID   string
	position int
}

// StoreOption configures a PageStore.
type StoreOption func(*PageStore)

// WithNow sets the clock used for the export timestamp.
func WithNow(now func() time.Time) StoreOption {
	return func(s *PageStore) {
		s.now = now
	}
}

// NewPageStore creates a PageStore writing the site called name to db.
func NewPageStore(db *DB, name string, opts ...StoreOption) *PageStore {
	s := &PageStore{
		db:   db,
		name: name,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save adds page to the export. The transaction is opened on the first
// call.
func (s *PageStore) Save(ctx context.Context, page *mdcopy.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if page == nil || page.URL == "" {
		return mdcopy.Errorf(mdcopy.EINVALID, "page URL required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		if err := s.begin(ctx); err != nil {
			return err
		}
	}

	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO pages (id, site_id, source_url, title, content, content_hash, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), s.siteID, page.URL, page.Title, page.Content, page.Hash, s.position)
	if err != nil {
		return fmt.Errorf("insert page %s: %w", page.URL, err)
	}
	s.position++
	return nil
}

// begin opens the transaction and replaces the site row. The transaction
// outlives ctx so that only Commit or Abort end it.
func (s *PageStore) begin(ctx context.Context) error {
	tx, err := s.db.BeginTx(context.WithoutCancel(ctx))
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM sites WHERE name = ?", s.name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("replace site %s: %w", s.name, err)
	}

	siteID := uuid.New().String()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sites (id, name, exported_at) VALUES (?, ?, ?)
	`, siteID, s.name, s.now().UTC().Format(time.RFC3339)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("create site %s: %w", s.name, err)
	}

	s.tx, s.siteID, s.position = tx, siteID, 0
	return nil
}

// Commit makes the export visible, replacing the site's previous pages.
func (s *PageStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	return err
}

// Abort discards the pages saved so far.
func (s *PageStore) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback()
	s.tx = nil
	return err
}

// Site is a committed export.
type Site struct {
	Name       string
	ExportedAt time.Time
	Pages      int
}

// PageFilter selects the pages returned by FindPages.
type PageFilter struct {
	Site   string
	URL    *string
	Limit  int
	Offset int
}

// FindSite returns the committed export called name.
// Returns ENOTFOUND if there is none.
func FindSite(ctx context.Context, db *DB, name string) (*Site, error) {
	var site Site
	var exportedAt string

	err := db.QueryRowContext(ctx, `
		SELECT s.name, s.exported_at, COUNT(p.id)
		FROM sites s LEFT JOIN pages p ON p.site_id = s.id
		WHERE s.name = ?
		GROUP BY s.id
	`, name).Scan(&site.Name, &exportedAt, &site.Pages)
	if err == sql.ErrNoRows {
		return nil, mdcopy.Errorf(mdcopy.ENOTFOUND, "site %q not found", name)
	}
	if err != nil {
		return nil, err
	}

	if site.ExportedAt, err = parseRFC3339(exportedAt, "exported_at"); err != nil {
		return nil, err
	}
	return &site, nil
}

// FindPages returns the pages of a committed export in the order they
// were saved.
func FindPages(ctx context.Context, db *DB, filter PageFilter) ([]*mdcopy.Page, error) {
	var query strings.Builder
	args := []any{filter.Site}

	query.WriteString(`
		SELECT p.source_url, p.title, p.content, p.content_hash
		FROM pages p JOIN sites s ON s.id = p.site_id
		WHERE s.name = ?`)
	if filter.URL != nil {
		query.WriteString(" AND p.source_url = ?")
		args = append(args, *filter.URL)
	}
	query.WriteString(" ORDER BY p.position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*mdcopy.Page
	for rows.Next() {
		var page mdcopy.Page
		if err := rows.Scan(&page.URL, &page.Title, &page.Content, &page.Hash); err != nil {
			return nil, err
		}
		pages = append(pages, &page)
	}
	return pages, rows.Err()
}

func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses. SQLite only accepts
// OFFSET after a LIMIT, so an offset alone gets LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
