// Package roster answers whether an email appears in the registration form
// responses spreadsheet.
package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ErrNotConfigured means no spreadsheet or credentials were provided.
var ErrNotConfigured = errors.New("roster spreadsheet is not configured")

// Fetcher returns the raw cell values of the roster range.
type Fetcher interface {
	FetchRows(ctx context.Context) ([][]interface{}, error)
}

// Checker matches emails against the rows a Fetcher returns. Rows are cached
// for ttl so a burst of checks costs one spreadsheet read.
type Checker struct {
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	emails   map[string]struct{}
	loadedAt time.Time
}

// NewChecker creates a Checker. A nil fetcher yields ErrNotConfigured on every check.
func NewChecker(fetcher Fetcher, ttl time.Duration) *Checker {
	return &Checker{fetcher: fetcher, ttl: ttl, now: time.Now}
}

// HasSubmitted reports whether email appears in any cell of the roster.
// Matching ignores case and surrounding whitespace.
func (c *Checker) HasSubmitted(ctx context.Context, email string) (bool, error) {
	if c == nil || c.fetcher == nil {
		return false, ErrNotConfigured
	}
	email = normalize(email)
	if email == "" {
		return false, nil
	}

	emails, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	_, ok := emails[email]
	return ok, nil
}

// Invalidate drops the cached rows.
func (c *Checker) Invalidate() {
	c.mu.Lock()
	c.emails = nil
	c.mu.Unlock()
}

func (c *Checker) load(ctx context.Context) (map[string]struct{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.emails != nil && c.now().Sub(c.loadedAt) < c.ttl {
		return c.emails, nil
	}

	rows, err := c.fetcher.FetchRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}

	emails := make(map[string]struct{})
	for _, row := range rows {
		for _, cell := range row {
			s, ok := cell.(string)
			if !ok {
				continue
			}
			if v := normalize(s); strings.Contains(v, "@") {
				emails[v] = struct{}{}
			}
		}
	}

	c.emails = emails
	c.loadedAt = c.now()
	return emails, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SheetsFetcher reads a range from a Google Sheets spreadsheet.
type SheetsFetcher struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	readRange     string
}

// NewSheetsFetcher authenticates with a service-account credentials file.
func NewSheetsFetcher(ctx context.Context, credentialsFile, spreadsheetID, readRange string) (*SheetsFetcher, error) {
	if credentialsFile == "" || spreadsheetID == "" {
		return nil, ErrNotConfigured
	}
	return NewSheetsFetcherWithOptions(ctx, spreadsheetID, readRange,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
}

// NewSheetsFetcherWithOptions builds a fetcher from explicit client options.
func NewSheetsFetcherWithOptions(ctx context.Context, spreadsheetID, readRange string, opts ...option.ClientOption) (*SheetsFetcher, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsFetcher{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}, nil
}

// FetchRows returns the configured range's values.
func (f *SheetsFetcher) FetchRows(ctx context.Context) ([][]interface{}, error) {
	resp, err := f.values.Get(f.spreadsheetID, f.readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}
