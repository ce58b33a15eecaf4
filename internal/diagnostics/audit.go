// Package diagnostics scans wiki content for rendering errors left behind by
// failed macro expansions.
package diagnostics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"confluo/internal/confluence"
	"confluo/pkg/cache"
)

// errorMarker matches the error container the renderer injects when a macro
// fails to expand.
var errorMarker = regexp.MustCompile(`<div class="error"[^>]*>`)

// Finding is one page whose stored body carries rendering errors.
type Finding struct {
	PageID  string `json:"page_id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Matches int    `json:"matches"`
}

// Report aggregates one audit run over a space.
type Report struct {
	SpaceKey string    `json:"space_key"`
	Scanned  int       `json:"scanned"`
	Findings []Finding `json:"findings"`
}

// Auditor walks a space's pages through the content facade and reports pages
// whose storage bodies contain error markers. The page index is kept in an
// injected cache so repeated runs skip the listing walk.
type Auditor struct {
	service confluence.ContentService
	cache   cache.Cache
	ttl     time.Duration
	logger  zerolog.Logger
}

// NewAuditor creates an auditor. cache may be nil, in which case every run
// rebuilds the index.
func NewAuditor(service confluence.ContentService, c cache.Cache, ttl time.Duration, logger zerolog.Logger) *Auditor {
	return &Auditor{service: service, cache: c, ttl: ttl, logger: logger}
}

// indexEntry is the cached projection of a page, enough to fetch and report.
type indexEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

func indexKey(space string) string { return "index:" + space }

// Index returns the id/title/url listing of a space, from cache when fresh.
func (a *Auditor) Index(ctx context.Context, space string) ([]indexEntry, error) {
	if a.cache != nil {
		data, err := a.cache.Get(ctx, indexKey(space))
		if err == nil {
			var entries []indexEntry
			if err := json.Unmarshal(data, &entries); err == nil {
				a.logger.Debug().Str("space", space).Int("pages", len(entries)).Msg("page index served from cache")
				return entries, nil
			}
			// Unreadable cache payloads are rebuilt, not fatal.
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			return nil, fmt.Errorf("failed to read page index from cache: %w", err)
		}
	}

	set, err := a.service.ListPages(ctx, space, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages of %s: %w", space, err)
	}

	entries := make([]indexEntry, 0, len(set.Records))
	for _, record := range set.Records {
		entries = append(entries, indexEntry{ID: record.ID, Title: record.Title, URL: record.URL})
	}

	if a.cache != nil {
		data, err := json.Marshal(entries)
		if err == nil {
			if err := a.cache.Put(ctx, indexKey(space), data, a.ttl); err != nil {
				a.logger.Warn().Err(err).Str("space", space).Msg("failed to cache page index")
			}
		}
	}
	return entries, nil
}

// Audit scans every page of a space and reports the ones carrying error
// markers in their storage body.
func (a *Auditor) Audit(ctx context.Context, space string) (*Report, error) {
	entries, err := a.Index(ctx, space)
	if err != nil {
		return nil, err
	}

	report := &Report{SpaceKey: space}
	for _, entry := range entries {
		record, err := a.service.GetPageByID(ctx, entry.ID)
		if err != nil {
			if errors.Is(err, confluence.ErrNotFound) {
				// The index may be stale; a deleted page is not a finding.
				a.logger.Debug().Str("id", entry.ID).Msg("indexed page no longer exists")
				continue
			}
			return nil, fmt.Errorf("failed to fetch page %s: %w", entry.ID, err)
		}
		report.Scanned++

		if record.Body == nil {
			continue
		}
		matches := errorMarker.FindAllStringIndex(*record.Body, -1)
		if len(matches) == 0 {
			continue
		}
		report.Findings = append(report.Findings, Finding{
			PageID:  entry.ID,
			Title:   entry.Title,
			URL:     entry.URL,
			Matches: len(matches),
		})
	}

	a.logger.Info().
		Str("space", space).
		Int("scanned", report.Scanned).
		Int("findings", len(report.Findings)).
		Msg("audit complete")
	return report, nil
}

// Invalidate drops the cached index of a space.
func (a *Auditor) Invalidate(ctx context.Context, space string) error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Delete(ctx, indexKey(space))
}
