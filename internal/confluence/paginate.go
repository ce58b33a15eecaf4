package confluence

import (
	"context"
	"encoding/json"
)

// DefaultPageSize matches the server's default result page size.
const DefaultPageSize = 25

// FetchPageFunc retrieves one result page starting at the given offset. It
// returns the raw entries of that page, in server order.
type FetchPageFunc func(ctx context.Context, start, limit int) ([]json.RawMessage, error)

// Paginate collects a complete result set across a paged collection
// endpoint. The offset advances by the number of entries actually returned,
// so short final pages are tolerated. The walk stops when a page comes back
// shorter than requested (collection exhausted, complete=true), when
// maxItems is reached (result truncated to exactly maxItems, complete=false),
// or when a fetch fails, in which case the accumulated entries are discarded
// and a *PaginationError is returned. maxItems <= 0 means unlimited.
// Server order is preserved; no retry happens at this layer.
func Paginate(ctx context.Context, fetch FetchPageFunc, pageSize, maxItems int) ([]json.RawMessage, bool, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var items []json.RawMessage
	offset := 0
	for {
		entries, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return nil, false, &PaginationError{Offset: offset, Err: err}
		}

		items = append(items, entries...)
		short := len(entries) < pageSize

		if maxItems > 0 && len(items) >= maxItems {
			truncated := len(items) > maxItems
			items = items[:maxItems]
			// Complete only if the limit landed exactly on the end of the
			// collection.
			return items, short && !truncated, nil
		}
		if short {
			return items, true, nil
		}
		offset += len(entries)
	}
}
