package confluence

import (
	"context"

	"github.com/rs/zerolog"

	"confluo/internal/transport"
)

// ContentService answers content queries against a wiki server. Two variants
// exist: the REST service (primary) and the legacy RPC service, chosen once
// at construction, never per call. Every operation is a synchronous blocking
// call; implementations hold no mutable state between calls and are safe for
// concurrent use as long as their transport is.
type ContentService interface {
	// GetPage looks a page up by space and title. Returns ErrNotFound when no
	// content matches. When several entries match the same space/title pair
	// across content types, the first in server order wins; this layer does
	// not resolve the ambiguity.
	GetPage(ctx context.Context, space, title string) (*ContentRecord, error)

	// GetPageByID fetches a single page through the single-entity endpoint.
	GetPageByID(ctx context.Context, id string) (*ContentRecord, error)

	// GetPageID resolves a page or blog post to its numeric id. contentType
	// narrows the lookup to "page" or "blogpost"; empty matches any.
	GetPageID(ctx context.Context, space, title, contentType string) (int64, error)

	// ListPages returns the pages of a space. limit caps the total returned,
	// not the per-page fetch size; limit <= 0 returns everything.
	ListPages(ctx context.Context, space string, limit int) (*PageResultSet, error)

	// ListSpaces returns the spaces on the server, limit semantics as above.
	ListSpaces(ctx context.Context, limit int) ([]SpaceRecord, error)

	// ListChildPages returns the direct children of the given page. One level
	// only; recursion into deeper hierarchy levels is out of scope.
	ListChildPages(ctx context.Context, rootID string) ([]ChildPageRecord, error)

	// GetBlogEntry looks a blog post up by space and title, optionally
	// narrowed to a posting day in YYYY-MM-DD form.
	GetBlogEntry(ctx context.Context, space, title, postingDay string) (*ContentRecord, error)

	// CreatePage creates a page with storage-format body content.
	CreatePage(ctx context.Context, space, title, body string) (*ContentRecord, error)

	// CreatePageWithParent creates a page under the given parent.
	CreatePageWithParent(ctx context.Context, space, title, body, parentID string) (*ContentRecord, error)

	// UpdatePage replaces a page's title and body. The stored version number
	// advances by exactly 1.
	UpdatePage(ctx context.Context, id, title, body string) (*ContentRecord, error)
}

// Warning is a structured deprecation notice emitted by the legacy service
// before each call, in place of inline prints.
type Warning struct {
	Op      string
	Message string
}

// WarningSink receives deprecation warnings. A nil sink discards them.
type WarningSink func(Warning)

// Options configures service construction.
type Options struct {
	// Transport serves the REST variant.
	Transport transport.Fetcher

	// RPC and Token select the legacy variant when both are set.
	RPC   RPCCaller
	Token string

	// Warnings receives deprecation notices from the legacy variant.
	Warnings WarningSink

	Logger zerolog.Logger
}

// NewService selects the service variant once: the legacy RPC service when an
// RPC caller and token are present, the REST service otherwise.
func NewService(opts Options) ContentService {
	if opts.RPC != nil && opts.Token != "" {
		return NewLegacyService(opts.RPC, opts.Token, opts.Warnings, opts.Logger)
	}
	return NewRESTService(opts.Transport, opts.Logger)
}
