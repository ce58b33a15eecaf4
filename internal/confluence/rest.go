package confluence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"confluo/internal/transport"
)

// RESTService is the primary ContentService, backed by the REST API.
type RESTService struct {
	transport transport.Fetcher
	logger    zerolog.Logger
	pageSize  int
}

// NewRESTService creates the REST variant over the given transport.
func NewRESTService(fetcher transport.Fetcher, logger zerolog.Logger) *RESTService {
	return &RESTService{
		transport: fetcher,
		logger:    logger,
		pageSize:  DefaultPageSize,
	}
}

func (s *RESTService) GetPage(ctx context.Context, space, title string) (*ContentRecord, error) {
	query := url.Values{}
	query.Set("spaceKey", space)
	query.Set("title", title)
	query.Set("expand", "body.storage,version,history")

	payload, err := s.fetchValidated(ctx, "content", query)
	if err != nil {
		if errors.Is(err, ErrEmptyResult) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !payload.List {
		return nil, &MalformedRecordError{Field: "results", Reason: "missing"}
	}

	if len(payload.Entries) > 1 {
		s.logger.Debug().
			Str("space", space).
			Str("title", title).
			Int("matches", len(payload.Entries)).
			Msg("ambiguous title, using first match")
	}
	return NormalizeContent(payload.Entries[0], payload.BaseURL, space)
}

func (s *RESTService) GetPageByID(ctx context.Context, id string) (*ContentRecord, error) {
	query := url.Values{}
	query.Set("expand", "body.storage,version,history,space")

	resp, err := s.transport.Fetch(ctx, "content/"+id, query)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.Status == http.StatusNotFound {
		return nil, ErrNotFound
	}
	payload, err := Validate(resp)
	if err != nil {
		return nil, err
	}
	return NormalizeContent(payload.Entity, payload.BaseURL, "")
}

func (s *RESTService) GetPageID(ctx context.Context, space, title, contentType string) (int64, error) {
	query := url.Values{}
	query.Set("spaceKey", space)
	query.Set("title", title)
	if contentType != "" {
		query.Set("type", strings.ToLower(contentType))
	}

	payload, err := s.fetchValidated(ctx, "content", query)
	if err != nil {
		if errors.Is(err, ErrEmptyResult) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if !payload.List {
		return 0, &MalformedRecordError{Field: "results", Reason: "missing"}
	}
	return parseContentID(payload.Entries[0])
}

func (s *RESTService) ListPages(ctx context.Context, space string, limit int) (*PageResultSet, error) {
	var baseURL string
	fetch := func(ctx context.Context, start, pageLimit int) ([]json.RawMessage, error) {
		query := url.Values{}
		query.Set("spaceKey", space)
		query.Set("expand", "version")
		query.Set("start", strconv.Itoa(start))
		query.Set("limit", strconv.Itoa(pageLimit))

		payload, err := s.fetchValidated(ctx, "content", query)
		if errors.Is(err, ErrEmptyResult) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if !payload.List {
			return nil, &MalformedRecordError{Field: "results", Reason: "missing"}
		}
		if baseURL == "" {
			baseURL = payload.BaseURL
		}
		return payload.Entries, nil
	}

	entries, complete, err := Paginate(ctx, fetch, s.pageSize, limit)
	if err != nil {
		return nil, err
	}

	records := make([]ContentRecord, 0, len(entries))
	for _, entry := range entries {
		record, err := NormalizeContent(entry, baseURL, space)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return &PageResultSet{Records: records, Complete: complete}, nil
}

func (s *RESTService) ListSpaces(ctx context.Context, limit int) ([]SpaceRecord, error) {
	var baseURL string
	fetch := func(ctx context.Context, start, pageLimit int) ([]json.RawMessage, error) {
		query := url.Values{}
		query.Set("start", strconv.Itoa(start))
		query.Set("limit", strconv.Itoa(pageLimit))

		payload, err := s.fetchValidated(ctx, "space", query)
		if errors.Is(err, ErrEmptyResult) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if !payload.List {
			return nil, &MalformedRecordError{Field: "results", Reason: "missing"}
		}
		if baseURL == "" {
			baseURL = payload.BaseURL
		}
		return payload.Entries, nil
	}

	entries, _, err := Paginate(ctx, fetch, s.pageSize, limit)
	if err != nil {
		return nil, err
	}

	spaces := make([]SpaceRecord, 0, len(entries))
	for _, entry := range entries {
		space, err := NormalizeSpace(entry, baseURL)
		if err != nil {
			return nil, err
		}
		spaces = append(spaces, *space)
	}
	return spaces, nil
}

// ListChildPages fetches one result page of direct children. Every entry of
// the page is accumulated; the historical behavior of keeping only the last
// entry was a defect, not a contract.
func (s *RESTService) ListChildPages(ctx context.Context, rootID string) ([]ChildPageRecord, error) {
	query := url.Values{}
	query.Set("start", "0")
	query.Set("limit", strconv.Itoa(s.pageSize))

	payload, err := s.fetchValidated(ctx, "content/"+rootID+"/child/page", query)
	if err != nil {
		if errors.Is(err, ErrEmptyResult) {
			return []ChildPageRecord{}, nil
		}
		return nil, err
	}
	if !payload.List {
		return nil, &MalformedRecordError{Field: "results", Reason: "missing"}
	}

	children := make([]ChildPageRecord, 0, len(payload.Entries))
	for _, entry := range payload.Entries {
		child, err := NormalizeChild(entry, rootID)
		if err != nil {
			return nil, err
		}
		children = append(children, *child)
	}
	return children, nil
}

func (s *RESTService) GetBlogEntry(ctx context.Context, space, title, postingDay string) (*ContentRecord, error) {
	// Personal space keys carry a tilde the server rejects unescaped.
	space = strings.ReplaceAll(space, "~", "&#126")

	query := url.Values{}
	query.Set("type", "blogpost")
	query.Set("spaceKey", space)
	query.Set("title", title)
	query.Set("expand", "space,history,body.view,version")
	if postingDay != "" {
		query.Set("postingDay", postingDay)
	}

	payload, err := s.fetchValidated(ctx, "content", query)
	if err != nil {
		if errors.Is(err, ErrEmptyResult) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !payload.List {
		return nil, &MalformedRecordError{Field: "results", Reason: "missing"}
	}
	return NormalizeContent(payload.Entries[0], payload.BaseURL, space)
}

func (s *RESTService) CreatePage(ctx context.Context, space, title, body string) (*ContentRecord, error) {
	return s.CreatePageWithParent(ctx, space, title, body, "")
}

func (s *RESTService) CreatePageWithParent(ctx context.Context, space, title, body, parentID string) (*ContentRecord, error) {
	page := map[string]any{
		"type":  "page",
		"title": title,
		"space": map[string]string{"key": space},
		"body": map[string]any{
			"storage": map[string]any{
				"value":          body,
				"representation": "storage",
			},
		},
	}
	if parentID != "" {
		page["ancestors"] = []map[string]string{{"id": parentID}}
	}

	data, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal page data: %w", err)
	}

	resp, err := s.transport.Send(ctx, http.MethodPost, "content", data)
	if err != nil {
		return nil, err
	}
	payload, err := Validate(resp)
	if err != nil {
		return nil, err
	}
	return NormalizeContent(payload.Entity, payload.BaseURL, space)
}

func (s *RESTService) UpdatePage(ctx context.Context, id, title, body string) (*ContentRecord, error) {
	current, err := s.GetPageByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get current page version: %w", err)
	}

	page := map[string]any{
		"id":    id,
		"type":  "page",
		"title": title,
		"body": map[string]any{
			"storage": map[string]any{
				"value":          body,
				"representation": "storage",
			},
		},
		"version": map[string]any{
			"number": current.Version + 1,
		},
	}

	data, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal page data: %w", err)
	}

	resp, err := s.transport.Send(ctx, http.MethodPut, "content/"+id, data)
	if err != nil {
		return nil, err
	}
	payload, err := Validate(resp)
	if err != nil {
		return nil, err
	}
	return NormalizeContent(payload.Entity, payload.BaseURL, current.SpaceKey)
}

// fetchValidated performs a GET and classifies the response.
func (s *RESTService) fetchValidated(ctx context.Context, path string, query url.Values) (*Payload, error) {
	resp, err := s.transport.Fetch(ctx, path, query)
	if err != nil {
		return nil, err
	}
	return Validate(resp)
}

// parseContentID coerces the id field of a raw entry to its numeric form.
func parseContentID(entry json.RawMessage) (int64, error) {
	var raw struct {
		ID any `json:"id"`
	}
	if err := json.Unmarshal(entry, &raw); err != nil {
		return 0, &MalformedRecordError{Field: "entry", Reason: err.Error()}
	}

	switch id := raw.ID.(type) {
	case string:
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, &MalformedRecordError{Field: "id", Reason: "not numeric: " + id}
		}
		return n, nil
	case float64:
		return int64(id), nil
	default:
		return 0, &MalformedRecordError{Field: "id", Reason: "missing or unsupported type"}
	}
}

var _ ContentService = (*RESTService)(nil)
