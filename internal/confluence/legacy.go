package confluence

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
)

// RPCCaller is the pre-authenticated legacy RPC collaborator. The token and
// endpoint selection (confluence1 vs confluence2) live behind it.
type RPCCaller interface {
	Call(ctx context.Context, method string, args ...any) (any, error)
}

// LegacyService adapts the retired RPC endpoint to ContentService. Every
// operation emits a structured deprecation warning before calling out; new
// code should construct the REST variant instead.
type LegacyService struct {
	rpc    RPCCaller
	token  string
	warn   WarningSink
	logger zerolog.Logger
}

// NewLegacyService creates the legacy variant over the given RPC collaborator.
func NewLegacyService(rpc RPCCaller, token string, warn WarningSink, logger zerolog.Logger) *LegacyService {
	return &LegacyService{rpc: rpc, token: token, warn: warn, logger: logger}
}

func (s *LegacyService) deprecated(op string) {
	s.logger.Debug().Str("op", op).Msg("deprecated RPC operation called")
	if s.warn != nil {
		s.warn(Warning{
			Op:      op,
			Message: op + " uses the retired RPC endpoint and will be served by the REST API in future versions; responses may change shape",
		})
	}
}

// GetPage looks a page up via the legacy getPage call.
//
// Deprecated: served by the retired RPC endpoint. Use the REST variant.
func (s *LegacyService) GetPage(ctx context.Context, space, title string) (*ContentRecord, error) {
	s.deprecated("GetPage")

	result, err := s.rpc.Call(ctx, "getPage", s.token, space, title)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrNotFound
	}
	return normalizeRPCPage(result, space)
}

// GetPageByID is not served by the legacy variant.
func (s *LegacyService) GetPageByID(ctx context.Context, id string) (*ContentRecord, error) {
	return nil, ErrUnsupported
}

// GetPageID resolves a page to its numeric id via getPage.
//
// Deprecated: served by the retired RPC endpoint. Use the REST variant.
func (s *LegacyService) GetPageID(ctx context.Context, space, title, contentType string) (int64, error) {
	s.deprecated("GetPageID")

	result, err := s.rpc.Call(ctx, "getPage", s.token, space, title)
	if err != nil {
		return 0, err
	}
	if result == nil {
		return 0, ErrNotFound
	}
	page, err := normalizeRPCPage(result, space)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(page.ID, 10, 64)
	if err != nil {
		return 0, &MalformedRecordError{Field: "id", Reason: "not numeric: " + page.ID}
	}
	return n, nil
}

// ListPages returns the pages of a space via getPages. The RPC call is not
// paged; the result is always complete unless truncated by limit.
//
// Deprecated: served by the retired RPC endpoint. Use the REST variant.
func (s *LegacyService) ListPages(ctx context.Context, space string, limit int) (*PageResultSet, error) {
	s.deprecated("ListPages")

	result, err := s.rpc.Call(ctx, "getPages", s.token, space)
	if err != nil {
		return nil, err
	}
	entries, ok := result.([]any)
	if !ok {
		return nil, &MalformedRecordError{Field: "pages", Reason: "not a list"}
	}

	set := &PageResultSet{Complete: true}
	for _, entry := range entries {
		if limit > 0 && len(set.Records) >= limit {
			set.Complete = false
			break
		}
		record, err := normalizeRPCPage(entry, space)
		if err != nil {
			return nil, err
		}
		set.Records = append(set.Records, *record)
	}
	return set, nil
}

// ListSpaces returns all spaces via getSpaces.
//
// Deprecated: served by the retired RPC endpoint. Use the REST variant.
func (s *LegacyService) ListSpaces(ctx context.Context, limit int) ([]SpaceRecord, error) {
	s.deprecated("ListSpaces")

	result, err := s.rpc.Call(ctx, "getSpaces", s.token)
	if err != nil {
		return nil, err
	}
	entries, ok := result.([]any)
	if !ok {
		return nil, &MalformedRecordError{Field: "spaces", Reason: "not a list"}
	}

	var spaces []SpaceRecord
	for _, entry := range entries {
		if limit > 0 && len(spaces) >= limit {
			break
		}
		fields, ok := entry.(map[string]any)
		if !ok {
			return nil, &MalformedRecordError{Field: "space", Reason: "not a mapping"}
		}
		key := stringField(fields, "key")
		if key == "" {
			return nil, &MalformedRecordError{Field: "key", Reason: "missing"}
		}
		spaces = append(spaces, SpaceRecord{
			Key:  key,
			Name: stringField(fields, "name"),
			Type: SpaceType(stringField(fields, "type")),
			URL:  stringField(fields, "url"),
		})
	}
	return spaces, nil
}

// ListChildPages returns the direct children of a page via getChildren.
//
// Deprecated: served by the retired RPC endpoint. Use the REST variant.
func (s *LegacyService) ListChildPages(ctx context.Context, rootID string) ([]ChildPageRecord, error) {
	s.deprecated("ListChildPages")

	result, err := s.rpc.Call(ctx, "getChildren", s.token, rootID)
	if err != nil {
		return nil, err
	}
	entries, ok := result.([]any)
	if !ok {
		return nil, &MalformedRecordError{Field: "children", Reason: "not a list"}
	}

	children := make([]ChildPageRecord, 0, len(entries))
	for _, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			return nil, &MalformedRecordError{Field: "child", Reason: "not a mapping"}
		}
		id := stringField(fields, "id")
		if id == "" {
			return nil, &MalformedRecordError{Field: "id", Reason: "missing"}
		}
		children = append(children, ChildPageRecord{
			ID:       id,
			Title:    stringField(fields, "title"),
			ParentID: rootID,
		})
	}
	return children, nil
}

// GetBlogEntry is not served by the legacy variant.
func (s *LegacyService) GetBlogEntry(ctx context.Context, space, title, postingDay string) (*ContentRecord, error) {
	return nil, ErrUnsupported
}

// CreatePage stores a new page via storePage.
//
// Deprecated: served by the retired RPC endpoint. Use the REST variant.
func (s *LegacyService) CreatePage(ctx context.Context, space, title, body string) (*ContentRecord, error) {
	return s.CreatePageWithParent(ctx, space, title, body, "")
}

// CreatePageWithParent stores a new page under a parent via storePage.
//
// Deprecated: served by the retired RPC endpoint. Use the REST variant.
func (s *LegacyService) CreatePageWithParent(ctx context.Context, space, title, body, parentID string) (*ContentRecord, error) {
	s.deprecated("CreatePage")

	page := map[string]any{
		"space":   space,
		"title":   title,
		"content": body,
	}
	if parentID != "" {
		page["parentId"] = parentID
	}

	result, err := s.rpc.Call(ctx, "storePage", s.token, page)
	if err != nil {
		return nil, err
	}
	return normalizeRPCPage(result, space)
}

// UpdatePage rewrites an existing page via storePage, preserving the
// version-advances-by-one contract through the server.
//
// Deprecated: served by the retired RPC endpoint. Use the REST variant.
func (s *LegacyService) UpdatePage(ctx context.Context, id, title, body string) (*ContentRecord, error) {
	s.deprecated("UpdatePage")

	page := map[string]any{
		"id":      id,
		"title":   title,
		"content": body,
	}
	result, err := s.rpc.Call(ctx, "storePage", s.token, page)
	if err != nil {
		return nil, err
	}
	return normalizeRPCPage(result, "")
}

// MovePage re-parents sourceID under targetID. position is "append", "above"
// or "below".
//
// Deprecated: served by the retired RPC endpoint.
func (s *LegacyService) MovePage(ctx context.Context, sourceID, targetID, position string) error {
	s.deprecated("MovePage")

	if position == "" {
		position = "append"
	}
	_, err := s.rpc.Call(ctx, "movePage", s.token, sourceID, targetID, position)
	return err
}

// AddLabel attaches a label to a content item.
//
// Deprecated: served by the retired RPC endpoint.
func (s *LegacyService) AddLabel(ctx context.Context, label, contentID string) error {
	s.deprecated("AddLabel")

	_, err := s.rpc.Call(ctx, "addLabelByName", s.token, label, contentID)
	return err
}

// AttachmentRecord describes an attachment's metadata. Byte transfer is the
// transport collaborator's concern and is not exposed here.
type AttachmentRecord struct {
	FileName    string
	ContentType string
	Comment     string
}

// ListAttachments returns the attachment metadata of a page.
//
// Deprecated: served by the retired RPC endpoint.
func (s *LegacyService) ListAttachments(ctx context.Context, pageID string) ([]AttachmentRecord, error) {
	s.deprecated("ListAttachments")

	result, err := s.rpc.Call(ctx, "getAttachments", s.token, pageID)
	if err != nil {
		return nil, err
	}
	entries, ok := result.([]any)
	if !ok {
		return nil, &MalformedRecordError{Field: "attachments", Reason: "not a list"}
	}

	attachments := make([]AttachmentRecord, 0, len(entries))
	for _, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			return nil, &MalformedRecordError{Field: "attachment", Reason: "not a mapping"}
		}
		attachments = append(attachments, AttachmentRecord{
			FileName:    stringField(fields, "fileName"),
			ContentType: stringField(fields, "contentType"),
			Comment:     stringField(fields, "comment"),
		})
	}
	return attachments, nil
}

// normalizeRPCPage maps a legacy RPC page struct onto a ContentRecord.
func normalizeRPCPage(entry any, space string) (*ContentRecord, error) {
	fields, ok := entry.(map[string]any)
	if !ok {
		return nil, &MalformedRecordError{Field: "page", Reason: "not a mapping"}
	}

	id := coerceString(fields["id"])
	if id == "" {
		return nil, &MalformedRecordError{Field: "id", Reason: "missing"}
	}
	title := stringField(fields, "title")
	if title == "" {
		return nil, &MalformedRecordError{Field: "title", Reason: "missing"}
	}

	if space == "" {
		space = stringField(fields, "space")
	}

	record := &ContentRecord{
		ID:       id,
		Title:    title,
		SpaceKey: space,
		URL:      stringField(fields, "url"),
		Created:  stringField(fields, "created"),
		Modified: stringField(fields, "modified"),
	}

	if content, ok := fields["content"].(string); ok {
		record.Body = &content
	}
	if creator := stringField(fields, "creator"); creator != "" {
		record.Creator = &creator
	}
	if modifier := stringField(fields, "modifier"); modifier != "" {
		record.Modifier = &modifier
	}

	if version, present := fields["version"]; present {
		n, err := coerceInt(version)
		if err != nil {
			return nil, &MalformedRecordError{Field: "version", Reason: err.Error()}
		}
		record.Version = n
	}

	return record, nil
}

func stringField(fields map[string]any, key string) string {
	value, _ := fields[key].(string)
	return value
}

func coerceString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

func coerceInt(value any) (int, error) {
	switch v := value.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("not numeric: %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", value)
	}
}

var _ ContentService = (*LegacyService)(nil)
