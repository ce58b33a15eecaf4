package confluence

import (
	"context"
	"strconv"
)

// MockService is an in-memory ContentService for tests.
type MockService struct {
	Pages        map[string]*ContentRecord // id -> record
	PagesByTitle map[string]*ContentRecord // spaceKey:title -> record
	Blogs        map[string]*ContentRecord // spaceKey:title -> record
	Spaces       []SpaceRecord
	Children     map[string][]ChildPageRecord // parent id -> children
	SpacePages   map[string][]ContentRecord   // spaceKey -> pages

	CreateCalls []string // titles created (for assertions)
	UpdateCalls []string // titles updated
	Err         error    // returned by every operation when set
}

// NewMockService creates an empty mock.
func NewMockService() *MockService {
	return &MockService{
		Pages:        make(map[string]*ContentRecord),
		PagesByTitle: make(map[string]*ContentRecord),
		Blogs:        make(map[string]*ContentRecord),
		Children:     make(map[string][]ChildPageRecord),
		SpacePages:   make(map[string][]ContentRecord),
	}
}

func (m *MockService) key(space, title string) string { return space + ":" + title }

// AddPage registers a page in all lookup maps.
func (m *MockService) AddPage(record *ContentRecord) {
	m.Pages[record.ID] = record
	m.PagesByTitle[m.key(record.SpaceKey, record.Title)] = record
	m.SpacePages[record.SpaceKey] = append(m.SpacePages[record.SpaceKey], *record)
}

func (m *MockService) GetPage(_ context.Context, space, title string) (*ContentRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	record, ok := m.PagesByTitle[m.key(space, title)]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

func (m *MockService) GetPageByID(_ context.Context, id string) (*ContentRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	record, ok := m.Pages[id]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

func (m *MockService) GetPageID(ctx context.Context, space, title, contentType string) (int64, error) {
	record, err := m.GetPage(ctx, space, title)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(record.ID, 10, 64)
	if err != nil {
		return 0, &MalformedRecordError{Field: "id", Reason: "not numeric: " + record.ID}
	}
	return n, nil
}

func (m *MockService) ListPages(_ context.Context, space string, limit int) (*PageResultSet, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	pages := m.SpacePages[space]
	complete := true
	if limit > 0 && len(pages) > limit {
		pages = pages[:limit]
		complete = false
	}
	return &PageResultSet{Records: pages, Complete: complete}, nil
}

func (m *MockService) ListSpaces(_ context.Context, limit int) ([]SpaceRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	spaces := m.Spaces
	if limit > 0 && len(spaces) > limit {
		spaces = spaces[:limit]
	}
	return spaces, nil
}

func (m *MockService) ListChildPages(_ context.Context, rootID string) ([]ChildPageRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Children[rootID], nil
}

func (m *MockService) GetBlogEntry(_ context.Context, space, title, _ string) (*ContentRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	record, ok := m.Blogs[m.key(space, title)]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

func (m *MockService) CreatePage(ctx context.Context, space, title, body string) (*ContentRecord, error) {
	return m.CreatePageWithParent(ctx, space, title, body, "")
}

func (m *MockService) CreatePageWithParent(_ context.Context, space, title, body, parentID string) (*ContentRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	record := &ContentRecord{
		ID:       title + "-id",
		Title:    title,
		SpaceKey: space,
		Body:     &body,
		Version:  1,
	}
	m.AddPage(record)
	if parentID != "" {
		m.Children[parentID] = append(m.Children[parentID], ChildPageRecord{
			ID: record.ID, Title: title, ParentID: parentID,
		})
	}
	m.CreateCalls = append(m.CreateCalls, title)
	return record, nil
}

func (m *MockService) UpdatePage(_ context.Context, id, title, body string) (*ContentRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	record, ok := m.Pages[id]
	if !ok {
		return nil, ErrNotFound
	}
	record.Title = title
	record.Body = &body
	record.Version++
	m.UpdateCalls = append(m.UpdateCalls, title)
	return record, nil
}

var _ ContentService = (*MockService)(nil)
