package confluence

import (
	"encoding/json"
)

// rawContent mirrors the nested shape of one content entry as the server
// returns it. Optional branches are pointers so absence survives decoding.
type rawContent struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Space  *struct {
		Key string `json:"key"`
	} `json:"space"`
	Body *struct {
		Storage *struct {
			Value string `json:"value"`
		} `json:"storage"`
		View *struct {
			Value string `json:"value"`
		} `json:"view"`
	} `json:"body"`
	History *struct {
		CreatedDate string `json:"createdDate"`
		Latest      bool   `json:"latest"`
		CreatedBy   *struct {
			Username string `json:"username"`
		} `json:"createdBy"`
	} `json:"history"`
	Version *struct {
		When   string        `json:"when"`
		Number VersionNumber `json:"number"`
		By     *struct {
			Username string `json:"username"`
		} `json:"by"`
	} `json:"version"`
	Links struct {
		WebUI string `json:"webui"`
	} `json:"_links"`
}

type rawSpace struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type rawChild struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NormalizeContent flattens one raw content entry. Required fields are id,
// title, the web UI relative link, and a non-empty base URL; anything else
// degrades to its zero value or nil instead of failing. When spaceKey is
// empty the entry's own space key is used.
func NormalizeContent(entry json.RawMessage, baseURL, spaceKey string) (*ContentRecord, error) {
	var raw rawContent
	if err := json.Unmarshal(entry, &raw); err != nil {
		return nil, &MalformedRecordError{Field: "entry", Reason: err.Error()}
	}

	if raw.ID == "" {
		return nil, &MalformedRecordError{Field: "id", Reason: "missing"}
	}
	if raw.Title == "" {
		return nil, &MalformedRecordError{Field: "title", Reason: "missing"}
	}
	if raw.Links.WebUI == "" {
		return nil, &MalformedRecordError{Field: "_links.webui", Reason: "missing"}
	}
	if baseURL == "" {
		return nil, &MalformedRecordError{Field: "_links.base", Reason: "missing"}
	}

	if spaceKey == "" && raw.Space != nil {
		spaceKey = raw.Space.Key
	}

	record := &ContentRecord{
		ID:       raw.ID,
		Title:    raw.Title,
		SpaceKey: spaceKey,
		Status:   raw.Status,
		URL:      baseURL + raw.Links.WebUI,
	}

	if raw.Body != nil {
		switch {
		case raw.Body.Storage != nil:
			value := raw.Body.Storage.Value
			record.Body = &value
		case raw.Body.View != nil:
			value := raw.Body.View.Value
			record.Body = &value
		}
	}

	if raw.History != nil {
		record.Created = raw.History.CreatedDate
		record.CurrentVersion = raw.History.Latest
		if raw.History.CreatedBy != nil && raw.History.CreatedBy.Username != "" {
			creator := raw.History.CreatedBy.Username
			record.Creator = &creator
		}
	}

	if raw.Version != nil {
		record.Modified = raw.Version.When
		record.Version = int(raw.Version.Number)
		if raw.Version.By != nil && raw.Version.By.Username != "" {
			modifier := raw.Version.By.Username
			record.Modifier = &modifier
		}
	}

	return record, nil
}

// NormalizeSpace flattens one raw space entry. The canonical URL is the base
// link plus the display path for the space key.
func NormalizeSpace(entry json.RawMessage, baseURL string) (*SpaceRecord, error) {
	var raw rawSpace
	if err := json.Unmarshal(entry, &raw); err != nil {
		return nil, &MalformedRecordError{Field: "entry", Reason: err.Error()}
	}

	if raw.Key == "" {
		return nil, &MalformedRecordError{Field: "key", Reason: "missing"}
	}
	if raw.Name == "" {
		return nil, &MalformedRecordError{Field: "name", Reason: "missing"}
	}
	if raw.Type == "" {
		return nil, &MalformedRecordError{Field: "type", Reason: "missing"}
	}
	if baseURL == "" {
		return nil, &MalformedRecordError{Field: "_links.base", Reason: "missing"}
	}

	return &SpaceRecord{
		Key:  raw.Key,
		Name: raw.Name,
		Type: SpaceType(raw.Type),
		URL:  baseURL + "/display/" + raw.Key,
	}, nil
}

// NormalizeChild flattens one child-page entry. The parent id comes from the
// query context.
func NormalizeChild(entry json.RawMessage, parentID string) (*ChildPageRecord, error) {
	var raw rawChild
	if err := json.Unmarshal(entry, &raw); err != nil {
		return nil, &MalformedRecordError{Field: "entry", Reason: err.Error()}
	}
	if raw.ID == "" {
		return nil, &MalformedRecordError{Field: "id", Reason: "missing"}
	}

	return &ChildPageRecord{
		ID:       raw.ID,
		Title:    raw.Title,
		ParentID: parentID,
	}, nil
}
