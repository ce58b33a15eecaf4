// Package confluence normalizes Confluence REST and legacy RPC responses into
// stable flat records and exposes lookup operations over them.
package confluence

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SpaceType classifies a space. Servers currently report "global" and
// "personal".
type SpaceType string

const (
	SpaceGlobal   SpaceType = "global"
	SpacePersonal SpaceType = "personal"
)

// ContentRecord is the flattened form of one content item (page or blog
// post). Records are immutable value objects; the ID is assigned by the
// server and never changes.
type ContentRecord struct {
	ID       string
	Title    string
	SpaceKey string

	// Body is the storage-format markup. Nil for metadata-only queries.
	Body *string

	Status  string
	Created string

	// Creator is nil when the server omits user identity, e.g. for
	// anonymized content.
	Creator *string

	CurrentVersion bool
	Modified       string
	Modifier       *string

	// Version increases by exactly 1 on each successful update.
	Version int

	// URL is the canonical web UI location, base link + relative link.
	URL string
}

// SpaceRecord is the flattened form of one space.
type SpaceRecord struct {
	Key  string
	Name string
	Type SpaceType
	URL  string
}

// ChildPageRecord identifies a direct child of a page. ParentID comes from
// the query context, not the server entry.
type ChildPageRecord struct {
	ID       string
	Title    string
	ParentID string
}

// PageResultSet is an ordered collection of content records gathered across
// one or more result pages.
type PageResultSet struct {
	Records []ContentRecord

	// Complete is true when pagination exhausted the server-side collection,
	// false when the walk stopped early at a caller-supplied limit.
	Complete bool
}

// VersionNumber coerces the server's version field, which may arrive as a
// JSON number or as numeric text, into its integer form.
type VersionNumber int

func (v *VersionNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var quoted string
		if err := json.Unmarshal(data, &quoted); err != nil {
			return err
		}
		s = quoted
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("version is not numeric: %q", s)
	}
	if n < 0 {
		return fmt.Errorf("version is negative: %d", n)
	}
	*v = VersionNumber(n)
	return nil
}
