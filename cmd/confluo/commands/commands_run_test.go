package commands

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"confluo/internal/config"
	"confluo/internal/confluence"
)

func writeTempConfig(t *testing.T) string {
	const cfg = `confluence:
  base_url: http://example
  username: u
  api_token: t
  space_key: DOCS
`
	f, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("temp config: %v", err)
	}
	if _, err := f.WriteString(cfg); err != nil {
		t.Fatalf("write cfg: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close cfg: %v", err)
	}
	return f.Name()
}

func captureStdout(fn func()) string {
	orig := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = orig
	b, _ := io.ReadAll(r)
	return string(b)
}

func withMockService(t *testing.T, mock *confluence.MockService, fn func()) {
	t.Helper()
	orig := newContentService
	newContentService = func(*config.Config) confluence.ContentService { return mock }
	defer func() { newContentService = orig }()
	fn()
}

func storagePage(id, title, body string) *confluence.ContentRecord {
	return &confluence.ContentRecord{ID: id, Title: title, SpaceKey: "DOCS", Body: &body}
}

func TestGetPage_ByID(t *testing.T) {
	mock := confluence.NewMockService()
	mock.AddPage(storagePage("42", "Answer", "<p>Life</p>"))

	configFile = writeTempConfig(t)
	getPageSpace = "DOCS"
	getPageIDOrTitle = "42" // numeric triggers ID path
	getPageFormat = "storage"

	out := captureStdout(func() {
		withMockService(t, mock, func() {
			if err := runGetPage(&cobra.Command{}, nil); err != nil {
				t.Fatalf("runGetPage: %v", err)
			}
		})
	})
	if !strings.Contains(out, "# Answer (ID: 42)") {
		t.Fatalf("missing header: %s", out)
	}
	if !strings.Contains(out, "Life") {
		t.Fatalf("missing content: %s", out)
	}
}

func TestGetPage_ByTitle(t *testing.T) {
	mock := confluence.NewMockService()
	mock.AddPage(storagePage("50", "Guide", "<p>Guide Content</p>"))

	configFile = writeTempConfig(t)
	getPageSpace = "DOCS"
	getPageIDOrTitle = "Guide" // non-numeric triggers title search
	getPageFormat = "storage"

	out := captureStdout(func() {
		withMockService(t, mock, func() {
			if err := runGetPage(&cobra.Command{}, nil); err != nil {
				t.Fatalf("runGetPage: %v", err)
			}
		})
	})
	if !strings.Contains(out, "# Guide (ID: 50)") {
		t.Fatalf("missing header: %s", out)
	}
}

func TestGetPage_NotFound(t *testing.T) {
	mock := confluence.NewMockService()

	configFile = writeTempConfig(t)
	getPageSpace = "DOCS"
	getPageIDOrTitle = "Missing"
	getPageFormat = "storage"

	withMockService(t, mock, func() {
		if err := runGetPage(&cobra.Command{}, nil); err == nil {
			t.Fatalf("expected error for missing page")
		}
	})
}

func TestPageID_Run(t *testing.T) {
	mock := confluence.NewMockService()
	mock.AddPage(storagePage("12345", "Target", "<p/>"))

	configFile = writeTempConfig(t)
	pageIDSpace = "DOCS"
	pageIDTitle = "Target"
	pageIDType = ""

	out := captureStdout(func() {
		withMockService(t, mock, func() {
			if err := runPageID(&cobra.Command{}, nil); err != nil {
				t.Fatalf("runPageID: %v", err)
			}
		})
	})
	if strings.TrimSpace(out) != "12345" {
		t.Fatalf("expected bare id, got %q", out)
	}
}

func TestPages_SpaceFromConfig(t *testing.T) {
	mock := confluence.NewMockService()
	mock.AddPage(storagePage("1", "Only", "<p/>"))

	configFile = writeTempConfig(t)
	pagesSpace = "" // falls back to confluence.space_key
	pagesLimit = 0

	out := captureStdout(func() {
		withMockService(t, mock, func() {
			if err := runPages(&cobra.Command{}, nil); err != nil {
				t.Fatalf("runPages: %v", err)
			}
		})
	})
	if !strings.Contains(out, "Pages in space 'DOCS'") {
		t.Fatalf("space fallback missing: %s", out)
	}
	if !strings.Contains(out, "Only") {
		t.Fatalf("missing page listing: %s", out)
	}
}

func TestBlog_Run(t *testing.T) {
	mock := confluence.NewMockService()
	body := "<p>sprint notes</p>"
	mock.Blogs["DOCS:Review"] = &confluence.ContentRecord{ID: "9", Title: "Review", Body: &body}

	configFile = writeTempConfig(t)
	blogSpace = "DOCS"
	blogTitle = "Review"
	blogDate = ""

	out := captureStdout(func() {
		withMockService(t, mock, func() {
			if err := runBlog(&cobra.Command{}, nil); err != nil {
				t.Fatalf("runBlog: %v", err)
			}
		})
	})
	if !strings.Contains(out, "# Review (ID: 9)") || !strings.Contains(out, "sprint notes") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestAudit_Run(t *testing.T) {
	mock := confluence.NewMockService()
	mock.AddPage(storagePage("1", "Clean", "<p>fine</p>"))
	mock.AddPage(storagePage("2", "Broken", `<div class="error">boom</div>`))

	configFile = writeTempConfig(t)
	auditSpace = "DOCS"
	auditRefresh = false

	out := captureStdout(func() {
		withMockService(t, mock, func() {
			if err := runAudit(&cobra.Command{}, nil); err != nil {
				t.Fatalf("runAudit: %v", err)
			}
		})
	})
	if !strings.Contains(out, "Audited 2 pages") {
		t.Fatalf("missing audit summary: %s", out)
	}
	if !strings.Contains(out, "Broken (ID: 2, 1 errors)") {
		t.Fatalf("missing finding: %s", out)
	}
}
