package documents

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docvault-backend/internal/shared/storage/object/local"
)

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0"?><w:document><w:body>`)
	for _, p := range paragraphs {
		doc.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	doc.WriteString(`</w:body></w:document>`)
	if _, err := w.Write([]byte(doc.String())); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return &Service{
		Store: local.New(t.TempDir()),
		Repo:  NewMemoryRepo(),
	}
}

func TestUploadDocxExtractsParagraphs(t *testing.T) {
	svc := newTestService(t)
	raw := buildDocx(t, "First paragraph", "Second paragraph")

	doc, err := svc.Upload(context.Background(), "user-1", "notes.docx", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if doc.FileType != "docx" {
		t.Fatalf("expected file type docx, got %q", doc.FileType)
	}
	if !strings.HasPrefix(doc.FileURL, URLPrefix) {
		t.Fatalf("file URL %q lacks prefix %q", doc.FileURL, URLPrefix)
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(doc.Data), &items); err != nil {
		t.Fatalf("data is not valid JSON: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(items))
	}
	if items[0]["type"] != "paragraph" || items[0]["text"] != "First paragraph" {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Upload(context.Background(), "user-1", "notes.txt", strings.NewReader("hello"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestUploadRejectsCorruptDocx(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Upload(context.Background(), "user-1", "broken.docx", strings.NewReader("not a zip"))
	if !errors.Is(err, ErrExtractFailed) {
		t.Fatalf("expected ErrExtractFailed, got %v", err)
	}
}

func TestOpenFileRoundTripsStoredBytes(t *testing.T) {
	svc := newTestService(t)
	raw := buildDocx(t, "payload")

	doc, err := svc.Upload(context.Background(), "user-1", "file.docx", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	got, rc, err := svc.OpenFile(context.Background(), "user-1", doc.ID)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer rc.Close()
	if got.ID != doc.ID {
		t.Fatalf("expected doc %s, got %s", doc.ID, got.ID)
	}
	stored, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(stored, raw) {
		t.Fatal("stored bytes differ from upload")
	}
}

func TestDocumentAccessScopedToOwner(t *testing.T) {
	svc := newTestService(t)
	raw := buildDocx(t, "private")

	doc, err := svc.Upload(context.Background(), "user-1", "file.docx", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if _, _, err := svc.Details(context.Background(), "user-2", doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Details as other user: expected ErrNotFound, got %v", err)
	}
	if _, _, err := svc.OpenFile(context.Background(), "user-2", doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("OpenFile as other user: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.SaveData(context.Background(), "user-2", doc.ID, json.RawMessage(`[]`)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SaveData as other user: expected ErrNotFound, got %v", err)
	}

	docs, err := svc.List(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected empty list for other user, got %d docs", len(docs))
	}
}

func TestSaveDataCompactsAndRoundTrips(t *testing.T) {
	svc := newTestService(t)
	raw := buildDocx(t, "text")

	doc, err := svc.Upload(context.Background(), "user-1", "file.docx", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	edited := json.RawMessage("[\n  {\"heading\": \"Edited\", \"content\": []}\n]")
	stored, err := svc.SaveData(context.Background(), "user-1", doc.ID, edited)
	if err != nil {
		t.Fatalf("SaveData: %v", err)
	}
	if stored != `[{"heading":"Edited","content":[]}]` {
		t.Fatalf("stored blob not compacted: %q", stored)
	}

	got, _, err := svc.Details(context.Background(), "user-1", doc.ID)
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	want := `[{"heading":"Edited","content":[]}]`
	if got.Data != want {
		t.Fatalf("data = %q, want %q", got.Data, want)
	}
}

func TestSaveDataRejectsInvalidJSON(t *testing.T) {
	svc := newTestService(t)
	raw := buildDocx(t, "text")

	doc, err := svc.Upload(context.Background(), "user-1", "file.docx", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	for _, payload := range []json.RawMessage{nil, json.RawMessage(`{"broken":`)} {
		if _, err := svc.SaveData(context.Background(), "user-1", doc.ID, payload); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("SaveData(%q): expected ErrInvalidInput, got %v", payload, err)
		}
	}
}

func TestDetailsReportsMissingStoredFile(t *testing.T) {
	dir := t.TempDir()
	svc := &Service{Store: local.New(dir), Repo: NewMemoryRepo()}
	raw := buildDocx(t, "text")

	doc, err := svc.Upload(context.Background(), "user-1", "file.docx", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := os.Remove(filepath.Join(dir, doc.StorageKey())); err != nil {
		t.Fatalf("remove stored file: %v", err)
	}

	if _, _, err := svc.Details(context.Background(), "user-1", doc.ID); !errors.Is(err, ErrFileMissing) {
		t.Fatalf("expected ErrFileMissing, got %v", err)
	}
	if _, _, err := svc.OpenFile(context.Background(), "user-1", doc.ID); !errors.Is(err, ErrFileMissing) {
		t.Fatalf("OpenFile: expected ErrFileMissing, got %v", err)
	}
}
