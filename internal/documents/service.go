package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"time"

	"github.com/google/uuid"

	"docvault-backend/internal/extract"
	"docvault-backend/internal/shared/metrics"
	"docvault-backend/internal/shared/storage/object"
	"docvault-backend/internal/shared/telemetry"
)

// ErrUnsupportedType is returned when the uploaded file is neither PDF nor
// DOCX.
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrExtractFailed is returned when text extraction from the uploaded file
// fails.
var ErrExtractFailed = errors.New("extraction failed")

// ErrFileMissing is returned when the document record exists but the stored
// file does not.
var ErrFileMissing = errors.New("stored file missing")

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  DocumentsRepo
}

// Upload extracts structured content from the file, persists the raw bytes to
// object storage and records the document for the user.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Document, error) {
	fileType := extract.FileType(fileName)
	if fileType == "" {
		return Document{}, ErrUnsupportedType
	}
	metrics.IncUploadStarted()

	raw, err := io.ReadAll(r)
	if err != nil {
		metrics.IncUploadFailed()
		return Document{}, err
	}

	blob, err := s.extractData(fileType, raw)
	if err != nil {
		metrics.IncUploadFailed()
		return Document{}, err
	}

	storageKey, size, err := s.Store.Save(ctx, fileName, bytes.NewReader(raw))
	if err != nil {
		metrics.IncUploadFailed()
		return Document{}, err
	}

	now := time.Now().UTC()
	doc := Document{
		ID:        uuid.NewString(),
		UserID:    userID,
		FileType:  fileType,
		FileURL:   URLPrefix + storageKey,
		Data:      blob,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		metrics.IncUploadFailed()
		return Document{}, err
	}

	metrics.IncUploadCompleted()
	telemetry.Info("document.uploaded", map[string]any{
		"document_id": doc.ID,
		"user_id":     userID,
		"file_type":   fileType,
		"size_bytes":  size,
	})
	return doc, nil
}

func (s *Service) extractData(fileType string, raw []byte) (string, error) {
	started := time.Now()
	defer func() {
		metrics.ObserveExtractDurationMs(float64(time.Since(started).Milliseconds()))
	}()

	var payload any
	switch fileType {
	case extract.TypePDF:
		text, err := extract.PDFText(raw)
		if err != nil {
			return "", ErrExtractFailed
		}
		payload = extract.StructureDocument(text)
	case extract.TypeDOCX:
		text, err := extract.DOCXText(raw)
		if err != nil {
			return "", ErrExtractFailed
		}
		payload = extract.Paragraphs(text)
	default:
		return "", ErrUnsupportedType
	}

	blob, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	if string(blob) == "null" {
		return "[]", nil
	}
	return string(blob), nil
}

// List returns the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Details returns a document after verifying the stored file is still
// present. The returned file type is derived from the stored file name.
func (s *Service) Details(ctx context.Context, userID, documentID string) (Document, string, error) {
	doc, err := s.Repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return Document{}, "", err
	}
	ok, err := s.Store.Exists(ctx, doc.StorageKey())
	if err != nil {
		return Document{}, "", err
	}
	if !ok {
		return Document{}, "", ErrFileMissing
	}
	return doc, extract.FileType(doc.FileURL), nil
}

// OpenFile returns the document and a reader over its stored bytes. The
// caller closes the reader.
func (s *Service) OpenFile(ctx context.Context, userID, documentID string) (Document, io.ReadCloser, error) {
	doc, err := s.Repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return Document{}, nil, err
	}
	rc, err := s.Store.Open(ctx, doc.StorageKey())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, nil, ErrFileMissing
		}
		return Document{}, nil, err
	}
	return doc, rc, nil
}

// SaveData replaces the document's extracted content with the client's edited
// version and returns the stored blob. The blob is compacted so reads return
// it byte for byte.
func (s *Service) SaveData(ctx context.Context, userID, documentID string, data json.RawMessage) (string, error) {
	if len(data) == 0 {
		return "", ErrInvalidInput
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return "", ErrInvalidInput
	}
	if err := s.Repo.UpdateData(ctx, userID, documentID, buf.String()); err != nil {
		return "", err
	}
	return buf.String(), nil
}
