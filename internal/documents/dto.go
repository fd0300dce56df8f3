package documents

import "encoding/json"

// ListItemResponse is the summary representation used in listings.
type ListItemResponse struct {
	ID      string          `json:"id"`
	Data    json.RawMessage `json:"data"`
	FileURL string          `json:"fileUrl"`
}

// DetailsResponse is the full outward-facing representation of a document.
// FileType is derived from the stored file's extension rather than read back
// from the record, so renamed storage keys stay authoritative.
type DetailsResponse struct {
	ID       string          `json:"id"`
	FileURL  string          `json:"fileUrl"`
	Data     json.RawMessage `json:"data"`
	FileType string          `json:"fileType"`
}

func toListItem(doc Document) ListItemResponse {
	return ListItemResponse{
		ID:      doc.ID,
		Data:    json.RawMessage(doc.Data),
		FileURL: doc.FileURL,
	}
}

func toDetails(doc Document, fileType string) DetailsResponse {
	return DetailsResponse{
		ID:       doc.ID,
		FileURL:  doc.FileURL,
		Data:     json.RawMessage(doc.Data),
		FileType: fileType,
	}
}
